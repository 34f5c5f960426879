package index

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Builder accumulates the in-memory term->{doc->tf} map during indexing
// and serializes it to the dictionary/postings pair.
type Builder struct {
	mode Mode

	// terms maps term -> docID -> term frequency.
	terms map[string]map[DocID]uint32
	// uniqueTerms maps docID -> number of distinct terms in that document.
	uniqueTerms map[DocID]uint32
}

// NewBuilder returns an empty Builder for the given on-disk format.
func NewBuilder(mode Mode) *Builder {
	return &Builder{
		mode:        mode,
		terms:       make(map[string]map[DocID]uint32),
		uniqueTerms: make(map[DocID]uint32),
	}
}

// AddTerm records one occurrence of term in doc. Call once per normalized
// term produced by internal/normalize while scanning a document.
func (b *Builder) AddTerm(doc DocID, term string) {
	byDoc, ok := b.terms[term]
	if !ok {
		byDoc = make(map[DocID]uint32)
		b.terms[term] = byDoc
	}
	if _, seen := byDoc[doc]; !seen {
		b.uniqueTerms[doc]++
	}
	byDoc[doc]++
}

// EnsureDoc registers doc in the all-documents posting even if it produced
// zero terms, so every corpus entry still appears in Reader.AllDocs().
func (b *Builder) EnsureDoc(doc DocID) {
	if _, ok := b.uniqueTerms[doc]; !ok {
		b.uniqueTerms[doc] = 0
	}
}

// Write serializes the postings file followed by the dictionary file, using
// the posting-entry grammar of this Builder's Mode.
func (b *Builder) Write(dictPath, postingsPath string) error {
	postingsFile, err := os.Create(postingsPath)
	if err != nil {
		return fmt.Errorf("creating postings file: %w", err)
	}
	defer postingsFile.Close()

	bw := bufio.NewWriter(postingsFile)

	sortedTerms := make([]string, 0, len(b.terms))
	for t := range b.terms {
		sortedTerms = append(sortedTerms, t)
	}
	sort.Strings(sortedTerms)

	offsets := make(map[string]int64, len(sortedTerms))
	dfs := make(map[string]int, len(sortedTerms))

	var offset int64
	for _, term := range sortedTerms {
		byDoc := b.terms[term]
		docs := make(DocIDs, 0, len(byDoc))
		for d := range byDoc {
			docs = append(docs, d)
		}
		sort.Sort(docs)

		line := b.formatLine(docs, func(d DocID) uint32 { return byDoc[d] })
		n, err := bw.WriteString(line)
		if err != nil {
			return fmt.Errorf("writing postings for %q: %w", term, err)
		}
		offsets[term] = offset
		dfs[term] = len(docs)
		offset += int64(n)
	}

	allDocs := make(DocIDs, 0, len(b.uniqueTerms))
	for d := range b.uniqueTerms {
		allDocs = append(allDocs, d)
	}
	sort.Sort(allDocs)

	allDocsOffset := offset
	allDocsLine := b.formatLine(allDocs, func(d DocID) uint32 { return b.uniqueTerms[d] })
	if _, err := bw.WriteString(allDocsLine); err != nil {
		return fmt.Errorf("writing all-documents posting: %w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing postings file: %w", err)
	}

	return b.writeDictionary(dictPath, sortedTerms, dfs, offsets, allDocsOffset)
}

func (b *Builder) writeDictionary(path string, terms []string, dfs map[string]int, offsets map[string]int64, allDocsOffset int64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dictionary file: %w", err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(bw, "%d\n", allDocsOffset); err != nil {
		return err
	}
	for _, term := range terms {
		if _, err := fmt.Fprintf(bw, "%s %d %d\n", term, dfs[term], offsets[term]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// formatLine renders one postings-file line for the sorted doc list docs,
// using count(d) for the per-document value, in this Builder's Mode.
func (b *Builder) formatLine(docs DocIDs, count func(DocID) uint32) string {
	var sb strings.Builder
	switch b.mode {
	case Ranked:
		for i, d := range docs {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(int(d)))
			sb.WriteByte(':')
			sb.WriteString(strconv.Itoa(int(count(d))))
		}
	case Boolean:
		skips := BuildSkips(len(docs))
		for i, d := range docs {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(int(d)))
			if target, ok := skips[i]; ok {
				sb.WriteByte(':')
				sb.WriteString(strconv.Itoa(target))
			}
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}
