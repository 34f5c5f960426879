package index

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Mode selects which posting-entry grammar a dictionary/postings
// pair was written in. A Reader must be opened with the same Mode the
// matching Builder used.
type Mode int

const (
	// Ranked is "<doc_id>:<term_frequency>", no skip pointers.
	Ranked Mode = iota
	// Boolean is "<doc_id>" optionally followed by ":<skip_target_index>".
	Boolean
)

func (m Mode) String() string {
	if m == Boolean {
		return "bool"
	}
	return "ranked"
}

// ParseMode parses a --mode flag value.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "ranked":
		return Ranked, nil
	case "bool", "boolean":
		return Boolean, nil
	default:
		return 0, fmt.Errorf("unknown index mode %q (want \"ranked\" or \"bool\")", s)
	}
}

// dictEntry is the dictionary's term -> (document-frequency, offset) value.
type dictEntry struct {
	df     int
	offset int64
}

// Posting is a parsed postings-file line, format-agnostic: Counts is
// populated only in Ranked mode, Skips only in Boolean mode.
type Posting struct {
	Docs   DocIDs
	Counts []uint32
	Skips  map[int]int
}

// Reader opens a dictionary/postings pair and answers random-access lookups
// against them. A Reader is single-threaded per instance unless guarded
// externally: the underlying file handle is exclusive.
type Reader struct {
	mode Mode

	file *os.File
	dict map[string]dictEntry

	docSizes   map[DocID]uint32
	allDocsAsc DocIDs

	mu    sync.Mutex // guards cache and file seeks
	cache map[int64]Posting
}

// Open constructs a Reader from a dictionary file and a postings file,
// both produced by a Builder in the same Mode.
func Open(dictPath, postingsPath string, mode Mode) (*Reader, error) {
	f, err := os.Open(postingsPath)
	if err != nil {
		return nil, fmt.Errorf("opening postings file: %w", err)
	}

	r := &Reader{
		mode:  mode,
		file:  f,
		dict:  make(map[string]dictEntry),
		cache: make(map[int64]Posting),
	}

	allDocsOffset, err := r.readDictionary(dictPath)
	if err != nil {
		f.Close()
		return nil, err
	}

	allDocs, err := r.parseAt(allDocsOffset)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("parsing all-documents posting: %w", err)
	}
	r.docSizes = make(map[DocID]uint32, len(allDocs.Docs))
	for i, d := range allDocs.Docs {
		if i < len(allDocs.Counts) {
			r.docSizes[d] = allDocs.Counts[i]
		} else {
			r.docSizes[d] = 1
		}
	}
	r.allDocsAsc = allDocs.Docs.sorted()

	return r, nil
}

// Close releases the postings file handle.
func (r *Reader) Close() error {
	return r.file.Close()
}

// readDictionary parses the dictionary file and returns the all-documents
// offset (line 1). Lines after it that don't parse as "<term> <df> <offset>"
// are silently skipped.
func (r *Reader) readDictionary(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening dictionary file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		return 0, fmt.Errorf("dictionary file %s is empty", path)
	}
	allDocsOffset, err := strconv.ParseInt(strings.TrimSpace(scanner.Text()), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing all-documents offset: %w", err)
	}

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 3 {
			continue
		}
		df, err := strconv.Atoi(fields[1])
		if err != nil {
			continue
		}
		offset, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			continue
		}
		r.dict[fields[0]] = dictEntry{df: df, offset: offset}
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return allDocsOffset, nil
}

// Lookup returns the document frequency and byte offset for term, or
// ok=false if term is absent from the dictionary.
func (r *Reader) Lookup(term string) (df int, offset int64, ok bool) {
	e, ok := r.dict[term]
	return e.df, e.offset, ok
}

// Postings returns the parsed posting list for term, or an empty Posting
// if term is absent from the dictionary. Results are cached by offset.
func (r *Reader) Postings(term string) Posting {
	e, ok := r.dict[term]
	if !ok {
		return Posting{}
	}
	p, err := r.cachedParseAt(e.offset)
	if err != nil {
		return Posting{}
	}
	return p
}

// RankedPostings adapts Postings(term) into a RankedPostingList. Valid only
// when the Reader was opened in Ranked mode.
func (r *Reader) RankedPostings(term string) RankedPostingList {
	p := r.Postings(term)
	out := make(RankedPostingList, len(p.Docs))
	for i, d := range p.Docs {
		var c uint32
		if i < len(p.Counts) {
			c = p.Counts[i]
		}
		out[i] = DocPosting{DocID: d, Count: c}
	}
	return out
}

// BooleanPostings adapts Postings(term) into a BooleanPostingList. Valid
// only when the Reader was opened in Boolean mode.
func (r *Reader) BooleanPostings(term string) BooleanPostingList {
	p := r.Postings(term)
	return BooleanPostingList{Docs: p.Docs, Skips: p.Skips}
}

// AllDocs returns every DocId in the corpus, ascending.
func (r *Reader) AllDocs() DocIDs {
	return r.allDocsAsc
}

// NumDocs is the dictionary size (distinct terms), used as N in IDF
// (the documented, non-textbook choice of N).
func (r *Reader) NumDocs() int {
	return len(r.dict)
}

// DocLength returns doc's unique-term count, the ranked-score denominator.
// In Boolean mode the all-documents posting carries no counts, so DocLength
// returns 1 for every document.
func (r *Reader) DocLength(doc DocID) uint32 {
	return r.docSizes[doc]
}

func (r *Reader) cachedParseAt(offset int64) (Posting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.cache[offset]; ok {
		return p, nil
	}
	p, err := r.parseAt(offset)
	if err != nil {
		return Posting{}, err
	}
	r.cache[offset] = p
	return p, nil
}

// parseAt seeks to offset and parses one postings line. Callers other than
// Open (the all-documents posting, which is not cached) must hold r.mu.
func (r *Reader) parseAt(offset int64) (Posting, error) {
	if _, err := r.file.Seek(offset, 0); err != nil {
		return Posting{}, err
	}
	reader := bufio.NewReaderSize(r.file, 64*1024)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return Posting{}, err
	}
	return parseLine(strings.TrimSpace(line), r.mode), nil
}

func parseLine(line string, mode Mode) Posting {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Posting{}
	}
	p := Posting{Docs: make(DocIDs, 0, len(fields))}
	if mode == Ranked {
		p.Counts = make([]uint32, 0, len(fields))
	} else {
		p.Skips = make(map[int]int)
	}

	for _, field := range fields {
		parts := strings.SplitN(field, ":", 2)
		doc, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		p.Docs = append(p.Docs, DocID(doc))
		pos := len(p.Docs) - 1 // position within Docs, not the raw field index

		if len(parts) != 2 {
			if mode == Ranked {
				p.Counts = append(p.Counts, 0)
			}
			continue
		}
		second, err := strconv.Atoi(parts[1])
		if err != nil {
			if mode == Ranked {
				p.Counts = append(p.Counts, 0)
			}
			continue
		}
		if mode == Ranked {
			p.Counts = append(p.Counts, uint32(second))
		} else {
			p.Skips[pos] = second
		}
	}
	if mode == Boolean && len(p.Skips) == 0 {
		p.Skips = nil
	}
	return p
}
