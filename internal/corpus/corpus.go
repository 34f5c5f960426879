// Package corpus walks a flat directory of integer-named documents and
// feeds them through the normalizer into an index.Builder, concurrently,
// using a bounded worker-pool map-reduce shape.
package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"

	"github.com/billstark/retriever/internal/index"
	"github.com/billstark/retriever/internal/normalize"
	"github.com/rs/zerolog"
)

// ListDocIDs enumerates dir's entries, parses each name as a DocId, and
// returns them sorted ascending. A name that does not parse as a positive
// integer is a fatal error: corrupt corpus input aborts the run rather
// than silently skipping a document.
func ListDocIDs(dir string) (index.DocIDs, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory: %w", err)
	}

	ids := make(index.DocIDs, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n, err := strconv.Atoi(e.Name())
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("corpus entry %q is not a positive integer DocId", e.Name())
		}
		ids = append(ids, index.DocID(n))
	}
	sort.Sort(ids)
	return ids, nil
}

type docResult struct {
	doc   index.DocID
	terms []string
	err   error
}

// chooseWorkerCount picks a bounded worker-pool size: enough to keep the
// CPU busy through I/O stalls, capped to avoid exhausting file
// descriptors, and never more than one worker per document. A positive
// override bypasses the heuristic outright, still capped to numDocs.
func chooseWorkerCount(numDocs, override int) int {
	workers := runtime.NumCPU() * 4
	if override > 0 {
		workers = override
	} else {
		workers = max(workers, 4)
		workers = min(workers, 32)
	}
	workers = min(workers, max(1, numDocs))
	return workers
}

// Build reads every document in dir, normalizes it, and accumulates the
// result into an index.Builder. Document reads and normalization run on a
// bounded worker pool; all Builder mutation happens on a single reducer
// goroutine (the caller), preserving deterministic output ordering. A
// document that fails to read is logged and skipped rather than aborting
// the whole run. workers overrides the default pool size when positive.
func Build(dir string, builder *index.Builder, workers int, log zerolog.Logger) error {
	ids, err := ListDocIDs(dir)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	numWorkers := chooseWorkerCount(len(ids), workers)
	jobs := make(chan index.DocID)
	results := make(chan docResult, numWorkers)

	for i := 0; i < numWorkers; i++ {
		go worker(dir, jobs, results)
	}

	go func() {
		for _, id := range ids {
			jobs <- id
		}
		close(jobs)
	}()

	for range ids {
		res := <-results
		if res.err != nil {
			log.Warn().Err(res.err).Int("doc", int(res.doc)).Msg("skipping document")
			continue
		}
		builder.EnsureDoc(res.doc)
		for _, term := range res.terms {
			builder.AddTerm(res.doc, term)
		}
	}

	return nil
}

func worker(dir string, jobs <-chan index.DocID, results chan<- docResult) {
	for doc := range jobs {
		terms, err := loadDoc(dir, doc)
		results <- docResult{doc: doc, terms: terms, err: err}
	}
}

func loadDoc(dir string, doc index.DocID) ([]string, error) {
	path := filepath.Join(dir, strconv.Itoa(int(doc)))
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return normalize.Terms(string(content)), nil
}
