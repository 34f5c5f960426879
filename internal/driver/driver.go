// Package driver pumps query lines from an input file through either the
// boolean planner or the ranked scorer and writes one result line per
// query.
package driver

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/billstark/retriever/internal/boolquery"
	"github.com/billstark/retriever/internal/index"
	"github.com/billstark/retriever/internal/rank"
	"github.com/rs/zerolog"
)

// Mode selects which front-end answers each query line.
type Mode int

const (
	ModeBoolean Mode = iota
	ModeRanked
)

// Run reads one query per line from r, dispatches each to the boolean
// planner or the ranked scorer, and writes one newline-terminated result
// line per query to w, in order — even when the result is empty. Trailing
// whitespace on a query line is trimmed; a blank line produces a blank
// result line.
func Run(r io.Reader, w io.Writer, reader *index.Reader, mode Mode, k int, log zerolog.Logger) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	bw := bufio.NewWriter(w)
	defer bw.Flush()

	start := time.Now()
	n := 0
	for scanner.Scan() {
		n++
		line := strings.TrimRight(scanner.Text(), " \t\r\n")
		if _, err := bw.WriteString(answer(line, reader, mode, k, log) + "\n"); err != nil {
			return fmt.Errorf("writing result line: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading queries: %w", err)
	}

	log.Info().Int("queries", n).Dur("elapsed", time.Since(start)).Msg("batch complete")
	return bw.Flush()
}

func answer(line string, reader *index.Reader, mode Mode, k int, log zerolog.Logger) string {
	if strings.TrimSpace(line) == "" {
		return ""
	}

	switch mode {
	case ModeBoolean:
		docs, err := boolquery.Eval(line, reader)
		if err != nil {
			log.Warn().Err(err).Str("query", line).Msg("boolean query parse error")
			return ""
		}
		return joinDocIDs(docs)
	case ModeRanked:
		docs := rank.Search(line, reader, k)
		return joinDocIDs(docs)
	default:
		return ""
	}
}

func joinDocIDs(docs index.DocIDs) string {
	parts := make([]string, len(docs))
	for i, d := range docs {
		parts[i] = fmt.Sprintf("%d", d)
	}
	return strings.Join(parts, " ")
}
