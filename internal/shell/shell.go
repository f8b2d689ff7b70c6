// Package shell implements the line-at-a-time interactive query loop
// shared by the in-memory shell and the on-disk multi-index shell: read a
// query, lowercase and split it into words, search, print ranked results,
// repeat until EOF.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/chloe-mi/Mini-Google/doctable"
	"github.com/chloe-mi/Mini-Google/internal/apperrors"
	"github.com/chloe-mi/Mini-Google/memindex"
	"github.com/chloe-mi/Mini-Google/query"
)

// Hit is one ranked result line.
type Hit struct {
	Name string
	Rank uint64
}

// Searcher answers a single conjunctive query.
type Searcher interface {
	Search(words []string) ([]Hit, error)
}

// Run reads one query per line from in until EOF, printing ranked results
// to out. An empty line (or a line of only whitespace) is a bad argument
// at the shell level: it is reported and re-prompted, not treated as a
// core invariant violation.
func Run(in io.Reader, out io.Writer, s Searcher) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, "query? ")
	for scanner.Scan() {
		line := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if line == "" {
			fmt.Fprintln(out, apperrors.ErrEmptyQuery)
			fmt.Fprint(out, "query? ")
			continue
		}

		hits, err := s.Search(strings.Fields(line))
		if err != nil {
			fmt.Fprintf(out, "search failed: %v\n", err)
			fmt.Fprint(out, "query? ")
			continue
		}
		if len(hits) == 0 {
			fmt.Fprintln(out, apperrors.ErrNoResults)
		}
		for _, h := range hits {
			fmt.Fprintf(out, "  %s  (%d)\n", h.Name, h.Rank)
		}
		fmt.Fprint(out, "query? ")
	}
	return scanner.Err()
}

// MemSearcher answers queries against a MemIndex + DocTable built directly
// by the crawler, resolving each ranked doc-id to its name before
// returning.
type MemSearcher struct {
	Index *memindex.MemIndex
	Docs  *doctable.Table
}

// Search implements Searcher, ranking descending to match the on-disk
// shell's output order. memindex.Search itself sorts ascending.
func (m MemSearcher) Search(words []string) ([]Hit, error) {
	results := memindex.Search(m.Index, words)
	hits := make([]Hit, len(results))
	for i, r := range results {
		name, _ := m.Docs.GetDocName(r.DocID)
		hits[len(results)-1-i] = Hit{Name: name, Rank: r.Rank}
	}
	return hits, nil
}

// IndexSearcher answers queries against a multi-index query.Processor.
type IndexSearcher struct {
	Processor *query.Processor
}

// Search implements Searcher.
func (s IndexSearcher) Search(words []string) ([]Hit, error) {
	results, err := s.Processor.ProcessQuery(words)
	if err != nil {
		return nil, err
	}
	hits := make([]Hit, len(results))
	for i, r := range results {
		hits[i] = Hit{Name: r.Name, Rank: r.Rank}
	}
	return hits, nil
}
