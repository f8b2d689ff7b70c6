// Package query implements the multi-index query processor: it intersects
// posting lists across several on-disk index files and produces a single
// result list ranked by summed occurrence count.
//
// Document identity across index files is by name, not by doc-id: two
// index files may have assigned the same document different numeric ids,
// so every step below resolves doc-id -> name before comparing or
// accumulating across files.
package query

import (
	"fmt"
	"sort"

	"github.com/chloe-mi/Mini-Google/internal/apperrors"
	"github.com/chloe-mi/Mini-Google/internal/indexfile"
)

// Result is one ranked hit: a document name and its summed occurrence
// count across every index file that contains it.
type Result struct {
	Name string
	Rank uint64
}

type perFileReaders struct {
	file *indexfile.FileIndexReader
	doc  *indexfile.DocTableReader
	idx  *indexfile.IndexTableReader
}

// Processor answers conjunctive queries against an ordered list of index
// files. Per the concurrency model, each call to ProcessQuery opens its own
// reader handles and never shares file-handle state across queries; the
// Processor itself only remembers the validated list of paths.
type Processor struct {
	paths    []string
	validate bool
}

// New opens each path as an index file to validate it is well-formed,
// closes them again, and returns a Processor that will reopen them fresh
// for every query. Construction fails loud on the first unreadable or
// corrupt index file.
func New(paths []string, validate bool) (*Processor, error) {
	if len(paths) == 0 {
		panic(apperrors.NewBadArgumentError("query: New called with no index paths"))
	}
	for _, p := range paths {
		r, err := indexfile.Open(p, validate)
		if err != nil {
			return nil, fmt.Errorf("query: %w", err)
		}
		r.Close()
	}
	return &Processor{paths: append([]string{}, paths...), validate: validate}, nil
}

// ProcessQuery answers a non-empty, lowercased, conjunctive query. It
// returns the documents present in every query word's posting list in at
// least one index file each, ranked descending by the sum of their
// occurrence counts across all files, ties broken by name for a stable
// order.
func (p *Processor) ProcessQuery(query []string) ([]Result, error) {
	if len(query) == 0 {
		panic("query: ProcessQuery called with an empty query")
	}

	readers, err := p.openAll()
	if err != nil {
		return nil, err
	}
	defer closeAll(readers)

	ranks := map[string]uint64{}
	for _, rf := range readers {
		docs, err := lookupWord(rf, query[0])
		if err != nil {
			return nil, err
		}
		for name, rank := range docs {
			ranks[name] += rank
		}
	}
	if len(ranks) == 0 {
		return nil, nil
	}

	for _, word := range query[1:] {
		survivors := map[string]struct{}{}
		additions := map[string]uint64{}
		for _, rf := range readers {
			docs, err := lookupWord(rf, word)
			if err != nil {
				return nil, err
			}
			for name, rank := range docs {
				if _, ok := ranks[name]; !ok {
					continue
				}
				additions[name] += rank
				survivors[name] = struct{}{}
			}
		}
		if len(survivors) == 0 {
			return nil, nil
		}
		for name := range ranks {
			if _, ok := survivors[name]; !ok {
				delete(ranks, name)
				continue
			}
			ranks[name] += additions[name]
		}
	}

	results := make([]Result, 0, len(ranks))
	for name, rank := range ranks {
		results = append(results, Result{Name: name, Rank: rank})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Rank != results[j].Rank {
			return results[i].Rank > results[j].Rank
		}
		return results[i].Name < results[j].Name
	})
	return results, nil
}

// lookupWord resolves word's posting list in one index file to a map of
// document name -> occurrence count, via the rank-only fast path.
func lookupWord(rf *perFileReaders, word string) (map[string]uint64, error) {
	docIDTable, ok, err := rf.idx.LookupWord(word)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	list, err := docIDTable.GetDocIDList()
	if err != nil {
		return nil, err
	}
	out := make(map[string]uint64, len(list))
	for _, dr := range list {
		name, ok, err := rf.doc.LookupDocID(dr.DocID)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		out[name] = dr.Rank
	}
	return out, nil
}

func (p *Processor) openAll() ([]*perFileReaders, error) {
	readers := make([]*perFileReaders, 0, len(p.paths))
	for _, path := range p.paths {
		f, err := indexfile.Open(path, p.validate)
		if err != nil {
			closeAll(readers)
			return nil, fmt.Errorf("query: %w", err)
		}
		doc, err := f.DocTableReader()
		if err != nil {
			f.Close()
			closeAll(readers)
			return nil, fmt.Errorf("query: %w", err)
		}
		idx, err := f.IndexTableReader()
		if err != nil {
			f.Close()
			closeAll(readers)
			return nil, fmt.Errorf("query: %w", err)
		}
		readers = append(readers, &perFileReaders{file: f, doc: doc, idx: idx})
	}
	return readers, nil
}

func closeAll(readers []*perFileReaders) {
	for _, rf := range readers {
		rf.file.Close()
	}
}
