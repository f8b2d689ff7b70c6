// Command corpusidx-idxshell opens one or more on-disk index files and
// serves an interactive query shell against their union, resolving
// document identity by name across files.
//
// Usage:
//
//	corpusidx-idxshell <idx1> [idx2 ...]
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/chloe-mi/Mini-Google/internal/shell"
	"github.com/chloe-mi/Mini-Google/query"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: corpusidx-idxshell <idx1> [idx2 ...]")
		os.Exit(2)
	}
	paths := os.Args[1:]

	processor, err := query.New(paths, true)
	if err != nil {
		log.Fatalf("idxshell: %v", err)
	}

	searcher := shell.IndexSearcher{Processor: processor}
	if err := shell.Run(os.Stdin, os.Stdout, searcher); err != nil {
		log.Fatalf("idxshell: %v", err)
	}
}
