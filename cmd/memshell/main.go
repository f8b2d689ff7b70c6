// Command corpusidx-memshell crawls a directory of documents into an
// in-memory index and serves an interactive query shell against it.
//
// Usage:
//
//	corpusidx-memshell <docroot>
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/chloe-mi/Mini-Google/internal/crawler"
	"github.com/chloe-mi/Mini-Google/internal/shell"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: corpusidx-memshell <docroot>")
		os.Exit(2)
	}
	docroot := os.Args[1]

	mi, dt, stats, err := crawler.Crawl(docroot)
	if err != nil {
		log.Fatalf("memshell: crawl %s: %v", docroot, err)
	}
	log.Printf("memshell: indexed %d files, skipped %d", stats.FilesIndexed, stats.FilesSkipped)

	searcher := shell.MemSearcher{Index: mi, Docs: dt}
	if err := shell.Run(os.Stdin, os.Stdout, searcher); err != nil {
		log.Fatalf("memshell: %v", err)
	}
}
