// Command corpusidx-buildindex crawls a directory of documents and writes
// a single binary index file.
//
// Usage:
//
//	corpusidx-buildindex <docroot> <outfile>
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/chloe-mi/Mini-Google/internal/crawler"
	"github.com/chloe-mi/Mini-Google/internal/indexfile"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: corpusidx-buildindex <docroot> <outfile>")
		os.Exit(2)
	}
	docroot, outfile := os.Args[1], os.Args[2]

	mi, dt, stats, err := crawler.Crawl(docroot)
	if err != nil {
		log.Fatalf("buildindex: crawl %s: %v", docroot, err)
	}
	log.Printf("buildindex: indexed %d files, skipped %d", stats.FilesIndexed, stats.FilesSkipped)

	if err := indexfile.Write(outfile, mi, dt); err != nil {
		log.Fatalf("buildindex: write %s: %v", outfile, err)
	}
	log.Printf("buildindex: wrote %s (%d docs, %d words)", outfile, dt.NumDocs(), mi.NumWords())
}
