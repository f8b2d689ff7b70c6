// Command corpusidx-httpd serves a static site plus a JSON query API
// backed by one or more on-disk index files.
//
// Usage:
//
//	corpusidx-httpd <port> <staticdir> <idx1> [idx2 ...]
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/chloe-mi/Mini-Google/internal/server"
	"github.com/chloe-mi/Mini-Google/query"
)

func main() {
	const usage = "usage: corpusidx-httpd <port> <staticdir> <idx1> [idx2 ...]"
	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	port, err := server.ValidatePort(os.Args[1])
	if err != nil {
		log.Fatalf("httpd: %v\n%s", err, usage)
	}

	staticDir := os.Args[2]
	info, err := os.Stat(staticDir)
	if err != nil || !info.IsDir() {
		log.Fatalf("httpd: static dir %s is not a readable directory\n%s", staticDir, usage)
	}

	paths := os.Args[3:]
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.Mode().IsRegular() {
			log.Fatalf("httpd: index file %s is not a readable regular file\n%s", p, usage)
		}
	}

	processor, err := query.New(paths, true)
	if err != nil {
		log.Fatalf("httpd: %v", err)
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		ReadHeaderTimeout: 5 * time.Second,
	}
	srv := server.New(processor, staticDir, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx, httpServer); err != nil {
			log.Printf("httpd: graceful shutdown failed: %v", err)
		}
	})
	httpServer.Handler = srv.Handler()

	log.Printf("httpd: listening on :%d, serving %s, %d index file(s)", port, staticDir, len(paths))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("httpd: %v", err)
	}
}
