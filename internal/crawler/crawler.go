// Package crawler walks a directory of ASCII text files and builds a
// MemIndex and DocTable from them, turning a directory tree of files into
// the in-memory index those files can be searched through.
package crawler

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/chloe-mi/Mini-Google/doctable"
	"github.com/chloe-mi/Mini-Google/internal/apperrors"
	"github.com/chloe-mi/Mini-Google/internal/tokenizer"
	"github.com/chloe-mi/Mini-Google/memindex"
)

// Stats summarizes one crawl, for the building commands to report.
type Stats struct {
	FilesIndexed int
	FilesSkipped int
}

// Crawl walks root recursively (symlinks are not followed; WalkDir never
// descends into them) and indexes every regular file the tokenizer
// accepts. Files rejected by the tokenizer (non-ASCII, or zero tokens) and
// files that can't be read are logged and skipped; neither is fatal to the
// crawl.
func Crawl(root string) (*memindex.MemIndex, *doctable.Table, Stats, error) {
	mi := memindex.New()
	dt := doctable.New()
	var stats Stats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Printf("crawler: skipping %s: %v", path, err)
			stats.FilesSkipped++
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			stats.FilesSkipped++
			return nil
		}

		content, err := os.ReadFile(path) // #nosec G304 -- path comes from walking a caller-supplied root, not untrusted input
		if err != nil {
			log.Printf("crawler: skipping %s: read failed: %v", path, err)
			stats.FilesSkipped++
			return nil
		}

		tokens, err := tokenizer.Tokenize(content)
		if err != nil {
			log.Printf("crawler: skipping %s: %v", path, err)
			stats.FilesSkipped++
			return nil
		}
		if len(tokens) == 0 {
			log.Printf("crawler: skipping %s: %v", path, apperrors.ErrNotIndexable)
			stats.FilesSkipped++
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		docID := dt.Add(rel)
		for word, positions := range tokenizer.Positions(tokens) {
			mi.AddPostingList(word, docID, positions)
		}
		stats.FilesIndexed++
		return nil
	})
	if err != nil {
		return nil, nil, stats, err
	}
	return mi, dt, stats, nil
}
