package memindex

import "github.com/chloe-mi/Mini-Google/hashtable"

// WordEntry is one word's entry in the index: the word itself (kept
// alongside its hash so lookups can reject bucket collisions) and the set
// of documents it occurs in, each with its ordered positions list. It is
// exported so the index-file writer can walk the raw table structure
// directly.
type WordEntry struct {
	Word     string
	Postings *hashtable.Table[[]uint32]
}

// Result is one ranked hit from a single-index Search: a document and the
// summed occurrence count of the query's words within it.
type Result struct {
	DocID uint64
	Rank  uint64
}
