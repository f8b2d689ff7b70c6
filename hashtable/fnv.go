package hashtable

// Hash64 computes the FNV-1a-64 hash of key, the function used throughout
// this module both for selecting buckets inside a Table and as the logical
// key for names and words stored in the doc table and the inverted index.
func Hash64(key []byte) uint64 {
	const (
		offset64 uint64 = 0xCBF29CE484222325
		prime64  uint64 = 0x100000001B3
	)

	h := offset64
	for _, b := range key {
		h ^= uint64(b)
		h *= prime64
	}
	return h
}
