package indexfile

import (
	"bytes"
	"fmt"
	"hash/crc32"
	"os"

	"github.com/chloe-mi/Mini-Google/doctable"
	"github.com/chloe-mi/Mini-Google/hashtable"
	"github.com/chloe-mi/Mini-Google/memindex"
)

// Write serializes dt and mi into a fresh index file at path: header,
// DocTable region, MemIndex region, with the magic number written only
// after everything else, including the CRC, is in place. On any I/O
// failure the partially written file is closed and unlinked; Write never
// leaves a corrupt file behind.
func Write(path string, mi *memindex.MemIndex, dt *doctable.Table) error {
	f, err := os.Create(path) // #nosec G304 -- path is supplied by the caller, not untrusted input
	if err != nil {
		return fmt.Errorf("indexfile: create %s: %w", path, err)
	}

	if err := writeInto(f, mi, dt); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return nil
}

func writeInto(f *os.File, mi *memindex.MemIndex, dt *doctable.Table) error {
	docTableBytes := serializeTable(headerSize, dt.IDToNameTable(), encodeDocEntry)
	memIndexBytes := serializeTable(headerSize+int64(len(docTableBytes)), mi.Table(), encodeWordEntry)

	if _, err := f.WriteAt(docTableBytes, headerSize); err != nil {
		return fmt.Errorf("indexfile: write doc table: %w", err)
	}
	memIndexOffset := headerSize + int64(len(docTableBytes))
	if _, err := f.WriteAt(memIndexBytes, memIndexOffset); err != nil {
		return fmt.Errorf("indexfile: write mem index: %w", err)
	}

	checksum := crc32.ChecksumIEEE(append(append([]byte{}, docTableBytes...), memIndexBytes...))

	var hdr bytes.Buffer
	putU32(&hdr, checksum)
	putU32(&hdr, uint32(len(docTableBytes)))
	putU32(&hdr, uint32(len(memIndexBytes)))
	if _, err := f.WriteAt(hdr.Bytes(), 4); err != nil {
		return fmt.Errorf("indexfile: write header: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("indexfile: fsync: %w", err)
	}

	var magic bytes.Buffer
	putU32(&magic, magicNumber)
	if _, err := f.WriteAt(magic.Bytes(), 0); err != nil {
		return fmt.Errorf("indexfile: write magic number: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("indexfile: fsync: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("indexfile: close: %w", err)
	}
	return nil
}

// serializeTable renders the hash table t into the byte-exact on-disk
// layout: a BucketListHeader, an array of BucketRecords (one per bucket,
// including empty ones), then the non-empty buckets' element-position
// records and elements, in bucket order. baseOffset is the absolute file
// offset at which the returned bytes will be written, so every bucket
// and element pointer inside the blob is already an absolute file offset.
//
// encode renders one element's bytes given its key, its value, and the
// absolute offset at which it will be written. A content-specific encoder
// needs that offset to recursively serialize any nested table (the
// MemIndex's per-word DocIDTable) at the correct absolute offset.
func serializeTable[V any](baseOffset int64, t *hashtable.Table[V], encode func(key uint64, value V, offset int64) []byte) []byte {
	numBuckets := t.NumBuckets()
	bucketRecordsOffset := baseOffset + 4
	cursor := bucketRecordsOffset + int64(numBuckets)*8

	type bucket struct {
		chainLen     int32
		bucketOffset int32
		elemOffsets  []int32
		elemBytes    [][]byte
	}
	buckets := make([]bucket, numBuckets)

	for i := 0; i < numBuckets; i++ {
		chain := t.Bucket(i)
		b := bucket{chainLen: int32(len(chain)), bucketOffset: int32(cursor)}
		if len(chain) > 0 {
			elemCursor := cursor + int64(len(chain))*4
			b.elemOffsets = make([]int32, len(chain))
			b.elemBytes = make([][]byte, len(chain))
			for j, kv := range chain {
				b.elemOffsets[j] = int32(elemCursor)
				enc := encode(kv.Key, kv.Value, elemCursor)
				b.elemBytes[j] = enc
				elemCursor += int64(len(enc))
			}
			cursor = elemCursor
		}
		buckets[i] = b
	}

	var buf bytes.Buffer
	putI32(&buf, int32(numBuckets))
	for _, b := range buckets {
		putI32(&buf, b.chainLen)
		putI32(&buf, b.bucketOffset)
	}
	for _, b := range buckets {
		for _, off := range b.elemOffsets {
			putI32(&buf, off)
		}
		for _, e := range b.elemBytes {
			buf.Write(e)
		}
	}
	return buf.Bytes()
}

// encodeDocEntry writes one DocTable element: (doc-id, name-length, name).
func encodeDocEntry(docID uint64, name string, _ int64) []byte {
	var buf bytes.Buffer
	putU64(&buf, docID)
	putI16(&buf, int16(len(name)))
	buf.WriteString(name)
	return buf.Bytes()
}

// encodeWordEntry writes one MemIndex outer element: (word-length,
// ht-length, word, inner DocIDTable). offset is this element's absolute
// file offset; the inner table begins immediately after the fixed prefix
// and the word bytes.
func encodeWordEntry(_ uint64, wp *memindex.WordEntry, offset int64) []byte {
	word := []byte(wp.Word)
	innerOffset := offset + 2 + 4 + int64(len(word))
	inner := serializeTable(innerOffset, wp.Postings, encodeDocIDEntry)

	var buf bytes.Buffer
	putI16(&buf, int16(len(word)))
	putI32(&buf, int32(len(inner)))
	buf.Write(word)
	buf.Write(inner)
	return buf.Bytes()
}

// encodeDocIDEntry writes one inner DocIDTable element: (doc-id,
// n-positions, position[i] x n).
func encodeDocIDEntry(docID uint64, positions []uint32, _ int64) []byte {
	var buf bytes.Buffer
	putU64(&buf, docID)
	putI32(&buf, int32(len(positions)))
	for _, p := range positions {
		putI32(&buf, int32(p))
	}
	return buf.Bytes()
}
