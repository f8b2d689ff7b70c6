package indexfile

import (
	"fmt"
	"hash/crc32"
	"os"

	"github.com/chloe-mi/Mini-Google/hashtable"
)

// FileIndexReader opens an index file and validates its header. On
// success it can mint a DocTableReader and an IndexTableReader over the
// same open file handle.
type FileIndexReader struct {
	f   *os.File
	hdr header
}

// Open opens path as an index file. If validate is true, the CRC32 stored
// in the header is recomputed over the DocTable and MemIndex regions and
// compared; any mismatch, short read, or bad magic number is a fatal
// construction failure. Open never returns a reader over a file it isn't
// confident is intact.
func Open(path string, validate bool) (*FileIndexReader, error) {
	f, err := os.Open(path) // #nosec G304 -- path is supplied by the caller, not untrusted input
	if err != nil {
		return nil, fmt.Errorf("indexfile: open %s: %w", path, err)
	}

	buf := make([]byte, headerSize)
	if _, err := f.ReadAt(buf, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("indexfile: short read of header in %s: %w", path, err)
	}
	hdr := header{
		magic:         getU32(buf[0:4]),
		checksum:      getU32(buf[4:8]),
		docTableBytes: getU32(buf[8:12]),
		memIndexBytes: getU32(buf[12:16]),
	}
	if hdr.magic != magicNumber {
		f.Close()
		return nil, fmt.Errorf("indexfile: %s is not a valid index file (bad magic number)", path)
	}

	if validate {
		regions := make([]byte, hdr.docTableBytes+hdr.memIndexBytes)
		if _, err := f.ReadAt(regions, headerSize); err != nil {
			f.Close()
			return nil, fmt.Errorf("indexfile: short read validating %s: %w", path, err)
		}
		if crc32.ChecksumIEEE(regions) != hdr.checksum {
			f.Close()
			return nil, fmt.Errorf("indexfile: checksum mismatch in %s, file is corrupt", path)
		}
	}

	return &FileIndexReader{f: f, hdr: hdr}, nil
}

// Close releases the underlying file handle.
func (r *FileIndexReader) Close() error { return r.f.Close() }

// DocTableReader mints a reader positioned on the DocTable region.
func (r *FileIndexReader) DocTableReader() (*DocTableReader, error) {
	ht, err := newHashTableReader(r.f, headerSize)
	if err != nil {
		return nil, fmt.Errorf("indexfile: doc table: %w", err)
	}
	return &DocTableReader{ht: ht}, nil
}

// IndexTableReader mints a reader positioned on the MemIndex region.
func (r *FileIndexReader) IndexTableReader() (*IndexTableReader, error) {
	ht, err := newHashTableReader(r.f, headerSize+int64(r.hdr.docTableBytes))
	if err != nil {
		return nil, fmt.Errorf("indexfile: index table: %w", err)
	}
	return &IndexTableReader{ht: ht}, nil
}

// hashTableReader is a thin, content-agnostic view over one serialized
// HashTable region: the file, the table's base offset, and its bucket
// count. Every lookup is a seek+read pair that may fail on a short read or
// an offset past EOF; that failure is returned as an error (from a lookup,
// or from reader construction), never as partial data.
type hashTableReader struct {
	f          *os.File
	baseOffset int64
	numBuckets int32
}

// DocTableReader, IndexTableReader, and DocIDTableReader below all embed
// one of these.
func newHashTableReader(f *os.File, baseOffset int64) (*hashTableReader, error) {
	buf := make([]byte, 4)
	if _, err := f.ReadAt(buf, baseOffset); err != nil {
		return nil, fmt.Errorf("short read of BucketListHeader at offset %d: %w", baseOffset, err)
	}
	numBuckets := getI32(buf)
	if numBuckets <= 0 {
		return nil, fmt.Errorf("invalid num_buckets %d at offset %d", numBuckets, baseOffset)
	}
	return &hashTableReader{f: f, baseOffset: baseOffset, numBuckets: numBuckets}, nil
}

// bucketRecordForKey reads the BucketRecord for the bucket key hashes to.
func (h *hashTableReader) bucketRecordForKey(key uint64) (chainLen, bucketOffset int32, err error) {
	idx := int64(key % uint64(h.numBuckets))
	return h.bucketRecordAt(idx)
}

// bucketRecordAt reads the BucketRecord at bucket index idx directly, used
// by DocIDTableReader.GetDocIDList to walk every bucket without going
// through a key.
func (h *hashTableReader) bucketRecordAt(idx int64) (chainLen, bucketOffset int32, err error) {
	recOffset := h.baseOffset + 4 + idx*8
	buf := make([]byte, 8)
	if _, err := h.f.ReadAt(buf, recOffset); err != nil {
		return 0, 0, fmt.Errorf("short read of BucketRecord at offset %d: %w", recOffset, err)
	}
	return getI32(buf[0:4]), getI32(buf[4:8]), nil
}

// elementOffsets reads the chainLen ElementPositionRecords starting at
// bucketOffset.
func (h *hashTableReader) elementOffsets(bucketOffset int32, chainLen int32) ([]int32, error) {
	buf := make([]byte, int(chainLen)*4)
	if _, err := h.f.ReadAt(buf, int64(bucketOffset)); err != nil {
		return nil, fmt.Errorf("short read of ElementPositionRecords at offset %d: %w", bucketOffset, err)
	}
	offsets := make([]int32, chainLen)
	for i := range offsets {
		offsets[i] = getI32(buf[i*4 : i*4+4])
	}
	return offsets, nil
}

func (h *hashTableReader) readAt(off int64, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := h.f.ReadAt(buf, off); err != nil {
		return nil, fmt.Errorf("short read of %d bytes at offset %d: %w", n, off, err)
	}
	return buf, nil
}

// DocTableReader parses elements as (doc-id u64, name-length i16, name
// bytes); the table is keyed directly on the numeric doc-id.
type DocTableReader struct {
	ht *hashTableReader
}

// LookupDocID returns the name stored for id, if any.
func (d *DocTableReader) LookupDocID(id uint64) (string, bool, error) {
	chainLen, bucketOffset, err := d.ht.bucketRecordForKey(id)
	if err != nil {
		return "", false, err
	}
	if chainLen == 0 {
		return "", false, nil
	}
	offsets, err := d.ht.elementOffsets(bucketOffset, chainLen)
	if err != nil {
		return "", false, err
	}
	for _, off := range offsets {
		hdr, err := d.ht.readAt(int64(off), 10)
		if err != nil {
			return "", false, err
		}
		docID := getU64(hdr[0:8])
		if docID != id {
			continue
		}
		nameLen := getI16(hdr[8:10])
		name, err := d.ht.readAt(int64(off)+10, int(nameLen))
		if err != nil {
			return "", false, err
		}
		return string(name), true, nil
	}
	return "", false, nil
}

// IndexTableReader parses elements as (word-length i16, ht-length i32,
// word bytes, inner HashTable); the table is keyed on FNV1a64(word).
type IndexTableReader struct {
	ht *hashTableReader
}

// LookupWord returns a DocIDTableReader positioned on word's inner table,
// if word is present in this index.
func (it *IndexTableReader) LookupWord(word string) (*DocIDTableReader, bool, error) {
	key := hashtable.Hash64([]byte(word))
	chainLen, bucketOffset, err := it.ht.bucketRecordForKey(key)
	if err != nil {
		return nil, false, err
	}
	if chainLen == 0 {
		return nil, false, nil
	}
	offsets, err := it.ht.elementOffsets(bucketOffset, chainLen)
	if err != nil {
		return nil, false, err
	}
	for _, off := range offsets {
		hdr, err := it.ht.readAt(int64(off), 6)
		if err != nil {
			return nil, false, err
		}
		wordLen := getI16(hdr[0:2])
		wordBuf, err := it.ht.readAt(int64(off)+6, int(wordLen))
		if err != nil {
			return nil, false, err
		}
		if string(wordBuf) != word {
			continue
		}
		innerBase := int64(off) + 6 + int64(wordLen)
		innerHT, err := newHashTableReader(it.ht.f, innerBase)
		if err != nil {
			return nil, false, err
		}
		return &DocIDTableReader{ht: innerHT}, true, nil
	}
	return nil, false, nil
}

// DocIDTableReader parses elements as (doc-id u64, n-positions i32,
// position[i] i32 x n); the table is keyed directly on the numeric doc-id.
type DocIDTableReader struct {
	ht *hashTableReader
}

// LookupDocID returns the ordered positions list for id, if any.
func (d *DocIDTableReader) LookupDocID(id uint64) ([]uint32, bool, error) {
	chainLen, bucketOffset, err := d.ht.bucketRecordForKey(id)
	if err != nil {
		return nil, false, err
	}
	if chainLen == 0 {
		return nil, false, nil
	}
	offsets, err := d.ht.elementOffsets(bucketOffset, chainLen)
	if err != nil {
		return nil, false, err
	}
	for _, off := range offsets {
		hdr, err := d.ht.readAt(int64(off), 12)
		if err != nil {
			return nil, false, err
		}
		docID := getU64(hdr[0:8])
		if docID != id {
			continue
		}
		n := getI32(hdr[8:12])
		posBuf, err := d.ht.readAt(int64(off)+12, int(n)*4)
		if err != nil {
			return nil, false, err
		}
		positions := make([]uint32, n)
		for i := range positions {
			positions[i] = uint32(getI32(posBuf[i*4 : i*4+4]))
		}
		return positions, true, nil
	}
	return nil, false, nil
}

// DocRank is one (doc-id, occurrence-count) pair, the rank-only fast path
// that avoids reading every position.
type DocRank struct {
	DocID uint64
	Rank  uint64
}

// GetDocIDList returns one DocRank per element in the table, reading only
// each element's fixed-size header (doc-id, n-positions) and skipping the
// positions themselves. This is the fast path the multi-index query
// processor uses, since it only ever needs occurrence counts, not
// positions.
func (d *DocIDTableReader) GetDocIDList() ([]DocRank, error) {
	var out []DocRank
	for i := int64(0); i < int64(d.ht.numBuckets); i++ {
		chainLen, bucketOffset, err := d.ht.bucketRecordAt(i)
		if err != nil {
			return nil, err
		}
		if chainLen == 0 {
			continue
		}
		offsets, err := d.ht.elementOffsets(bucketOffset, chainLen)
		if err != nil {
			return nil, err
		}
		for _, off := range offsets {
			hdr, err := d.ht.readAt(int64(off), 12)
			if err != nil {
				return nil, err
			}
			out = append(out, DocRank{DocID: getU64(hdr[0:8]), Rank: uint64(getI32(hdr[8:12]))})
		}
	}
	return out, nil
}
