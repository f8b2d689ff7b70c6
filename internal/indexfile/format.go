// Package indexfile implements the on-disk index-file binary format: a
// CRC-checked header followed by the DocTable and the MemIndex, each
// serialized as a nested chained hash table, all integers in network byte
// order. See writer.go for the serializer and reader.go for the four
// read-only views over an open file.
package indexfile

// magicNumber is written only after the DocTable and MemIndex regions and
// the checksum are in place, so a file that crashed mid-write never has a
// valid magic number.
const magicNumber uint32 = 0xC0FFEE33

// headerSize is the fixed size, in bytes, of IndexFileHeader: four uint32
// fields (magic, checksum, doctable_bytes, memindex_bytes).
const headerSize = 16

// header mirrors IndexFileHeader from the format diagram.
type header struct {
	magic         uint32
	checksum      uint32
	docTableBytes uint32
	memIndexBytes uint32
}
