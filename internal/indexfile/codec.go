package indexfile

import (
	"bytes"
	"encoding/binary"
)

func putU32(buf *bytes.Buffer, v uint32) { _ = binary.Write(buf, binary.BigEndian, v) }
func putI32(buf *bytes.Buffer, v int32)  { _ = binary.Write(buf, binary.BigEndian, v) }
func putU64(buf *bytes.Buffer, v uint64) { _ = binary.Write(buf, binary.BigEndian, v) }
func putI16(buf *bytes.Buffer, v int16)  { _ = binary.Write(buf, binary.BigEndian, v) }

func getU32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }
func getI32(b []byte) int32  { return int32(binary.BigEndian.Uint32(b)) }
func getU64(b []byte) uint64 { return binary.BigEndian.Uint64(b) }
func getI16(b []byte) int16  { return int16(binary.BigEndian.Uint16(b)) }
