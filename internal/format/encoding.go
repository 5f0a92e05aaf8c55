package format

import "encoding/binary"

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU32 reads a uint32 value from the buffer at the specified offset in little-endian format.
func ReadU32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// EncodeDWORD returns the REG_DWORD payload for v.
func EncodeDWORD(v uint32) []byte {
	b := make([]byte, DWORDSize)
	PutU32(b, 0, v)
	return b
}

// EncodeQWORD returns the REG_QWORD payload for v.
func EncodeQWORD(v uint64) []byte {
	b := make([]byte, QWORDSize)
	PutU64(b, 0, v)
	return b
}
