// Package buf contains little-endian slot helpers for records laid out in raw
// byte slabs, plus overflow-checked size arithmetic.
package buf

import "encoding/binary"

// U32At reads a little-endian uint32 at b[off:]. Returns 0 when out of bounds.
func U32At(b []byte, off int) uint32 {
	if off < 0 || off+4 > len(b) {
		return 0
	}
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// U64At reads a little-endian uint64 at b[off:]. Returns 0 when out of bounds.
func U64At(b []byte, off int) uint64 {
	if off < 0 || off+8 > len(b) {
		return 0
	}
	return binary.LittleEndian.Uint64(b[off : off+8])
}

// PutU32At writes v as little-endian at b[off:]. Panics when out of bounds,
// like any other slice store.
func PutU32At(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// PutU64At writes v as little-endian at b[off:].
func PutU64At(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}
