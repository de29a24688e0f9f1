package id3

// Syncsafe integers store 7 bits per byte, keeping every MSB clear so
// that size fields can never be mistaken for an MPEG frame sync.

// DecodeSyncsafe decodes a 4-byte syncsafe integer. Only the low 7
// bits of each byte contribute to the result.
func DecodeSyncsafe(b [4]byte) uint32 {
	return uint32(b[0]&0x7F)<<21 |
		uint32(b[1]&0x7F)<<14 |
		uint32(b[2]&0x7F)<<7 |
		uint32(b[3]&0x7F)
}

// EncodeSyncsafe encodes v as a 4-byte syncsafe integer. Values above
// 2^28-1 do not fit; their high bits are silently dropped.
func EncodeSyncsafe(v uint32) [4]byte {
	return [4]byte{
		byte(v >> 21 & 0x7F),
		byte(v >> 14 & 0x7F),
		byte(v >> 7 & 0x7F),
		byte(v & 0x7F),
	}
}

// IsValidSyncsafe reports whether every byte has its MSB clear, as a
// well-formed syncsafe integer must.
func IsValidSyncsafe(b [4]byte) bool {
	return b[0]&0x80 == 0 && b[1]&0x80 == 0 && b[2]&0x80 == 0 && b[3]&0x80 == 0
}

// DecodeBE32 decodes a plain big-endian 32-bit integer, the size
// field convention of pre-2.4 tags.
func DecodeBE32(b [4]byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// EncodeBE32 is the inverse of DecodeBE32.
func EncodeBE32(v uint32) [4]byte {
	return [4]byte{
		byte(v >> 24),
		byte(v >> 16),
		byte(v >> 8),
		byte(v),
	}
}

// checkBit reports whether bit i (0 = least significant) of b is set.
func checkBit(b byte, i uint) bool {
	return b>>i&1 == 1
}
