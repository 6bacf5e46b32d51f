package vat

// mortonCompact gathers the even-position bits of code into the low half.
func mortonCompact(code uint32) uint32 {
	code &= 0x55555555
	code = (code | (code >> 1)) & 0x33333333
	code = (code | (code >> 2)) & 0x0F0F0F0F
	code = (code | (code >> 4)) & 0x00FF00FF
	code = (code | (code >> 8)) & 0x0000FFFF
	return code
}

// MortonDecode maps a linear pixel index, treated as an interleaved-bit
// Z-order code, to its 2D texture cell. Even bits form x, odd bits form y.
func MortonDecode(idx uint32) (x, y uint32) {
	return mortonCompact(idx), mortonCompact(idx >> 1)
}
