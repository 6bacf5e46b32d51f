package formats

import "math"

// IEEE 754 half-precision conversion, the pixel type of the EXR outputs.

// floatToHalf converts a float32 to its 16-bit half representation.
// Values beyond half range saturate to infinity; NaN is preserved.
func floatToHalf(f float32) uint16 {
	bits := math.Float32bits(f)
	sign := uint16((bits >> 16) & 0x8000)
	exp := int32((bits>>23)&0xFF) - 127 + 15
	mant := bits & 0x7FFFFF

	switch {
	case (bits>>23)&0xFF == 0xFF:
		if mant != 0 {
			return sign | 0x7E00 // NaN
		}
		return sign | 0x7C00 // Inf
	case exp >= 31:
		return sign | 0x7C00 // overflow
	case exp <= 0:
		if exp < -10 {
			return sign // underflow to signed zero
		}
		mant |= 0x800000
		return sign | uint16(mant>>uint32(14-exp))
	default:
		return sign | uint16(exp)<<10 | uint16(mant>>13)
	}
}

// halfToFloat converts a 16-bit half back to float32.
func halfToFloat(h uint16) float32 {
	sign := uint32(h>>15) & 1
	exp := uint32(h>>10) & 0x1F
	mant := uint32(h & 0x3FF)

	var bits uint32
	switch {
	case exp == 0:
		if mant == 0 {
			bits = sign << 31
		} else {
			e := uint32(113)
			for mant&0x400 == 0 {
				mant <<= 1
				e--
			}
			bits = sign<<31 | e<<23 | (mant&0x3FF)<<13
		}
	case exp == 31:
		bits = sign<<31 | 0xFF<<23 | mant<<13
	default:
		bits = sign<<31 | (exp+112)<<23 | mant<<13
	}
	return math.Float32frombits(bits)
}
