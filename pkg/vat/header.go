package vat

// The reserved first pixel of each buffer carries the vertex and frame
// counts split into half-float-safe biased channels: a count n in
// [0, 4096] is stored as MSH = n/2048 - 2048 and LSH = n%2048 - 2048, so
// every stored value stays within +-2048 where 16-bit floats are exact.
//
// The pixel layout is (vertexMSH, vertexLSH, frameLSH, 1). The frame
// count's MSH channel is intentionally not stored; the consuming shader
// expects exactly this three-value layout, so decoding recovers the frame
// count modulo 2048.

// EncodeHeader packs the vertex and frame counts into the header pixel.
func EncodeHeader(vertexCount, frameCount int) Pixel {
	return Pixel{
		float32(vertexCount/2048 - 2048),
		float32(vertexCount%2048 - 2048),
		float32(frameCount%2048 - 2048),
		1,
	}
}

// DecodeHeader recovers the counts from a header pixel. The frame count
// is recovered modulo 2048 (no MSH channel is stored for it).
func DecodeHeader(p Pixel) (vertexCount, frameCount int) {
	vertexCount = (int(p[0])+2048)*2048 + int(p[1]) + 2048
	frameCount = int(p[2]) + 2048
	return
}
