package vat

import "testing"

func TestEncodeHeaderLayout(t *testing.T) {
	// vertex_count=3, frame_count=2 from the reference encoding:
	// MSH(3) = -2048, LSH(3) = -2045, LSH(2) = -2046, alpha = 1.
	p := EncodeHeader(3, 2)

	want := Pixel{-2048, -2045, -2046, 1}
	if p != want {
		t.Errorf("expected %v, got %v", want, p)
	}
}

func TestHeaderRoundTrip(t *testing.T) {
	cases := []struct {
		vertices, frames int
	}{
		{0, 0},
		{1, 1},
		{3, 2},
		{2047, 2047},
		{2048, 1},
		{4095, 100},
		{4096, 7},
		{100000, 2000},
		{MaxVertexCount, 1},
	}

	for _, tc := range cases {
		v, f := DecodeHeader(EncodeHeader(tc.vertices, tc.frames))
		if v != tc.vertices {
			t.Errorf("vertex count %d: decoded %d", tc.vertices, v)
		}
		if f != tc.frames {
			t.Errorf("frame count %d: decoded %d", tc.frames, f)
		}
	}
}

func TestHeaderFrameCountModulo(t *testing.T) {
	// No MSH channel is stored for the frame count, so values at or above
	// 2048 wrap. This is the fixed on-texture layout, not a bug.
	_, f := DecodeHeader(EncodeHeader(10, 2048))
	if f != 0 {
		t.Errorf("frame count 2048 should decode to 0, got %d", f)
	}
	_, f = DecodeHeader(EncodeHeader(10, 3000))
	if f != 952 {
		t.Errorf("frame count 3000 should decode to 952, got %d", f)
	}
}

func TestHeaderLSHChannelRange(t *testing.T) {
	// LSH channels are always biased into [-2048, -1].
	for _, n := range []int{0, 1, 2047, 2048, 4096, MaxVertexCount} {
		p := EncodeHeader(n, n%(MaxFrameCount+1))
		if p[1] < -2048 || p[1] > -1 {
			t.Errorf("EncodeHeader(%d): vertex LSH out of range: %v", n, p[1])
		}
		if p[2] < -2048 || p[2] > -1 {
			t.Errorf("EncodeHeader(%d): frame LSH out of range: %v", n, p[2])
		}
	}
}
