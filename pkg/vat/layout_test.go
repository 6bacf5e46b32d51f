package vat

import (
	"errors"
	"testing"
)

func TestPlanLayoutLinear(t *testing.T) {
	layout, err := PlanLayout(100, 7, Config{Mode: ModeLinear})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if layout.Width != 100 || layout.Height != 7 {
		t.Errorf("expected 100x7, got %dx%d", layout.Width, layout.Height)
	}
}

func TestPlanLayoutZCurve(t *testing.T) {
	// 3 vertices x 2 frames + header = 7 pixels; indices 0..6 reach
	// x=3 (idx 5), y=1 (idx 2), rounded up to 32x32.
	layout, err := PlanLayout(3, 2, Config{Mode: ModeZCurve})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if layout.Width != 32 || layout.Height != 32 {
		t.Errorf("expected 32x32, got %dx%d", layout.Width, layout.Height)
	}
}

func TestPlanLayoutZCurveGranularity(t *testing.T) {
	layout, err := PlanLayout(3, 2, Config{Mode: ModeZCurve, Granularity: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// max x+1 = 4 rounds to 4, max y+1 = 2 rounds to 4.
	if layout.Width != 4 || layout.Height != 4 {
		t.Errorf("expected 4x4, got %dx%d", layout.Width, layout.Height)
	}
}

func TestPlanLayoutValidates(t *testing.T) {
	_, err := PlanLayout(MaxVertexCount+1, 1, Config{Mode: ModeLinear})
	if !errors.Is(err, ErrVertexLimit) {
		t.Errorf("expected ErrVertexLimit, got %v", err)
	}
}

func TestPlanLayoutCoversData(t *testing.T) {
	// For a spread of sizes, width*height must bound the pixel count.
	sizes := []struct{ v, f int }{
		{1, 1}, {3, 2}, {33, 4}, {1000, 30}, {4096, 100},
	}
	for _, s := range sizes {
		for _, mode := range []Mode{ModeLinear, ModeZCurve} {
			layout, err := PlanLayout(s.v, s.f, Config{Mode: mode})
			if err != nil {
				t.Fatalf("PlanLayout(%d,%d,%v): %v", s.v, s.f, mode, err)
			}
			need := s.v * s.f
			if mode == ModeZCurve {
				need++ // header pixel retained
			}
			if layout.Width*layout.Height < need {
				t.Errorf("%v %dx%d grid %dx%d cannot hold %d pixels",
					mode, s.v, s.f, layout.Width, layout.Height, need)
			}
		}
	}
}

func TestPackZCurveScattersAndZeroFills(t *testing.T) {
	linear := make([]Pixel, 7)
	for i := range linear {
		linear[i] = Pixel{float32(i), 0, 0, 1}
	}

	grid := packZCurve(linear, 32)
	if grid.Width != 32 || grid.Height != 32 {
		t.Fatalf("expected 32x32, got %dx%d", grid.Width, grid.Height)
	}

	// Every linear index lands on its Morton cell.
	for idx := range linear {
		x, y := MortonDecode(uint32(idx))
		got := grid.At(int(x), int(y))
		if got != linear[idx] {
			t.Errorf("index %d at (%d,%d): expected %v, got %v", idx, x, y, linear[idx], got)
		}
	}

	// Unaddressed cells stay zero.
	if grid.At(31, 31) != (Pixel{}) {
		t.Errorf("cell (31,31) should be zero, got %v", grid.At(31, 31))
	}
	if grid.At(4, 0) != (Pixel{}) { // idx 16 would map here, beyond our 7 pixels
		t.Errorf("cell (4,0) should be zero, got %v", grid.At(4, 0))
	}
}

func TestPackLinearDropsHeader(t *testing.T) {
	linear := []Pixel{
		{-2048, -2045, -2046, 1}, // header
		{1, 0, 0, 1}, {2, 0, 0, 1}, {3, 0, 0, 1},
		{4, 0, 0, 1}, {5, 0, 0, 1}, {6, 0, 0, 1},
	}

	grid := packLinear(linear, 3, 2)
	if grid.Width != 3 || grid.Height != 2 {
		t.Fatalf("expected 3x2, got %dx%d", grid.Width, grid.Height)
	}
	if grid.At(0, 0) != (Pixel{1, 0, 0, 1}) {
		t.Errorf("cell (0,0) should be the first data sample, got %v", grid.At(0, 0))
	}
	if grid.At(2, 1) != (Pixel{6, 0, 0, 1}) {
		t.Errorf("cell (2,1): got %v", grid.At(2, 1))
	}
}

func TestRoundUp(t *testing.T) {
	cases := []struct{ n, g, want int }{
		{1, 32, 32},
		{32, 32, 32},
		{33, 32, 64},
		{2, 4, 4},
		{64, 32, 64},
	}
	for _, tc := range cases {
		if got := roundUp(tc.n, tc.g); got != tc.want {
			t.Errorf("roundUp(%d,%d): expected %d, got %d", tc.n, tc.g, tc.want, got)
		}
	}
}
