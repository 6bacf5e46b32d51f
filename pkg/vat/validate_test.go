package vat

import (
	"errors"
	"testing"
)

func TestValidateAccepts(t *testing.T) {
	cases := []struct {
		vertices, frames int
	}{
		{1, 1},
		{3, 2},
		{MaxVertexCount, 1},
		{100, MaxFrameCount},
		{16383, 4096}, // 16383*4096+1 pixels, just under the 8k budget
	}

	for _, tc := range cases {
		if err := Validate(tc.vertices, tc.frames); err != nil {
			t.Errorf("Validate(%d, %d): unexpected error %v", tc.vertices, tc.frames, err)
		}
	}
}

func TestValidateVertexLimit(t *testing.T) {
	err := Validate(MaxVertexCount+1, 1)
	if !errors.Is(err, ErrVertexLimit) {
		t.Errorf("expected ErrVertexLimit, got %v", err)
	}
}

func TestValidateFrameLimit(t *testing.T) {
	err := Validate(100, MaxFrameCount+1)
	if !errors.Is(err, ErrFrameLimit) {
		t.Errorf("expected ErrFrameLimit, got %v", err)
	}
}

func TestValidatePixelBudget(t *testing.T) {
	// 16384*4096 = 8192*8192, so the +1 header pixel breaks the budget
	// while the vertex and frame caps individually pass.
	err := Validate(16384, 4096)
	if !errors.Is(err, ErrPixelBudget) {
		t.Errorf("expected ErrPixelBudget, got %v", err)
	}
}

func TestCheckShapeCornerVertexMismatch(t *testing.T) {
	topo := Topology{
		VertexCount: 2,
		Corners:     make([]Corner, 3), // not fully split
	}

	err := checkShape(topo, []Frame{{}})
	if !errors.Is(err, ErrCornerVertexMismatch) {
		t.Errorf("expected ErrCornerVertexMismatch, got %v", err)
	}
	if !errors.Is(err, ErrPrecondition) {
		t.Errorf("mismatch should also match ErrPrecondition, got %v", err)
	}
}
