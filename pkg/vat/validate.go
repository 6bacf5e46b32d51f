package vat

import (
	"errors"
	"fmt"
)

// Capacity and contract errors. Capacity checks run before any buffer is
// allocated; precondition violations indicate malformed caller input and
// are never recovered from.
var (
	ErrVertexLimit  = errors.New("vertex count exceeds limit")
	ErrFrameLimit   = errors.New("frame count exceeds limit")
	ErrPixelBudget  = errors.New("pixel budget exceeds 8k texture limit")
	ErrPrecondition = errors.New("input contract violated")

	// ErrCornerVertexMismatch reports a mesh that was not fully split
	// before encoding: the rotation buffer is slotted by vertex index,
	// which is only sound when corner count equals vertex count.
	ErrCornerVertexMismatch = fmt.Errorf("%w: corner count does not match vertex count", ErrPrecondition)
)

// Validate checks the capacity limits for an encode of the given size.
// It is pure and allocates nothing, so it can gate a pipeline before any
// per-frame work is done.
func Validate(vertexCount, frameCount int) error {
	if vertexCount > MaxVertexCount {
		return fmt.Errorf("%w: %d > %d", ErrVertexLimit, vertexCount, MaxVertexCount)
	}
	if frameCount > MaxFrameCount {
		return fmt.Errorf("%w: %d > %d", ErrFrameLimit, frameCount, MaxFrameCount)
	}
	if required := frameCount*vertexCount + 1; required > MaxPixels {
		return fmt.Errorf("%w: header+%d*%d requires %d pixels, limit %d",
			ErrPixelBudget, frameCount, vertexCount, required, MaxPixels)
	}
	return nil
}

// checkShape verifies the topology/snapshot contract: positive vertex
// count, a non-empty frame sequence, corner/vertex parity and per-frame
// array lengths that line up with the topology.
func checkShape(topo Topology, frames []Frame) error {
	if topo.VertexCount <= 0 {
		return fmt.Errorf("%w: vertex count %d must be positive", ErrPrecondition, topo.VertexCount)
	}
	if len(frames) == 0 {
		return fmt.Errorf("%w: empty frame sequence", ErrPrecondition)
	}
	if len(topo.Corners) != topo.VertexCount {
		return fmt.Errorf("%w: %d corners, %d vertices",
			ErrCornerVertexMismatch, len(topo.Corners), topo.VertexCount)
	}
	for c, corner := range topo.Corners {
		if corner.VertexIndex < 0 || corner.VertexIndex >= topo.VertexCount {
			return fmt.Errorf("%w: corner %d references vertex %d of %d",
				ErrPrecondition, c, corner.VertexIndex, topo.VertexCount)
		}
	}
	for f, frame := range frames {
		if len(frame.Positions) != topo.VertexCount {
			return fmt.Errorf("%w: frame %d has %d positions, topology has %d vertices",
				ErrPrecondition, f, len(frame.Positions), topo.VertexCount)
		}
		if len(frame.Corners) != len(topo.Corners) {
			return fmt.Errorf("%w: frame %d has %d corner frames, topology has %d corners",
				ErrPrecondition, f, len(frame.Corners), len(topo.Corners))
		}
	}
	return nil
}
