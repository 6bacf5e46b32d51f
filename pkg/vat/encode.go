package vat

import (
	"fmt"

	"github.com/vertexanim/vatbake/pkg/math"
)

// Encode transforms a topology and its frame snapshots into the packed
// offset and rotation grids. Both grids always share identical dimensions
// so the two textures stay pixel-aligned for shader sampling.
//
// Encode is deterministic and stateless: calling it twice with the same
// inputs yields identical grids.
func Encode(topo Topology, frames []Frame, cfg Config) (offsets, rotations *Grid, err error) {
	return EncodeWithProgress(topo, frames, cfg, nil)
}

// EncodeWithProgress is Encode with a per-frame progress callback.
func EncodeWithProgress(topo Topology, frames []Frame, cfg Config, progress ProgressFunc) (offsets, rotations *Grid, err error) {
	vertexCount := topo.VertexCount
	frameCount := len(frames)

	// Capacity gates run before any buffer exists, so an animation that
	// cannot be encoded costs no per-frame work.
	if err := Validate(vertexCount, frameCount); err != nil {
		return nil, nil, err
	}
	if err := checkShape(topo, frames); err != nil {
		return nil, nil, err
	}

	offBuf, rotBuf := accumulate(topo, frames, progress)

	switch cfg.Mode {
	case ModeLinear:
		return packLinear(offBuf, vertexCount, frameCount),
			packLinear(rotBuf, vertexCount, frameCount), nil
	case ModeZCurve:
		g := cfg.granularity()
		return packZCurve(offBuf, g), packZCurve(rotBuf, g), nil
	default:
		return nil, nil, fmt.Errorf("%w: unknown layout mode %d", ErrPrecondition, cfg.Mode)
	}
}

// accumulate walks the frame sequence and fills the linear offset and
// rotation buffers. Slot 0 of both buffers is the header pixel; the
// sample for frame f, vertex v lives at 1 + f*vertexCount + v.
func accumulate(topo Topology, frames []Frame, progress ProgressFunc) (offsets, rotations []Pixel) {
	vertexCount := topo.VertexCount
	total := vertexCount * len(frames)

	offsets = make([]Pixel, total+1)
	rotations = make([]Pixel, total+1)

	header := EncodeHeader(vertexCount, len(frames))
	offsets[0] = header
	rotations[0] = header

	ref := frames[0]
	for f, frame := range frames {
		base := 1 + f*vertexCount

		for v := 0; v < vertexCount; v++ {
			d := frame.Positions[v].Sub(ref.Positions[v])
			offsets[base+v] = Pixel{d.X, d.Y, d.Z, 1}
		}

		// Rotations are slotted by the corner's vertex index; checkShape
		// has already guaranteed corner/vertex parity.
		for c, corner := range topo.Corners {
			q := relativeRotation(corner.Frame, frame.Corners[c])
			rotations[base+corner.VertexIndex] = Pixel{q.X, q.Y, q.Z, q.W}
		}

		if progress != nil {
			progress((f+1)*vertexCount, total)
		}
	}
	return offsets, rotations
}

// relativeRotation extracts the rotation carrying the current corner frame
// back onto its reference frame, as R = M^-1 * M0 with the frame vectors
// as matrix rows. The quaternion sign is whatever the matrix conversion
// yields; it is reproducible but not canonicalized.
func relativeRotation(ref, cur OrthoFrame) math.Quat {
	// An exactly unchanged normal means no rotation. This also guards the
	// inverse against ill-defined tangents on degenerate corners.
	if ref.Normal == cur.Normal {
		return math.QuatIdentity()
	}

	m0 := math.Mat3FromRows(ref.Normal, ref.Tangent, ref.Bitangent)
	m := math.Mat3FromRows(cur.Normal, cur.Tangent, cur.Bitangent)

	inv, ok := m.Inverse()
	if !ok {
		return math.QuatIdentity()
	}
	return inv.Mul(m0).Quat()
}
