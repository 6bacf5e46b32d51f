// Package vat encodes a time-sampled mesh animation into vertex animation
// texture (VAT) pixel buffers: a per-vertex position-offset map and a
// per-corner rotation map, suitable for shader-side playback from static
// texture lookups.
//
// The encoder is a pure batch transformation. It consumes an immutable
// Topology plus an ordered sequence of Frame snapshots and produces two
// pixel grids of identical dimensions. It holds no state between calls.
package vat

import "github.com/vertexanim/vatbake/pkg/math"

// Capacity limits of the encoding scheme. Vertex and frame counts must fit
// the header pixel's biased integer channels, and the total pixel count
// (data plus one header pixel) must fit an 8k texture.
const (
	MaxVertexCount = 4096 * 4095
	MaxFrameCount  = 4096
	MaxPixels      = 8192 * 8192
)

// DefaultGranularity is the alignment unit final texture dimensions are
// rounded up to in Z-curve mode, matching common GPU tiling.
const DefaultGranularity = 32

// Pixel is a single 4-component float pixel.
type Pixel [4]float32

// Mode selects how the linear buffers are arranged into the final grid.
type Mode int

const (
	// ModeLinear lays pixels out vertex-major: width = vertex count,
	// height = frame count. The header pixel is not emitted.
	ModeLinear Mode = iota
	// ModeZCurve scatters pixels along a Morton (Z-order) curve,
	// header pixel included, with dimensions rounded up to the
	// configured granularity.
	ModeZCurve
)

// String returns the mode name as used in config files.
func (m Mode) String() string {
	switch m {
	case ModeLinear:
		return "linear"
	case ModeZCurve:
		return "zcurve"
	default:
		return "unknown"
	}
}

// Config holds encoder settings.
type Config struct {
	Mode Mode
	// Granularity is the Z-curve dimension alignment.
	// Zero means DefaultGranularity.
	Granularity int
}

func (c Config) granularity() int {
	if c.Granularity > 0 {
		return c.Granularity
	}
	return DefaultGranularity
}

// OrthoFrame is a per-corner orthonormal surface frame. All three vectors
// are unit length and Bitangent = Normal x Tangent.
type OrthoFrame struct {
	Normal    math.Vec3
	Tangent   math.Vec3
	Bitangent math.Vec3
}

// Corner ties a face corner (loop) to its vertex and carries the corner's
// reference surface frame. A vertex may be referenced by several corners
// with different frames at hard edges, but at the encoding boundary the
// mesh must be fully split so that corner count equals vertex count.
type Corner struct {
	VertexIndex int
	Frame       OrthoFrame
}

// Topology is the immutable reference mesh: the vertex count and one
// reference frame per corner. Per-frame data in every snapshot must align
// one-to-one with it.
type Topology struct {
	VertexCount int
	Corners     []Corner
}

// Frame is one sampled animation frame: one position per vertex and one
// surface frame per corner, in topology order. The first frame of a
// sequence is the reference and must match the topology's reference data.
type Frame struct {
	Positions []math.Vec3
	Corners   []OrthoFrame
}

// Grid is a packed width x height pixel buffer, row-major from (0,0).
type Grid struct {
	Width  int
	Height int
	Pixels []Pixel
}

// At returns the pixel at grid cell (x, y).
func (g *Grid) At(x, y int) Pixel {
	return g.Pixels[y*g.Width+x]
}

// ProgressFunc receives encoding progress as a monotonically increasing
// count of processed frame-vertex units out of the given total. It is
// called once per processed frame; reporting is best-effort and has no
// bearing on the encode result.
type ProgressFunc func(done, total int)
