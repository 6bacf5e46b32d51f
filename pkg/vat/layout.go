package vat

import "fmt"

// Layout is the final texture dimensions of an encode.
type Layout struct {
	Width  int
	Height int
}

// PlanLayout computes the final texture dimensions for an encode of the
// given size without touching any pixel data. It runs the capacity
// validation first, so a plan that succeeds is a plan that encodes.
func PlanLayout(vertexCount, frameCount int, cfg Config) (Layout, error) {
	if err := Validate(vertexCount, frameCount); err != nil {
		return Layout{}, err
	}
	switch cfg.Mode {
	case ModeLinear:
		return Layout{Width: vertexCount, Height: frameCount}, nil
	case ModeZCurve:
		maxX, maxY := mortonBounds(vertexCount*frameCount + 1)
		g := cfg.granularity()
		return Layout{Width: roundUp(maxX+1, g), Height: roundUp(maxY+1, g)}, nil
	default:
		return Layout{}, fmt.Errorf("%w: unknown layout mode %d", ErrPrecondition, cfg.Mode)
	}
}

// mortonBounds returns the maximum x and y reached by Morton-decoding
// every index in [0, n).
func mortonBounds(n int) (maxX, maxY int) {
	for idx := 0; idx < n; idx++ {
		x, y := MortonDecode(uint32(idx))
		if int(x) > maxX {
			maxX = int(x)
		}
		if int(y) > maxY {
			maxY = int(y)
		}
	}
	return
}

func roundUp(n, granularity int) int {
	return (n + granularity - 1) / granularity * granularity
}

// packLinear arranges a linear buffer vertex-major. The header pixel is
// dropped: in linear mode cell (0,0) holds the first data sample and the
// shader derives counts from the texture dimensions instead.
func packLinear(linear []Pixel, vertexCount, frameCount int) *Grid {
	grid := &Grid{
		Width:  vertexCount,
		Height: frameCount,
		Pixels: make([]Pixel, vertexCount*frameCount),
	}
	copy(grid.Pixels, linear[1:])
	return grid
}

// packZCurve scatters a linear buffer, header pixel included, along the
// Z-order curve. Dimensions are the Morton extents of the last index
// rounded up to the granularity; cells no index maps to stay zero.
func packZCurve(linear []Pixel, granularity int) *Grid {
	maxX, maxY := mortonBounds(len(linear))
	grid := &Grid{
		Width:  roundUp(maxX+1, granularity),
		Height: roundUp(maxY+1, granularity),
	}
	grid.Pixels = make([]Pixel, grid.Width*grid.Height)
	for idx, px := range linear {
		x, y := MortonDecode(uint32(idx))
		grid.Pixels[int(y)*grid.Width+int(x)] = px
	}
	return grid
}
