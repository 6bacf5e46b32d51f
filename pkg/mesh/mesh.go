// Package mesh assembles encoder input from triangle meshes: it computes
// per-corner orthonormal surface frames and converts a mesh (or a sequence
// of per-frame meshes) into the topology and snapshot values the vat
// package consumes.
//
// The package assumes meshes arrive pre-split at hard edges and
// triangulated; that preprocessing belongs to the producing tool.
package mesh

import (
	"errors"
	"fmt"

	"github.com/vertexanim/vatbake/pkg/math"
	"github.com/vertexanim/vatbake/pkg/vat"
)

var (
	ErrMalformedMesh    = errors.New("malformed mesh")
	ErrUnreferencedVert = errors.New("vertex referenced by no corner")
)

// TriMesh is a triangulated mesh with per-corner attributes. Positions are
// per vertex; Normals and TexCoords are per corner, aligned with Indices,
// which maps each corner to its vertex. len(Indices) is a multiple of 3.
type TriMesh struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *TriMesh) VertexCount() int {
	return len(m.Positions)
}

// CornerCount returns the number of face corners (loops).
func (m *TriMesh) CornerCount() int {
	return len(m.Indices)
}

// Validate checks internal consistency of the mesh arrays.
func (m *TriMesh) Validate() error {
	if len(m.Positions) == 0 {
		return fmt.Errorf("%w: no vertices", ErrMalformedMesh)
	}
	if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: corner count %d is not a multiple of 3", ErrMalformedMesh, len(m.Indices))
	}
	if len(m.Normals) != len(m.Indices) {
		return fmt.Errorf("%w: %d normals for %d corners", ErrMalformedMesh, len(m.Normals), len(m.Indices))
	}
	if len(m.TexCoords) != len(m.Indices) {
		return fmt.Errorf("%w: %d texcoords for %d corners", ErrMalformedMesh, len(m.TexCoords), len(m.Indices))
	}
	for c, vi := range m.Indices {
		if int(vi) >= len(m.Positions) {
			return fmt.Errorf("%w: corner %d references vertex %d of %d", ErrMalformedMesh, c, vi, len(m.Positions))
		}
	}
	return nil
}

// Snapshot converts the mesh into one animation frame: per-vertex
// positions plus one surface frame per vertex, taken from the first corner
// referencing it. On a properly split mesh all corners of a vertex agree.
func Snapshot(m *TriMesh) (vat.Frame, error) {
	frames, err := CornerFrames(m)
	if err != nil {
		return vat.Frame{}, err
	}

	perVertex, err := firstCornerPerVertex(m)
	if err != nil {
		return vat.Frame{}, err
	}

	frame := vat.Frame{
		Positions: append([]math.Vec3(nil), m.Positions...),
		Corners:   make([]vat.OrthoFrame, m.VertexCount()),
	}
	for v, c := range perVertex {
		frame.Corners[v] = frames[c]
	}
	return frame, nil
}

// BuildTopology derives the encoder topology from the reference-frame
// mesh: one corner per vertex carrying that vertex's reference frame.
func BuildTopology(m *TriMesh) (vat.Topology, error) {
	frames, err := CornerFrames(m)
	if err != nil {
		return vat.Topology{}, err
	}

	perVertex, err := firstCornerPerVertex(m)
	if err != nil {
		return vat.Topology{}, err
	}

	topo := vat.Topology{
		VertexCount: m.VertexCount(),
		Corners:     make([]vat.Corner, m.VertexCount()),
	}
	for v, c := range perVertex {
		topo.Corners[v] = vat.Corner{VertexIndex: v, Frame: frames[c]}
	}
	return topo, nil
}

// firstCornerPerVertex maps each vertex to the first corner that
// references it, failing on vertices no face uses.
func firstCornerPerVertex(m *TriMesh) ([]int, error) {
	perVertex := make([]int, m.VertexCount())
	for v := range perVertex {
		perVertex[v] = -1
	}
	for c, vi := range m.Indices {
		if perVertex[vi] < 0 {
			perVertex[vi] = c
		}
	}
	for v, c := range perVertex {
		if c < 0 {
			return nil, fmt.Errorf("%w: vertex %d", ErrUnreferencedVert, v)
		}
	}
	return perVertex, nil
}
