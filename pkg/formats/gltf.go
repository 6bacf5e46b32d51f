package formats

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vertexanim/vatbake/pkg/math"
	"github.com/vertexanim/vatbake/pkg/mesh"
)

// glTF 2.0 component and target constants.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html
const (
	gltfFloat       = 5126
	gltfUnsignedInt = 5125

	gltfTargetArrayBuffer        = 34962
	gltfTargetElementArrayBuffer = 34963
)

// gltfDocument is the writer-side subset of the glTF 2.0 JSON schema.
type gltfDocument struct {
	Asset       gltfAsset        `json:"asset"`
	Scene       int              `json:"scene"`
	Scenes      []gltfScene      `json:"scenes"`
	Nodes       []gltfNode       `json:"nodes"`
	Meshes      []gltfMesh       `json:"meshes"`
	Accessors   []gltfAccessor   `json:"accessors"`
	BufferViews []gltfBufferView `json:"bufferViews"`
	Buffers     []gltfBuffer     `json:"buffers"`
}

type gltfAsset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

type gltfScene struct {
	Nodes []int `json:"nodes"`
}

type gltfNode struct {
	Name string `json:"name,omitempty"`
	Mesh *int   `json:"mesh,omitempty"`
}

type gltfMesh struct {
	Name       string          `json:"name,omitempty"`
	Primitives []gltfPrimitive `json:"primitives"`
}

type gltfPrimitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices,omitempty"`
}

type gltfAccessor struct {
	BufferView    int       `json:"bufferView"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Min           []float32 `json:"min,omitempty"`
	Max           []float32 `json:"max,omitempty"`
}

type gltfBufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
	Target     int `json:"target,omitempty"`
}

type gltfBuffer struct {
	ByteLength int    `json:"byteLength"`
	URI        string `json:"uri"`
}

// VertexAnimUV returns the TEXCOORD_1 coordinate that encodes a vertex
// index for the playback shader: the low 11 bits biased to start at
// -2048, the high bits biased to start at -2047 (the v axis is flipped
// on the consuming side, so its zero lands on +2047).
func VertexAnimUV(vertexIndex int) math.Vec2 {
	return math.Vec2{
		X: float32(vertexIndex%2048 - 2048),
		Y: float32(vertexIndex/2048 - 2047),
	}
}

// WriteGLTF writes the reference mesh as a single-primitive glTF 2.0
// document with an embedded buffer. Alongside POSITION, NORMAL and
// TEXCOORD_0 it emits a TEXCOORD_1 layer carrying each vertex's encoded
// index, which the playback shader uses to address the VAT textures.
func WriteGLTF(w io.Writer, m *mesh.TriMesh, name string) error {
	if err := m.Validate(); err != nil {
		return err
	}

	positions := m.Positions
	normals, uvs, err := perVertexAttributes(m)
	if err != nil {
		return err
	}

	vcount := m.VertexCount()
	animUV := make([]math.Vec2, vcount)
	for v := range animUV {
		animUV[v] = VertexAnimUV(v)
	}

	var bin bytes.Buffer
	posView := writeVec3s(&bin, positions)
	nrmView := writeVec3s(&bin, normals)
	uv0View := writeVec2s(&bin, uvs)
	uv1View := writeVec2s(&bin, animUV)
	idxOffset := bin.Len()
	binary.Write(&bin, binary.LittleEndian, m.Indices)

	minPos, maxPos := positionBounds(positions)

	meshIdx := 0
	idxAccessor := 4
	doc := gltfDocument{
		Asset:  gltfAsset{Version: "2.0", Generator: "vatbake"},
		Scene:  0,
		Scenes: []gltfScene{{Nodes: []int{0}}},
		Nodes:  []gltfNode{{Name: name, Mesh: &meshIdx}},
		Meshes: []gltfMesh{{
			Name: name,
			Primitives: []gltfPrimitive{{
				Attributes: map[string]int{
					"POSITION":   0,
					"NORMAL":     1,
					"TEXCOORD_0": 2,
					"TEXCOORD_1": 3,
				},
				Indices: &idxAccessor,
			}},
		}},
		Accessors: []gltfAccessor{
			{BufferView: 0, ComponentType: gltfFloat, Count: vcount, Type: "VEC3", Min: minPos, Max: maxPos},
			{BufferView: 1, ComponentType: gltfFloat, Count: vcount, Type: "VEC3"},
			{BufferView: 2, ComponentType: gltfFloat, Count: vcount, Type: "VEC2"},
			{BufferView: 3, ComponentType: gltfFloat, Count: vcount, Type: "VEC2"},
			{BufferView: 4, ComponentType: gltfUnsignedInt, Count: m.CornerCount(), Type: "SCALAR"},
		},
		BufferViews: []gltfBufferView{
			{Buffer: 0, ByteOffset: posView, ByteLength: vcount * 12, Target: gltfTargetArrayBuffer},
			{Buffer: 0, ByteOffset: nrmView, ByteLength: vcount * 12, Target: gltfTargetArrayBuffer},
			{Buffer: 0, ByteOffset: uv0View, ByteLength: vcount * 8, Target: gltfTargetArrayBuffer},
			{Buffer: 0, ByteOffset: uv1View, ByteLength: vcount * 8, Target: gltfTargetArrayBuffer},
			{Buffer: 0, ByteOffset: idxOffset, ByteLength: m.CornerCount() * 4, Target: gltfTargetElementArrayBuffer},
		},
		Buffers: []gltfBuffer{{
			ByteLength: bin.Len(),
			URI:        "data:application/octet-stream;base64," + base64.StdEncoding.EncodeToString(bin.Bytes()),
		}},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&doc)
}

// WriteGLTFFile writes the reference mesh to a .gltf file on disk.
func WriteGLTFFile(path string, m *mesh.TriMesh, name string) error {
	var buf bytes.Buffer
	if err := WriteGLTF(&buf, m, name); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing glTF file: %w", err)
	}
	return nil
}

// perVertexAttributes flattens per-corner normals and texcoords to per
// vertex, taking the first corner of each vertex. On a split mesh all
// corners of a vertex agree, which is the state the encoder requires
// anyway.
func perVertexAttributes(m *mesh.TriMesh) ([]math.Vec3, []math.Vec2, error) {
	normals := make([]math.Vec3, m.VertexCount())
	uvs := make([]math.Vec2, m.VertexCount())
	seen := make([]bool, m.VertexCount())

	for c, vi := range m.Indices {
		if !seen[vi] {
			seen[vi] = true
			normals[vi] = m.Normals[c]
			uvs[vi] = m.TexCoords[c]
		}
	}
	for v, ok := range seen {
		if !ok {
			return nil, nil, fmt.Errorf("%w: vertex %d", mesh.ErrUnreferencedVert, v)
		}
	}
	return normals, uvs, nil
}

func writeVec3s(buf *bytes.Buffer, vs []math.Vec3) (offset int) {
	offset = buf.Len()
	for _, v := range vs {
		binary.Write(buf, binary.LittleEndian, [3]float32{v.X, v.Y, v.Z})
	}
	return offset
}

func writeVec2s(buf *bytes.Buffer, vs []math.Vec2) (offset int) {
	offset = buf.Len()
	for _, v := range vs {
		binary.Write(buf, binary.LittleEndian, [2]float32{v.X, v.Y})
	}
	return offset
}

func positionBounds(positions []math.Vec3) (min, max []float32) {
	if len(positions) == 0 {
		return nil, nil
	}
	lo, hi := positions[0], positions[0]
	for _, p := range positions[1:] {
		if p.X < lo.X {
			lo.X = p.X
		}
		if p.Y < lo.Y {
			lo.Y = p.Y
		}
		if p.Z < lo.Z {
			lo.Z = p.Z
		}
		if p.X > hi.X {
			hi.X = p.X
		}
		if p.Y > hi.Y {
			hi.Y = p.Y
		}
		if p.Z > hi.Z {
			hi.Z = p.Z
		}
	}
	return []float32{lo.X, lo.Y, lo.Z}, []float32{hi.X, hi.Y, hi.Z}
}
