package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/vertexanim/vatbake/pkg/math"
	"github.com/vertexanim/vatbake/pkg/mesh"
)

// OBJ format errors.
var (
	ErrMalformedOBJ = errors.New("malformed OBJ data")
	ErrEmptyOBJ     = errors.New("OBJ contains no faces")
)

// ParseOBJ parses Wavefront OBJ data into a triangle mesh. Faces with
// more than three corners are fan-triangulated. Texture coordinates
// default to (0,0) and normals to the face normal when the file omits
// them. Unsupported statements (groups, materials, smoothing) are
// skipped.
func ParseOBJ(data []byte) (*mesh.TriMesh, error) {
	var (
		positions []math.Vec3
		texCoords []math.Vec2
		normals   []math.Vec3
	)
	out := &mesh.TriMesh{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJ, lineNo, err)
			}
			positions = append(positions, v)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("%w: line %d: vt needs 2 components", ErrMalformedOBJ, lineNo)
			}
			u, err1 := parseFloat(fields[1])
			v, err2 := parseFloat(fields[2])
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("%w: line %d: bad texcoord", ErrMalformedOBJ, lineNo)
			}
			texCoords = append(texCoords, math.Vec2{X: u, Y: v})
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJ, lineNo, err)
			}
			normals = append(normals, n)
		case "f":
			if err := parseFace(out, fields[1:], positions, texCoords, normals); err != nil {
				return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedOBJ, lineNo, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedOBJ, err)
	}

	if len(out.Indices) == 0 {
		return nil, ErrEmptyOBJ
	}
	out.Positions = positions
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*mesh.TriMesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	return float32(f), err
}

func parseVec3(fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, errors.New("needs 3 components")
	}
	x, err1 := parseFloat(fields[0])
	y, err2 := parseFloat(fields[1])
	z, err3 := parseFloat(fields[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return math.Vec3{}, errors.New("bad component")
	}
	return math.Vec3{X: x, Y: y, Z: z}, nil
}

// objCorner is one parsed v/vt/vn reference.
type objCorner struct {
	vertex int
	uv     math.Vec2
	normal math.Vec3
	hasN   bool
}

func parseFace(out *mesh.TriMesh, refs []string, positions []math.Vec3, texCoords []math.Vec2, normals []math.Vec3) error {
	if len(refs) < 3 {
		return errors.New("face needs at least 3 corners")
	}

	corners := make([]objCorner, len(refs))
	for i, ref := range refs {
		c, err := parseCornerRef(ref, positions, texCoords, normals)
		if err != nil {
			return err
		}
		corners[i] = c
	}

	emit := func(c objCorner, faceNormal math.Vec3) {
		out.Indices = append(out.Indices, uint32(c.vertex))
		out.TexCoords = append(out.TexCoords, c.uv)
		if c.hasN {
			out.Normals = append(out.Normals, c.normal)
		} else {
			out.Normals = append(out.Normals, faceNormal)
		}
	}

	// Fan triangulation around the first corner.
	for i := 1; i+1 < len(corners); i++ {
		a, b, c := corners[0], corners[i], corners[i+1]
		fn := faceNormal(positions, a.vertex, b.vertex, c.vertex)
		emit(a, fn)
		emit(b, fn)
		emit(c, fn)
	}
	return nil
}

func faceNormal(positions []math.Vec3, a, b, c int) math.Vec3 {
	e1 := positions[b].Sub(positions[a])
	e2 := positions[c].Sub(positions[a])
	return e1.Cross(e2).Normalize()
}

// parseCornerRef parses a single "v", "v/vt", "v//vn" or "v/vt/vn"
// reference, resolving 1-based and negative indices.
func parseCornerRef(ref string, positions []math.Vec3, texCoords []math.Vec2, normals []math.Vec3) (objCorner, error) {
	parts := strings.Split(ref, "/")

	vi, err := resolveIndex(parts[0], len(positions))
	if err != nil {
		return objCorner{}, fmt.Errorf("vertex ref %q: %v", ref, err)
	}
	c := objCorner{vertex: vi}

	if len(parts) > 1 && parts[1] != "" {
		ti, err := resolveIndex(parts[1], len(texCoords))
		if err != nil {
			return objCorner{}, fmt.Errorf("texcoord ref %q: %v", ref, err)
		}
		c.uv = texCoords[ti]
	}
	if len(parts) > 2 && parts[2] != "" {
		ni, err := resolveIndex(parts[2], len(normals))
		if err != nil {
			return objCorner{}, fmt.Errorf("normal ref %q: %v", ref, err)
		}
		c.normal = normals[ni]
		c.hasN = true
	}
	return c, nil
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index into
// a 0-based slice index.
func resolveIndex(s string, length int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	switch {
	case i > 0 && i <= length:
		return i - 1, nil
	case i < 0 && -i <= length:
		return length + i, nil
	default:
		return 0, fmt.Errorf("index %d out of range (%d elements)", i, length)
	}
}
