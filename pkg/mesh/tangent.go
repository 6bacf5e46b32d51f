package mesh

import (
	stdmath "math"

	"github.com/vertexanim/vatbake/pkg/math"
	"github.com/vertexanim/vatbake/pkg/vat"
)

// CornerFrames computes the per-corner orthonormal frame (N, T, B) for a
// triangulated mesh. Tangents follow the UV gradient of each triangle and
// are Gram-Schmidt orthonormalized against the corner normal; the
// bitangent is N x T. Triangles with degenerate UVs fall back to an
// arbitrary but deterministic tangent perpendicular to the normal.
func CornerFrames(m *TriMesh) ([]vat.OrthoFrame, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	frames := make([]vat.OrthoFrame, m.CornerCount())
	for tri := 0; tri < m.CornerCount(); tri += 3 {
		p0 := m.Positions[m.Indices[tri]]
		p1 := m.Positions[m.Indices[tri+1]]
		p2 := m.Positions[m.Indices[tri+2]]

		e1 := p1.Sub(p0)
		e2 := p2.Sub(p0)
		duv1 := m.TexCoords[tri+1].Sub(m.TexCoords[tri])
		duv2 := m.TexCoords[tri+2].Sub(m.TexCoords[tri])

		var tangent math.Vec3
		if det := duv1.X*duv2.Y - duv2.X*duv1.Y; stdmath.Abs(float64(det)) > 1e-12 {
			r := 1 / det
			tangent = e1.Scale(duv2.Y * r).Sub(e2.Scale(duv1.Y * r))
		}

		for corner := tri; corner < tri+3; corner++ {
			n := m.Normals[corner].Normalize()
			t := orthonormalTangent(n, tangent)
			frames[corner] = vat.OrthoFrame{
				Normal:    n,
				Tangent:   t,
				Bitangent: n.Cross(t).Normalize(),
			}
		}
	}
	return frames, nil
}

// orthonormalTangent projects the raw tangent onto the plane of n and
// normalizes it, substituting a perpendicular axis when the projection
// collapses.
func orthonormalTangent(n, tangent math.Vec3) math.Vec3 {
	t := tangent.Sub(n.Scale(n.Dot(tangent)))
	if t.Length() > 1e-6 {
		return t.Normalize()
	}
	return perpendicular(n)
}

// perpendicular returns a unit vector perpendicular to n, built from the
// axis n is least aligned with.
func perpendicular(n math.Vec3) math.Vec3 {
	axis := math.Vec3{X: 1}
	ax, ay, az := stdmath.Abs(float64(n.X)), stdmath.Abs(float64(n.Y)), stdmath.Abs(float64(n.Z))
	if ay <= ax && ay <= az {
		axis = math.Vec3{Y: 1}
	} else if az <= ax && az <= ay {
		axis = math.Vec3{Z: 1}
	}
	return n.Cross(axis).Normalize()
}
