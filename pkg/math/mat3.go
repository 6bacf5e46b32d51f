package math

import "math"

// Mat3 is a 3x3 matrix in row-major order.
// Layout: [m0 m1 m2]
//
//	[m3 m4 m5]
//	[m6 m7 m8]
type Mat3 [9]float32

// Mat3Identity returns an identity matrix.
func Mat3Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromRows builds a matrix whose rows are the given vectors.
func Mat3FromRows(a, b, c Vec3) Mat3 {
	return Mat3{
		a.X, a.Y, a.Z,
		b.X, b.Y, b.Z,
		c.X, c.Y, c.Z,
	}
}

// Mul returns m * other.
func (m Mat3) Mul(other Mat3) Mat3 {
	var r Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			r[3*row+col] = m[3*row+0]*other[0+col] +
				m[3*row+1]*other[3+col] +
				m[3*row+2]*other[6+col]
		}
	}
	return r
}

// Transpose returns the transposed matrix.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Det returns the determinant.
func (m Mat3) Det() float32 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Inverse returns the inverse matrix. The second return value is false
// when the matrix is singular (determinant near zero); callers must not
// use the returned matrix in that case.
func (m Mat3) Inverse() (Mat3, bool) {
	det := m.Det()
	if float32(math.Abs(float64(det))) < 1e-8 {
		return Mat3Identity(), false
	}
	inv := 1 / det
	return Mat3{
		(m[4]*m[8] - m[5]*m[7]) * inv,
		(m[2]*m[7] - m[1]*m[8]) * inv,
		(m[1]*m[5] - m[2]*m[4]) * inv,
		(m[5]*m[6] - m[3]*m[8]) * inv,
		(m[0]*m[8] - m[2]*m[6]) * inv,
		(m[2]*m[3] - m[0]*m[5]) * inv,
		(m[3]*m[7] - m[4]*m[6]) * inv,
		(m[1]*m[6] - m[0]*m[7]) * inv,
		(m[0]*m[4] - m[1]*m[3]) * inv,
	}, true
}

// Quat converts a rotation matrix to a unit quaternion using the standard
// trace-branch algorithm. The sign of the result follows from the branch
// taken; no canonicalization is applied.
func (m Mat3) Quat() Quat {
	trace := m[0] + m[4] + m[8]

	switch {
	case trace > 0:
		s := 2 * float32(math.Sqrt(float64(trace+1)))
		return Quat{
			X: (m[7] - m[5]) / s,
			Y: (m[2] - m[6]) / s,
			Z: (m[3] - m[1]) / s,
			W: s / 4,
		}.Normalize()
	case m[0] > m[4] && m[0] > m[8]:
		s := 2 * float32(math.Sqrt(float64(1+m[0]-m[4]-m[8])))
		return Quat{
			X: s / 4,
			Y: (m[1] + m[3]) / s,
			Z: (m[2] + m[6]) / s,
			W: (m[7] - m[5]) / s,
		}.Normalize()
	case m[4] > m[8]:
		s := 2 * float32(math.Sqrt(float64(1+m[4]-m[0]-m[8])))
		return Quat{
			X: (m[1] + m[3]) / s,
			Y: s / 4,
			Z: (m[5] + m[7]) / s,
			W: (m[2] - m[6]) / s,
		}.Normalize()
	default:
		s := 2 * float32(math.Sqrt(float64(1+m[8]-m[0]-m[4])))
		return Quat{
			X: (m[2] + m[6]) / s,
			Y: (m[5] + m[7]) / s,
			Z: s / 4,
			W: (m[3] - m[1]) / s,
		}.Normalize()
	}
}
