package math

import (
	"math"
	"testing"
)

func mat3Near(a, b Mat3, eps float64) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > eps {
			return false
		}
	}
	return true
}

func TestMat3MulIdentity(t *testing.T) {
	m := Mat3FromRows(
		Vec3{1, 2, 3},
		Vec3{4, 5, 6},
		Vec3{7, 8, 10},
	)

	if !mat3Near(m.Mul(Mat3Identity()), m, 0) {
		t.Error("m * I should equal m")
	}
	if !mat3Near(Mat3Identity().Mul(m), m, 0) {
		t.Error("I * m should equal m")
	}
}

func TestMat3Inverse(t *testing.T) {
	m := Mat3FromRows(
		Vec3{1, 2, 3},
		Vec3{4, 5, 6},
		Vec3{7, 8, 10},
	)

	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("matrix should be invertible")
	}

	if !mat3Near(m.Mul(inv), Mat3Identity(), 1e-5) {
		t.Errorf("m * m^-1 should be identity, got %v", m.Mul(inv))
	}
}

func TestMat3InverseSingular(t *testing.T) {
	// Two equal rows: determinant zero
	m := Mat3FromRows(
		Vec3{1, 2, 3},
		Vec3{1, 2, 3},
		Vec3{4, 5, 6},
	)

	if _, ok := m.Inverse(); ok {
		t.Error("singular matrix should report ok=false")
	}
}

func TestMat3TransposeOrthonormal(t *testing.T) {
	// For a rotation matrix the transpose equals the inverse.
	c := float32(math.Cos(math.Pi / 5))
	s := float32(math.Sin(math.Pi / 5))
	m := Mat3FromRows(
		Vec3{c, -s, 0},
		Vec3{s, c, 0},
		Vec3{0, 0, 1},
	)

	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("rotation matrix should be invertible")
	}
	if !mat3Near(inv, m.Transpose(), 1e-5) {
		t.Error("inverse of rotation should equal transpose")
	}
}

func TestMat3QuatIdentity(t *testing.T) {
	q := Mat3Identity().Quat()
	if !quatNear(q, QuatIdentity(), 1e-6) {
		t.Errorf("identity matrix should convert to identity quaternion, got %+v", q)
	}
}

func TestMat3QuatAxisRotations(t *testing.T) {
	// 90 degree rotation about X as a column-vector rotation matrix.
	m := Mat3FromRows(
		Vec3{1, 0, 0},
		Vec3{0, 0, -1},
		Vec3{0, 1, 0},
	)

	q := m.Quat()
	want := QuatFromAxisAngle(Vec3{X: 1}, float32(math.Pi/2))
	if !quatNear(q, want, 1e-5) {
		t.Errorf("expected %+v, got %+v", want, q)
	}
}

func TestMat3QuatNegativeTraceBranches(t *testing.T) {
	// 180 degree rotations exercise the non-trace branches. Sign is
	// branch-dependent, so compare up to sign.
	cases := []struct {
		name string
		m    Mat3
		axis Vec3
	}{
		{"aboutX", Mat3FromRows(Vec3{1, 0, 0}, Vec3{0, -1, 0}, Vec3{0, 0, -1}), Vec3{X: 1}},
		{"aboutY", Mat3FromRows(Vec3{-1, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, -1}), Vec3{Y: 1}},
		{"aboutZ", Mat3FromRows(Vec3{-1, 0, 0}, Vec3{0, -1, 0}, Vec3{0, 0, 1}), Vec3{Z: 1}},
	}

	for _, tc := range cases {
		q := tc.m.Quat()
		want := QuatFromAxisAngle(tc.axis, float32(math.Pi))
		neg := Quat{X: -want.X, Y: -want.Y, Z: -want.Z, W: -want.W}
		if !quatNear(q, want, 1e-5) && !quatNear(q, neg, 1e-5) {
			t.Errorf("%s: expected +-%+v, got %+v", tc.name, want, q)
		}
	}
}
