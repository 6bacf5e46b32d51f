package math

import (
	"math"
	"testing"
)

func TestVec3AddSub(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	sum := a.Add(b)
	if sum != (Vec3{5, 7, 9}) {
		t.Errorf("Add: got %v", sum)
	}

	diff := b.Sub(a)
	if diff != (Vec3{3, 3, 3}) {
		t.Errorf("Sub: got %v", diff)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}

	z := x.Cross(y)
	if z != (Vec3{0, 0, 1}) {
		t.Errorf("X cross Y should be Z, got %v", z)
	}

	// Anti-commutative
	nz := y.Cross(x)
	if nz != (Vec3{0, 0, -1}) {
		t.Errorf("Y cross X should be -Z, got %v", nz)
	}
}

func TestVec3Dot(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, -5, 6}

	got := a.Dot(b)
	if got != 12 {
		t.Errorf("Dot: expected 12, got %v", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 0}
	n := v.Normalize()

	if math.Abs(float64(n.Length()-1)) > 1e-6 {
		t.Errorf("normalized length should be 1, got %v", n.Length())
	}
	if math.Abs(float64(n.X-0.6)) > 1e-6 || math.Abs(float64(n.Y-0.8)) > 1e-6 {
		t.Errorf("Normalize: got %v", n)
	}

	// Zero vector stays zero rather than producing NaN
	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("Normalize of zero vector: got %v", zero)
	}
}

func TestVec2Ops(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{3, 5}

	if a.Add(b) != (Vec2{4, 7}) {
		t.Errorf("Vec2 Add: got %v", a.Add(b))
	}
	if b.Sub(a) != (Vec2{2, 3}) {
		t.Errorf("Vec2 Sub: got %v", b.Sub(a))
	}
	if a.Scale(2) != (Vec2{2, 4}) {
		t.Errorf("Vec2 Scale: got %v", a.Scale(2))
	}
}
