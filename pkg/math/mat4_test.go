package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translate(10, 20, 30)
	p := Vec3{1, 2, 3}
	result := m.TransformPoint(p)

	expected := Vec3{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	p := Vec3{1, 0, 0}                 // Point on X axis
	result := m.TransformPoint(p)

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestColSetCol(t *testing.T) {
	m := Identity()
	m.SetCol(3, Vec4{7, 8, 9, 1})

	got := m.Col(3)
	if got != (Vec4{7, 8, 9, 1}) {
		t.Errorf("Col(3) = %v, want (7, 8, 9, 1)", got)
	}
	// Other columns untouched
	if m.Col(0) != (Vec4{1, 0, 0, 0}) {
		t.Errorf("Col(0) = %v, want (1, 0, 0, 0)", m.Col(0))
	}
}

func TestInverseTranslation(t *testing.T) {
	m := Translate(3, -4, 5)
	inv := m.Inverse()

	p := Vec3{1, 1, 1}
	back := inv.TransformPoint(m.TransformPoint(p))
	if abs(back.X-1) > 0.0001 || abs(back.Y-1) > 0.0001 || abs(back.Z-1) > 0.0001 {
		t.Errorf("Inverse round trip: got %v, want (1, 1, 1)", back)
	}
}

func TestInverseRotation(t *testing.T) {
	m := RotateY(0.7)
	prod := m.Mul(m.Inverse())

	id := Identity()
	for i := 0; i < 16; i++ {
		if abs(prod[i]-id[i]) > 0.0001 {
			t.Errorf("R * R^-1 element %d: got %f, want %f", i, prod[i], id[i])
		}
	}
}

func TestEulerXYZRoundTrip(t *testing.T) {
	cases := [][3]float32{
		{0, 0, 0},
		{0.3, -0.5, 0.9},
		{-1.1, 0.2, 0.4},
		{0.0, 1.0, -0.7},
	}

	for _, c := range cases {
		m := RotationXYZ(c[0], c[1], c[2])
		x, y, z := m.EulerXYZ()
		back := RotationXYZ(x, y, z)

		for i := 0; i < 16; i++ {
			if abs(back[i]-m[i]) > 0.001 {
				t.Errorf("EulerXYZ round trip %v: element %d got %f, want %f", c, i, back[i], m[i])
				break
			}
		}
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
