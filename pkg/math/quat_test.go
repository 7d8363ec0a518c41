package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatToMat4(t *testing.T) {
	// Identity quaternion should produce identity matrix
	q := QuatIdentity()
	m := q.ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	// Should have Y component and W = cos(45deg)
	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestPoseMatrix(t *testing.T) {
	// Pure translation: rotation identity
	m := PoseMatrix(QuatIdentity(), Vec3{1, 2, 3})
	if m[12] != 1 || m[13] != 2 || m[14] != 3 {
		t.Errorf("PoseMatrix translation: got (%f, %f, %f), want (1, 2, 3)", m[12], m[13], m[14])
	}

	// Rotation applies before translation: point at origin lands at the
	// pose position regardless of orientation
	q := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2))
	m = PoseMatrix(q, Vec3{5, 0, 0})
	p := m.TransformPoint(Vec3{})
	if abs(p.X-5) > 0.0001 || abs(p.Y) > 0.0001 || abs(p.Z) > 0.0001 {
		t.Errorf("PoseMatrix origin transform: got %v, want (5, 0, 0)", p)
	}
}
