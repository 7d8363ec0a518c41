package pipeline

import (
	"testing"

	"github.com/Faultbox/riftdemo/internal/vr/calibration"
	"github.com/Faultbox/riftdemo/internal/vr/hmd"
	vmath "github.com/Faultbox/riftdemo/pkg/math"
)

func TestPackViewportsSideBySide(t *testing.T) {
	sizes := [2]hmd.Sizei{{W: 100, H: 100}, {W: 100, H: 100}}
	target, vps := packViewports(sizes)

	if target.W != 200 || target.H != 100 {
		t.Errorf("target = %dx%d, want 200x100", target.W, target.H)
	}
	if vps[hmd.EyeLeft] != (hmd.Recti{X: 0, Y: 0, W: 100, H: 100}) {
		t.Errorf("left viewport = %+v", vps[hmd.EyeLeft])
	}
	if vps[hmd.EyeRight] != (hmd.Recti{X: 100, Y: 0, W: 100, H: 100}) {
		t.Errorf("right viewport = %+v", vps[hmd.EyeRight])
	}
}

func TestPackViewportsUnevenHeights(t *testing.T) {
	sizes := [2]hmd.Sizei{{W: 120, H: 90}, {W: 110, H: 130}}
	target, vps := packViewports(sizes)

	if target.W != 230 || target.H != 130 {
		t.Errorf("target = %dx%d, want 230x130", target.W, target.H)
	}
	if vps[hmd.EyeRight].X != 120 {
		t.Errorf("right viewport X = %d, want 120", vps[hmd.EyeRight].X)
	}
}

func TestSelectSource(t *testing.T) {
	cases := []struct {
		name string
		mode calibration.EyeMapping
		slot hmd.Eye
		src  hmd.Eye
		draw bool
	}{
		{"stereo left", calibration.MappingStereo, hmd.EyeLeft, hmd.EyeLeft, true},
		{"stereo right", calibration.MappingStereo, hmd.EyeRight, hmd.EyeRight, true},
		{"mono-left left", calibration.MappingMonoLeft, hmd.EyeLeft, hmd.EyeLeft, true},
		{"mono-left right", calibration.MappingMonoLeft, hmd.EyeRight, hmd.EyeLeft, true},
		{"left-only left", calibration.MappingLeftOnly, hmd.EyeLeft, hmd.EyeLeft, true},
		{"left-only right", calibration.MappingLeftOnly, hmd.EyeRight, hmd.EyeLeft, false},
		{"right-only left", calibration.MappingRightOnly, hmd.EyeLeft, hmd.EyeRight, false},
		{"right-only right", calibration.MappingRightOnly, hmd.EyeRight, hmd.EyeRight, true},
		{"swapped left", calibration.MappingSwapped, hmd.EyeLeft, hmd.EyeRight, true},
		{"swapped right", calibration.MappingSwapped, hmd.EyeRight, hmd.EyeLeft, true},
	}

	for _, c := range cases {
		src, draw := selectSource(c.mode, c.slot)
		if src != c.src || draw != c.draw {
			t.Errorf("%s: selectSource = (%v, %v), want (%v, %v)", c.name, src, draw, c.src, c.draw)
		}
	}
}

func posesFor(i int) [2]vmath.Mat4 {
	m := vmath.Translate(float32(i), 0, 0)
	return [2]vmath.Mat4{m, m}
}

func TestFreezeZeroLagAlwaysFresh(t *testing.T) {
	var f freezeState
	proj := [2]vmath.Mat4{vmath.Identity(), vmath.Identity()}

	for i := 0; i < 10; i++ {
		poses, _ := f.advance(0, posesFor(i), proj)
		if poses != posesFor(i) {
			t.Fatalf("frame %d: expected fresh poses with zero lag", i)
		}
	}
}

func TestFreezeHoldsForLagFrames(t *testing.T) {
	var f freezeState
	proj := [2]vmath.Mat4{vmath.Identity(), vmath.Identity()}
	const lag = 3

	// With lag k, a fresh pose appears every k+1 frames.
	for i := 0; i < 12; i++ {
		poses, _ := f.advance(lag, posesFor(i), proj)
		wantFrame := (i / (lag + 1)) * (lag + 1)
		if poses != posesFor(wantFrame) {
			t.Fatalf("frame %d: poses from frame %v, want frame %d",
				i, poses[0][12], wantFrame)
		}
	}
}

func TestFreezeRecapturesWhenLagTurnsOn(t *testing.T) {
	var f freezeState
	proj := [2]vmath.Mat4{vmath.Identity(), vmath.Identity()}

	f.advance(0, posesFor(0), proj)
	f.advance(0, posesFor(1), proj)

	// Switching from zero lag to nonzero lag recaptures immediately.
	poses, _ := f.advance(5, posesFor(2), proj)
	if poses != posesFor(2) {
		t.Errorf("expected fresh capture on lag transition, got frame %v", poses[0][12])
	}
	poses, _ = f.advance(5, posesFor(3), proj)
	if poses != posesFor(2) {
		t.Errorf("expected held poses during countdown, got frame %v", poses[0][12])
	}
}

func TestFreezeHoldsProjections(t *testing.T) {
	var f freezeState
	projA := [2]vmath.Mat4{vmath.Scale(1, 1, 1), vmath.Identity()}
	projB := [2]vmath.Mat4{vmath.Scale(2, 2, 2), vmath.Identity()}

	_, p := f.advance(2, posesFor(0), projA)
	if p != projA {
		t.Fatal("first frame should capture projections")
	}
	// The held frames keep the captured projections even if the live
	// set changes.
	_, p = f.advance(2, posesFor(1), projB)
	if p != projA {
		t.Error("held frame should keep captured projections")
	}
}

func TestStabilizePosition(t *testing.T) {
	cur := vmath.Translate(5, 6, 7).Mul(vmath.RotateY(0.3))
	prev := vmath.Translate(1, 2, 3)

	out := stabilize(calibration.StabilizePosition, cur, prev)
	if out.Col(3) != prev.Col(3) {
		t.Error("position stabilization should take the previous translation")
	}
	for i := 0; i < 3; i++ {
		if out.Col(i) != cur.Col(i) {
			t.Errorf("column %d should keep the current rotation", i)
		}
	}
}

func TestStabilizeOrientation(t *testing.T) {
	cur := vmath.Translate(5, 0, 0).Mul(vmath.RotateY(0.3))
	prev := vmath.RotateZ(1.1)

	out := stabilize(calibration.StabilizeOrientation, cur, prev)
	for i := 0; i < 3; i++ {
		if out.Col(i) != prev.Col(i) {
			t.Errorf("column %d should take the previous rotation", i)
		}
	}
	if out.Col(3) != cur.Col(3) {
		t.Error("orientation stabilization should keep the current translation")
	}
}

func TestStabilizeAll(t *testing.T) {
	cur := vmath.Translate(5, 0, 0)
	prev := vmath.RotateX(0.7)

	if out := stabilize(calibration.StabilizeAll, cur, prev); out != prev {
		t.Error("full stabilization should return the previous pose")
	}
}

func TestStabilizeOffIsIdentityOp(t *testing.T) {
	cur := vmath.Translate(5, 0, 0)
	prev := vmath.RotateX(0.7)

	if out := stabilize(calibration.StabilizeOff, cur, prev); out != cur {
		t.Error("off mode should return the current pose unchanged")
	}
}

func TestReworkRotationNegatesAndDoublesY(t *testing.T) {
	const yaw = 0.25
	pose := vmath.Translate(1, 2, 3).Mul(vmath.RotateY(yaw))

	out := reworkRotation(pose)

	x, y, z := out.EulerXYZ()
	if !approx(x, 0) || !approx(y, -2*yaw) || !approx(z, 0) {
		t.Errorf("euler after rework = (%v, %v, %v), want (0, %v, 0)", x, y, z, -2*yaw)
	}
	if out.Col(3) != pose.Col(3) {
		t.Error("rework should preserve translation")
	}
}

func TestReworkRotationIdentityYaw(t *testing.T) {
	pose := vmath.RotateX(0.4)
	out := reworkRotation(pose)

	// Zero yaw: pitch and roll survive the round trip.
	x, y, _ := out.EulerXYZ()
	if !approx(x, 0.4) || !approx(y, 0) {
		t.Errorf("euler after rework = (%v, %v), want (0.4, 0)", x, y)
	}
}

func approx(got, want float32) bool {
	d := got - want
	return d > -1e-5 && d < 1e-5
}
