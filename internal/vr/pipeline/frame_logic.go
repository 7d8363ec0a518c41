package pipeline

import (
	"github.com/Faultbox/riftdemo/internal/vr/calibration"
	"github.com/Faultbox/riftdemo/internal/vr/hmd"
	vmath "github.com/Faultbox/riftdemo/pkg/math"
)

// packViewports lays both eyes side by side in one shared render
// target: width is the sum of the eye widths, height the max of the
// eye heights, left eye first.
func packViewports(sizes [2]hmd.Sizei) (hmd.Sizei, [2]hmd.Recti) {
	var target hmd.Sizei
	var vps [2]hmd.Recti

	for eye := hmd.EyeLeft; eye < hmd.EyeCount; eye++ {
		vps[eye] = hmd.Recti{X: target.W, Y: 0, W: sizes[eye].W, H: sizes[eye].H}
		target.W += sizes[eye].W
		if sizes[eye].H > target.H {
			target.H = sizes[eye].H
		}
	}
	return target, vps
}

// selectSource resolves the stereo eye mapping for one physical eye
// slot: which eye's (projection, pose) content to render there, and
// whether to render at all.
func selectSource(mode calibration.EyeMapping, slot hmd.Eye) (src hmd.Eye, draw bool) {
	switch mode {
	case calibration.MappingMonoLeft:
		return hmd.EyeLeft, true
	case calibration.MappingLeftOnly:
		return hmd.EyeLeft, slot == hmd.EyeLeft
	case calibration.MappingRightOnly:
		return hmd.EyeRight, slot == hmd.EyeRight
	case calibration.MappingSwapped:
		if slot == hmd.EyeLeft {
			return hmd.EyeRight, true
		}
		return hmd.EyeLeft, true
	default:
		return slot, true
	}
}

// freezeState simulates added rendering latency: it holds the rendered
// eye poses and projections constant for renderLag frames after every
// fresh capture.
type freezeState struct {
	countdown int
	lastLag   int

	poses       [2]vmath.Mat4
	projections [2]vmath.Mat4
}

// advance returns the pose and projection set to render this frame,
// either freshly captured or held from the last capture.
func (f *freezeState) advance(renderLag int, fresh, proj [2]vmath.Mat4) ([2]vmath.Mat4, [2]vmath.Mat4) {
	if f.countdown == 0 || (f.lastLag == 0 && renderLag > 0) {
		f.countdown = renderLag
		f.poses = fresh
		f.projections = proj
	} else {
		f.countdown--
	}
	f.lastLag = renderLag
	return f.poses, f.projections
}

// stabilize overrides part of the current pose with the previous
// frame's, per the selected mode. Poses are rigid transforms with
// rotation in columns 0..2 and translation in column 3.
func stabilize(mode calibration.Stabilization, cur, prev vmath.Mat4) vmath.Mat4 {
	switch mode {
	case calibration.StabilizePosition:
		cur.SetCol(3, prev.Col(3))
	case calibration.StabilizeOrientation:
		cur.SetCol(0, prev.Col(0))
		cur.SetCol(1, prev.Col(1))
		cur.SetCol(2, prev.Col(2))
	case calibration.StabilizeAll:
		cur = prev
	}
	return cur
}

// reworkRotation applies the alternate head-rotation mode: the pose's
// rotation is decomposed into XYZ Euler angles and rebuilt with the Y
// angle negated and doubled, keeping the translation.
func reworkRotation(pose vmath.Mat4) vmath.Mat4 {
	x, y, z := pose.EulerXYZ()
	out := vmath.RotationXYZ(x, -2*y, z)
	out.SetCol(3, pose.Col(3))
	return out
}
