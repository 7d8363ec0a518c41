// Package hmd defines the head-mounted-display session contract: device
// descriptors, tracking and input state, swap-chain and mirror-texture
// surfaces, and frame submission.
package hmd

import (
	vmath "github.com/Faultbox/riftdemo/pkg/math"
)

// Eye identifies one of the two stereo eyes. Iteration order is
// Left then Right; viewport packing and render-desc indexing rely on it.
type Eye int

const (
	EyeLeft  Eye = 0
	EyeRight Eye = 1
	EyeCount     = 2
)

// Hand identifies a tracked hand controller.
type Hand int

const (
	HandLeft  Hand = 0
	HandRight Hand = 1
)

// Controller button bits, as reported in InputState.Buttons.
const (
	ButtonA      uint32 = 1 << 0
	ButtonB      uint32 = 1 << 1
	ButtonX      uint32 = 1 << 2
	ButtonY      uint32 = 1 << 3
	ButtonLThumb uint32 = 1 << 4
	ButtonRThumb uint32 = 1 << 5
)

// Hand status flags, as reported in TrackingState.HandStatus.
const (
	StatusOrientationTracked uint32 = 1 << 0
	StatusPositionTracked    uint32 = 1 << 1
)

// Sizei is a pixel size.
type Sizei struct {
	W, H int32
}

// Recti is a pixel rectangle (origin at bottom-left, OpenGL convention).
type Recti struct {
	X, Y, W, H int32
}

// FovPort describes a field of view as tangents of the half-angles from
// the view axis to each frustum edge. All four values are positive.
type FovPort struct {
	UpTan    float32
	DownTan  float32
	LeftTan  float32
	RightTan float32
}

// Pose is a rigid transform: orientation plus position.
type Pose struct {
	Orientation vmath.Quat
	Position    vmath.Vec3
}

// Matrix returns the pose as a 4x4 transform (translation * rotation).
func (p Pose) Matrix() vmath.Mat4 {
	return vmath.PoseMatrix(p.Orientation, p.Position)
}

// EyeRenderDesc is the per-eye render description reported by the
// device: the eye's field of view and its offset from the head center.
type EyeRenderDesc struct {
	Eye            Eye
	Fov            FovPort
	HmdToEyeOffset vmath.Vec3
}

// TrackingState is one sample of the head and hand tracking system.
type TrackingState struct {
	HeadPose   Pose
	HandPoses  [2]Pose
	HandStatus [2]uint32
}

// InputState is one poll of the hand controllers.
type InputState struct {
	IndexTrigger [2]float32
	HandTrigger  [2]float32
	Thumbstick   [2]vmath.Vec2
	Buttons      uint32
}

// SwapChainDesc describes a texture swap chain to create.
type SwapChainDesc struct {
	Width  int32
	Height int32
	Length int
}

// MirrorDesc describes a mirror texture to create.
type MirrorDesc struct {
	Width  int32
	Height int32
}

// LayerEyeFov is the frame submission header: one fov layer covering
// both eyes of a shared swap-chain texture.
type LayerEyeFov struct {
	ColorTexture     SwapChain
	Fov              [2]FovPort
	Viewport         [2]Recti
	RenderPose       [2]Pose
	HmdToEyeOffset   [2]vmath.Vec3
	SensorSampleTime float64
}

// Projection builds an off-center perspective projection matrix from a
// field-of-view port, with an OpenGL clip range.
func Projection(fov FovPort, near, far float32) vmath.Mat4 {
	l := fov.LeftTan
	r := fov.RightTan
	u := fov.UpTan
	d := fov.DownTan

	var m vmath.Mat4
	m[0] = 2 / (l + r)
	m[5] = 2 / (u + d)
	m[8] = (r - l) / (r + l)
	m[9] = (u - d) / (u + d)
	m[10] = -(far + near) / (far - near)
	m[11] = -1
	m[14] = -2 * far * near / (far - near)
	return m
}
