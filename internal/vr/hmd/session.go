package hmd

import (
	vmath "github.com/Faultbox/riftdemo/pkg/math"
)

// Session is the connection to a display runtime. One session exists
// per process; all calls are made from the render-loop thread.
type Session interface {
	// EyeRenderDesc reports the per-eye field of view and head offset.
	EyeRenderDesc(eye Eye) EyeRenderDesc

	// FovTextureSize reports the render texture size needed to cover
	// the given field of view at the given pixel density.
	FovTextureSize(eye Eye, fov FovPort, pixelsPerDisplayPixel float32) Sizei

	// PredictedDisplayTime estimates when the given frame will be shown.
	PredictedDisplayTime(frame uint64) float64

	// TrackingState samples head and hand tracking at the given time.
	TrackingState(at float64) TrackingState

	// EyePoses samples the predicted per-eye poses for the frame,
	// applying the given head-to-eye offsets. Also returns the sensor
	// sample time to carry in the frame submission.
	EyePoses(frame uint64, offsets [2]vmath.Vec3) (poses [2]Pose, sampleTime float64)

	// InputState polls the hand controllers. ok is false when no
	// controller data is available this frame.
	InputState() (state InputState, ok bool)

	// CreateSwapChain allocates a rotating pool of color buffers.
	// Failure is fatal at startup.
	CreateSwapChain(desc SwapChainDesc) (SwapChain, error)

	// CreateMirrorTexture allocates the on-screen mirror buffer.
	// Failure is fatal at startup.
	CreateMirrorTexture(desc MirrorDesc) (MirrorTexture, error)

	// SubmitFrame hands a completed frame to the compositor. Blocks
	// until the compositor accepts it; frame pacing happens here.
	SubmitFrame(frame uint64, layer *LayerEyeFov) error

	// Recenter re-bases the tracking origin on the current head pose.
	Recenter()

	// Close releases the session.
	Close()
}

// SwapChain is a rotating set of GPU color buffers. Buffer lifetimes
// belong to the session; callers only query indices and texture IDs.
type SwapChain interface {
	Length() int
	CurrentIndex() int
	TextureAt(index int) uint32
	// Commit marks the current buffer as rendered and rotates to the
	// next one.
	Commit() error
	Destroy()
}

// MirrorTexture is the secondary buffer holding the composited view for
// on-screen display. Its content is top-down (device convention).
type MirrorTexture interface {
	TextureID() uint32
	Size() Sizei
	Destroy()
}
