package hmd

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/riftdemo/internal/logger"
	vmath "github.com/Faultbox/riftdemo/pkg/math"
)

// EmulatorConfig holds emulated device settings.
type EmulatorConfig struct {
	// PixelsPerTanUnit converts field-of-view tangent units to render
	// texture pixels at density 1.0.
	PixelsPerTanUnit float32
	// SwapChainLength is the number of buffers in a created swap chain.
	SwapChainLength int
	// HeadMotion enables the synthetic head sway.
	HeadMotion bool
	// HandMotion enables the synthetic hand orbit.
	HandMotion bool
}

// DefaultEmulatorConfig returns the standard emulator settings.
func DefaultEmulatorConfig() EmulatorConfig {
	return EmulatorConfig{
		PixelsPerTanUnit: 512,
		SwapChainLength:  3,
		HeadMotion:       true,
		HandMotion:       true,
	}
}

// Emulator is an in-process Session implementation. It stands in for a
// physical display runtime: swap-chain buffers and the mirror texture
// are plain GL textures, tracking is synthesized from wall-clock time,
// and controller input is pushed in by the windowing shim.
type Emulator struct {
	cfg   EmulatorConfig
	start time.Time

	descs [2]EyeRenderDesc

	input   InputState
	inputOK bool

	// Tracking origin, re-based by Recenter.
	originPos vmath.Vec3
	originYaw float32

	mirror   *glMirrorTexture
	blitFBOs [2]uint32 // read, draw; used for mirror compositing
}

// Half of the default interocular distance in meters.
const defaultHalfIPD = 0.032

// NewEmulator creates an emulated session. The GL context must already
// be current.
func NewEmulator(cfg EmulatorConfig) (*Emulator, error) {
	if cfg.PixelsPerTanUnit <= 0 {
		return nil, fmt.Errorf("invalid pixel density %f", cfg.PixelsPerTanUnit)
	}
	if cfg.SwapChainLength < 1 || cfg.SwapChainLength > 8 {
		return nil, fmt.Errorf("invalid swap chain length %d", cfg.SwapChainLength)
	}

	e := &Emulator{
		cfg:   cfg,
		start: time.Now(),
	}

	// Per-eye fov ports mirror each other horizontally.
	e.descs[EyeLeft] = EyeRenderDesc{
		Eye:            EyeLeft,
		Fov:            FovPort{UpTan: 1.3316, DownTan: 1.3316, LeftTan: 1.0586, RightTan: 1.0924},
		HmdToEyeOffset: vmath.Vec3{X: -defaultHalfIPD},
	}
	e.descs[EyeRight] = EyeRenderDesc{
		Eye:            EyeRight,
		Fov:            FovPort{UpTan: 1.3316, DownTan: 1.3316, LeftTan: 1.0924, RightTan: 1.0586},
		HmdToEyeOffset: vmath.Vec3{X: defaultHalfIPD},
	}

	logger.Info("HMD emulator session created",
		zap.Float32("pixels_per_tan", cfg.PixelsPerTanUnit),
		zap.Int("swapchain_length", cfg.SwapChainLength),
	)
	return e, nil
}

// EyeRenderDesc reports the per-eye field of view and head offset.
func (e *Emulator) EyeRenderDesc(eye Eye) EyeRenderDesc {
	return e.descs[eye]
}

// FovTextureSize reports the texture size covering fov at the given
// density.
func (e *Emulator) FovTextureSize(eye Eye, fov FovPort, pixelsPerDisplayPixel float32) Sizei {
	scale := e.cfg.PixelsPerTanUnit * pixelsPerDisplayPixel
	return Sizei{
		W: int32((fov.LeftTan + fov.RightTan) * scale),
		H: int32((fov.UpTan + fov.DownTan) * scale),
	}
}

// PredictedDisplayTime estimates mid-frame display time for the frame.
func (e *Emulator) PredictedDisplayTime(frame uint64) float64 {
	// One nominal refresh ahead of now.
	return time.Since(e.start).Seconds() + 0.011
}

// headSway returns the raw synthetic head yaw and position at the
// given time, before the tracking origin is applied.
func headSway(at float64) (yaw float32, pos vmath.Vec3) {
	yaw = 0.12 * float32(gomath.Sin(0.41*at))
	pos = vmath.Vec3{
		X: 0.010 * float32(gomath.Sin(0.53*at)),
		Y: 0.020 * float32(gomath.Sin(1.10*at)),
		Z: 0.015 * float32(gomath.Cos(0.71*at)),
	}
	return yaw, pos
}

// TrackingState synthesizes head and hand poses at the given time.
func (e *Emulator) TrackingState(at float64) TrackingState {
	var ts TrackingState

	if e.cfg.HeadMotion {
		rawYaw, rawPos := headSway(at)
		yaw := rawYaw - e.originYaw
		pitch := 0.06 * float32(gomath.Sin(0.23*at))
		q := vmath.QuatFromAxisAngle(vmath.Vec3{Y: 1}, yaw).
			Mul(vmath.QuatFromAxisAngle(vmath.Vec3{X: 1}, pitch))
		ts.HeadPose = Pose{
			Orientation: q.Normalize(),
			Position:    rawPos.Sub(e.originPos),
		}
	} else {
		ts.HeadPose = Pose{Orientation: vmath.QuatIdentity()}
	}

	ts.HandPoses[HandLeft] = Pose{
		Orientation: vmath.QuatIdentity(),
		Position:    vmath.Vec3{X: -0.20, Y: -0.25, Z: -0.35},
	}
	right := vmath.Vec3{X: 0.20, Y: -0.25, Z: -0.35}
	if e.cfg.HandMotion {
		right = vmath.Vec3{
			X: 0.20 + 0.10*float32(gomath.Cos(0.9*at)),
			Y: -0.25 + 0.06*float32(gomath.Sin(1.7*at)),
			Z: -0.35 + 0.10*float32(gomath.Sin(0.9*at)),
		}
	}
	ts.HandPoses[HandRight] = Pose{Orientation: vmath.QuatIdentity(), Position: right}
	ts.HandStatus[HandLeft] = StatusOrientationTracked | StatusPositionTracked
	ts.HandStatus[HandRight] = StatusOrientationTracked | StatusPositionTracked

	return ts
}

// EyePoses samples predicted per-eye poses applying the given offsets.
func (e *Emulator) EyePoses(frame uint64, offsets [2]vmath.Vec3) ([2]Pose, float64) {
	at := e.PredictedDisplayTime(frame)
	head := e.TrackingState(at).HeadPose
	rot := head.Orientation.ToMat4()

	var poses [2]Pose
	for eye := EyeLeft; eye < EyeCount; eye++ {
		poses[eye] = Pose{
			Orientation: head.Orientation,
			Position:    head.Position.Add(rot.TransformPoint(offsets[eye])),
		}
	}
	return poses, at
}

// SetInputState pushes controller state from the windowing shim.
// ok false means no controller data this frame.
func (e *Emulator) SetInputState(state InputState, ok bool) {
	e.input = state
	e.inputOK = ok
}

// InputState returns the last pushed controller state.
func (e *Emulator) InputState() (InputState, bool) {
	return e.input, e.inputOK
}

// Recenter re-bases the tracking origin on the current head pose.
func (e *Emulator) Recenter() {
	e.recenterAt(time.Since(e.start).Seconds())
	logger.Info("tracking origin recentered")
}

// recenterAt replaces the origin with the raw sway at the given time.
// The origin is assigned, never accumulated, so repeated recenters each
// zero the effective pose.
func (e *Emulator) recenterAt(at float64) {
	e.originYaw, e.originPos = headSway(at)
}

// CreateSwapChain allocates a pool of GL color textures.
func (e *Emulator) CreateSwapChain(desc SwapChainDesc) (SwapChain, error) {
	if desc.Width < 1 || desc.Height < 1 {
		return nil, fmt.Errorf("invalid swap chain size %dx%d", desc.Width, desc.Height)
	}
	length := desc.Length
	if length == 0 {
		length = e.cfg.SwapChainLength
	}
	if length < 1 || length > 8 {
		return nil, fmt.Errorf("invalid swap chain length %d", length)
	}

	sc := &glSwapChain{textures: make([]uint32, length)}
	gl.GenTextures(int32(length), &sc.textures[0])
	for _, tex := range sc.textures {
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.SRGB8_ALPHA8, desc.Width, desc.Height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	}
	gl.BindTexture(gl.TEXTURE_2D, 0)

	logger.Debug("swap chain created",
		zap.Int32("width", desc.Width),
		zap.Int32("height", desc.Height),
		zap.Int("length", length),
	)
	return sc, nil
}

// CreateMirrorTexture allocates the mirror color buffer and the FBO
// pair used to composite into it.
func (e *Emulator) CreateMirrorTexture(desc MirrorDesc) (MirrorTexture, error) {
	if desc.Width < 1 || desc.Height < 1 {
		return nil, fmt.Errorf("invalid mirror size %dx%d", desc.Width, desc.Height)
	}

	m := &glMirrorTexture{size: Sizei{W: desc.Width, H: desc.Height}}
	gl.GenTextures(1, &m.texture)
	gl.BindTexture(gl.TEXTURE_2D, m.texture)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.SRGB8_ALPHA8, desc.Width, desc.Height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(2, &e.blitFBOs[0])
	e.mirror = m

	logger.Debug("mirror texture created",
		zap.Int32("width", desc.Width),
		zap.Int32("height", desc.Height),
	)
	return m, nil
}

// SubmitFrame composites the committed swap-chain buffer into the
// mirror texture. The mirror is written top-down, matching the device
// convention the presentation layer expects.
func (e *Emulator) SubmitFrame(frame uint64, layer *LayerEyeFov) error {
	if layer == nil || layer.ColorTexture == nil {
		return fmt.Errorf("submit frame %d: no layer color texture", frame)
	}
	if e.mirror == nil {
		return nil
	}

	sc := layer.ColorTexture
	committed := (sc.CurrentIndex() - 1 + sc.Length()) % sc.Length()

	srcW := layer.Viewport[EyeLeft].W + layer.Viewport[EyeRight].W
	srcH := layer.Viewport[EyeLeft].H
	if layer.Viewport[EyeRight].H > srcH {
		srcH = layer.Viewport[EyeRight].H
	}

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, e.blitFBOs[0])
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, sc.TextureAt(committed), 0)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, e.blitFBOs[1])
	gl.FramebufferTexture2D(gl.DRAW_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, e.mirror.texture, 0)

	if status := gl.CheckFramebufferStatus(gl.READ_FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		// Per-frame GPU state errors degrade silently.
		logger.Error("mirror composite read framebuffer incomplete", zap.Uint32("status", status))
	} else {
		// Flip vertically so the mirror content is top-down.
		gl.BlitFramebuffer(0, 0, srcW, srcH,
			0, e.mirror.size.H, e.mirror.size.W, 0,
			gl.COLOR_BUFFER_BIT, gl.LINEAR)
	}

	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	return nil
}

// Close releases emulator GL resources.
func (e *Emulator) Close() {
	if e.blitFBOs[0] != 0 {
		gl.DeleteFramebuffers(2, &e.blitFBOs[0])
		e.blitFBOs = [2]uint32{}
	}
	logger.Info("HMD emulator session closed")
}

// glSwapChain is a rotating pool of GL textures.
type glSwapChain struct {
	textures []uint32
	index    int
}

func (sc *glSwapChain) Length() int {
	return len(sc.textures)
}

func (sc *glSwapChain) CurrentIndex() int {
	return sc.index
}

func (sc *glSwapChain) TextureAt(index int) uint32 {
	return sc.textures[index]
}

func (sc *glSwapChain) Commit() error {
	sc.index = (sc.index + 1) % len(sc.textures)
	return nil
}

func (sc *glSwapChain) Destroy() {
	if len(sc.textures) > 0 {
		gl.DeleteTextures(int32(len(sc.textures)), &sc.textures[0])
		sc.textures = nil
	}
}

// glMirrorTexture is a single GL color buffer.
type glMirrorTexture struct {
	texture uint32
	size    Sizei
}

func (m *glMirrorTexture) TextureID() uint32 {
	return m.texture
}

func (m *glMirrorTexture) Size() Sizei {
	return m.size
}

func (m *glMirrorTexture) Destroy() {
	if m.texture != 0 {
		gl.DeleteTextures(1, &m.texture)
		m.texture = 0
	}
}
