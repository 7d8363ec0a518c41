// Package pipeline implements the per-frame stereo presentation
// protocol: predicted pose acquisition, render-lag freezing, pose
// stabilization, per-eye draw dispatch into the swap-chain texture,
// compositor submission, and the on-screen mirror blit.
package pipeline

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/riftdemo/internal/engine/rendertarget"
	"github.com/Faultbox/riftdemo/internal/logger"
	"github.com/Faultbox/riftdemo/internal/vr/calibration"
	"github.com/Faultbox/riftdemo/internal/vr/hmd"
	vmath "github.com/Faultbox/riftdemo/pkg/math"
)

// Near and far clip planes, in world units.
const (
	nearClip = 0.01
	farClip  = 1000.0
)

// The window mirror defaults to a quarter of the render target
// resolution.
const defaultMirrorDivisor = 4

// SceneRenderer draws the scene for one eye. Implementations must not
// change the framebuffer binding or the viewport.
type SceneRenderer interface {
	Draw(projection, view vmath.Mat4, leftEye bool)
}

// Pipeline owns the per-eye projections and render descriptors, the
// swap-chain render target, and the mirror surface, and runs the
// fixed-order frame phases.
type Pipeline struct {
	session hmd.Session

	descs       [2]hmd.EyeRenderDesc
	projections [2]vmath.Mat4
	baseOffsets [2]vmath.Vec3
	viewports   [2]hmd.Recti
	targetSize  hmd.Sizei
	mirrorSize  hmd.Sizei

	swapChain hmd.SwapChain
	target    *rendertarget.Target
	mirror    hmd.MirrorTexture
	mirrorFBO uint32

	layer hmd.LayerEyeFov

	freeze    freezeState
	prevPoses [2]vmath.Mat4
	havePrev  bool
}

// New builds the pipeline against a device session. mirrorDivisor
// scales the eye buffer down to the on-screen mirror; values below 1
// fall back to the default. The GL context must be current. Any device
// or GL failure here is fatal: the application must not start without
// a working presentation path.
func New(session hmd.Session, mirrorDivisor int32) (*Pipeline, error) {
	p := &Pipeline{session: session}
	if mirrorDivisor < 1 {
		mirrorDivisor = defaultMirrorDivisor
	}

	var eyeSizes [2]hmd.Sizei
	for eye := hmd.EyeLeft; eye < hmd.EyeCount; eye++ {
		p.descs[eye] = session.EyeRenderDesc(eye)
		p.projections[eye] = hmd.Projection(p.descs[eye].Fov, nearClip, farClip)
		p.baseOffsets[eye] = p.descs[eye].HmdToEyeOffset
		p.layer.Fov[eye] = p.descs[eye].Fov
		eyeSizes[eye] = session.FovTextureSize(eye, p.descs[eye].Fov, 1.0)
	}

	p.targetSize, p.viewports = packViewports(eyeSizes)
	p.layer.Viewport = p.viewports
	p.mirrorSize = hmd.Sizei{W: p.targetSize.W / mirrorDivisor, H: p.targetSize.H / mirrorDivisor}
	if p.mirrorSize.W < 1 || p.mirrorSize.H < 1 {
		return nil, fmt.Errorf("mirror divisor %d too large for %dx%d target",
			mirrorDivisor, p.targetSize.W, p.targetSize.H)
	}

	var err error
	p.swapChain, err = session.CreateSwapChain(hmd.SwapChainDesc{
		Width:  p.targetSize.W,
		Height: p.targetSize.H,
	})
	if err != nil {
		return nil, fmt.Errorf("creating swap chain: %w", err)
	}
	p.layer.ColorTexture = p.swapChain

	p.target, err = rendertarget.New(p.targetSize.W, p.targetSize.H)
	if err != nil {
		p.swapChain.Destroy()
		return nil, fmt.Errorf("creating render target: %w", err)
	}
	// Validate completeness once with a real color attachment; a
	// broken framebuffer must fail startup, not the frame loop.
	if err := p.target.AttachColor(p.swapChain.TextureAt(0)); err != nil {
		p.destroyGL()
		return nil, fmt.Errorf("validating render target: %w", err)
	}
	p.target.DetachColor()

	p.mirror, err = session.CreateMirrorTexture(hmd.MirrorDesc{
		Width:  p.mirrorSize.W,
		Height: p.mirrorSize.H,
	})
	if err != nil {
		p.destroyGL()
		return nil, fmt.Errorf("creating mirror texture: %w", err)
	}
	gl.GenFramebuffers(1, &p.mirrorFBO)

	logger.Info("stereo pipeline ready",
		zap.Int32("target_width", p.targetSize.W),
		zap.Int32("target_height", p.targetSize.H),
		zap.Int32("mirror_width", p.mirrorSize.W),
		zap.Int32("mirror_height", p.mirrorSize.H),
		zap.Int("swapchain_length", p.swapChain.Length()),
	)
	return p, nil
}

// MirrorSize returns the on-screen mirror resolution; the window is
// sized to it.
func (p *Pipeline) MirrorSize() (width, height int32) {
	return p.mirrorSize.W, p.mirrorSize.H
}

// Mirror exposes the mirror texture for screenshot capture.
func (p *Pipeline) Mirror() hmd.MirrorTexture {
	return p.mirror
}

// Frame runs one iteration of the presentation protocol and hands the
// result to the compositor. frame is the monotonically increasing
// frame counter.
func (p *Pipeline) Frame(frame uint64, cal *calibration.State, scene SceneRenderer) error {
	// Phase 1: predicted per-eye poses, with the interocular override
	// applied to the head-to-eye offsets.
	offsets := cal.EyeOffsets(p.baseOffsets)
	eyePoses, sampleTime := p.session.EyePoses(frame, offsets)

	fresh := [2]vmath.Mat4{
		eyePoses[hmd.EyeLeft].Matrix(),
		eyePoses[hmd.EyeRight].Matrix(),
	}

	// Phase 2: render-lag freeze.
	poses, projections := p.freeze.advance(cal.RenderLag(), fresh, p.projections)

	// Phase 3: stabilization against the previous frame's poses.
	if mode := cal.Stabilization(); mode != calibration.StabilizeOff && p.havePrev {
		for eye := hmd.EyeLeft; eye < hmd.EyeCount; eye++ {
			poses[eye] = stabilize(mode, poses[eye], p.prevPoses[eye])
		}
	}

	// Phase 4: per-eye draw dispatch, left then right.
	current := p.swapChain.CurrentIndex()
	if err := p.target.AttachColor(p.swapChain.TextureAt(current)); err != nil {
		// Mid-session GPU state errors degrade silently.
		logger.Error("render target attach failed", zap.Uint64("frame", frame), zap.Error(err))
	}
	p.target.Clear()

	for eye := hmd.EyeLeft; eye < hmd.EyeCount; eye++ {
		vp := p.viewports[eye]
		gl.Viewport(vp.X, vp.Y, vp.W, vp.H)
		p.layer.RenderPose[eye] = eyePoses[eye]

		src, draw := selectSource(cal.Mapping(), eye)
		if !draw {
			continue
		}

		pose := poses[src]
		if cal.AlternateRotation() {
			pose = reworkRotation(pose)
		}
		scene.Draw(projections[src], pose.Inverse(), src == hmd.EyeLeft)
	}

	p.target.DetachColor()

	// Phase 5: commit and submit.
	if err := p.swapChain.Commit(); err != nil {
		return fmt.Errorf("committing swap chain: %w", err)
	}
	p.layer.HmdToEyeOffset = offsets
	p.layer.SensorSampleTime = sampleTime
	if err := p.session.SubmitFrame(frame, &p.layer); err != nil {
		return fmt.Errorf("submitting frame %d: %w", frame, err)
	}

	// Phase 6: mirror blit to the window framebuffer, flipped
	// vertically: the device mirror is top-down, the screen bottom-up.
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, p.mirrorFBO)
	gl.FramebufferTexture2D(gl.READ_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, p.mirror.TextureID(), 0)
	gl.BlitFramebuffer(0, 0, p.mirrorSize.W, p.mirrorSize.H,
		0, p.mirrorSize.H, p.mirrorSize.W, 0,
		gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)

	// Phase 7: pose history for the next frame's freeze/stabilization.
	p.prevPoses = poses
	p.havePrev = true

	return nil
}

// Close releases the pipeline's GL and device resources.
func (p *Pipeline) Close() {
	p.destroyGL()
	logger.Info("stereo pipeline closed")
}

func (p *Pipeline) destroyGL() {
	if p.mirrorFBO != 0 {
		gl.DeleteFramebuffers(1, &p.mirrorFBO)
		p.mirrorFBO = 0
	}
	if p.mirror != nil {
		p.mirror.Destroy()
		p.mirror = nil
	}
	if p.target != nil {
		p.target.Destroy()
		p.target = nil
	}
	if p.swapChain != nil {
		p.swapChain.Destroy()
		p.swapChain = nil
	}
}
