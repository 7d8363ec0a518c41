// Package rendertarget provides the offscreen render target for stereo
// eye buffers: a framebuffer with a fixed depth attachment whose color
// attachment is swapped every frame from a texture swap chain.
package rendertarget

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Target is a draw framebuffer with a depth renderbuffer. The color
// attachment is external and re-attached per frame.
type Target struct {
	fbo      uint32
	depthRBO uint32
	width    int32
	height   int32
}

// New creates a render target of the given size.
func New(width, height int32) (*Target, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("invalid render target size %dx%d", width, height)
	}

	t := &Target{width: width, height: height}

	gl.GenFramebuffers(1, &t.fbo)
	gl.GenRenderbuffers(1, &t.depthRBO)

	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, t.fbo)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, width, height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	gl.FramebufferRenderbuffer(gl.DRAW_FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depthRBO)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)

	return t, nil
}

// Bind makes the target the current draw framebuffer.
func (t *Target) Bind() {
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, t.fbo)
}

// AttachColor binds the target and attaches the given texture as the
// color buffer, then validates completeness.
func (t *Target) AttachColor(tex uint32) error {
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, t.fbo)
	gl.FramebufferTexture2D(gl.DRAW_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, tex, 0)

	if status := gl.CheckFramebufferStatus(gl.DRAW_FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

// DetachColor detaches the color buffer and unbinds the target.
func (t *Target) DetachColor() {
	gl.FramebufferTexture2D(gl.DRAW_FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, 0, 0)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
}

// Clear clears color and depth buffers.
func (t *Target) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Size returns the target dimensions.
func (t *Target) Size() (width, height int32) {
	return t.width, t.height
}

// Destroy releases the GL resources.
func (t *Target) Destroy() {
	if t.fbo != 0 {
		gl.DeleteFramebuffers(1, &t.fbo)
		t.fbo = 0
	}
	if t.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &t.depthRBO)
		t.depthRBO = 0
	}
}
