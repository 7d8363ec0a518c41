// Package scene renders the demo content: two floating cubes, a
// distinct procedural skybox per eye, and a small cursor cube that
// follows the (optionally lag-delayed) right hand.
package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/riftdemo/internal/engine/shader"
	"github.com/Faultbox/riftdemo/internal/logger"
	"github.com/Faultbox/riftdemo/internal/vr/calibration"
	vmath "github.com/Faultbox/riftdemo/pkg/math"
)

const (
	skyFaceSize    = 256
	skyFaceSquares = 8
	skyScale       = 5.0
	cursorScale    = 0.02
)

// The two demo cubes sit straight ahead at different depths.
var cubePositions = []vmath.Vec3{
	{Z: -0.3},
	{Z: -0.9},
}

var cubeColors = [][3]float32{
	{0.85, 0.35, 0.25},
	{0.30, 0.55, 0.85},
}

// Scene owns the GL resources for the demo content. Per-frame state
// (cube scale, content mode, cursor position) is pushed in by the
// application before rendering.
type Scene struct {
	cubeProg uint32
	skyProg  uint32

	cubeVAO uint32
	cubeVBO uint32

	leftSky   uint32
	rightSky  uint32
	customSky uint32

	cubeProjLoc  int32
	cubeViewLoc  int32
	cubeModelLoc int32
	cubeColorLoc int32
	skyProjLoc   int32
	skyViewLoc   int32
	skyModelLoc  int32
	skyTexLoc    int32

	cubeScale  float32
	content    calibration.SceneContent
	cursor     vmath.Vec3
	showCursor bool
}

// New compiles the scene shaders and builds the cube mesh and the
// procedural sky cubemaps. The GL context must be current.
func New() (*Scene, error) {
	s := &Scene{cubeScale: 0.1}

	var err error
	s.cubeProg, err = shader.CompileProgram(cubeVertexSrc, cubeFragmentSrc)
	if err != nil {
		return nil, fmt.Errorf("compiling cube shader: %w", err)
	}
	s.skyProg, err = shader.CompileProgram(skyVertexSrc, skyFragmentSrc)
	if err != nil {
		gl.DeleteProgram(s.cubeProg)
		return nil, fmt.Errorf("compiling sky shader: %w", err)
	}

	s.cubeProjLoc = shader.MustGetUniform(s.cubeProg, "proj")
	s.cubeViewLoc = shader.MustGetUniform(s.cubeProg, "view")
	s.cubeModelLoc = shader.MustGetUniform(s.cubeProg, "model")
	s.cubeColorLoc = shader.MustGetUniform(s.cubeProg, "color")
	s.skyProjLoc = shader.MustGetUniform(s.skyProg, "proj")
	s.skyViewLoc = shader.MustGetUniform(s.skyProg, "view")
	s.skyModelLoc = shader.MustGetUniform(s.skyProg, "model")
	s.skyTexLoc = shader.MustGetUniform(s.skyProg, "sky")

	gl.GenVertexArrays(1, &s.cubeVAO)
	gl.GenBuffers(1, &s.cubeVBO)
	gl.BindVertexArray(s.cubeVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.cubeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*4, gl.Ptr(cubeVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(3*4))
	gl.BindVertexArray(0)

	// Each eye gets its own sky palette so the stereo eye-mapping
	// modes are visually obvious.
	s.leftSky = buildSkyCubemap([4]uint8{40, 70, 160, 255}, [4]uint8{200, 210, 235, 255})
	s.rightSky = buildSkyCubemap([4]uint8{40, 140, 80, 255}, [4]uint8{210, 235, 205, 255})
	s.customSky = buildSkyCubemap([4]uint8{190, 110, 30, 255}, [4]uint8{245, 225, 190, 255})

	logger.Info("scene created")
	return s, nil
}

func buildSkyCubemap(a, b [4]uint8) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, tex)

	face := checkerFace(skyFaceSize, skyFaceSquares, a, b)
	for i := 0; i < 6; i++ {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA8,
			skyFaceSize, skyFaceSize, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(face))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return tex
}

// SetCubeScale sets the edge scale of the demo cubes.
func (s *Scene) SetCubeScale(scale float32) {
	s.cubeScale = scale
}

// SetContent sets which parts of the scene are drawn.
func (s *Scene) SetContent(content calibration.SceneContent) {
	s.content = content
}

// SetCursor places the hand cursor. show false hides it, used when the
// hand is not tracked.
func (s *Scene) SetCursor(pos vmath.Vec3, show bool) {
	s.cursor = pos
	s.showCursor = show
}

// skyFor picks the cubemap for one eye under the current content mode.
func (s *Scene) skyFor(leftEye bool) uint32 {
	switch s.content {
	case calibration.ContentLeftSkyOnly:
		return s.leftSky
	case calibration.ContentCustomSky:
		return s.customSky
	default:
		if leftEye {
			return s.leftSky
		}
		return s.rightSky
	}
}

// Draw renders the scene for one eye. The framebuffer and viewport are
// already set by the caller and are left untouched.
func (s *Scene) Draw(projection, view vmath.Mat4, leftEye bool) {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	// Sky first: an inside-viewed cube around the origin.
	gl.UseProgram(s.skyProg)
	gl.UniformMatrix4fv(s.skyProjLoc, 1, false, projection.Ptr())
	gl.UniformMatrix4fv(s.skyViewLoc, 1, false, view.Ptr())
	model := vmath.Scale(skyScale, skyScale, skyScale)
	gl.UniformMatrix4fv(s.skyModelLoc, 1, false, model.Ptr())
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, s.skyFor(leftEye))
	gl.Uniform1i(s.skyTexLoc, 0)
	gl.BindVertexArray(s.cubeVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)

	gl.UseProgram(s.cubeProg)
	gl.UniformMatrix4fv(s.cubeProjLoc, 1, false, projection.Ptr())
	gl.UniformMatrix4fv(s.cubeViewLoc, 1, false, view.Ptr())

	if s.content == calibration.ContentCubesAndSky {
		for i, pos := range cubePositions {
			m := vmath.Translate(pos.X, pos.Y, pos.Z).Mul(vmath.Scale(s.cubeScale, s.cubeScale, s.cubeScale))
			gl.UniformMatrix4fv(s.cubeModelLoc, 1, false, m.Ptr())
			gl.Uniform3f(s.cubeColorLoc, cubeColors[i][0], cubeColors[i][1], cubeColors[i][2])
			gl.DrawArrays(gl.TRIANGLES, 0, 36)
		}
	}

	if s.showCursor {
		m := vmath.Translate(s.cursor.X, s.cursor.Y, s.cursor.Z).Mul(vmath.Scale(cursorScale, cursorScale, cursorScale))
		gl.UniformMatrix4fv(s.cubeModelLoc, 1, false, m.Ptr())
		gl.Uniform3f(s.cubeColorLoc, 0.95, 0.9, 0.2)
		gl.DrawArrays(gl.TRIANGLES, 0, 36)
	}

	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Destroy releases the scene's GL resources.
func (s *Scene) Destroy() {
	gl.DeleteVertexArrays(1, &s.cubeVAO)
	gl.DeleteBuffers(1, &s.cubeVBO)
	gl.DeleteTextures(1, &s.leftSky)
	gl.DeleteTextures(1, &s.rightSky)
	gl.DeleteTextures(1, &s.customSky)
	gl.DeleteProgram(s.cubeProg)
	gl.DeleteProgram(s.skyProg)
}
