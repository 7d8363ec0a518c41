// Package app wires the window, the emulated HMD session, the stereo
// pipeline, and the demo scene into the main loop.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/riftdemo/internal/config"
	"github.com/Faultbox/riftdemo/internal/engine/debug"
	"github.com/Faultbox/riftdemo/internal/engine/input"
	"github.com/Faultbox/riftdemo/internal/engine/window"
	"github.com/Faultbox/riftdemo/internal/logger"
	"github.com/Faultbox/riftdemo/internal/scene"
	"github.com/Faultbox/riftdemo/internal/vr/calibration"
	"github.com/Faultbox/riftdemo/internal/vr/hmd"
	"github.com/Faultbox/riftdemo/internal/vr/pipeline"
)

// App is the demo application instance.
type App struct {
	config  *config.Config
	running bool

	window   *window.Window
	input    *input.Input
	session  *hmd.Emulator
	pipeline *pipeline.Pipeline
	scene    *scene.Scene

	cal     *calibration.State
	lagBuf  *calibration.LagBuffer
	capture *debug.ScreenshotCapture

	frame uint64
}

// New creates the application. The window and GL context come up
// first; the VR session and pipeline require a current context.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		lagBuf: calibration.NewLagBuffer(),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      "Rift Demo",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if err := gl.Init(); err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	a.session, err = hmd.NewEmulator(hmd.EmulatorConfig{
		PixelsPerTanUnit: cfg.VR.PixelsPerTanUnit,
		SwapChainLength:  cfg.VR.SwapChainLength,
		HeadMotion:       cfg.VR.HeadMotion,
		HandMotion:       cfg.VR.HandMotion,
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create HMD session: %w", err)
	}

	a.pipeline, err = pipeline.New(a.session, int32(cfg.Graphics.MirrorDivisor))
	if err != nil {
		a.session.Close()
		a.window.Close()
		return nil, fmt.Errorf("failed to create stereo pipeline: %w", err)
	}

	// The window shows the mirror 1:1.
	if !cfg.Graphics.Fullscreen {
		mw, mh := a.pipeline.MirrorSize()
		a.window.SetSize(mw, mh)
	}

	a.scene, err = scene.New()
	if err != nil {
		a.pipeline.Close()
		a.session.Close()
		a.window.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	a.cal = calibration.NewState([2]hmd.EyeRenderDesc{
		a.session.EyeRenderDesc(hmd.EyeLeft),
		a.session.EyeRenderDesc(hmd.EyeRight),
	})
	a.input = input.New()
	if !a.input.HasGamepad() {
		logger.Info("no game controller, using keyboard fallback")
	}
	a.capture = debug.NewScreenshotCapture("screenshots", "riftdemo")

	logger.Info("application initialized")
	return a, nil
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting main loop")

	for a.running {
		// 1. Process window events
		if a.input.Update() {
			a.running = false
			break
		}
		for _, event := range a.input.Events() {
			if event.Type != input.EventKeyDown {
				continue
			}
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				a.running = false
			case sdl.SCANCODE_R:
				a.session.Recenter()
			case sdl.SCANCODE_F12:
				a.screenshot()
			}
		}

		// 2. Feed controller (or keyboard fallback) into the session,
		// then the calibration state.
		a.session.SetInputState(a.controllerState())
		if in, ok := a.session.InputState(); ok {
			a.cal.Apply(in)
		}
		a.cal.Advance()

		// 3. Hand cursor with simulated tracking lag.
		ts := a.session.TrackingState(a.session.PredictedDisplayTime(a.frame))
		a.lagBuf.Push(ts.HandPoses[hmd.HandRight].Position)
		cursor := a.lagBuf.Pop(a.cal.TrackingLag())
		tracked := ts.HandStatus[hmd.HandRight]&hmd.StatusPositionTracked != 0
		a.scene.SetCursor(cursor, tracked)
		a.scene.SetCubeScale(a.cal.CubeScale())
		a.scene.SetContent(a.cal.Content())

		// 4. Render and present
		if err := a.pipeline.Frame(a.frame, a.cal, a.scene); err != nil {
			return fmt.Errorf("frame %d: %w", a.frame, err)
		}
		a.window.SwapBuffers()
		a.frame++

		// FPS counter
		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.window.SetTitle(fmt.Sprintf("Rift Demo - %d fps", frameCount))
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// controllerState builds the session input from the gamepad, falling
// back to the keyboard when none is connected.
func (a *App) controllerState() (hmd.InputState, bool) {
	if gp, ok := a.input.Gamepad(); ok {
		return mapGamepad(gp), true
	}
	return a.keyboardState(), true
}

// screenshot saves the current mirror texture as a PNG.
func (a *App) screenshot() {
	mirror := a.pipeline.Mirror()
	size := mirror.Size()

	pixels := make([]byte, int(size.W)*int(size.H)*4)
	gl.BindTexture(gl.TEXTURE_2D, mirror.TextureID())
	gl.GetTexImage(gl.TEXTURE_2D, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindTexture(gl.TEXTURE_2D, 0)

	// Mirror rows are already top-down.
	path, err := a.capture.CaptureFromPixels(pixels, int(size.W), int(size.H))
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up application resources.
func (a *App) Close() {
	logger.Info("closing application")

	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.pipeline != nil {
		a.pipeline.Close()
	}
	if a.session != nil {
		a.session.Close()
	}
	if a.input != nil {
		a.input.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
