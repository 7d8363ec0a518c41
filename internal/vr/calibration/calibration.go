// Package calibration holds the runtime-adjustable stereo calibration
// state: interocular distance, simulated tracking and rendering lag,
// stereo eye mapping, pose stabilization, and scene tweaks. It is
// driven by controller input once per frame and read by the
// presentation pipeline.
package calibration

import (
	"go.uber.org/zap"

	"github.com/Faultbox/riftdemo/internal/logger"
	"github.com/Faultbox/riftdemo/internal/vr/hmd"
	vmath "github.com/Faultbox/riftdemo/pkg/math"
)

// EyeMapping selects which eye's rendered content is shown in which
// physical eye slot. Cycled by the A button.
type EyeMapping int

const (
	// MappingStereo renders each eye's own view.
	MappingStereo EyeMapping = iota
	// MappingMonoLeft shows the left view in both eye slots.
	MappingMonoLeft
	// MappingLeftOnly renders only the left eye slot.
	MappingLeftOnly
	// MappingRightOnly renders only the right eye slot.
	MappingRightOnly
	// MappingSwapped shows each eye the other eye's view.
	MappingSwapped

	mappingCount
)

// Stabilization overrides part of the freshly sampled head pose with
// the previous frame's. Cycled by the B button.
type Stabilization int

const (
	// StabilizeOff tracks the head normally.
	StabilizeOff Stabilization = iota
	// StabilizePosition freezes translation; orientation still tracks.
	StabilizePosition
	// StabilizeOrientation freezes orientation; translation still tracks.
	StabilizeOrientation
	// StabilizeAll freezes the entire pose.
	StabilizeAll

	stabilizationCount
)

// SceneContent selects which parts of the demo scene are drawn.
// Cycled by the X button.
type SceneContent int

const (
	// ContentCubesAndSky draws the cubes and the per-eye skybox.
	ContentCubesAndSky SceneContent = iota
	// ContentSkyOnly draws only the per-eye skybox.
	ContentSkyOnly
	// ContentLeftSkyOnly draws the left skybox into both eyes.
	ContentLeftSkyOnly
	// ContentCustomSky draws the alternate skybox.
	ContentCustomSky

	sceneContentCount
)

// stepTarget is the per-frame direction for a continuously adjusted
// value; recomputed from thumbstick state every frame.
type stepTarget int

const (
	targetHold stepTarget = iota
	targetDecrease
	targetIncrease
	targetReset
)

// Adjustment limits.
const (
	iodStep      = 0.01
	iodMax       = 0.3
	maxTrackLag  = LagCapacity - 1
	maxRenderLag = 10

	cubeScaleDefault = 0.1
	cubeScaleMin     = 0.01
	cubeScaleMax     = 0.5
	cubeShrinkFactor = 0.99
	cubeGrowFactor   = 1.01
)

// State is the process-wide calibration state. It is owned and mutated
// by the render-loop thread only.
type State struct {
	// Interocular distance override. iod approaches its per-frame
	// target by one fixed step; iodOrigin is the device-reported value
	// restored on reset.
	iod       float64
	iodOrigin float64
	iodTarget stepTarget

	trackLag  int
	renderLag int

	mapping       EyeMapping
	stabilization Stabilization
	content       SceneContent
	altRotation   bool

	cubeScale  float32
	cubeTarget stepTarget

	// Edge-trigger latches: discrete adjustments fire once per press
	// and stay suppressed while the triggering input remains held.
	triggerHeld bool
	buttonHeld  bool

	// Thumbstick deflection below this is treated as centered.
	deadzone float32
}

// NewState builds calibration state from the device's per-eye offsets.
// The recorded interocular distance is restored on reset.
func NewState(descs [2]hmd.EyeRenderDesc) *State {
	iod := float64(descs[hmd.EyeRight].HmdToEyeOffset.X - descs[hmd.EyeLeft].HmdToEyeOffset.X)
	if iod < 0 {
		iod = -iod
	}
	return &State{
		iod:       iod,
		iodOrigin: iod,
		cubeScale: cubeScaleDefault,
		deadzone:  0.1,
	}
}

// Apply dispatches one frame's raw controller state into the
// calibration fields. Trigger- and button-driven adjustments are
// edge-triggered; thumbstick-driven targets are continuous while held.
func (s *State) Apply(in hmd.InputState) {
	// Release the trigger latch only when every trigger is idle.
	if in.IndexTrigger[hmd.HandLeft] < 0.01 && in.IndexTrigger[hmd.HandRight] < 0.01 &&
		in.HandTrigger[hmd.HandLeft] < 0.01 && in.HandTrigger[hmd.HandRight] < 0.01 {
		s.triggerHeld = false
	}

	switch {
	case in.IndexTrigger[hmd.HandLeft] > 0.1 && s.trackLag > 0 && !s.triggerHeld:
		s.triggerHeld = true
		s.trackLag--
		logger.Info("tracking lag changed", zap.Int("frames", s.trackLag))
	case in.IndexTrigger[hmd.HandRight] > 0.1 && s.trackLag < maxTrackLag && !s.triggerHeld:
		s.triggerHeld = true
		s.trackLag++
		logger.Info("tracking lag changed", zap.Int("frames", s.trackLag))
	case in.HandTrigger[hmd.HandLeft] > 0.1 && s.renderLag > 0 && !s.triggerHeld:
		s.triggerHeld = true
		s.renderLag--
		logger.Info("rendering delay changed", zap.Int("frames", s.renderLag))
	case in.HandTrigger[hmd.HandRight] > 0.1 && s.renderLag < maxRenderLag && !s.triggerHeld:
		s.triggerHeld = true
		s.renderLag++
		logger.Info("rendering delay changed", zap.Int("frames", s.renderLag))
	}

	// Interocular distance target from the right thumbstick; reset on
	// stick click. Recomputed every frame, so holding the stick keeps
	// stepping.
	switch {
	case in.Thumbstick[hmd.HandRight].X < -s.deadzone:
		s.iodTarget = targetDecrease
	case in.Thumbstick[hmd.HandRight].X > s.deadzone:
		s.iodTarget = targetIncrease
	case in.Buttons&hmd.ButtonRThumb != 0:
		s.iodTarget = targetReset
	}

	// Cube size target from the left thumbstick.
	s.cubeTarget = targetHold
	switch {
	case in.Thumbstick[hmd.HandLeft].X < -s.deadzone:
		s.cubeTarget = targetDecrease
	case in.Thumbstick[hmd.HandLeft].X > s.deadzone:
		s.cubeTarget = targetIncrease
	case in.Buttons&hmd.ButtonLThumb != 0:
		s.cubeTarget = targetReset
	}

	if in.Buttons == 0 {
		s.buttonHeld = false
	}

	switch {
	case in.Buttons&hmd.ButtonA != 0 && !s.buttonHeld:
		s.buttonHeld = true
		s.mapping = (s.mapping + 1) % mappingCount
		logger.Info("eye mapping changed", zap.Int("mode", int(s.mapping)))
	case in.Buttons&hmd.ButtonB != 0 && !s.buttonHeld:
		s.buttonHeld = true
		s.stabilization = (s.stabilization + 1) % stabilizationCount
		logger.Info("stabilization changed", zap.Int("mode", int(s.stabilization)))
	case in.Buttons&hmd.ButtonX != 0 && !s.buttonHeld:
		s.buttonHeld = true
		s.content = (s.content + 1) % sceneContentCount
		logger.Info("scene content changed", zap.Int("mode", int(s.content)))
	case in.Buttons&hmd.ButtonY != 0 && !s.buttonHeld:
		s.buttonHeld = true
		s.altRotation = !s.altRotation
		logger.Info("alternate rotation toggled", zap.Bool("on", s.altRotation))
	}
}

// Advance applies one frame of continuous evolution: one interocular
// distance step toward its target and one cube-scale step. Per-frame
// targets reset to hold afterwards.
func (s *State) Advance() {
	switch s.iodTarget {
	case targetIncrease:
		s.iod += iodStep
		if s.iod > iodMax {
			s.iod = iodMax
		}
	case targetDecrease:
		s.iod -= iodStep
		if s.iod < -iodMax {
			s.iod = -iodMax
		}
	case targetReset:
		s.iod = s.iodOrigin
	}
	s.iodTarget = targetHold

	switch s.cubeTarget {
	case targetDecrease:
		if s.cubeScale > cubeScaleMin {
			s.cubeScale *= cubeShrinkFactor
		}
	case targetIncrease:
		if s.cubeScale < cubeScaleMax {
			s.cubeScale *= cubeGrowFactor
		}
	case targetReset:
		s.cubeScale = cubeScaleDefault
	}
	s.cubeTarget = targetHold
}

// EyeOffsets applies the interocular override to the device-reported
// head-to-eye offsets: the eyes sit at ±iod/2 on the head X axis.
func (s *State) EyeOffsets(base [2]vmath.Vec3) [2]vmath.Vec3 {
	out := base
	out[hmd.EyeLeft].X = float32(-s.iod / 2)
	out[hmd.EyeRight].X = float32(s.iod / 2)
	return out
}

// IOD returns the current interocular distance.
func (s *State) IOD() float64 { return s.iod }

// TrackingLag returns the hand-cursor delay in frames, within the
// LagBuffer's valid range.
func (s *State) TrackingLag() int { return s.trackLag }

// RenderLag returns the head-pose hold duration in frames.
func (s *State) RenderLag() int { return s.renderLag }

// Mapping returns the stereo eye mapping mode.
func (s *State) Mapping() EyeMapping { return s.mapping }

// Stabilization returns the pose stabilization mode.
func (s *State) Stabilization() Stabilization { return s.stabilization }

// Content returns the scene content mode.
func (s *State) Content() SceneContent { return s.content }

// AlternateRotation reports whether the reworked head rotation is on.
func (s *State) AlternateRotation() bool { return s.altRotation }

// CubeScale returns the current cube edge scale.
func (s *State) CubeScale() float32 { return s.cubeScale }
