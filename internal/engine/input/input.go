// Package input handles SDL2 input events and gamepad polling.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/riftdemo/internal/logger"
)

// Event types for application use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type EventType
	Key  sdl.Scancode
}

// GamepadState is one poll of the first connected game controller.
// Triggers are in [0, 1]; sticks in [-1, 1].
type GamepadState struct {
	LeftTrigger   float32
	RightTrigger  float32
	LeftShoulder  bool
	RightShoulder bool

	A, B, X, Y      bool
	LeftStickClick  bool
	RightStickClick bool

	LeftStickX, LeftStickY   float32
	RightStickX, RightStickY float32
}

// Input handles event processing and gamepad state.
type Input struct {
	events     []Event
	controller *sdl.GameController
	held       map[sdl.Scancode]bool
}

// New creates a new input handler and opens the first game controller
// already attached, if any.
func New() *Input {
	in := &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
	for i := 0; i < sdl.NumJoysticks(); i++ {
		if sdl.IsGameController(i) {
			in.openController(i)
			break
		}
	}
	return in
}

func (i *Input) openController(index int) {
	if i.controller != nil {
		return
	}
	c := sdl.GameControllerOpen(index)
	if c == nil {
		logger.Warn("failed to open game controller", zap.Int("index", index))
		return
	}
	i.controller = c
	logger.Info("game controller connected", zap.String("name", c.Name()))
}

// Update polls SDL events. Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0] // Clear previous events

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
				i.held[e.Keysym.Scancode] = true
			} else if e.Type == sdl.KEYUP {
				i.events = append(i.events, Event{Type: EventKeyUp, Key: e.Keysym.Scancode})
				delete(i.held, e.Keysym.Scancode)
			}

		case *sdl.ControllerDeviceEvent:
			switch e.Type {
			case sdl.CONTROLLERDEVICEADDED:
				i.openController(int(e.Which))
			case sdl.CONTROLLERDEVICEREMOVED:
				if i.controller != nil && i.controller.Joystick().InstanceID() == e.Which {
					i.controller.Close()
					i.controller = nil
					logger.Info("game controller disconnected")
				}
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyHeld checks if a key is currently held down.
func (i *Input) IsKeyHeld(scancode sdl.Scancode) bool {
	return i.held[scancode]
}

// HasGamepad reports whether a game controller is connected.
func (i *Input) HasGamepad() bool {
	return i.controller != nil
}

// Gamepad samples the connected controller. ok is false when none is
// connected.
func (i *Input) Gamepad() (GamepadState, bool) {
	if i.controller == nil {
		return GamepadState{}, false
	}
	c := i.controller

	axis := func(a sdl.GameControllerAxis) float32 {
		return float32(c.Axis(a)) / 32767.0
	}
	pressed := func(b sdl.GameControllerButton) bool {
		return c.Button(b) == sdl.PRESSED
	}

	return GamepadState{
		LeftTrigger:   axis(sdl.CONTROLLER_AXIS_TRIGGERLEFT),
		RightTrigger:  axis(sdl.CONTROLLER_AXIS_TRIGGERRIGHT),
		LeftShoulder:  pressed(sdl.CONTROLLER_BUTTON_LEFTSHOULDER),
		RightShoulder: pressed(sdl.CONTROLLER_BUTTON_RIGHTSHOULDER),

		A: pressed(sdl.CONTROLLER_BUTTON_A),
		B: pressed(sdl.CONTROLLER_BUTTON_B),
		X: pressed(sdl.CONTROLLER_BUTTON_X),
		Y: pressed(sdl.CONTROLLER_BUTTON_Y),

		LeftStickClick:  pressed(sdl.CONTROLLER_BUTTON_LEFTSTICK),
		RightStickClick: pressed(sdl.CONTROLLER_BUTTON_RIGHTSTICK),

		LeftStickX:  axis(sdl.CONTROLLER_AXIS_LEFTX),
		LeftStickY:  -axis(sdl.CONTROLLER_AXIS_LEFTY),
		RightStickX: axis(sdl.CONTROLLER_AXIS_RIGHTX),
		RightStickY: -axis(sdl.CONTROLLER_AXIS_RIGHTY),
	}, true
}

// Close releases the opened controller.
func (i *Input) Close() {
	if i.controller != nil {
		i.controller.Close()
		i.controller = nil
	}
}
