package app

import (
	"testing"

	"github.com/Faultbox/riftdemo/internal/engine/input"
	"github.com/Faultbox/riftdemo/internal/vr/hmd"
)

func TestMapGamepadButtons(t *testing.T) {
	gp := input.GamepadState{A: true, Y: true, RightStickClick: true}
	in := mapGamepad(gp)

	want := hmd.ButtonA | hmd.ButtonY | hmd.ButtonRThumb
	if in.Buttons != want {
		t.Errorf("buttons = %#x, want %#x", in.Buttons, want)
	}
}

func TestMapGamepadTriggers(t *testing.T) {
	gp := input.GamepadState{
		LeftTrigger:   0.4,
		RightTrigger:  0.9,
		LeftShoulder:  true,
		RightShoulder: false,
	}
	in := mapGamepad(gp)

	if in.IndexTrigger[hmd.HandLeft] != 0.4 || in.IndexTrigger[hmd.HandRight] != 0.9 {
		t.Errorf("index triggers = %v, want [0.4 0.9]", in.IndexTrigger)
	}
	// Shoulders map to binary grip triggers.
	if in.HandTrigger[hmd.HandLeft] != 1 || in.HandTrigger[hmd.HandRight] != 0 {
		t.Errorf("hand triggers = %v, want [1 0]", in.HandTrigger)
	}
}

func TestMapGamepadSticks(t *testing.T) {
	gp := input.GamepadState{
		LeftStickX:  -0.5,
		LeftStickY:  0.25,
		RightStickX: 1,
		RightStickY: -1,
	}
	in := mapGamepad(gp)

	if in.Thumbstick[hmd.HandLeft].X != -0.5 || in.Thumbstick[hmd.HandLeft].Y != 0.25 {
		t.Errorf("left stick = %+v", in.Thumbstick[hmd.HandLeft])
	}
	if in.Thumbstick[hmd.HandRight].X != 1 || in.Thumbstick[hmd.HandRight].Y != -1 {
		t.Errorf("right stick = %+v", in.Thumbstick[hmd.HandRight])
	}
}

func TestMapGamepadIdle(t *testing.T) {
	in := mapGamepad(input.GamepadState{})
	if in != (hmd.InputState{}) {
		t.Errorf("idle gamepad should map to zero input state, got %+v", in)
	}
}
