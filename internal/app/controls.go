package app

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/riftdemo/internal/engine/input"
	"github.com/Faultbox/riftdemo/internal/vr/hmd"
)

// mapGamepad translates an SDL game controller sample into the HMD
// controller layout. The shoulder buttons stand in for the grip
// triggers, which plain gamepads lack as analog inputs.
func mapGamepad(gp input.GamepadState) hmd.InputState {
	var in hmd.InputState

	in.IndexTrigger[hmd.HandLeft] = gp.LeftTrigger
	in.IndexTrigger[hmd.HandRight] = gp.RightTrigger
	if gp.LeftShoulder {
		in.HandTrigger[hmd.HandLeft] = 1
	}
	if gp.RightShoulder {
		in.HandTrigger[hmd.HandRight] = 1
	}

	in.Thumbstick[hmd.HandLeft].X = gp.LeftStickX
	in.Thumbstick[hmd.HandLeft].Y = gp.LeftStickY
	in.Thumbstick[hmd.HandRight].X = gp.RightStickX
	in.Thumbstick[hmd.HandRight].Y = gp.RightStickY

	if gp.A {
		in.Buttons |= hmd.ButtonA
	}
	if gp.B {
		in.Buttons |= hmd.ButtonB
	}
	if gp.X {
		in.Buttons |= hmd.ButtonX
	}
	if gp.Y {
		in.Buttons |= hmd.ButtonY
	}
	if gp.LeftStickClick {
		in.Buttons |= hmd.ButtonLThumb
	}
	if gp.RightStickClick {
		in.Buttons |= hmd.ButtonRThumb
	}

	return in
}

// Keyboard fallback layout:
//
//	A B X Y     mode buttons
//	, .         interocular distance down / up
//	[ ]         cube size down / up
//	1 2         tracking lag down / up
//	3 4         rendering delay down / up
//	9 0         cube size / interocular distance reset
func (a *App) keyboardState() hmd.InputState {
	var in hmd.InputState
	held := a.input.IsKeyHeld

	if held(sdl.SCANCODE_A) {
		in.Buttons |= hmd.ButtonA
	}
	if held(sdl.SCANCODE_B) {
		in.Buttons |= hmd.ButtonB
	}
	if held(sdl.SCANCODE_X) {
		in.Buttons |= hmd.ButtonX
	}
	if held(sdl.SCANCODE_Y) {
		in.Buttons |= hmd.ButtonY
	}
	if held(sdl.SCANCODE_9) {
		in.Buttons |= hmd.ButtonLThumb
	}
	if held(sdl.SCANCODE_0) {
		in.Buttons |= hmd.ButtonRThumb
	}

	if held(sdl.SCANCODE_COMMA) {
		in.Thumbstick[hmd.HandRight].X = -1
	}
	if held(sdl.SCANCODE_PERIOD) {
		in.Thumbstick[hmd.HandRight].X = 1
	}
	if held(sdl.SCANCODE_LEFTBRACKET) {
		in.Thumbstick[hmd.HandLeft].X = -1
	}
	if held(sdl.SCANCODE_RIGHTBRACKET) {
		in.Thumbstick[hmd.HandLeft].X = 1
	}

	if held(sdl.SCANCODE_1) {
		in.IndexTrigger[hmd.HandLeft] = 1
	}
	if held(sdl.SCANCODE_2) {
		in.IndexTrigger[hmd.HandRight] = 1
	}
	if held(sdl.SCANCODE_3) {
		in.HandTrigger[hmd.HandLeft] = 1
	}
	if held(sdl.SCANCODE_4) {
		in.HandTrigger[hmd.HandRight] = 1
	}

	return in
}
