// Package input turns SDL2 events and keyboard state into per-frame
// movement snapshots.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/seabed/internal/world"
	"github.com/Faultbox/seabed/pkg/math"
)

// Keys is the set of held movement keys.
type Keys struct {
	Forward, Back, Left, Right bool
	Ascend, Descend            bool
}

// Bindings maps each movement to the scancodes that trigger it.
type Bindings struct {
	Forward, Back, Left, Right []sdl.Scancode
	Ascend, Descend            []sdl.Scancode
}

// DefaultBindings is WASD plus arrows, Space to rise and Shift to sink.
func DefaultBindings() Bindings {
	return Bindings{
		Forward: []sdl.Scancode{sdl.SCANCODE_W, sdl.SCANCODE_UP},
		Back:    []sdl.Scancode{sdl.SCANCODE_S, sdl.SCANCODE_DOWN},
		Left:    []sdl.Scancode{sdl.SCANCODE_A, sdl.SCANCODE_LEFT},
		Right:   []sdl.Scancode{sdl.SCANCODE_D, sdl.SCANCODE_RIGHT},
		Ascend:  []sdl.Scancode{sdl.SCANCODE_SPACE},
		Descend: []sdl.Scancode{sdl.SCANCODE_LSHIFT, sdl.SCANCODE_RSHIFT},
	}
}

// Read resolves held keys from an SDL keyboard state array.
func (b Bindings) Read(state []uint8) Keys {
	return Keys{
		Forward: anyHeld(state, b.Forward),
		Back:    anyHeld(state, b.Back),
		Left:    anyHeld(state, b.Left),
		Right:   anyHeld(state, b.Right),
		Ascend:  anyHeld(state, b.Ascend),
		Descend: anyHeld(state, b.Descend),
	}
}

func anyHeld(state []uint8, codes []sdl.Scancode) bool {
	for _, c := range codes {
		if int(c) < len(state) && state[c] != 0 {
			return true
		}
	}
	return false
}

// Input tracks pointer capture, look deltas and held keys between frames.
type Input struct {
	Bindings Bindings

	keys     Keys
	captured bool
	changed  bool
	toggled  bool
	lookX    float32
	lookY    float32

	resized       bool
	width, height int
}

// New creates an input handler with the default bindings.
func New() *Input {
	return &Input{Bindings: DefaultBindings()}
}

// Update polls SDL events and samples the keyboard.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.changed = false
	i.toggled = false
	i.resized = false
	i.lookX, i.lookY = 0, 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			return true

		case *sdl.WindowEvent:
			switch e.Event {
			case sdl.WINDOWEVENT_SIZE_CHANGED:
				i.resized = true
				i.width, i.height = int(e.Data1), int(e.Data2)
			case sdl.WINDOWEVENT_FOCUS_LOST:
				i.setCaptured(false)
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				break
			}
			switch e.Keysym.Scancode {
			case sdl.SCANCODE_ESCAPE:
				i.setCaptured(false)
			case sdl.SCANCODE_N:
				i.toggled = true
			}

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN && e.Button == sdl.BUTTON_LEFT {
				i.setCaptured(true)
			}

		case *sdl.MouseMotionEvent:
			if i.captured {
				i.AddLook(float32(e.XRel), float32(e.YRel))
			}
		}
	}

	i.keys = i.Bindings.Read(sdl.GetKeyboardState())
	return false
}

func (i *Input) setCaptured(c bool) {
	if i.captured != c {
		i.captured = c
		i.changed = true
	}
}

// AddLook accumulates pointer motion in pixels for this frame.
func (i *Input) AddLook(dx, dy float32) {
	i.lookX += dx
	i.lookY += dy
}

// Look returns the pointer motion accumulated since the last Update.
func (i *Input) Look() (dx, dy float32) {
	return i.lookX, i.lookY
}

// Captured reports whether the pointer is locked to the view.
func (i *Input) Captured() bool {
	return i.captured
}

// CaptureChanged reports whether capture toggled during the last Update.
func (i *Input) CaptureChanged() bool {
	return i.changed
}

// LightingToggled reports whether the day/night key was pressed during the
// last Update.
func (i *Input) LightingToggled() bool {
	return i.toggled
}

// Resized returns the new drawable size if the window changed size during
// the last Update.
func (i *Input) Resized() (width, height int, ok bool) {
	return i.width, i.height, i.resized
}

// Snapshot builds the movement input for this frame. facing is the camera's
// look direction.
func (i *Input) Snapshot(facing math.Vec3) world.Input {
	return Compose(i.keys, i.captured, facing)
}

// Compose builds a movement input from held keys.
func Compose(k Keys, captured bool, facing math.Vec3) world.Input {
	return world.Input{
		Forward:  k.Forward,
		Back:     k.Back,
		Left:     k.Left,
		Right:    k.Right,
		Ascend:   k.Ascend,
		Descend:  k.Descend,
		Captured: captured,
		Facing:   facing,
	}
}
