// Package input turns raw key state into edge-triggered actions.
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Action is something the player can trigger from the keyboard
type Action int

const (
	TogglePause Action = iota
	NextCamera
	TogglePerf
	Quit
	actionCount
)

func (a Action) String() string {
	switch a {
	case TogglePause:
		return "toggle pause"
	case NextCamera:
		return "next camera"
	case TogglePerf:
		return "toggle perf"
	case Quit:
		return "quit"
	default:
		return "unknown"
	}
}

// Bindings maps actions to keys
type Bindings map[Action]ebiten.Key

// DefaultBindings: P pauses, C switches camera, F3 shows perf, Escape quits
func DefaultBindings() Bindings {
	return Bindings{
		TogglePause: ebiten.KeyP,
		NextCamera:  ebiten.KeyC,
		TogglePerf:  ebiten.KeyF3,
		Quit:        ebiten.KeyEscape,
	}
}

// KeyStateTracker tracks the previous state of a key.
type KeyStateTracker struct {
	prevPressed bool
}

// Update records the current state and returns true on a released-to-pressed edge
func (k *KeyStateTracker) Update(pressed bool) bool {
	justPressed := pressed && !k.prevPressed
	k.prevPressed = pressed
	return justPressed
}

// Handler polls every bound key once per frame
type Handler struct {
	bindings Bindings
	trackers [actionCount]KeyStateTracker
	pressed  func(ebiten.Key) bool
}

// NewHandler creates a handler reading the live keyboard
func NewHandler(b Bindings) *Handler {
	return NewHandlerWithSource(b, ebiten.IsKeyPressed)
}

// NewHandlerWithSource creates a handler reading key state from pressed
func NewHandlerWithSource(b Bindings, pressed func(ebiten.Key) bool) *Handler {
	return &Handler{bindings: b, pressed: pressed}
}

// Poll returns the actions whose key went down since the last call, in Action order
func (h *Handler) Poll() []Action {
	var actions []Action
	for a := Action(0); a < actionCount; a++ {
		key, ok := h.bindings[a]
		if !ok {
			continue
		}
		if h.trackers[a].Update(h.pressed(key)) {
			actions = append(actions, a)
		}
	}
	return actions
}
