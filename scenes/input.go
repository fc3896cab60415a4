package scenes

import (
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/sim"
	"github.com/hajimehoshi/ebiten/v2"
)

// Reusable slice for gamepad IDs to avoid allocations
var gamepadIDs []ebiten.GamepadID

// Input double-buffers the action map so presses can be told from holds
type Input struct {
	Current  sim.Actions
	Previous sim.Actions
}

func NewInput() *Input {
	return &Input{Current: sim.Actions{}, Previous: sim.Actions{}}
}

// Poll reads the keyboard and standard-layout gamepads. Call once per frame
// before anything reads the actions.
func (in *Input) Poll() {
	in.Previous = in.Current
	in.Current = make(sim.Actions, len(cfg.Actions))

	gamepadIDs = ebiten.AppendGamepadIDs(gamepadIDs[:0])

	for action, binding := range Bindings {
		held := false
		for _, key := range binding.Keys {
			if ebiten.IsKeyPressed(key) {
				held = true
			}
		}
		for _, gpID := range gamepadIDs {
			if !ebiten.IsStandardGamepadLayoutAvailable(gpID) {
				continue
			}
			for _, btn := range binding.StandardGamepadButtons {
				if ebiten.IsStandardGamepadButtonPressed(gpID, btn) {
					held = true
				}
			}
		}
		if held {
			in.Current[action] = true
		}
	}
}

// Actions returns the held state handed to the simulation
func (in *Input) Actions() sim.Actions {
	return in.Current
}

// JustPressed is derived from current vs previous frame
func (in *Input) JustPressed(action cfg.Action) bool {
	return in.Current.Held(action) && !in.Previous.Held(action)
}
