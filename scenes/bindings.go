package scenes

import (
	cfg "github.com/automoto/keyrunner/config"
	"github.com/hajimehoshi/ebiten/v2"
)

// InputBinding represents the keys and buttons bound to an action
type InputBinding struct {
	Keys                   []ebiten.Key
	StandardGamepadButtons []ebiten.StandardGamepadButton
}

// Bindings maps every action to its keyboard and gamepad inputs
var Bindings = map[cfg.Action]InputBinding{
	cfg.ActionUp: {
		Keys: []ebiten.Key{ebiten.KeyUp, ebiten.KeyW},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{
			ebiten.StandardGamepadButtonLeftTop,
		},
	},
	cfg.ActionDown: {
		Keys: []ebiten.Key{ebiten.KeyDown, ebiten.KeyS},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{
			ebiten.StandardGamepadButtonLeftBottom,
		},
	},
	cfg.ActionLeft: {
		Keys: []ebiten.Key{ebiten.KeyLeft, ebiten.KeyA},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{
			ebiten.StandardGamepadButtonLeftLeft,
		},
	},
	cfg.ActionRight: {
		Keys: []ebiten.Key{ebiten.KeyRight, ebiten.KeyD},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{
			ebiten.StandardGamepadButtonLeftRight,
		},
	},
	cfg.ActionBreak: {
		Keys: []ebiten.Key{ebiten.KeyE},
		// X / Square button
		StandardGamepadButtons: []ebiten.StandardGamepadButton{
			ebiten.StandardGamepadButtonRightLeft,
		},
	},
	cfg.ActionPause: {
		Keys: []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP},
		// Start / Options button
		StandardGamepadButtons: []ebiten.StandardGamepadButton{
			ebiten.StandardGamepadButtonCenterRight,
		},
	},
	cfg.ActionConfirm: {
		Keys: []ebiten.Key{ebiten.KeyEnter, ebiten.KeySpace},
		// A / Cross button
		StandardGamepadButtons: []ebiten.StandardGamepadButton{
			ebiten.StandardGamepadButtonRightBottom,
		},
	},
	cfg.ActionBack: {
		Keys: []ebiten.Key{ebiten.KeyBackspace, ebiten.KeyEscape},
		StandardGamepadButtons: []ebiten.StandardGamepadButton{
			ebiten.StandardGamepadButtonRightRight,
		},
	},
	cfg.ActionSkip: {
		Keys: []ebiten.Key{ebiten.KeyF5},
	},
}
