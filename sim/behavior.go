package sim

import (
	"github.com/automoto/keyrunner/components"
	"github.com/yohamta/donburi"
)

// Behavior is the per-kind capability set of an entity
type Behavior interface {
	Update(ctx *Context, e *donburi.Entry, dt float64)
	OnTouch(ctx *Context, self, other *donburi.Entry)
	Hint(e *donburi.Entry) RenderHint
}

// RenderHint is the per-entity state a renderer needs
type RenderHint struct {
	Entity       donburi.Entity
	Kind         components.Kind
	Variant      string
	X, Y, W, H   float64
	SpriteKey    string
	FlipX        bool
	Invulnerable bool
}

// BaseHint fills the fields every kind shares
func BaseHint(e *donburi.Entry) RenderHint {
	kind := components.EntityKind.Get(e)
	obj := components.Object.Get(e)
	hint := RenderHint{
		Entity:    e.Entity(),
		Kind:      kind.Kind,
		Variant:   kind.Variant,
		SpriteKey: kind.SpriteKey,
	}
	if obj.Object != nil {
		hint.X, hint.Y, hint.W, hint.H = obj.X, obj.Y, obj.W, obj.H
	}
	if e.HasComponent(components.Motion) {
		hint.FlipX = components.Motion.Get(e).FacingX < 0
	}
	return hint
}
