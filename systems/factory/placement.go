package factory

import (
	"github.com/automoto/keyrunner/components"
	"github.com/automoto/keyrunner/tilemap"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Placement is where an entity goes and what the map said about it
type Placement struct {
	X, Y      float64
	W, H      float64 // 0 keeps the kind's configured size
	SpriteKey string
	Props     tilemap.Properties
}

func (p Placement) size(w, h float64) (float64, float64) {
	if p.W > 0 {
		w = p.W
	}
	if p.H > 0 {
		h = p.H
	}
	return w, h
}

func (p Placement) sprite(fallback string) string {
	if p.SpriteKey != "" {
		return p.SpriteKey
	}
	return fallback
}

// attachBody gives e its hitbox. The object is added to the blocker space
// when the entity is registered.
func attachBody(e *donburi.Entry, x, y, w, h float64, tags ...string) *resolv.Object {
	obj := resolv.NewObject(x, y, w, h, tags...)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	obj.Data = e // Link for O(1) lookup
	components.Object.SetValue(e, components.ObjectData{Object: obj})
	return obj
}
