package factory

import (
	"github.com/automoto/keyrunner/archetypes"
	"github.com/automoto/keyrunner/components"
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/tags"
	"github.com/yohamta/donburi"
)

func CreateExit(world donburi.World, p Placement) *donburi.Entry {
	exit := archetypes.Exit.Spawn(world)

	w, h := p.size(cfg.Exit.Width, cfg.Exit.Height)
	attachBody(exit, p.X, p.Y, w, h, tags.ResolvExit)

	sprite := p.sprite(cfg.Exit.SpriteKey)
	if sprite == "Exit" {
		sprite = cfg.Exit.SpriteKey
	}
	components.EntityKind.SetValue(exit, components.KindData{
		Kind:      components.KindExit,
		SpriteKey: sprite,
	})
	return exit
}

// CreateBarrier spawns a breakable block. Its hitbox is tagged solid so
// movement treats it like a wall until it is broken.
func CreateBarrier(world donburi.World, p Placement) *donburi.Entry {
	barrier := archetypes.Barrier.Spawn(world)

	w, h := p.size(cfg.Barrier.Width, cfg.Barrier.Height)
	attachBody(barrier, p.X, p.Y, w, h, tags.ResolvSolid, tags.ResolvBarrier)

	components.EntityKind.SetValue(barrier, components.KindData{
		Kind:      components.KindBarrier,
		SpriteKey: p.sprite("Barrier"),
	})
	components.Barrier.SetValue(barrier, components.BarrierData{})
	return barrier
}
