package factory

import (
	"github.com/automoto/keyrunner/archetypes"
	"github.com/automoto/keyrunner/components"
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/tags"
	"github.com/yohamta/donburi"
)

func CreateKey(world donburi.World, p Placement) *donburi.Entry {
	key := archetypes.Key.Spawn(world)

	w, h := p.size(cfg.Key.Width, cfg.Key.Height)
	attachBody(key, p.X, p.Y, w, h, tags.ResolvPickup)

	components.EntityKind.SetValue(key, components.KindData{
		Kind:      components.KindKey,
		SpriteKey: p.sprite("Key"),
	})
	components.Key.SetValue(key, components.PickupData{Value: cfg.Key.Value})
	return key
}

func CreateBonus(world donburi.World, p Placement) *donburi.Entry {
	bonus := archetypes.Bonus.Spawn(world)

	w, h := p.size(cfg.Bonus.Width, cfg.Bonus.Height)
	attachBody(bonus, p.X, p.Y, w, h, tags.ResolvPickup)

	components.EntityKind.SetValue(bonus, components.KindData{
		Kind:      components.KindBonus,
		SpriteKey: p.sprite("Bonus"),
	})
	components.Bonus.SetValue(bonus, components.PickupData{Value: cfg.Bonus.Value})
	return bonus
}
