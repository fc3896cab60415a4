package factory

import (
	"github.com/automoto/keyrunner/archetypes"
	"github.com/automoto/keyrunner/components"
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/tags"
	"github.com/yohamta/donburi"
)

func CreatePlayer(world donburi.World, p Placement) *donburi.Entry {
	player := archetypes.Player.Spawn(world)

	// The hitbox is fixed; map objects only position the player.
	attachBody(player, p.X, p.Y, cfg.Player.CollisionWidth, cfg.Player.CollisionHeight, "character", tags.ResolvPlayer)

	components.EntityKind.SetValue(player, components.KindData{
		Kind:      components.KindPlayer,
		SpriteKey: p.sprite(cfg.Player.SpriteKey),
	})
	components.Motion.SetValue(player, components.MotionData{
		Speed:   cfg.Player.BaseSpeed,
		FacingX: 1,
	})
	components.Player.SetValue(player, components.PlayerData{
		Lives:          cfg.Player.StartingLives,
		MaxLives:       cfg.Player.MaxLives,
		InvulnDuration: cfg.Player.InvulnDuration,
		BaseSpeed:      cfg.Player.BaseSpeed,
	})

	return player
}
