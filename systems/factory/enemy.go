package factory

import (
	"github.com/automoto/keyrunner/archetypes"
	"github.com/automoto/keyrunner/components"
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/tags"
	"github.com/yohamta/donburi"
	math2 "github.com/yohamta/donburi/features/math"
)

// EnemyType resolves a variant name or alias, falling back to the default variant
func EnemyType(name string) cfg.EnemyTypeConfig {
	if alias, ok := cfg.Enemy.Aliases[name]; ok {
		name = alias
	}
	if t, ok := cfg.Enemy.Types[name]; ok {
		return t
	}
	return cfg.Enemy.Types[cfg.Enemy.DefaultType]
}

// CreateEnemy spawns an enemy of the named variant. The map object's speed,
// viewRadius and zoneRadius properties override the variant's tuning.
func CreateEnemy(world donburi.World, variant string, p Placement) *donburi.Entry {
	enemyType := EnemyType(variant)

	enemy := archetypes.Enemy.Spawn(world)

	w, h := enemyType.CollisionWidth, enemyType.CollisionHeight
	attachBody(enemy, p.X, p.Y, w, h, "character", tags.ResolvEnemy)

	speed := enemyType.Speed
	if v, ok := p.Props.Float("speed"); ok {
		speed = v
	}

	// Distances are measured between hitbox centres.
	origin := math2.Vec2{X: p.X + w/2, Y: p.Y + h/2}
	enemyData := components.EnemyData{
		ViewRadius:  enemyType.ViewRadius,
		ZoneRadius:  enemyType.ZoneRadius,
		Origin:      origin,
		State:       components.StatePatrol,
		WaitAtPoint: enemyType.WaitAtPoint,
		Wander:      enemyType.Wander && len(enemyType.Patrol) == 0,
		WanderMin:   enemyType.WanderMinTime,
		WanderMax:   enemyType.WanderMaxTime,
	}
	if v, ok := p.Props.Float("viewRadius"); ok {
		enemyData.ViewRadius = v
	}
	if v, ok := p.Props.Float("zoneRadius"); ok {
		enemyData.ZoneRadius = v
	}
	for _, off := range enemyType.Patrol {
		enemyData.Patrol = append(enemyData.Patrol, math2.Vec2{X: origin.X + off[0], Y: origin.Y + off[1]})
	}

	components.EntityKind.SetValue(enemy, components.KindData{
		Kind:      components.KindEnemy,
		Variant:   enemyType.Name,
		SpriteKey: p.sprite(enemyType.Name),
	})
	components.Motion.SetValue(enemy, components.MotionData{
		Speed:   speed,
		FacingX: -1, // Start facing left
	})
	components.Enemy.SetValue(enemy, enemyData)

	return enemy
}
