package factory

import (
	"testing"

	"github.com/automoto/keyrunner/components"
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/tags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

func TestCreatePlayer(t *testing.T) {
	world := donburi.NewWorld()
	p := CreatePlayer(world, Placement{X: 10, Y: 20, W: 64, H: 64})

	obj := components.Object.Get(p)
	assert.Equal(t, 10.0, obj.X)
	assert.Equal(t, cfg.Player.CollisionWidth, obj.W, "map size does not resize the player")
	assert.True(t, obj.HasTags(tags.ResolvPlayer))
	assert.Same(t, p, obj.Data)

	player := components.Player.Get(p)
	assert.Equal(t, cfg.Player.StartingLives, player.Lives)
	assert.Equal(t, cfg.Player.MaxLives, player.MaxLives)
	assert.Equal(t, cfg.Player.BaseSpeed, components.Motion.Get(p).Speed)
	assert.Equal(t, cfg.Player.SpriteKey, components.EntityKind.Get(p).SpriteKey)
}

func TestEnemyTypeFallback(t *testing.T) {
	assert.Equal(t, "Enemy1", EnemyType("Enemy1").Name)
	assert.Equal(t, "Enemy2", EnemyType("Enemy").Name)
	assert.Equal(t, cfg.Enemy.DefaultType, EnemyType("Dragon").Name)
}

func TestCreateEnemyPatrolIsAbsolute(t *testing.T) {
	world := donburi.NewWorld()
	e := CreateEnemy(world, "Enemy3", Placement{X: 100, Y: 100})
	data := components.Enemy.Get(e)
	require.Len(t, data.Patrol, 4)
	assert.Equal(t, 112.0, data.Origin.X)
	assert.Equal(t, 112.0-80, data.Patrol[0].Y)
	assert.Equal(t, 112.0+80, data.Patrol[1].X)
	assert.False(t, data.Wander)
	assert.True(t, e.HasComponent(tags.Enemy))
}

func TestCreatePickupsUseMapSize(t *testing.T) {
	world := donburi.NewWorld()
	key := CreateKey(world, Placement{X: 1, Y: 2, W: 16, H: 16})
	assert.Equal(t, 16.0, components.Object.Get(key).W)
	assert.Equal(t, cfg.Key.Value, components.Key.Get(key).Value)

	bonus := CreateBonus(world, Placement{})
	assert.Equal(t, cfg.Bonus.Width, components.Object.Get(bonus).W)
	assert.Equal(t, "Bonus", components.EntityKind.Get(bonus).SpriteKey)
}

func TestCreateBarrierIsSolid(t *testing.T) {
	world := donburi.NewWorld()
	b := CreateBarrier(world, Placement{X: 32, Y: 32})
	obj := components.Object.Get(b)
	assert.True(t, obj.HasTags(tags.ResolvSolid, tags.ResolvBarrier))
	assert.Equal(t, components.KindBarrier, components.EntityKind.Get(b).Kind)
}

func TestCreateExitSprite(t *testing.T) {
	world := donburi.NewWorld()
	assert.Equal(t, cfg.Exit.SpriteKey, components.EntityKind.Get(CreateExit(world, Placement{SpriteKey: "Exit"})).SpriteKey)
	assert.Equal(t, cfg.Exit.SpriteKey, components.EntityKind.Get(CreateExit(world, Placement{})).SpriteKey)
	assert.Equal(t, "Door2", components.EntityKind.Get(CreateExit(world, Placement{SpriteKey: "Door2"})).SpriteKey)
}

func TestCreateSpace(t *testing.T) {
	world := donburi.NewWorld()
	e := CreateSpace(world, 640, 480, 16, 16)
	space := components.Space.Get(e)
	require.NotNil(t, space)
	assert.Equal(t, 16, space.CellWidth)
	assert.Equal(t, 16, space.CellHeight)
}
