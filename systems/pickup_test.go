package systems

import (
	"math/rand"
	"testing"

	"github.com/automoto/keyrunner/components"
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/sim"
	"github.com/automoto/keyrunner/systems/factory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyCollectedOnce(t *testing.T) {
	ctx, level := newTestContext(t)
	p := addPlayer(ctx, 100, 100)
	key := factory.CreateKey(ctx.World, factory.Placement{X: 100, Y: 100})
	ctx.Registry.Add(key)

	ctx.Registry.DispatchTouches(ctx)
	assert.Equal(t, cfg.Key.Value, level.score)
	assert.Len(t, level.keys, 1)
	assert.True(t, ctx.Registry.PendingRemoval(key))

	// A second touch before the sweep changes nothing.
	Key{}.OnTouch(ctx, key, p)
	assert.Equal(t, cfg.Key.Value, level.score)

	ctx.Registry.SweepRemovals()
	assert.Zero(t, ctx.Registry.Count(components.KindKey))
}

func TestKeyIgnoresEnemies(t *testing.T) {
	ctx, level := newTestContext(t)
	key := factory.CreateKey(ctx.World, factory.Placement{X: 100, Y: 100})
	enemy := factory.CreateEnemy(ctx.World, "Enemy1", factory.Placement{X: 100, Y: 100})
	ctx.Registry.Add(key)
	ctx.Registry.Add(enemy)

	ctx.Registry.DispatchTouches(ctx)
	assert.Zero(t, level.score)
	assert.False(t, ctx.Registry.PendingRemoval(key))
}

func TestBonusRestoresLife(t *testing.T) {
	ctx, level := newTestContext(t)
	events := collectEvents(ctx)
	p := addPlayer(ctx, 100, 100)
	components.Player.Get(p).Lives = 2
	bonus := factory.CreateBonus(ctx.World, factory.Placement{X: 100, Y: 100, SpriteKey: "cake"})
	ctx.Registry.Add(bonus)

	ctx.Registry.DispatchTouches(ctx)
	Bonus{}.OnTouch(ctx, bonus, p)
	sim.Events.ProcessEvents(ctx.World)

	assert.Equal(t, 3, components.Player.Get(p).Lives)
	assert.Equal(t, cfg.Bonus.Value, level.score)
	assert.True(t, ctx.Registry.PendingRemoval(bonus))
	require.Len(t, *events, 1)
	assert.Equal(t, sim.BonusCollected, (*events)[0].Kind)
	assert.Equal(t, 1, (*events)[0].Delta)
	assert.Equal(t, "cake", Bonus{}.Hint(bonus).SpriteKey)
}

func TestBonusBoostAtFullLives(t *testing.T) {
	tests := []struct {
		name  string
		roll  fixedSource
		speed float64
		timer float64
	}{
		{"lucky roll boosts", 0, cfg.Bonus.BoostSpeed, cfg.Bonus.BoostDuration},
		{"unlucky roll does nothing", 6 << 60, cfg.Player.BaseSpeed, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, level := newTestContext(t)
			ctx.Rand = rand.New(tt.roll)
			p := addPlayer(ctx, 100, 100)
			bonus := factory.CreateBonus(ctx.World, factory.Placement{X: 100, Y: 100})
			ctx.Registry.Add(bonus)

			Bonus{}.OnTouch(ctx, bonus, p)
			assert.Equal(t, 3, components.Player.Get(p).Lives)
			assert.Equal(t, tt.speed, components.Motion.Get(p).Speed)
			assert.Equal(t, tt.timer, components.Player.Get(p).BoostTimer)
			assert.Equal(t, cfg.Bonus.Value, level.score)
		})
	}
}

func TestExitRequestsTransition(t *testing.T) {
	ctx, level := newTestContext(t)
	p := addPlayer(ctx, 100, 100)
	exit := factory.CreateExit(ctx.World, factory.Placement{X: 100, Y: 100, SpriteKey: "Exit"})
	enemy := factory.CreateEnemy(ctx.World, "Enemy1", factory.Placement{X: 300, Y: 300})
	ctx.Registry.Add(exit)

	Exit{}.OnTouch(ctx, exit, enemy)
	assert.Zero(t, level.exits)

	Exit{}.OnTouch(ctx, exit, p)
	assert.Equal(t, 1, level.exits)
	assert.Equal(t, cfg.Exit.SpriteKey, Exit{}.Hint(exit).SpriteKey)
}
