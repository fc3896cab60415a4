package systems

import (
	"github.com/automoto/keyrunner/components"
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/sim"
	"github.com/yohamta/donburi"
)

type Key struct{}

func (Key) Update(ctx *sim.Context, e *donburi.Entry, dt float64) {}

// OnTouch collects the key for the player. The level counts each key once,
// so a repeated touch before the sweep changes nothing.
func (Key) OnTouch(ctx *sim.Context, self, other *donburi.Entry) {
	if !ctx.Registry.IsPlayer(other) || ctx.Registry.PendingRemoval(self) {
		return
	}
	if !ctx.Level.CollectKey(self) {
		return
	}
	ctx.Level.AddScore(components.Key.Get(self).Value)
	ctx.Registry.MarkForRemoval(self)
}

func (Key) Hint(e *donburi.Entry) sim.RenderHint {
	return sim.BaseHint(e)
}

type Bonus struct{}

func (Bonus) Update(ctx *sim.Context, e *donburi.Entry, dt float64) {}

// OnTouch restores a life, or when lives are full may grant a speed boost
func (Bonus) OnTouch(ctx *sim.Context, self, other *donburi.Entry) {
	if !ctx.Registry.IsPlayer(other) {
		return
	}
	bonus := components.Bonus.Get(self)
	if bonus.Collected {
		return
	}
	bonus.Collected = true

	player := components.Player.Get(other)
	gained := 0
	if player.Lives < player.MaxLives {
		player.Lives++
		gained = 1
	} else if ctx.Rand.Float64() < cfg.Bonus.BoostChance && cfg.Bonus.BoostSpeed > player.BaseSpeed {
		components.Motion.Get(other).Speed = cfg.Bonus.BoostSpeed
		player.BoostTimer = cfg.Bonus.BoostDuration
	}

	ctx.Level.AddScore(bonus.Value)
	ctx.Publish(sim.Event{Kind: sim.BonusCollected, Delta: gained, Lives: player.Lives, Entity: self.Entity()})
	ctx.Registry.MarkForRemoval(self)
}

func (Bonus) Hint(e *donburi.Entry) sim.RenderHint {
	return sim.BaseHint(e)
}
