package systems

import (
	"math"

	"github.com/automoto/keyrunner/components"
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/sim"
	"github.com/automoto/keyrunner/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Player turns held actions into movement, counts down its timers, breaks
// barriers and takes damage from enemies.
type Player struct{}

func (Player) Update(ctx *sim.Context, e *donburi.Entry, dt float64) {
	player := components.Player.Get(e)
	motion := components.Motion.Get(e)
	obj := components.Object.Get(e).Object

	if player.InvulnTimer > 0 {
		player.InvulnTimer = math.Max(0, player.InvulnTimer-dt)
	}
	if player.BoostTimer > 0 {
		player.BoostTimer -= dt
		if player.BoostTimer <= 0 {
			player.BoostTimer = 0
			motion.Speed = player.BaseSpeed
		}
	}

	if player.Dead {
		motion.Intent = components.Vector{}
		return
	}

	motion.Intent = IntentFromActions(ctx.Input)
	if motion.Intent.X != 0 {
		motion.FacingX = math.Copysign(1, motion.Intent.X)
	}

	if ctx.Input.Held(cfg.ActionBreak) {
		breakBarrier(ctx, player, motion, obj, dt)
	} else {
		releaseBreak(player)
	}

	if ctx.Collision != nil {
		ctx.Collision.ResolveMove(obj, motion, dt)
	}
}

// IntentFromActions maps held directions onto a movement vector. When both
// directions of an axis are held, right and down win. Diagonals are scaled
// to unit length.
func IntentFromActions(actions sim.Actions) components.Vector {
	var v components.Vector
	if actions.Held(cfg.ActionLeft) {
		v.X = -1
	}
	if actions.Held(cfg.ActionRight) {
		v.X = 1
	}
	if actions.Held(cfg.ActionUp) {
		v.Y = -1
	}
	if actions.Held(cfg.ActionDown) {
		v.Y = 1
	}
	if v.X != 0 && v.Y != 0 {
		v.X *= math.Sqrt2 / 2
		v.Y *= math.Sqrt2 / 2
	}
	return v
}

// breakBarrier looks just ahead of the hitbox for a barrier and accumulates
// hold time on it. Switching target restarts the count.
func breakBarrier(ctx *sim.Context, player *components.PlayerData, motion *components.MotionData, obj *resolv.Object, dt float64) {
	target := barrierAhead(obj, motion)
	if target == nil {
		releaseBreak(player)
		return
	}
	if player.BreakTarget == nil || player.BreakTarget.Entity() != target.Entity() {
		releaseBreak(player)
		player.BreakTarget = target
	}

	barrier := components.Barrier.Get(target)
	if barrier.Broken {
		return
	}
	player.BreakTimer += dt
	barrier.Progress = math.Min(1, player.BreakTimer/cfg.Player.BreakDuration)
	if player.BreakTimer < cfg.Player.BreakDuration {
		return
	}

	barrier.Broken = true
	player.BreakTarget = nil
	player.BreakTimer = 0
	ctx.Registry.MarkForRemoval(target)
	ctx.Level.AddScore(cfg.Barrier.Score)
	ctx.Publish(sim.Event{Kind: sim.BarrierBroken, Delta: cfg.Barrier.Score, Entity: target.Entity()})
	ctx.Log.WithField("entity", target.Entity()).Debug("barrier broken")
}

func releaseBreak(player *components.PlayerData) {
	if player.BreakTarget == nil {
		return
	}
	if target := player.BreakTarget; target.Valid() && target.HasComponent(components.Barrier) {
		components.Barrier.Get(target).Progress = 0
	}
	player.BreakTarget = nil
	player.BreakTimer = 0
}

// barrierAhead looks BreakReach pixels ahead along facing and intent
func barrierAhead(obj *resolv.Object, motion *components.MotionData) *donburi.Entry {
	if obj.Space == nil {
		return nil
	}
	reach := cfg.Player.BreakReach
	dx := motion.FacingX * reach
	if motion.Intent.X != 0 {
		dx = math.Copysign(reach, motion.Intent.X)
	}
	var dy float64
	if motion.Intent.Y != 0 {
		dy = math.Copysign(reach, motion.Intent.Y)
	}

	check := obj.Check(dx, dy, tags.ResolvBarrier)
	if check == nil {
		return nil
	}
	for _, other := range check.ObjectsByTags(tags.ResolvBarrier) {
		if !overlapsAhead(obj, other, dx, dy) {
			continue
		}
		if entry, ok := other.Data.(*donburi.Entry); ok && entry.Valid() {
			return entry
		}
	}
	return nil
}

func overlapsAhead(obj, other *resolv.Object, dx, dy float64) bool {
	x, y := obj.X+dx, obj.Y+dy
	return x < other.X+other.W && x+obj.W > other.X && y < other.Y+other.H && y+obj.H > other.Y
}

// OnTouch handles enemy contact. Pickups and the exit react on their own side.
func (Player) OnTouch(ctx *sim.Context, self, other *donburi.Entry) {
	if !other.HasComponent(tags.Enemy) {
		return
	}
	HitPlayer(ctx, self)
}

// HitPlayer costs the player a life unless it is dead or invulnerable
func HitPlayer(ctx *sim.Context, e *donburi.Entry) bool {
	player := components.Player.Get(e)
	if player.Dead || player.Invulnerable() {
		return false
	}

	player.Lives--
	player.InvulnTimer = player.InvulnDuration
	ctx.Publish(sim.Event{Kind: sim.EnemyHit, Delta: -1, Lives: player.Lives, Entity: e.Entity()})

	if player.Lives <= 0 {
		player.Lives = 0
		player.Dead = true
		ctx.Level.PlayerDied()
	}
	return true
}

func (Player) Hint(e *donburi.Entry) sim.RenderHint {
	hint := sim.BaseHint(e)
	hint.Invulnerable = components.Player.Get(e).Invulnerable()
	return hint
}
