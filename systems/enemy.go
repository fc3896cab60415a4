package systems

import (
	"math"

	"github.com/automoto/keyrunner/components"
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/sim"
	"github.com/yohamta/donburi"
	math2 "github.com/yohamta/donburi/features/math"
)

// EnemyAI is the two-state machine shared by every enemy variant. The state
// is recomputed from scratch each frame: Chase while the player is in view
// (and inside the home zone, when one is set), Patrol otherwise.
type EnemyAI struct{}

func (EnemyAI) Update(ctx *sim.Context, e *donburi.Entry, dt float64) {
	enemy := components.Enemy.Get(e)
	motion := components.Motion.Get(e)
	obj := components.Object.Get(e).Object

	pos := center(obj.X, obj.Y, obj.W, obj.H)

	var target math2.Vec2
	seen := false
	if p, ok := ctx.Registry.Player(); ok && !components.Player.Get(p).Dead {
		pobj := components.Object.Get(p).Object
		target = center(pobj.X, pobj.Y, pobj.W, pobj.H)
		seen = CanSee(enemy, pos, target)
	}

	if seen {
		enemy.State = components.StateChase
		motion.Intent = toward(pos, target, 0)
	} else {
		if enemy.State == components.StateChase {
			// Resume the patrol where it left off
			enemy.WaitTimer = 0
		}
		enemy.State = components.StatePatrol
		motion.Intent = patrolIntent(ctx, enemy, motion, pos, dt)
	}

	if leavesZone(enemy, pos, motion, dt) {
		motion.Intent = components.Vector{}
		if enemy.Wander {
			enemy.WanderTimer = 0
		}
	}
	if motion.Intent.X != 0 {
		motion.FacingX = math.Copysign(1, motion.Intent.X)
	}

	if ctx.Collision == nil || motion.Intent == (components.Vector{}) {
		return
	}
	dx, dy := ctx.Collision.ResolveMove(obj, motion, dt)
	if enemy.Wander && dx == 0 && dy == 0 {
		// Walked into a wall; pick a new heading next frame
		enemy.WanderTimer = 0
	}
}

// CanSee reports whether an enemy at pos should chase a player at target
func CanSee(enemy *components.EnemyData, pos, target math2.Vec2) bool {
	if distSq(pos, target) > enemy.ViewRadius*enemy.ViewRadius {
		return false
	}
	if enemy.ZoneRadius > 0 && distSq(enemy.Origin, target) > enemy.ZoneRadius*enemy.ZoneRadius {
		return false
	}
	return true
}

func patrolIntent(ctx *sim.Context, enemy *components.EnemyData, motion *components.MotionData, pos math2.Vec2, dt float64) components.Vector {
	if len(enemy.Patrol) > 0 {
		return waypointIntent(enemy, motion, pos, dt)
	}
	if enemy.Wander {
		return wanderIntent(ctx, enemy, dt)
	}
	return components.Vector{}
}

// waypointIntent walks the patrol loop: head for the current waypoint, wait
// on arrival, then move on to the next one.
func waypointIntent(enemy *components.EnemyData, motion *components.MotionData, pos math2.Vec2, dt float64) components.Vector {
	if enemy.Waypoint >= len(enemy.Patrol) {
		enemy.Waypoint = 0
	}
	if enemy.WaitTimer > 0 {
		enemy.WaitTimer -= dt
		if enemy.WaitTimer <= 0 {
			enemy.WaitTimer = 0
			enemy.Waypoint = (enemy.Waypoint + 1) % len(enemy.Patrol)
		}
		return components.Vector{}
	}

	point := enemy.Patrol[enemy.Waypoint]
	if distSq(pos, point) <= cfg.Enemy.ArrivalEpsilon*cfg.Enemy.ArrivalEpsilon {
		if enemy.WaitAtPoint > 0 {
			enemy.WaitTimer = enemy.WaitAtPoint
		} else {
			enemy.Waypoint = (enemy.Waypoint + 1) % len(enemy.Patrol)
		}
		return components.Vector{}
	}
	return toward(pos, point, motion.Speed*dt)
}

func wanderIntent(ctx *sim.Context, enemy *components.EnemyData, dt float64) components.Vector {
	enemy.WanderTimer -= dt
	if enemy.WanderTimer <= 0 {
		angle := ctx.Rand.Float64() * 2 * math.Pi
		enemy.Heading = components.Vector{X: math.Cos(angle), Y: math.Sin(angle)}
		enemy.WanderTimer = enemy.WanderMin + ctx.Rand.Float64()*(enemy.WanderMax-enemy.WanderMin)
	}
	return enemy.Heading
}

// leavesZone reports whether the next step would carry the enemy further out
// past its zone radius. Steps back toward the origin are always allowed.
func leavesZone(enemy *components.EnemyData, pos math2.Vec2, motion *components.MotionData, dt float64) bool {
	if enemy.ZoneRadius <= 0 || motion.Intent == (components.Vector{}) {
		return false
	}
	next := math2.Vec2{
		X: pos.X + motion.Intent.X*motion.Speed*dt,
		Y: pos.Y + motion.Intent.Y*motion.Speed*dt,
	}
	limit := enemy.ZoneRadius * enemy.ZoneRadius
	d := distSq(enemy.Origin, next)
	return d > limit && d > distSq(enemy.Origin, pos)
}

// toward returns the unit vector from a to b. With step > 0 the vector is
// shortened so a single step of that length lands on b instead of past it.
func toward(a, b math2.Vec2, step float64) components.Vector {
	dx, dy := b.X-a.X, b.Y-a.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return components.Vector{}
	}
	scale := 1 / d
	if step > d {
		scale = 1 / step
	}
	return components.Vector{X: dx * scale, Y: dy * scale}
}

func center(x, y, w, h float64) math2.Vec2 {
	return math2.Vec2{X: x + w/2, Y: y + h/2}
}

func distSq(a, b math2.Vec2) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	return dx*dx + dy*dy
}

func (EnemyAI) OnTouch(ctx *sim.Context, self, other *donburi.Entry) {}

func (EnemyAI) Hint(e *donburi.Entry) sim.RenderHint {
	return sim.BaseHint(e)
}
