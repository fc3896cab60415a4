package components

import (
	"github.com/yohamta/donburi"
	math2 "github.com/yohamta/donburi/features/math"
)

type AIState int

const (
	StatePatrol AIState = iota
	StateChase
)

func (s AIState) String() string {
	if s == StateChase {
		return "Chase"
	}
	return "Patrol"
}

type EnemyData struct {
	ViewRadius float64
	ZoneRadius float64 // 0 means unconstrained
	Origin     math2.Vec2
	State      AIState

	// Waypoint patrol, absolute positions
	Patrol      []math2.Vec2
	Waypoint    int
	WaitTimer   float64
	WaitAtPoint float64

	// Random wander, used when Patrol is empty
	Wander      bool
	WanderMin   float64
	WanderMax   float64
	WanderTimer float64
	Heading     Vector
}

var Enemy = donburi.NewComponentType[EnemyData]()
