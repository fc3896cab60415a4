package components

import (
	"github.com/yohamta/donburi"
)

type PlayerData struct {
	Lives          int
	MaxLives       int
	InvulnTimer    float64 // seconds left of post-hit immunity
	InvulnDuration float64
	BaseSpeed      float64
	BoostTimer     float64 // seconds left of the speed boost
	Dead           bool

	// Barrier currently being broken and how long break has been held on it
	BreakTarget *donburi.Entry
	BreakTimer  float64
}

var Player = donburi.NewComponentType[PlayerData]()

// Invulnerable reports whether the player currently ignores hits
func (p *PlayerData) Invulnerable() bool {
	return p.InvulnTimer > 0
}
