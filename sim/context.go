package sim

import (
	"math/rand"

	"github.com/automoto/keyrunner/collision"
	"github.com/automoto/keyrunner/tilemap"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// LevelHooks is the slice of level state that entity behaviours may change
type LevelHooks interface {
	AddScore(delta int)
	// CollectKey counts a key once; it returns false if it was already taken
	CollectKey(key *donburi.Entry) bool
	RequestExit()
	PlayerDied()
	LevelNumber() int
}

// Context is everything an entity behaviour may reach during a frame. The
// orchestrator owns it and rebuilds it for every level.
type Context struct {
	World     donburi.World
	Map       *tilemap.TileMap
	Collision *collision.Resolver
	Registry  *Registry
	Level     LevelHooks
	Input     Actions
	Rand      *rand.Rand
	Log       *logrus.Entry
}

// Publish queues an event, stamping the current level number
func (c *Context) Publish(ev Event) {
	if ev.Level == 0 && c.Level != nil {
		ev.Level = c.Level.LevelNumber()
	}
	Events.Publish(c.World, ev)
}
