package sim

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

type EventKind int

const (
	KeyCollected EventKind = iota
	BonusCollected
	EnemyHit
	LevelComplete
	PlayerDied
	ScoreChanged
	BarrierBroken
	GameFinished
)

var eventNames = [...]string{
	"KeyCollected", "BonusCollected", "EnemyHit", "LevelComplete",
	"PlayerDied", "ScoreChanged", "BarrierBroken", "GameFinished",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "Unknown"
	}
	return eventNames[k]
}

// Event is what audio, HUD and persistence collaborators observe
type Event struct {
	Kind     EventKind
	Level    int
	Score    int
	Delta    int // score change, or lives change for hits and bonuses
	Keys     int
	Needed   int
	Unlocked bool // the key that opened the exit
	Lives    int
	Entity   donburi.Entity
}

// Events queues events on a level's world; they are delivered when the
// orchestrator processes them at the end of the frame.
var Events = events.NewEventType[Event]()
