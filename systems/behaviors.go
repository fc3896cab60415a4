package systems

import (
	"github.com/automoto/keyrunner/components"
	"github.com/automoto/keyrunner/sim"
)

// Behaviors returns the capability set of every entity kind
func Behaviors() map[components.Kind]sim.Behavior {
	return map[components.Kind]sim.Behavior{
		components.KindPlayer:  Player{},
		components.KindEnemy:   EnemyAI{},
		components.KindKey:     Key{},
		components.KindBonus:   Bonus{},
		components.KindExit:    Exit{},
		components.KindBarrier: Barrier{},
	}
}
