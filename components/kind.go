package components

import (
	"github.com/yohamta/donburi"
)

type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindKey
	KindBonus
	KindExit
	KindBarrier
)

var kindNames = [...]string{"Player", "Enemy", "Key", "Bonus", "Exit", "Barrier"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// KindData is the discriminant shared by every simulated entity
type KindData struct {
	Kind      Kind
	Variant   string // enemy variant name, empty for other kinds
	SpriteKey string // opaque render lookup
}

var EntityKind = donburi.NewComponentType[KindData]()
