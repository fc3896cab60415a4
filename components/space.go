package components

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Space holds the level's dynamic blockers
var Space = donburi.NewComponentType[resolv.Space]()
