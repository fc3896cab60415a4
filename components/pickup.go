package components

import (
	"github.com/yohamta/donburi"
)

// PickupData is shared by keys and bonuses. Collected guards double pickup.
type PickupData struct {
	Value     int
	Collected bool
}

var (
	Key   = donburi.NewComponentType[PickupData]()
	Bonus = donburi.NewComponentType[PickupData]()
)
