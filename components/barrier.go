package components

import (
	"github.com/yohamta/donburi"
)

type BarrierData struct {
	Progress float64 // 0..1 of the break hold
	Broken   bool
}

var Barrier = donburi.NewComponentType[BarrierData]()
