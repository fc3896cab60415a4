package systems

import (
	"github.com/automoto/keyrunner/sim"
	"github.com/yohamta/donburi"
)

// Barrier is inert; the player's break action drives it
type Barrier struct{}

func (Barrier) Update(ctx *sim.Context, e *donburi.Entry, dt float64) {}

func (Barrier) OnTouch(ctx *sim.Context, self, other *donburi.Entry) {}

func (Barrier) Hint(e *donburi.Entry) sim.RenderHint {
	return sim.BaseHint(e)
}
