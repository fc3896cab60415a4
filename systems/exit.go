package systems

import (
	"github.com/automoto/keyrunner/sim"
	"github.com/yohamta/donburi"
)

// Exit asks the level to advance when the player steps on it. A locked exit
// is the level's concern.
type Exit struct{}

func (Exit) Update(ctx *sim.Context, e *donburi.Entry, dt float64) {}

func (Exit) OnTouch(ctx *sim.Context, self, other *donburi.Entry) {
	if ctx.Registry.IsPlayer(other) {
		ctx.Level.RequestExit()
	}
}

func (Exit) Hint(e *donburi.Entry) sim.RenderHint {
	return sim.BaseHint(e)
}
