package systems

import (
	"math/rand"
	"testing"

	"github.com/automoto/keyrunner/collision"
	"github.com/automoto/keyrunner/logger"
	"github.com/automoto/keyrunner/sim"
	"github.com/automoto/keyrunner/systems/factory"
	"github.com/automoto/keyrunner/tilemap"
	"github.com/solarlune/resolv"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

type fakeLevel struct {
	score  int
	keys   map[donburi.Entity]bool
	exits  int
	deaths int
}

func (l *fakeLevel) AddScore(delta int) { l.score += delta }

func (l *fakeLevel) CollectKey(key *donburi.Entry) bool {
	if l.keys[key.Entity()] {
		return false
	}
	l.keys[key.Entity()] = true
	return true
}

func (l *fakeLevel) RequestExit()     { l.exits++ }
func (l *fakeLevel) PlayerDied()      { l.deaths++ }
func (l *fakeLevel) LevelNumber() int { return 1 }

// fixedSource makes every Float64 draw return the same value
type fixedSource int64

func (s fixedSource) Int63() int64 { return int64(s) }
func (fixedSource) Seed(int64)     {}

// openMap is a 20x20 grid of 32px cells with nothing solid inside it
func openMap(t *testing.T) *tilemap.TileMap {
	t.Helper()
	m, err := tilemap.New(&tilemap.Document{Width: 20, Height: 20, TileWidth: 32, TileHeight: 32})
	require.NoError(t, err)
	return m
}

func newTestContext(t *testing.T) (*sim.Context, *fakeLevel) {
	t.Helper()
	m := openMap(t)
	world := donburi.NewWorld()
	space := resolv.NewSpace(640, 640, 16, 16)
	level := &fakeLevel{keys: map[donburi.Entity]bool{}}
	ctx := &sim.Context{
		World:     world,
		Map:       m,
		Collision: collision.NewResolver(m, space),
		Registry:  sim.NewRegistry(world, space, Behaviors()),
		Level:     level,
		Input:     sim.Actions{},
		Rand:      rand.New(rand.NewSource(1)),
		Log:       logger.For("test"),
	}
	return ctx, level
}

func addPlayer(ctx *sim.Context, x, y float64) *donburi.Entry {
	p := factory.CreatePlayer(ctx.World, factory.Placement{X: x, Y: y})
	ctx.Registry.SetPlayer(p)
	return p
}

func collectEvents(ctx *sim.Context) *[]sim.Event {
	var got []sim.Event
	sim.Events.Subscribe(ctx.World, func(w donburi.World, ev sim.Event) {
		got = append(got, ev)
	})
	return &got
}
