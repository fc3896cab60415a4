package level

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/automoto/keyrunner/collision"
	"github.com/automoto/keyrunner/components"
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/logger"
	"github.com/automoto/keyrunner/sim"
	"github.com/automoto/keyrunner/systems"
	"github.com/automoto/keyrunner/systems/factory"
	"github.com/automoto/keyrunner/tilemap"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

type Phase int

const (
	Loading Phase = iota
	Spawning
	Running
	Transitioning
	Finished
)

var phaseNames = [...]string{"Loading", "Spawning", "Running", "Transitioning", "Finished"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "Unknown"
	}
	return phaseNames[p]
}

// Pending is a map load in flight. Ready must not block.
type Pending interface {
	Ready() bool
	Map() *tilemap.TileMap
	Err() error
}

// LoadFunc starts loading the map at path
type LoadFunc func(path string) Pending

// Orchestrator drives a sequence of levels through Loading, Spawning,
// Running and Transitioning until the last one is Finished. Everything a
// level owns (map, world, registry) is replaced when the next one loads.
type Orchestrator struct {
	first   *cfg.Level
	current *cfg.Level
	load    LoadFunc
	table   *systems.SpawnTable
	rand    *rand.Rand
	log     *logrus.Entry

	phase   Phase
	pending Pending
	loadErr error

	index         int
	score         int
	keysRequired  int
	keysCollected int
	exitUnlocked  bool
	exitRequested bool
	died          bool

	world donburi.World
	ctx   *sim.Context

	listeners []func(sim.Event)
	onDeath   func(*Orchestrator)
	onFinish  func(score int)
}

// New starts loading the first level. A nil rng is seeded with 1.
func New(first *cfg.Level, load LoadFunc, rng *rand.Rand) *Orchestrator {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	o := &Orchestrator{
		first: first,
		load:  load,
		table: systems.NewSpawnTable(),
		rand:  rng,
		log:   logger.For("level"),
	}
	o.onDeath = (*Orchestrator).Restart
	o.startLevel(first)
	return o
}

// OnEvent registers a listener for the event stream. Events are delivered at
// the end of the frame that produced them, in publish order.
func (o *Orchestrator) OnEvent(fn func(sim.Event)) {
	o.listeners = append(o.listeners, fn)
}

// SetDeathHandler replaces the default death handler, which restarts the
// game from the first level.
func (o *Orchestrator) SetDeathHandler(fn func(*Orchestrator)) {
	o.onDeath = fn
}

// OnFinish is called once with the final score when the last level is left
func (o *Orchestrator) OnFinish(fn func(score int)) {
	o.onFinish = fn
}

func (o *Orchestrator) startLevel(lvl *cfg.Level) {
	o.current = lvl
	o.phase = Loading
	o.loadErr = nil
	o.world = nil
	o.ctx = nil
	o.keysCollected = 0
	o.keysRequired = lvl.KeysRequired
	o.exitUnlocked = false
	o.exitRequested = false
	o.died = false
	o.pending = o.load(lvl.Map)

	o.log.WithFields(logrus.Fields{
		"level": lvl.Number,
		"name":  lvl.Name,
		"map":   lvl.Map,
	}).Info("loading level")
}

// Tick advances the game by one frame. It never blocks: while the map is
// still loading it only polls.
func (o *Orchestrator) Tick(dt float64, input sim.Actions) {
	switch o.phase {
	case Loading:
		o.pollLoad()
	case Running:
		o.step(dt, input)
	}
}

func (o *Orchestrator) pollLoad() {
	if o.pending.Ready() {
		o.build(o.pending.Map())
		return
	}
	if err := o.pending.Err(); err != nil && o.loadErr == nil {
		o.loadErr = err
		o.log.WithError(err).WithField("map", o.current.Map).Warn("level stays loading")
	}
}

func (o *Orchestrator) build(m *tilemap.TileMap) {
	o.phase = Spawning

	world := donburi.NewWorld()
	w, h := m.PixelSize()
	cell := cfg.Collision.CellSize
	space := components.Space.Get(factory.CreateSpace(world, int(w), int(h), cell, cell))
	registry := sim.NewRegistry(world, space, systems.Behaviors())

	o.world = world
	o.ctx = &sim.Context{
		World:     world,
		Map:       m,
		Collision: collision.NewResolver(m, space),
		Registry:  registry,
		Level:     o,
		Input:     sim.Actions{},
		Rand:      o.rand,
		Log:       o.log.WithField("level", o.current.Number),
	}
	sim.Events.Subscribe(world, o.dispatch)

	x, y := o.playerStart(m)
	registry.SetPlayer(factory.CreatePlayer(world, factory.Placement{
		X: x, Y: y, SpriteKey: o.current.PlayerSprite,
	}))

	spawned, skipped := systems.SpawnFromMap(o.ctx, o.table)
	dupes := registry.DedupPlayers()
	registry.SweepRemovals()

	if o.keysRequired <= 0 {
		o.exitUnlocked = true
	}
	o.phase = Running

	o.log.WithFields(logrus.Fields{
		"level":   o.current.Number,
		"spawned": spawned,
		"skipped": skipped,
		"dupes":   dupes,
		"keys":    o.keysRequired,
	}).Info("level running")
}

// playerStart uses the configured start, then the map's spawn marker, then
// the default position.
func (o *Orchestrator) playerStart(m *tilemap.TileMap) (float64, float64) {
	if s := o.current.Start; s != nil {
		return s.X, s.Y
	}
	if x, y, ok := systems.FindPlayerSpawn(m); ok {
		return x, y
	}
	return cfg.Player.StartX, cfg.Player.StartY
}

func (o *Orchestrator) step(dt float64, input sim.Actions) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		dt = cfg.Levels.FrameDelta
	}
	if input == nil {
		input = sim.Actions{}
	}
	o.ctx.Input = input

	registry := o.ctx.Registry
	registry.UpdateAll(o.ctx, dt)
	registry.DispatchTouches(o.ctx)
	registry.SweepRemovals()
	sim.Events.ProcessEvents(o.world)

	if o.died {
		o.died = false
		if o.onDeath != nil {
			o.onDeath(o)
		}
		return
	}
	if o.exitRequested {
		o.transition()
	}
}

func (o *Orchestrator) dispatch(_ donburi.World, ev sim.Event) {
	for _, fn := range o.listeners {
		fn(ev)
	}
}

// emit delivers an event produced outside the frame pass right away
func (o *Orchestrator) emit(ev sim.Event) {
	if ev.Level == 0 && o.current != nil {
		ev.Level = o.current.Number
	}
	if o.world == nil {
		o.dispatch(nil, ev)
		return
	}
	sim.Events.Publish(o.world, ev)
	sim.Events.ProcessEvents(o.world)
}

func (o *Orchestrator) transition() {
	o.phase = Transitioning
	o.emit(sim.Event{
		Kind:   sim.LevelComplete,
		Score:  o.score,
		Keys:   o.keysCollected,
		Needed: o.keysRequired,
	})

	next := o.current.Next
	if next == nil {
		o.finish()
		return
	}
	if !next.KeepScore {
		o.score = 0
	}
	o.index++
	o.startLevel(next)
}

func (o *Orchestrator) finish() {
	o.phase = Finished
	o.emit(sim.Event{Kind: sim.GameFinished, Score: o.score})
	o.log.WithFields(logrus.Fields{
		"level": o.current.Number,
		"score": o.score,
	}).Info("game finished")
	if o.onFinish != nil {
		o.onFinish(o.score)
	}
}

// Restart discards the current level and loads the first one with the
// score reset.
func (o *Orchestrator) Restart() {
	o.log.WithField("score", o.score).Info("restarting")
	o.score = 0
	o.index = 0
	o.startLevel(o.first)
}

// Advance skips to the next level as if its exit had been taken. On the
// last level it does nothing and returns false.
func (o *Orchestrator) Advance() bool {
	if o.phase != Running {
		return false
	}
	if o.current.Next == nil {
		o.log.WithError(fmt.Errorf("%w: no level after %d", sim.ErrInvalidTransition, o.current.Number)).
			Warn("advance ignored")
		return false
	}
	o.transition()
	return true
}

// AddScore changes the score and reports it
func (o *Orchestrator) AddScore(delta int) {
	o.score += delta
	o.publish(sim.Event{Kind: sim.ScoreChanged, Score: o.score, Delta: delta})
}

// CollectKey counts a key once. The exit unlocks when the count first
// reaches the number required.
func (o *Orchestrator) CollectKey(key *donburi.Entry) bool {
	pickup := components.Key.Get(key)
	if pickup.Collected {
		return false
	}
	pickup.Collected = true
	if o.keysCollected < o.keysRequired {
		o.keysCollected++
	}
	unlocked := !o.exitUnlocked && o.keysCollected >= o.keysRequired
	if unlocked {
		o.exitUnlocked = true
		o.log.WithFields(logrus.Fields{
			"level": o.current.Number,
			"keys":  o.keysCollected,
		}).Info("exit unlocked")
	}
	o.publish(sim.Event{
		Kind:     sim.KeyCollected,
		Score:    o.score,
		Keys:     o.keysCollected,
		Needed:   o.keysRequired,
		Unlocked: unlocked,
		Entity:   key.Entity(),
	})
	return true
}

// RequestExit asks for the level transition. A locked exit ignores it.
func (o *Orchestrator) RequestExit() {
	if !o.exitUnlocked {
		o.log.WithError(fmt.Errorf("%w: exit locked", sim.ErrInvalidTransition)).WithFields(logrus.Fields{
			"keys":   o.keysCollected,
			"needed": o.keysRequired,
		}).Debug("exit touched")
		return
	}
	o.exitRequested = true
}

// PlayerDied records the player's death once per level
func (o *Orchestrator) PlayerDied() {
	if o.died || o.phase != Running {
		return
	}
	o.died = true
	o.publish(sim.Event{Kind: sim.PlayerDied, Score: o.score})
	o.log.WithField("level", o.current.Number).Info("player died")
}

func (o *Orchestrator) LevelNumber() int {
	if o.current == nil {
		return 0
	}
	return o.current.Number
}

func (o *Orchestrator) publish(ev sim.Event) {
	if o.ctx == nil {
		o.emit(ev)
		return
	}
	o.ctx.Publish(ev)
}

func (o *Orchestrator) Phase() Phase { return o.phase }
func (o *Orchestrator) Score() int { return o.score }
func (o *Orchestrator) KeysCollected() int { return o.keysCollected }
func (o *Orchestrator) KeysRequired() int { return o.keysRequired }
func (o *Orchestrator) ExitUnlocked() bool { return o.exitUnlocked }
func (o *Orchestrator) LevelIndex() int { return o.index }
func (o *Orchestrator) Level() *cfg.Level { return o.current }
func (o *Orchestrator) LoadErr() error { return o.loadErr }
func (o *Orchestrator) Context() *sim.Context { return o.ctx }
func (o *Orchestrator) Pending() Pending { return o.pending }

// Map returns the running level's map, nil while loading
func (o *Orchestrator) Map() *tilemap.TileMap {
	if o.ctx == nil {
		return nil
	}
	return o.ctx.Map
}

// Registry returns the running level's entities, nil while loading
func (o *Orchestrator) Registry() *sim.Registry {
	if o.ctx == nil {
		return nil
	}
	return o.ctx.Registry
}

// Hints returns what the renderer needs for every live entity
func (o *Orchestrator) Hints() []sim.RenderHint {
	if o.ctx == nil {
		return nil
	}
	return o.ctx.Registry.Hints()
}

// Lives returns the player's remaining lives, 0 when there is no player
func (o *Orchestrator) Lives() int {
	if o.ctx == nil {
		return 0
	}
	p, ok := o.ctx.Registry.Player()
	if !ok {
		return 0
	}
	return components.Player.Get(p).Lives
}
