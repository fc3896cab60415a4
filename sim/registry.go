package sim

import (
	"fmt"

	"github.com/automoto/keyrunner/components"
	"github.com/automoto/keyrunner/logger"
	"github.com/sirupsen/logrus"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
)

// Registry owns the live entities of one level. Entities are updated in
// registration order and only ever removed by SweepRemovals.
type Registry struct {
	world     donburi.World
	space     *resolv.Space
	behaviors map[components.Kind]Behavior

	order   []*donburi.Entry
	pending map[donburi.Entity]struct{}
	player  *donburi.Entry
	log     *logrus.Entry
}

func NewRegistry(world donburi.World, space *resolv.Space, behaviors map[components.Kind]Behavior) *Registry {
	return &Registry{
		world:     world,
		space:     space,
		behaviors: behaviors,
		pending:   make(map[donburi.Entity]struct{}),
		log:       logger.For("registry"),
	}
}

// Add registers an entity and puts its hitbox into the blocker space
func (r *Registry) Add(e *donburi.Entry) {
	r.order = append(r.order, e)
	if r.space != nil && e.HasComponent(components.Object) {
		if obj := components.Object.Get(e).Object; obj != nil && obj.Space == nil {
			r.space.Add(obj)
		}
	}
}

// SetPlayer registers e as the owned player instance
func (r *Registry) SetPlayer(e *donburi.Entry) {
	r.player = e
	for _, existing := range r.order {
		if existing.Entity() == e.Entity() {
			return
		}
	}
	r.Add(e)
}

func (r *Registry) Player() (*donburi.Entry, bool) {
	if r.player == nil || !r.player.Valid() {
		return nil, false
	}
	return r.player, true
}

func (r *Registry) IsPlayer(e *donburi.Entry) bool {
	return r.player != nil && e != nil && e.Entity() == r.player.Entity()
}

// MarkForRemoval schedules e for the end-of-frame sweep. Marking twice is harmless.
func (r *Registry) MarkForRemoval(e *donburi.Entry) {
	r.pending[e.Entity()] = struct{}{}
}

func (r *Registry) PendingRemoval(e *donburi.Entry) bool {
	_, ok := r.pending[e.Entity()]
	return ok
}

// SweepRemovals removes every marked entity and returns how many went
func (r *Registry) SweepRemovals() int {
	if len(r.pending) == 0 {
		return 0
	}
	kept := r.order[:0]
	removed := 0
	for _, e := range r.order {
		if _, ok := r.pending[e.Entity()]; !ok {
			kept = append(kept, e)
			continue
		}
		removed++
		if r.space != nil && e.Valid() && e.HasComponent(components.Object) {
			if obj := components.Object.Get(e).Object; obj != nil && obj.Space != nil {
				r.space.Remove(obj)
			}
		}
		if r.IsPlayer(e) {
			r.player = nil
		}
		if e.Valid() {
			r.world.Remove(e.Entity())
		}
	}
	for i := len(kept); i < len(r.order); i++ {
		r.order[i] = nil
	}
	r.order = kept
	clear(r.pending)
	return removed
}

func (r *Registry) behaviorOf(e *donburi.Entry) (Behavior, components.Kind, bool) {
	if !e.Valid() || !e.HasComponent(components.EntityKind) {
		return nil, 0, false
	}
	kind := components.EntityKind.Get(e).Kind
	b, ok := r.behaviors[kind]
	return b, kind, ok
}

func (r *Registry) live(e *donburi.Entry) bool {
	return e.Valid() && !r.PendingRemoval(e)
}

// UpdateAll runs each live entity's update in registration order. Entities
// added during the pass are first updated next frame. A panicking update is
// logged and skipped; the rest of the pass continues.
func (r *Registry) UpdateAll(ctx *Context, dt float64) {
	entries := r.order
	for _, e := range entries {
		if !r.live(e) {
			continue
		}
		b, kind, ok := r.behaviorOf(e)
		if !ok {
			continue
		}
		if err := r.safely(func() { b.Update(ctx, e, dt) }); err != nil {
			r.log.WithFields(logrus.Fields{
				"entity": e.Entity(),
				"kind":   kind,
			}).WithError(err).Error("entity update skipped")
		}
	}
}

// DispatchTouches tests every pair of live entities for overlap and invokes
// both touch handlers of each overlapping pair. Pairs whose member was marked
// for removal earlier in the pass are skipped. It returns the pairs touched.
func (r *Registry) DispatchTouches(ctx *Context) int {
	entries := make([]*donburi.Entry, 0, len(r.order))
	for _, e := range r.order {
		if r.live(e) && e.HasComponent(components.Object) && components.Object.Get(e).Object != nil {
			entries = append(entries, e)
		}
	}

	touched := 0
	for i := 0; i < len(entries); i++ {
		a := entries[i]
		for j := i + 1; j < len(entries); j++ {
			b := entries[j]
			if r.PendingRemoval(a) || r.PendingRemoval(b) {
				continue
			}
			if !components.Overlaps(components.Object.Get(a).Object, components.Object.Get(b).Object) {
				continue
			}
			touched++
			r.touch(ctx, a, b)
			r.touch(ctx, b, a)
		}
	}
	return touched
}

func (r *Registry) touch(ctx *Context, self, other *donburi.Entry) {
	b, kind, ok := r.behaviorOf(self)
	if !ok {
		return
	}
	if err := r.safely(func() { b.OnTouch(ctx, self, other) }); err != nil {
		r.log.WithFields(logrus.Fields{
			"entity": self.Entity(),
			"kind":   kind,
			"other":  other.Entity(),
		}).WithError(err).Error("touch handler skipped")
	}
}

func (r *Registry) safely(fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrEntityUpdateFault, p)
		}
	}()
	fn()
	return nil
}

// DedupPlayers marks every player entity other than the owned one
func (r *Registry) DedupPlayers() int {
	marked := 0
	for _, e := range r.order {
		if !r.live(e) || r.IsPlayer(e) || !e.HasComponent(components.EntityKind) {
			continue
		}
		if components.EntityKind.Get(e).Kind == components.KindPlayer {
			r.MarkForRemoval(e)
			marked++
		}
	}
	return marked
}

// Entries returns the live entities in registration order
func (r *Registry) Entries() []*donburi.Entry {
	out := make([]*donburi.Entry, 0, len(r.order))
	for _, e := range r.order {
		if r.live(e) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns the number of live entities of a kind
func (r *Registry) Count(kind components.Kind) int {
	n := 0
	for _, e := range r.order {
		if r.live(e) && e.HasComponent(components.EntityKind) && components.EntityKind.Get(e).Kind == kind {
			n++
		}
	}
	return n
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Hints returns render state for the live entities in registration order
func (r *Registry) Hints() []RenderHint {
	hints := make([]RenderHint, 0, len(r.order))
	for _, e := range r.order {
		if !r.live(e) {
			continue
		}
		if b, _, ok := r.behaviorOf(e); ok {
			hints = append(hints, b.Hint(e))
		}
	}
	return hints
}
