package archetypes

import (
	"github.com/automoto/keyrunner/components"
	"github.com/automoto/keyrunner/tags"
	"github.com/yohamta/donburi"
)

var (
	Player = newArchetype(
		tags.Player,
		components.EntityKind,
		components.Object,
		components.Motion,
		components.Player,
	)
	Enemy = newArchetype(
		tags.Enemy,
		components.EntityKind,
		components.Object,
		components.Motion,
		components.Enemy,
	)
	Key = newArchetype(
		tags.Key,
		components.EntityKind,
		components.Object,
		components.Key,
	)
	Bonus = newArchetype(
		tags.Bonus,
		components.EntityKind,
		components.Object,
		components.Bonus,
	)
	Exit = newArchetype(
		tags.Exit,
		components.EntityKind,
		components.Object,
	)
	Barrier = newArchetype(
		tags.Barrier,
		components.EntityKind,
		components.Object,
		components.Barrier,
	)
	Space = newArchetype(
		components.Space,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(world donburi.World, cs ...donburi.IComponentType) *donburi.Entry {
	all := make([]donburi.IComponentType, 0, len(a.components)+len(cs))
	all = append(all, a.components...)
	all = append(all, cs...)
	return world.Entry(world.Create(all...))
}
