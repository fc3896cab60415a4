package systems

import (
	"fmt"
	"strings"

	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/sim"
	"github.com/automoto/keyrunner/systems/factory"
	"github.com/automoto/keyrunner/tilemap"
	"github.com/sirupsen/logrus"
	"github.com/yohamta/donburi"
)

// Constructor builds one entity kind at a placement
type Constructor func(world donburi.World, p factory.Placement) *donburi.Entry

// SpawnTable maps map-object names and types onto constructors
type SpawnTable struct {
	exact      map[string]Constructor
	normalized map[string]Constructor
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func enemyConstructor(variant string) Constructor {
	return func(world donburi.World, p factory.Placement) *donburi.Entry {
		return factory.CreateEnemy(world, variant, p)
	}
}

// NewSpawnTable registers every spawnable kind: the player, pickups, the
// exit, barriers, and each enemy variant and alias.
func NewSpawnTable() *SpawnTable {
	t := &SpawnTable{
		exact:      make(map[string]Constructor),
		normalized: make(map[string]Constructor),
	}
	t.Register("Player", factory.CreatePlayer)
	t.Register("Key", factory.CreateKey)
	t.Register("Bonus", factory.CreateBonus)
	t.Register("cake", factory.CreateBonus)
	t.Register("Exit", factory.CreateExit)
	t.Register("Barrier", factory.CreateBarrier)
	for name := range cfg.Enemy.Types {
		t.Register(name, enemyConstructor(name))
	}
	for alias, variant := range cfg.Enemy.Aliases {
		t.Register(alias, enemyConstructor(variant))
	}
	return t
}

func (t *SpawnTable) Register(key string, c Constructor) {
	t.exact[key] = c
	t.normalized[normalize(key)] = c
}

// Lookup tries the exact name, the exact type, then both again normalised
func (t *SpawnTable) Lookup(name, typ string) (Constructor, bool) {
	for _, key := range []string{name, typ} {
		if c, ok := t.exact[key]; ok && key != "" {
			return c, true
		}
	}
	for _, key := range []string{name, typ} {
		if c, ok := t.normalized[normalize(key)]; ok && key != "" {
			return c, true
		}
	}
	return nil, false
}

// PlacementFor positions an entity for a map object. Tile objects are
// anchored at their bottom-left corner, so they are moved up by their height.
func PlacementFor(layer *tilemap.Layer, obj tilemap.Object) factory.Placement {
	p := factory.Placement{
		X:         obj.X + layer.OffsetX,
		Y:         obj.Y + layer.OffsetY,
		W:         obj.Width,
		H:         obj.Height,
		SpriteKey: obj.Name,
		Props:     obj.Properties,
	}
	if obj.IsTile {
		p.Y -= obj.Height
	}
	if p.SpriteKey == "" {
		p.SpriteKey = obj.Type
	}
	return p
}

// SpawnFromMap creates one entity per object-layer entry and registers it.
// Entries that name no known kind are skipped with a warning.
func SpawnFromMap(ctx *sim.Context, table *SpawnTable) (spawned, skipped int) {
	if ctx.Map == nil {
		return 0, 0
	}
	for _, layer := range ctx.Map.ObjectLayers() {
		for _, obj := range layer.Objects {
			construct, ok := table.Lookup(obj.Name, obj.Type)
			if !ok && isSpawnMarker(obj) {
				continue
			}
			if !ok {
				skipped++
				ctx.Log.WithFields(logrus.Fields{
					"layer": layer.Name,
					"id":    obj.ID,
					"name":  obj.Name,
					"type":  obj.Type,
				}).WithError(fmt.Errorf("%w: %q/%q", sim.ErrUnmappedEntity, obj.Name, obj.Type)).Warn("map object skipped")
				continue
			}
			ctx.Registry.Add(construct(ctx.World, PlacementFor(layer, obj)))
			spawned++
		}
	}
	return spawned, skipped
}

// FindPlayerSpawn returns the position of the first map object marking the
// player start: a type in SpawnTypes or a name in SpawnNames, any case.
func FindPlayerSpawn(m *tilemap.TileMap) (x, y float64, ok bool) {
	if m == nil {
		return 0, 0, false
	}
	for _, layer := range m.ObjectLayers() {
		for _, obj := range layer.Objects {
			if isSpawnMarker(obj) {
				p := PlacementFor(layer, obj)
				return p.X, p.Y, true
			}
		}
	}
	return 0, 0, false
}

func isSpawnMarker(obj tilemap.Object) bool {
	return matchesAny(obj.Type, cfg.Levels.SpawnTypes) || matchesAny(obj.Name, cfg.Levels.SpawnNames)
}

func matchesAny(s string, candidates []string) bool {
	if s == "" {
		return false
	}
	for _, c := range candidates {
		if strings.EqualFold(strings.TrimSpace(s), c) {
			return true
		}
	}
	return false
}
