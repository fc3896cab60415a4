package collision

import (
	"math"
	"testing"

	"github.com/automoto/keyrunner/components"
	"github.com/automoto/keyrunner/tags"
	"github.com/automoto/keyrunner/tilemap"
	"github.com/solarlune/resolv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGrid is 4x4 cells of 32px:
//
//	row 0: .  .  .  V   V = bottom-half collider flipped vertically
//	row 1: .  W  .  .   W = wall tileset, solid by default
//	row 2: .  .  P  H   P = wall tile marked passable, H = bottom-half collider
//	row 3: S  D  .  T   S = tile marked solid, D = decoration, T = thin collider
func testGrid(t *testing.T) *tilemap.TileMap {
	t.Helper()
	collides := tilemap.Properties{"collides": true}
	doc := &tilemap.Document{
		Width: 4, Height: 4, TileWidth: 32, TileHeight: 32,
		Tilesets: []tilemap.TilesetDoc{
			{
				FirstGID: 1, Name: "TX Tileset Wall", Columns: 4, TileCount: 8,
				Tiles: []tilemap.TileDoc{
					{ID: 1, Properties: tilemap.Properties{"passable": true}},
					{ID: 2, ObjectGroup: &tilemap.LayerDoc{Objects: []tilemap.ObjectDoc{
						{X: 0, Y: 16, Width: 32, Height: 16, Properties: collides},
					}}},
					{ID: 3, ObjectGroup: &tilemap.LayerDoc{Objects: []tilemap.ObjectDoc{
						{X: 14, Y: 0, Width: 4, Height: 32, Properties: collides},
					}}},
				},
			},
			{
				FirstGID: 10, Name: "Deco", Columns: 4, TileCount: 4,
				Tiles: []tilemap.TileDoc{
					{ID: 0, Properties: tilemap.Properties{"solid": true}},
				},
			},
		},
		Layers: []tilemap.LayerDoc{
			{Name: "floor", Type: tilemap.TypeTileLayer, Data: tilemap.CellData{Cells: []uint32{
				11, 11, 11, 11,
				11, 11, 11, 11,
				11, 11, 11, 11,
				11, 11, 11, 11,
			}}},
			{Name: "3-1", Type: tilemap.TypeTileLayer, Data: tilemap.CellData{Cells: []uint32{
				0, 0, 0, tilemap.FlipVertical | 3,
				0, 1, 0, 0,
				0, 0, 2, 3,
				10, 11, 0, 4,
			}}},
		},
	}
	m, err := tilemap.New(doc)
	require.NoError(t, err)
	return m
}

func TestIsSolidAtPointOutOfBounds(t *testing.T) {
	r := NewResolver(testGrid(t), nil)
	points := [][2]float64{
		{-1, 5}, {5, -0.1}, {128, 10}, {10, 128}, {-500, -500}, {1e12, 3},
	}
	for _, p := range points {
		assert.True(t, r.IsSolidAtPoint(p[0], p[1]), "point %v", p)
	}
	assert.True(t, r.IsSolidAtPoint(math.NaN(), 3))
}

func TestIsSolidAtPointPrecedence(t *testing.T) {
	r := NewResolver(testGrid(t), nil)
	tests := []struct {
		name  string
		x, y  float64
		solid bool
	}{
		{"empty cell", 10, 10, false},
		{"wall tileset default", 40, 40, true},
		{"passable overrides wall default", 80, 80, false},
		{"collider bottom half hit", 100, 90, true},
		{"collider top half miss", 100, 70, false},
		{"flipped collider now top half", 100, 5, true},
		{"flipped collider bottom miss", 100, 20, false},
		{"explicit solid on plain tileset", 10, 100, true},
		{"plain tileset without properties", 40, 100, false},
		{"thin collider hit", 111, 110, true},
		{"thin collider miss", 100, 110, false},
		{"decorative layer ignored", 70, 10, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.solid, r.IsSolidAtPoint(tt.x, tt.y))
		})
	}
}

func TestFailOpen(t *testing.T) {
	r := NewResolver(nil, nil)
	assert.False(t, r.IsSolidAtPoint(-10, -10))
	assert.False(t, r.IsRectBlocked(0, 0, 24, 24))

	m := testGrid(t)
	m.Layers = m.Layers[:1] // drop the collision layer
	r = NewResolver(m, nil)
	assert.Empty(t, r.Layers())
	assert.False(t, r.IsSolidAtPoint(40, 40))
	assert.True(t, r.IsSolidAtPoint(-1, 40))
}

func TestCollisionLayerByProperty(t *testing.T) {
	m := testGrid(t)
	m.Layers[1].Name = "walls"
	r := NewResolver(m, nil)
	assert.False(t, r.IsSolidAtPoint(40, 40))

	m.Layers[1].Properties = tilemap.Properties{"collision": true}
	r = NewResolver(m, nil)
	assert.True(t, r.IsSolidAtPoint(40, 40))
}

func TestIsRectBlocked(t *testing.T) {
	r := NewResolver(testGrid(t), nil)
	tests := []struct {
		name       string
		x, y, w, h float64
		blocked    bool
	}{
		{"inside solid cell", 36, 36, 10, 10, true},
		{"tiny rect inside solid cell", 50, 50, 1, 1, true},
		{"whole passable cell", 64, 64, 32, 32, false},
		{"inside passable cell", 66, 66, 28, 28, false},
		{"empty corner", 0, 0, 30, 30, false},
		{"touching wall within padding", 8, 32, 25, 24, false},
		{"overlapping wall past padding", 8, 32, 28, 24, true},
		{"across the thin collider", 100, 100, 24, 24, true},
		{"leaving the map", -10, 0, 24, 24, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.blocked, r.IsRectBlocked(tt.x, tt.y, tt.w, tt.h))
		})
	}
}

func TestColliders(t *testing.T) {
	r := NewResolver(testGrid(t), nil)

	_, whole := r.Colliders(1, 1)
	assert.True(t, whole)

	rects, whole := r.Colliders(3, 0)
	assert.False(t, whole)
	require.Len(t, rects, 1)
	assert.Equal(t, tilemap.Rect{X: 0, Y: 0, W: 32, H: 16}, rects[0])

	rects, whole = r.Colliders(0, 0)
	assert.False(t, whole)
	assert.Empty(t, rects)
}

func TestOrient(t *testing.T) {
	rect := tilemap.Rect{X: 2, Y: 4, W: 8, H: 6}
	tests := []struct {
		name string
		gid  tilemap.GID
		want tilemap.Rect
	}{
		{"none", tilemap.GID{}, rect},
		{"horizontal", tilemap.GID{FlipH: true}, tilemap.Rect{X: 22, Y: 4, W: 8, H: 6}},
		{"vertical", tilemap.GID{FlipV: true}, tilemap.Rect{X: 2, Y: 22, W: 8, H: 6}},
		{"diagonal", tilemap.GID{FlipD: true}, tilemap.Rect{X: 4, Y: 2, W: 6, H: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, orient(rect, tt.gid, 32, 32))
		})
	}
}

func TestResolveMoveSlidesAlongWall(t *testing.T) {
	r := NewResolver(testGrid(t), nil)
	obj := resolv.NewObject(4, 4, 24, 24)
	motion := &components.MotionData{
		Intent: components.Vector{X: math.Sqrt2 / 2, Y: math.Sqrt2 / 2},
		Speed:  100,
	}

	dx, dy := r.ResolveMove(obj, motion, 0.1)
	assert.InDelta(t, 7.07, dx, 0.01, "free axis still moves")
	assert.Equal(t, 0.0, dy, "blocked axis does not move")
	assert.InDelta(t, 11.07, obj.X, 0.01)
	assert.Equal(t, 4.0, obj.Y)
	assert.False(t, r.IsRectBlocked(obj.X, obj.Y, obj.W, obj.H))
}

func TestResolveMoveStopsAtMapEdge(t *testing.T) {
	r := NewResolver(testGrid(t), nil)
	obj := resolv.NewObject(4, 4, 24, 24)
	motion := &components.MotionData{Intent: components.Vector{X: -1}, Speed: 200}

	dx, dy := r.ResolveMove(obj, motion, 0.1)
	assert.Equal(t, 0.0, dx)
	assert.Equal(t, 0.0, dy)
	assert.Equal(t, 4.0, obj.X)
}

func TestResolveMoveBadDelta(t *testing.T) {
	r := NewResolver(testGrid(t), nil)
	obj := resolv.NewObject(4, 4, 24, 24)
	motion := &components.MotionData{Intent: components.Vector{X: 1}, Speed: 60}

	dx, _ := r.ResolveMove(obj, motion, math.NaN())
	assert.InDelta(t, 1.0, dx, 1e-9, "falls back to one 60 Hz frame")
}

func TestResolveMoveBlockedByBodies(t *testing.T) {
	space := resolv.NewSpace(128, 128, 16, 16)
	r := NewResolver(testGrid(t), space)

	barrier := resolv.NewObject(0, 40, 32, 32, tags.ResolvSolid)
	mover := resolv.NewObject(0, 0, 24, 24, tags.ResolvPlayer)
	space.Add(barrier, mover)

	motion := &components.MotionData{Intent: components.Vector{Y: 1}, Speed: 100}
	_, dy := r.ResolveMove(mover, motion, 0.2)
	assert.Equal(t, 0.0, dy)
	assert.Equal(t, 0.0, mover.Y)

	space.Remove(barrier)
	_, dy = r.ResolveMove(mover, motion, 0.2)
	assert.InDelta(t, 20.0, dy, 1e-9)
}
