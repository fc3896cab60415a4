package collision

import (
	"math"

	"github.com/automoto/keyrunner/components"
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/tags"
	"github.com/automoto/keyrunner/tilemap"
	"github.com/solarlune/resolv"
)

// Resolver answers solidity queries against a level's collision layers and
// moves hitboxes through them. Rectangle tests sample points on a grid no
// coarser than a quarter tile (and never above MaxSampleStep), so they are a
// conservative approximation rather than exact intersection.
//
// A nil map means nothing is solid; a map without collision layers means only
// the area outside the grid is.
type Resolver struct {
	tileMap *tilemap.TileMap
	layers  []*tilemap.Layer
	space   *resolv.Space

	wallTilesets map[string]bool
	pad          float64
	stepX, stepY float64
}

func NewResolver(m *tilemap.TileMap, space *resolv.Space) *Resolver {
	r := &Resolver{
		tileMap:      m,
		space:        space,
		wallTilesets: make(map[string]bool, len(cfg.Collision.WallTilesets)),
		pad:          cfg.Collision.Padding,
		stepX:        cfg.Collision.MaxSampleStep,
		stepY:        cfg.Collision.MaxSampleStep,
	}
	for _, name := range cfg.Collision.WallTilesets {
		r.wallTilesets[name] = true
	}
	if m == nil {
		return r
	}

	r.stepX = sampleStep(float64(m.TileWidth))
	r.stepY = sampleStep(float64(m.TileHeight))

	named := make(map[string]bool, len(cfg.Collision.Layers))
	for _, name := range cfg.Collision.Layers {
		named[name] = true
	}
	for _, l := range m.Layers {
		if l.Kind != tilemap.TileLayer {
			continue
		}
		if named[l.Name] || l.Properties.True(cfg.Collision.LayerProperty) {
			r.layers = append(r.layers, l)
		}
	}
	return r
}

const maxCoord = 1e9

func sampleStep(tile float64) float64 {
	step := math.Min(cfg.Collision.MaxSampleStep, tile/4)
	if step <= 0 {
		step = 1
	}
	return step
}

// Layers returns the collision layers in map order
func (r *Resolver) Layers() []*tilemap.Layer {
	return r.layers
}

// colliderFor applies tile collider precedence: explicit sub-rectangles,
// then explicit non-solid, then explicit solid, then the tileset default.
func (r *Resolver) colliderFor(cell tilemap.Cell) ([]tilemap.Rect, bool) {
	info, _ := cell.Tileset.Tile(cell.LocalID)
	switch {
	case len(info.Colliders) > 0:
		return info.Colliders, false
	case info.NonSolid:
		return nil, false
	case info.Solid:
		return nil, true
	case r.wallTilesets[cell.Tileset.Name] || cell.Tileset.DefaultSolid():
		return nil, true
	}
	return nil, false
}

// Colliders returns the solid parts of a grid cell in tile-local pixels,
// merged over all collision layers. whole is true when the entire cell is solid.
func (r *Resolver) Colliders(col, row int) (rects []tilemap.Rect, whole bool) {
	if r.tileMap == nil {
		return nil, false
	}
	tw, th := float64(r.tileMap.TileWidth), float64(r.tileMap.TileHeight)
	for _, l := range r.layers {
		cell, ok := r.tileMap.ResolveCell(r.tileMap.CellAt(l, col, row))
		if !ok {
			continue
		}
		local, solid := r.colliderFor(cell)
		if solid {
			return nil, true
		}
		for _, rect := range local {
			rects = append(rects, orient(rect, cell.GID, tw, th))
		}
	}
	return rects, false
}

// orient maps a collider rectangle through the cell's flip flags. The
// diagonal flip is applied before the horizontal and vertical ones.
func orient(rect tilemap.Rect, gid tilemap.GID, tw, th float64) tilemap.Rect {
	if gid.FlipD {
		rect = tilemap.Rect{X: rect.Y, Y: rect.X, W: rect.H, H: rect.W}
	}
	if gid.FlipH {
		rect.X = tw - rect.X - rect.W
	}
	if gid.FlipV {
		rect.Y = th - rect.Y - rect.H
	}
	return rect
}

// IsSolidAtPoint reports whether a world point is blocked by the tile grid.
// Points outside the grid are always solid.
func (r *Resolver) IsSolidAtPoint(x, y float64) bool {
	m := r.tileMap
	if m == nil {
		return false
	}
	if math.IsNaN(x) || math.IsNaN(y) {
		return true
	}

	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	fx, fy := math.Floor(x/tw), math.Floor(y/th)
	if fx < 0 || fy < 0 || fx >= float64(m.Width) || fy >= float64(m.Height) {
		return true
	}
	if len(r.layers) == 0 {
		return false
	}

	col, row := int(fx), int(fy)
	lx, ly := x-fx*tw, y-fy*th
	for _, l := range r.layers {
		cell, ok := m.ResolveCell(m.CellAt(l, col, row))
		if !ok {
			continue
		}
		rects, solid := r.colliderFor(cell)
		if solid {
			return true
		}
		for _, rect := range rects {
			if orient(rect, cell.GID, tw, th).Contains(lx, ly) {
				return true
			}
		}
	}
	return false
}

// IsRectBlocked samples the rectangle, inset by the padding, on a grid of
// points, then walks its right and bottom edges so the last partial step
// cannot skip a thin collider.
func (r *Resolver) IsRectBlocked(x, y, w, h float64) bool {
	if math.Abs(x) > maxCoord || math.Abs(y) > maxCoord {
		// Beyond any grid, and too large for the step to advance.
		return r.tileMap != nil
	}
	left, right := span(x, w, r.pad)
	top, bottom := span(y, h, r.pad)

	for py := top; py <= bottom; py += r.stepY {
		for px := left; px <= right; px += r.stepX {
			if r.IsSolidAtPoint(px, py) {
				return true
			}
		}
		if r.IsSolidAtPoint(right, py) {
			return true
		}
	}
	for px := left; px <= right; px += r.stepX {
		if r.IsSolidAtPoint(px, bottom) {
			return true
		}
	}
	return r.IsSolidAtPoint(right, bottom)
}

// span returns the padded sample range of one axis. A side too short to
// pad collapses to its centre.
func span(pos, size, pad float64) (float64, float64) {
	lo, hi := pos+pad, pos+size-1-pad
	if hi < lo {
		mid := pos + size/2
		return mid, mid
	}
	return lo, hi
}

// BlockedByBodies reports whether obj placed at x, y would overlap a solid
// object in the blocker space. Objects outside the space are never blocked.
func (r *Resolver) BlockedByBodies(obj *resolv.Object, x, y float64) bool {
	if r.space == nil || obj == nil || obj.Space == nil {
		return false
	}
	check := obj.Check(x-obj.X, y-obj.Y, tags.ResolvSolid)
	if check == nil {
		return false
	}
	for _, other := range check.ObjectsByTags(tags.ResolvSolid) {
		if other == obj {
			continue
		}
		if x < other.X+other.W && x+obj.W > other.X && y < other.Y+other.H && y+obj.H > other.Y {
			return true
		}
	}
	return false
}

func (r *Resolver) blocked(obj *resolv.Object, x, y float64) bool {
	return r.IsRectBlocked(x, y, obj.W, obj.H) || r.BlockedByBodies(obj, x, y)
}

// ResolveMove displaces obj by intent*speed*dt, X axis first and then Y at
// the resolved X. A blocked axis does not move this frame, which lets a
// diagonal move slide along a wall. It returns the applied displacement.
func (r *Resolver) ResolveMove(obj *resolv.Object, motion *components.MotionData, dt float64) (float64, float64) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0 {
		dt = cfg.Levels.FrameDelta
	}
	vx := motion.Intent.X * motion.Speed * dt
	vy := motion.Intent.Y * motion.Speed * dt

	var dx, dy float64
	if vx != 0 {
		if nx := obj.X + vx; !r.blocked(obj, nx, obj.Y) {
			obj.X = nx
			dx = vx
		}
	}
	if vy != 0 {
		if ny := obj.Y + vy; !r.blocked(obj, obj.X, ny) {
			obj.Y = ny
			dy = vy
		}
	}
	if (dx != 0 || dy != 0) && obj.Space != nil {
		obj.Update()
	}
	return dx, dy
}
