package scenes

import (
	"image"
	"image/color"
	_ "image/png"
	"io/fs"
	"math"

	"github.com/automoto/keyrunner/assets"
	"github.com/automoto/keyrunner/assets/animations"
	"github.com/automoto/keyrunner/collision"
	"github.com/automoto/keyrunner/components"
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/logger"
	"github.com/automoto/keyrunner/sim"
	"github.com/automoto/keyrunner/tilemap"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
)

// tileImages decodes tileset images on first use. An image that fails to
// decode is logged once and its tiles are skipped.
type tileImages struct {
	fsys    fs.FS
	mapPath string
	images  map[string]*ebiten.Image
	failed  map[string]bool
	log     *logrus.Entry
}

func newTileImages(fsys fs.FS, mapPath string) *tileImages {
	return &tileImages{
		fsys:    fsys,
		mapPath: mapPath,
		images:  make(map[string]*ebiten.Image),
		failed:  make(map[string]bool),
		log:     logger.For("render").WithField("map", mapPath),
	}
}

func (t *tileImages) get(ts *tilemap.Tileset) *ebiten.Image {
	if img, ok := t.images[ts.Image]; ok {
		return img
	}
	if ts.Image == "" || t.failed[ts.Image] {
		return nil
	}

	f, err := t.fsys.Open(assets.ImagePath(t.mapPath, ts.Image))
	if err != nil {
		t.failed[ts.Image] = true
		t.log.WithError(err).Warn("Could not open tileset image")
		return nil
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		t.failed[ts.Image] = true
		t.log.WithError(err).Warn("Could not decode tileset image")
		return nil
	}
	img := ebiten.NewImageFromImage(src)
	t.images[ts.Image] = img
	return img
}

// DrawTileLayers draws the visible tile layers that are (above) or are not
// (!above) drawn over entities.
func DrawTileLayers(screen *ebiten.Image, m *tilemap.TileMap, imgs *tileImages, ox, oy float64, above bool) {
	for _, l := range m.Layers {
		if l.Kind != tilemap.TileLayer || !l.Visible || m.IsAboveLayer(l) != above {
			continue
		}
		for i, raw := range l.Data {
			cell, ok := m.ResolveCell(raw)
			if !ok {
				continue
			}
			ts := cell.Tileset
			img := imgs.get(ts)
			if img == nil {
				continue
			}
			sx, sy := ts.Frame(cell.LocalID)
			sub := img.SubImage(image.Rect(sx, sy, sx+ts.TileWidth, sy+ts.TileHeight)).(*ebiten.Image)

			col, row := i%m.Width, i/m.Width
			op := &ebiten.DrawImageOptions{}
			applyFlips(&op.GeoM, cell.GID, float64(ts.TileWidth), float64(ts.TileHeight))
			// Tiles taller than the grid sit on the cell's bottom edge
			op.GeoM.Translate(
				float64(col*m.TileWidth)+l.OffsetX+ox,
				float64((row+1)*m.TileHeight-ts.TileHeight)+l.OffsetY+oy,
			)
			screen.DrawImage(sub, op)
		}
	}
}

// applyFlips maps a w x h tile onto itself flipped the way Tiled does:
// the diagonal flip (a transpose) first, then horizontal, then vertical.
func applyFlips(g *ebiten.GeoM, gid tilemap.GID, w, h float64) {
	if gid.FlipD {
		g.Rotate(math.Pi / 2)
		g.Scale(-1, 1)
		w, h = h, w
	}
	if gid.FlipH {
		g.Scale(-1, 1)
		g.Translate(w, 0)
	}
	if gid.FlipV {
		g.Scale(1, -1)
		g.Translate(0, h)
	}
}

// DrawEntities fills each entity's hitbox. An invulnerable player blinks.
func DrawEntities(screen *ebiten.Image, hints []sim.RenderHint, blink *animations.Animation, exitUnlocked bool, ox, oy float64) {
	for _, h := range hints {
		if h.Invulnerable && blink != nil && blink.Frame() == 1 {
			continue
		}
		var clr color.Color = entityColor(h)
		if h.Kind == components.KindExit && !exitUnlocked {
			c := entityColor(h)
			clr = color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A / 3}
		}
		x, y := float32(h.X+ox), float32(h.Y+oy)
		vector.FillRect(screen, x, y, float32(h.W), float32(h.H), clr, false)

		if h.Kind == components.KindPlayer || h.Kind == components.KindEnemy {
			// Eye on the facing side
			ex := x + float32(h.W) - 6
			if h.FlipX {
				ex = x + 2
			}
			vector.FillRect(screen, ex, y+4, 4, 4, color.RGBA{A: 255}, false)
		}
		if cfg.UI.DebugHitbox {
			vector.StrokeRect(screen, x, y, float32(h.W), float32(h.H), 1, cfg.UI.HitboxColor, false)
		}
	}
}

// colliderOutlines lists the solid parts of the collision layers in world
// pixels, one rectangle per whole cell or per sub-rectangle.
func colliderOutlines(res *collision.Resolver, m *tilemap.TileMap) []tilemap.Rect {
	if res == nil || m == nil || len(res.Layers()) == 0 {
		return nil
	}
	tw, th := float64(m.TileWidth), float64(m.TileHeight)
	var out []tilemap.Rect
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			x, y := float64(col)*tw, float64(row)*th
			rects, whole := res.Colliders(col, row)
			if whole {
				out = append(out, tilemap.Rect{X: x, Y: y, W: tw, H: th})
				continue
			}
			for _, r := range rects {
				out = append(out, tilemap.Rect{X: x + r.X, Y: y + r.Y, W: r.W, H: r.H})
			}
		}
	}
	return out
}

// DrawColliders outlines what the collision resolver treats as solid
func DrawColliders(screen *ebiten.Image, rects []tilemap.Rect, ox, oy float64) {
	for _, r := range rects {
		vector.StrokeRect(screen, float32(r.X+ox), float32(r.Y+oy), float32(r.W), float32(r.H), 1, cfg.UI.ColliderColor, false)
	}
}

func entityColor(h sim.RenderHint) color.RGBA {
	if h.Kind == components.KindEnemy {
		if t, ok := cfg.Enemy.Types[h.Variant]; ok {
			return t.TintColor
		}
	}
	if clr, ok := cfg.UI.KindColors[h.Kind.String()]; ok {
		return clr
	}
	return color.RGBA{R: 255, G: 0, B: 255, A: 255}
}
