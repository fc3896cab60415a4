package tilemap

import (
	"fmt"
	"sort"

	cfg "github.com/automoto/keyrunner/config"
)

// Rect is an axis-aligned rectangle in pixels
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether the point lies inside r. Edges on the right and
// bottom are exclusive so adjacent rectangles never share a point.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// TileInfo is the collision metadata declared on one tileset tile
type TileInfo struct {
	Colliders []Rect // local to the tile
	Solid     bool
	NonSolid  bool
}

type Tileset struct {
	FirstGID    uint32
	Name        string
	Image       string
	ImageWidth  int
	ImageHeight int
	TileWidth   int
	TileHeight  int
	Columns     int
	Rows        int
	TileCount   int
	Properties  Properties

	tiles map[uint32]TileInfo
}

// Tile returns the metadata of a tile by local id
func (ts *Tileset) Tile(localID uint32) (TileInfo, bool) {
	info, ok := ts.tiles[localID]
	return info, ok
}

// DefaultSolid reports whether the tileset declares all its tiles solid
func (ts *Tileset) DefaultSolid() bool {
	return ts.Properties.True(cfg.Collision.SolidProperty)
}

// Frame returns the pixel origin of a tile inside the tileset image
func (ts *Tileset) Frame(localID uint32) (int, int) {
	if ts.Columns <= 0 {
		return 0, 0
	}
	col := int(localID) % ts.Columns
	row := int(localID) / ts.Columns
	return col * ts.TileWidth, row * ts.TileHeight
}

type LayerKind int

const (
	TileLayer LayerKind = iota
	ObjectLayer
)

type Layer struct {
	Name       string
	Kind       LayerKind
	Visible    bool
	OffsetX    float64
	OffsetY    float64
	Properties Properties

	Data    []uint32 // tile layers, row-major
	Objects []Object // object layers
}

type Object struct {
	ID         int
	Name       string
	Type       string
	X, Y       float64
	Width      float64
	Height     float64
	GID        uint32
	IsTile     bool // references a tile graphic, anchored bottom-left
	Properties Properties
}

// Cell is a resolved non-empty cell
type Cell struct {
	GID
	Tileset *Tileset
	LocalID uint32
}

// TileMap is the parsed grid map of one level. It is never mutated after New.
type TileMap struct {
	Width      int
	Height     int
	TileWidth  int
	TileHeight int
	Tilesets   []*Tileset // sorted by FirstGID
	Layers     []*Layer
	Properties Properties
}

// New validates a document and builds the map from it
func New(doc *Document) (*TileMap, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", ErrMalformed)
	}
	if doc.Infinite {
		return nil, fmt.Errorf("%w: infinite maps", ErrUnsupported)
	}
	if doc.Width <= 0 || doc.Height <= 0 {
		return nil, fmt.Errorf("%w: map size %dx%d", ErrMalformed, doc.Width, doc.Height)
	}
	if doc.TileWidth <= 0 || doc.TileHeight <= 0 {
		return nil, fmt.Errorf("%w: tile size %dx%d", ErrMalformed, doc.TileWidth, doc.TileHeight)
	}

	m := &TileMap{
		Width:      doc.Width,
		Height:     doc.Height,
		TileWidth:  doc.TileWidth,
		TileHeight: doc.TileHeight,
		Properties: doc.Properties,
	}

	for i := range doc.Tilesets {
		ts, err := newTileset(&doc.Tilesets[i], doc)
		if err != nil {
			return nil, err
		}
		m.Tilesets = append(m.Tilesets, ts)
	}
	sort.SliceStable(m.Tilesets, func(i, j int) bool {
		return m.Tilesets[i].FirstGID < m.Tilesets[j].FirstGID
	})

	if err := m.addLayers(doc.Layers, 0, 0, true); err != nil {
		return nil, err
	}
	return m, nil
}

func newTileset(doc *TilesetDoc, m *Document) (*Tileset, error) {
	if doc.Source != "" && doc.Image == "" && len(doc.Tiles) == 0 {
		return nil, fmt.Errorf("%w: external tileset %q", ErrUnsupported, doc.Source)
	}
	if doc.FirstGID == 0 {
		return nil, fmt.Errorf("%w: tileset %q has firstgid 0", ErrMalformed, doc.Name)
	}

	ts := &Tileset{
		FirstGID:    doc.FirstGID,
		Name:        doc.Name,
		Image:       doc.Image,
		ImageWidth:  doc.ImageWidth,
		ImageHeight: doc.ImageHeight,
		TileWidth:   doc.TileWidth,
		TileHeight:  doc.TileHeight,
		Columns:     doc.Columns,
		TileCount:   doc.TileCount,
		Properties:  doc.Properties,
		tiles:       make(map[uint32]TileInfo, len(doc.Tiles)),
	}
	if ts.TileWidth <= 0 {
		ts.TileWidth = m.TileWidth
	}
	if ts.TileHeight <= 0 {
		ts.TileHeight = m.TileHeight
	}
	if ts.Columns <= 0 && ts.ImageWidth > 0 {
		ts.Columns = ts.ImageWidth / ts.TileWidth
	}
	if ts.ImageHeight > 0 {
		ts.Rows = ts.ImageHeight / ts.TileHeight
	}

	for _, tile := range doc.Tiles {
		info := tileInfo(tile)
		if len(info.Colliders) > 0 || info.Solid || info.NonSolid {
			ts.tiles[tile.ID] = info
		}
	}
	return ts, nil
}

func tileInfo(tile TileDoc) TileInfo {
	var info TileInfo
	if solid, ok := tile.Properties.Bool(cfg.Collision.SolidProperty); ok {
		info.Solid = solid
		info.NonSolid = !solid
	}
	if tile.Properties.True(cfg.Collision.PassableProperty) {
		info.NonSolid = true
	}
	if tile.ObjectGroup == nil {
		return info
	}
	for _, obj := range tile.ObjectGroup.Objects {
		if !isCollider(obj.Properties) || obj.Width <= 0 || obj.Height <= 0 {
			continue
		}
		info.Colliders = append(info.Colliders, Rect{X: obj.X, Y: obj.Y, W: obj.Width, H: obj.Height})
	}
	return info
}

func isCollider(props Properties) bool {
	for _, name := range cfg.Collision.ColliderProperties {
		if props.True(name) {
			return true
		}
	}
	return false
}

// addLayers flattens group layers, accumulating their offsets. A hidden group
// hides everything inside it.
func (m *TileMap) addLayers(docs []LayerDoc, offX, offY float64, shown bool) error {
	for i := range docs {
		doc := &docs[i]
		visible := shown && (doc.Visible == nil || *doc.Visible)
		switch doc.Type {
		case TypeTileLayer:
			cells, err := doc.cells()
			if err != nil {
				return err
			}
			if len(cells) != m.Width*m.Height {
				return fmt.Errorf("%w: layer %q has %d cells, want %d",
					ErrMalformed, doc.Name, len(cells), m.Width*m.Height)
			}
			m.Layers = append(m.Layers, &Layer{
				Name:       doc.Name,
				Kind:       TileLayer,
				Visible:    visible,
				OffsetX:    offX + doc.OffsetX,
				OffsetY:    offY + doc.OffsetY,
				Properties: doc.Properties,
				Data:       cells,
			})
		case TypeObjectGroup:
			layer := &Layer{
				Name:       doc.Name,
				Kind:       ObjectLayer,
				Visible:    visible,
				OffsetX:    offX + doc.OffsetX,
				OffsetY:    offY + doc.OffsetY,
				Properties: doc.Properties,
				Objects:    make([]Object, 0, len(doc.Objects)),
			}
			for _, o := range doc.Objects {
				obj := Object{
					ID:         o.ID,
					Name:       o.Name,
					Type:       o.Type,
					X:          o.X,
					Y:          o.Y,
					Width:      o.Width,
					Height:     o.Height,
					Properties: o.Properties,
				}
				if obj.Type == "" {
					obj.Type = o.Class
				}
				if o.GID != nil {
					obj.GID = *o.GID
					obj.IsTile = true
				}
				layer.Objects = append(layer.Objects, obj)
			}
			m.Layers = append(m.Layers, layer)
		case TypeGroup:
			if err := m.addLayers(doc.Layers, offX+doc.OffsetX, offY+doc.OffsetY, visible); err != nil {
				return err
			}
		}
	}
	return nil
}

// TilesetFor returns the tileset with the greatest FirstGID not above id
func (m *TileMap) TilesetFor(id uint32) *Tileset {
	i := sort.Search(len(m.Tilesets), func(i int) bool {
		return m.Tilesets[i].FirstGID > id
	})
	if i == 0 {
		return nil
	}
	return m.Tilesets[i-1]
}

// ResolveCell decodes a raw cell value and finds its tileset. It returns
// false for empty cells and ids no tileset covers.
func (m *TileMap) ResolveCell(raw uint32) (Cell, bool) {
	gid := Decode(raw)
	if gid.Empty() {
		return Cell{}, false
	}
	ts := m.TilesetFor(gid.ID)
	if ts == nil {
		return Cell{}, false
	}
	return Cell{GID: gid, Tileset: ts, LocalID: gid.ID - ts.FirstGID}, true
}

// IsAboveLayer reports whether a layer is drawn over entities
func (m *TileMap) IsAboveLayer(l *Layer) bool {
	return l != nil && l.Properties.True(cfg.Collision.AboveProperty)
}

// Layer returns the first layer with the given name
func (m *TileMap) Layer(name string) *Layer {
	for _, l := range m.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// ObjectLayers returns object layers in document order
func (m *TileMap) ObjectLayers() []*Layer {
	var out []*Layer
	for _, l := range m.Layers {
		if l.Kind == ObjectLayer {
			out = append(out, l)
		}
	}
	return out
}

// CellAt returns the raw value of a cell, 0 outside the grid
func (m *TileMap) CellAt(l *Layer, col, row int) uint32 {
	if l == nil || l.Kind != TileLayer || col < 0 || row < 0 || col >= m.Width || row >= m.Height {
		return 0
	}
	return l.Data[row*m.Width+col]
}

// PixelSize returns the map extent in pixels
func (m *TileMap) PixelSize() (float64, float64) {
	return float64(m.Width * m.TileWidth), float64(m.Height * m.TileHeight)
}
