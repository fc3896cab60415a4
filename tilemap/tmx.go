package tilemap

import (
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strconv"

	cfg "github.com/automoto/keyrunner/config"
	"github.com/lafriks/go-tiled"
)

// ObjectPropertyNames are the object properties carried over from TMX maps
// besides the collision ones.
var ObjectPropertyNames = []string{"speed", "viewRadius", "zoneRadius", "value"}

type propertyGetter interface {
	GetString(name string) string
}

// LoadTMX reads a TMX map, and any TSX tilesets it references, from fsys and
// converts it to the document model used for JSON maps.
func LoadTMX(fsys fs.FS, name string) (*Document, error) {
	levelMap, err := tiled.LoadFile(name, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", name, err)
	}

	order, err := readLayerOrder(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", name, err)
	}

	doc := &Document{
		Width:      levelMap.Width,
		Height:     levelMap.Height,
		TileWidth:  levelMap.TileWidth,
		TileHeight: levelMap.TileHeight,
	}

	for _, ts := range levelMap.Tilesets {
		// External tilesets are read lazily, only once a tile refers to them
		if _, err := levelMap.TileGIDToTile(ts.FirstGID); err != nil {
			return nil, fmt.Errorf("load TMX %s: tileset %q: %w", name, ts.Source, err)
		}
		doc.Tilesets = append(doc.Tilesets, tmxTileset(ts))
	}

	doc.Layers = tmxLayers(levelMap, order, levelMap.Layers, levelMap.ObjectGroups, levelMap.Groups)
	return doc, nil
}

func tmxTileset(ts *tiled.Tileset) TilesetDoc {
	tsDoc := TilesetDoc{
		FirstGID:   ts.FirstGID,
		Name:       ts.Name,
		TileWidth:  ts.TileWidth,
		TileHeight: ts.TileHeight,
		Columns:    ts.Columns,
		TileCount:  ts.TileCount,
		Properties: tmxProperties(ts.Properties, []string{cfg.Collision.SolidProperty}),
	}
	if ts.Image != nil {
		// Images of a TSX are relative to the TSX, the document's to the map
		tsDoc.Image = path.Join(path.Dir(ts.Source), ts.Image.Source)
		tsDoc.ImageWidth = ts.Image.Width
		tsDoc.ImageHeight = ts.Image.Height
	}
	for _, tile := range ts.Tiles {
		tileDoc := TileDoc{
			ID:         tile.ID,
			Properties: tmxProperties(tile.Properties, collisionPropertyNames()),
		}
		for _, og := range tile.ObjectGroups {
			if tileDoc.ObjectGroup == nil {
				tileDoc.ObjectGroup = &LayerDoc{Name: og.Name, Type: TypeObjectGroup}
			}
			for _, o := range og.Objects {
				tileDoc.ObjectGroup.Objects = append(tileDoc.ObjectGroup.Objects, tmxObject(o))
			}
		}
		tsDoc.Tiles = append(tsDoc.Tiles, tileDoc)
	}
	return tsDoc
}

// tmxLayers interleaves one container's layers in document order. go-tiled
// keeps each layer kind in its own list, order tells how they were mixed.
func tmxLayers(m *tiled.Map, order *layerNode, layers []*tiled.Layer, groups []*tiled.ObjectGroup, subs []*tiled.Group) []LayerDoc {
	var out []LayerDoc
	var li, oi, gi int
	emit := func(kind string, node *layerNode) {
		switch {
		case kind == "layer" && li < len(layers):
			out = append(out, tmxTileLayer(m, layers[li]))
			li++
		case kind == "objectgroup" && oi < len(groups):
			out = append(out, tmxObjectGroup(groups[oi]))
			oi++
		case kind == "group" && gi < len(subs):
			out = append(out, tmxGroup(m, node, subs[gi]))
			gi++
		}
	}

	if order != nil {
		for _, child := range order.children {
			emit(child.kind, child)
		}
	}
	// Anything the order scan did not account for keeps go-tiled's order
	for li < len(layers) {
		emit("layer", nil)
	}
	for oi < len(groups) {
		emit("objectgroup", nil)
	}
	for gi < len(subs) {
		emit("group", nil)
	}
	return out
}

func tmxTileLayer(m *tiled.Map, layer *tiled.Layer) LayerDoc {
	cells := make([]uint32, len(layer.Tiles))
	for i, tile := range layer.Tiles {
		if tile.IsNil() || tile.Tileset == nil {
			continue
		}
		cells[i] = GID{
			ID:    tile.Tileset.FirstGID + tile.ID,
			FlipH: tile.HorizontalFlip,
			FlipV: tile.VerticalFlip,
			FlipD: tile.DiagonalFlip,
		}.Encode()
	}
	visible := layer.Visible
	return LayerDoc{
		Name:       layer.Name,
		Type:       TypeTileLayer,
		Visible:    &visible,
		OffsetX:    float64(layer.OffsetX),
		OffsetY:    float64(layer.OffsetY),
		Width:      m.Width,
		Height:     m.Height,
		Data:       CellData{Cells: cells},
		Properties: tmxProperties(layer.Properties, layerPropertyNames()),
	}
}

func tmxObjectGroup(og *tiled.ObjectGroup) LayerDoc {
	visible := og.Visible
	group := LayerDoc{
		Name:       og.Name,
		Type:       TypeObjectGroup,
		Visible:    &visible,
		OffsetX:    float64(og.OffsetX),
		OffsetY:    float64(og.OffsetY),
		Properties: tmxProperties(og.Properties, layerPropertyNames()),
	}
	for _, o := range og.Objects {
		group.Objects = append(group.Objects, tmxObject(o))
	}
	return group
}

func tmxGroup(m *tiled.Map, node *layerNode, g *tiled.Group) LayerDoc {
	visible := g.Visible
	return LayerDoc{
		Name:       g.Name,
		Type:       TypeGroup,
		Visible:    &visible,
		OffsetX:    float64(g.OffsetX),
		OffsetY:    float64(g.OffsetY),
		Layers:     tmxLayers(m, node, g.Layers, g.ObjectGroups, g.Groups),
		Properties: tmxProperties(g.Properties, layerPropertyNames()),
	}
}

func tmxObject(o *tiled.Object) ObjectDoc {
	names := append(collisionPropertyNames(), ObjectPropertyNames...)
	obj := ObjectDoc{
		ID:         int(o.ID),
		Name:       o.Name,
		Type:       o.Type, //nolint:staticcheck // TMX uses type= attribute
		Class:      o.Class,
		X:          o.X,
		Y:          o.Y,
		Width:      o.Width,
		Height:     o.Height,
		Properties: tmxProperties(o.Properties, names),
	}
	if o.GID != 0 {
		gid := o.GID
		obj.GID = &gid
	}
	return obj
}

// layerNode is a map or group element and the layer elements directly
// inside it, in document order.
type layerNode struct {
	kind     string
	children []*layerNode
}

// readLayerOrder scans the TMX element tree for the order of its layers
func readLayerOrder(fsys fs.FS, name string) (*layerNode, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d := xml.NewDecoder(f)
	var root *layerNode
	var stack []*layerNode
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return root, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &layerNode{kind: t.Name.Local}
			switch t.Name.Local {
			case "map", "group":
				if len(stack) > 0 {
					parent := stack[len(stack)-1]
					parent.children = append(parent.children, node)
				} else {
					root = node
				}
				stack = append(stack, node)
			case "layer", "objectgroup", "imagelayer":
				if len(stack) > 0 {
					parent := stack[len(stack)-1]
					parent.children = append(parent.children, node)
				}
				if err := d.Skip(); err != nil {
					return nil, err
				}
			default:
				if err := d.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if (t.Name.Local == "map" || t.Name.Local == "group") && len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
}

func collisionPropertyNames() []string {
	names := append([]string{}, cfg.Collision.ColliderProperties...)
	return append(names, cfg.Collision.SolidProperty, cfg.Collision.PassableProperty)
}

func layerPropertyNames() []string {
	return []string{cfg.Collision.AboveProperty, cfg.Collision.LayerProperty}
}

// tmxProperties copies the named properties, typed the way the JSON export
// types them.
func tmxProperties(p propertyGetter, names []string) Properties {
	props := Properties{}
	for _, name := range names {
		v := p.GetString(name)
		if v == "" {
			continue
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			props[name] = f
		} else if b, err := strconv.ParseBool(v); err == nil {
			props[name] = b
		} else {
			props[name] = v
		}
	}
	return props
}
