package tilemap

import (
	"bytes"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mapJSON = `{
  "width": 4, "height": 3, "tilewidth": 32, "tileheight": 32,
  "tilesets": [
    {"firstgid": 17, "name": "TX Props", "image": "props.png", "imagewidth": 128, "imageheight": 64,
     "tilewidth": 32, "tileheight": 32, "columns": 4, "tilecount": 8,
     "tiles": [
       {"id": 2, "properties": [{"name": "solid", "type": "bool", "value": true}]},
       {"id": 3, "properties": [{"name": "passable", "type": "bool", "value": true}]}
     ]},
    {"firstgid": 1, "name": "TX Tileset Wall", "image": "walls.png", "imagewidth": 128, "imageheight": 128,
     "tilewidth": 32, "tileheight": 32, "columns": 4, "tilecount": 16,
     "tiles": [
       {"id": 5, "objectgroup": {"type": "objectgroup", "objects": [
         {"id": 1, "x": 0, "y": 16, "width": 32, "height": 16,
          "properties": [{"name": "collides", "type": "bool", "value": true}]},
         {"id": 2, "x": 0, "y": 0, "width": 8, "height": 8}
       ]}},
       {"id": 6, "properties": [{"name": "solid", "type": "bool", "value": false}]}
     ]}
  ],
  "layers": [
    {"name": "floor", "type": "tilelayer", "visible": true, "width": 4, "height": 3,
     "data": [1,1,1,1, 1,0,0,1, 1,1,1,1]},
    {"name": "3-1", "type": "tilelayer", "width": 4, "height": 3,
     "data": [0,0,0,0, 0,6,19,0, 2147483649,0,0,0]},
    {"name": "roof", "type": "tilelayer", "visible": false, "width": 4, "height": 3,
     "properties": [{"name": "above", "type": "bool", "value": true}],
     "data": [0,0,0,0, 0,0,0,0, 0,0,0,0]},
    {"name": "actors", "type": "group", "offsetx": 10, "offsety": 5, "layers": [
      {"name": "spawns", "type": "objectgroup", "offsetx": 2, "offsety": 3, "objects": [
        {"id": 7, "name": "Cat", "type": "", "x": 40, "y": 64, "width": 32, "height": 32, "gid": 21},
        {"id": 8, "name": "", "class": "Key", "x": 90, "y": 20, "width": 16, "height": 16}
      ]}
    ]}
  ]
}`

func loadFixture(t *testing.T) *TileMap {
	t.Helper()
	doc, err := ParseDocument([]byte(mapJSON))
	require.NoError(t, err)
	m, err := New(doc)
	require.NoError(t, err)
	return m
}

func TestNewSortsTilesets(t *testing.T) {
	m := loadFixture(t)
	require.Len(t, m.Tilesets, 2)
	assert.Equal(t, uint32(1), m.Tilesets[0].FirstGID)
	assert.Equal(t, uint32(17), m.Tilesets[1].FirstGID)
	assert.Equal(t, 4, m.Tilesets[0].Rows)
	assert.Equal(t, 2, m.Tilesets[1].Rows)
}

func TestTilesetFor(t *testing.T) {
	m := loadFixture(t)
	tests := []struct {
		id   uint32
		want string
	}{
		{1, "TX Tileset Wall"},
		{16, "TX Tileset Wall"},
		{17, "TX Props"},
		{400, "TX Props"},
	}
	for _, tt := range tests {
		ts := m.TilesetFor(tt.id)
		require.NotNil(t, ts, "id %d", tt.id)
		assert.Equal(t, tt.want, ts.Name, "id %d", tt.id)
	}
	assert.Nil(t, m.TilesetFor(0))
}

func TestResolveCell(t *testing.T) {
	m := loadFixture(t)

	cell, ok := m.ResolveCell(FlipHorizontal | 1)
	require.True(t, ok)
	assert.Equal(t, uint32(1), cell.ID)
	assert.True(t, cell.FlipH)
	assert.False(t, cell.FlipV)
	assert.Equal(t, uint32(0), cell.LocalID)
	assert.Equal(t, "TX Tileset Wall", cell.Tileset.Name)

	cell, ok = m.ResolveCell(19)
	require.True(t, ok)
	assert.Equal(t, "TX Props", cell.Tileset.Name)
	assert.Equal(t, uint32(2), cell.LocalID)

	_, ok = m.ResolveCell(0)
	assert.False(t, ok)
	_, ok = m.ResolveCell(FlipHorizontal | FlipVertical | FlipDiagonal)
	assert.False(t, ok, "flags alone are an empty cell")
}

func TestTileInfo(t *testing.T) {
	m := loadFixture(t)
	walls := m.Tilesets[0]

	info, ok := walls.Tile(5)
	require.True(t, ok)
	require.Len(t, info.Colliders, 1, "objects without the collides flag are ignored")
	assert.Equal(t, Rect{X: 0, Y: 16, W: 32, H: 16}, info.Colliders[0])

	info, ok = walls.Tile(6)
	require.True(t, ok)
	assert.True(t, info.NonSolid)
	assert.False(t, info.Solid)

	props := m.Tilesets[1]
	info, _ = props.Tile(2)
	assert.True(t, info.Solid)
	info, _ = props.Tile(3)
	assert.True(t, info.NonSolid)

	_, ok = walls.Tile(0)
	assert.False(t, ok)
}

func TestLayers(t *testing.T) {
	m := loadFixture(t)
	require.Len(t, m.Layers, 4)

	assert.True(t, m.Layer("floor").Visible)
	assert.True(t, m.Layer("3-1").Visible, "missing visible defaults to true")
	assert.False(t, m.Layer("roof").Visible)

	assert.True(t, m.IsAboveLayer(m.Layer("roof")))
	assert.False(t, m.IsAboveLayer(m.Layer("floor")))
	assert.False(t, m.IsAboveLayer(nil))

	assert.Equal(t, uint32(6), m.CellAt(m.Layer("3-1"), 1, 1))
	assert.Equal(t, uint32(0), m.CellAt(m.Layer("3-1"), -1, 1))
	assert.Equal(t, uint32(0), m.CellAt(m.Layer("3-1"), 4, 0))

	w, h := m.PixelSize()
	assert.Equal(t, 128.0, w)
	assert.Equal(t, 96.0, h)
}

func TestObjectLayersFlattenGroups(t *testing.T) {
	m := loadFixture(t)
	layers := m.ObjectLayers()
	require.Len(t, layers, 1)

	spawns := layers[0]
	assert.Equal(t, 12.0, spawns.OffsetX)
	assert.Equal(t, 8.0, spawns.OffsetY)
	require.Len(t, spawns.Objects, 2)

	cat := spawns.Objects[0]
	assert.True(t, cat.IsTile)
	assert.Equal(t, uint32(21), cat.GID)

	key := spawns.Objects[1]
	assert.False(t, key.IsTile)
	assert.Equal(t, "Key", key.Type, "class stands in for an empty type")
}

func TestNewRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"zero size", `{"width": 0, "height": 2, "tilewidth": 32, "tileheight": 32}`},
		{"zero tile size", `{"width": 2, "height": 2, "tilewidth": 0, "tileheight": 32}`},
		{"short data", `{"width": 2, "height": 2, "tilewidth": 32, "tileheight": 32,
			"layers": [{"name": "a", "type": "tilelayer", "data": [1, 2, 3]}]}`},
		{"infinite", `{"width": 2, "height": 2, "tilewidth": 32, "tileheight": 32, "infinite": true}`},
		{"external tileset", `{"width": 1, "height": 1, "tilewidth": 32, "tileheight": 32,
			"tilesets": [{"firstgid": 1, "source": "walls.tsx"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument([]byte(tt.doc))
			require.NoError(t, err)
			_, err = New(doc)
			assert.Error(t, err)
		})
	}

	_, err := ParseDocument([]byte(`{"width": "wide"}`))
	assert.ErrorIs(t, err, ErrMalformed)
	_, err = New(nil)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestBase64LayerData(t *testing.T) {
	cells := []uint32{1, 0, FlipVertical | 2, 3}
	raw := make([]byte, 4*len(cells))
	for i, c := range cells {
		binary.LittleEndian.PutUint32(raw[i*4:], c)
	}

	var packed bytes.Buffer
	zw := zlib.NewWriter(&packed)
	_, err := zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	tests := []struct {
		name        string
		compression string
		payload     []byte
	}{
		{"plain", "", raw},
		{"zlib", "zlib", packed.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := &Document{
				Width: 2, Height: 2, TileWidth: 16, TileHeight: 16,
				Layers: []LayerDoc{{
					Name:        "b64",
					Type:        TypeTileLayer,
					Encoding:    "base64",
					Compression: tt.compression,
					Data:        CellData{Encoded: base64.StdEncoding.EncodeToString(tt.payload)},
				}},
			}
			m, err := New(doc)
			require.NoError(t, err)
			assert.Equal(t, cells, m.Layer("b64").Data)
		})
	}
}

func TestReadiness(t *testing.T) {
	r := NewReadiness()
	assert.False(t, r.Ready())

	r.MarkJSON()
	r.MarkJSON()
	assert.True(t, r.JSON.IsOpen())
	assert.False(t, r.Ready())

	r.MarkImages()
	assert.True(t, r.Ready())
	select {
	case <-r.Done():
	default:
		t.Fatal("done channel should be closed once both gates are open")
	}
}
