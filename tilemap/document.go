package tilemap

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Document is a Tiled map in its JSON export form
type Document struct {
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	TileWidth  int          `json:"tilewidth"`
	TileHeight int          `json:"tileheight"`
	Infinite   bool         `json:"infinite"`
	Tilesets   []TilesetDoc `json:"tilesets"`
	Layers     []LayerDoc   `json:"layers"`
	Properties Properties   `json:"properties"`
}

type TilesetDoc struct {
	FirstGID    uint32     `json:"firstgid"`
	Source      string     `json:"source"`
	Name        string     `json:"name"`
	Image       string     `json:"image"`
	ImageWidth  int        `json:"imagewidth"`
	ImageHeight int        `json:"imageheight"`
	TileWidth   int        `json:"tilewidth"`
	TileHeight  int        `json:"tileheight"`
	Columns     int        `json:"columns"`
	TileCount   int        `json:"tilecount"`
	Tiles       []TileDoc  `json:"tiles"`
	Properties  Properties `json:"properties"`
}

type TileDoc struct {
	ID          uint32     `json:"id"`
	Properties  Properties `json:"properties"`
	ObjectGroup *LayerDoc  `json:"objectgroup"`
}

// Layer types as written by Tiled
const (
	TypeTileLayer   = "tilelayer"
	TypeObjectGroup = "objectgroup"
	TypeGroup       = "group"
)

type LayerDoc struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Visible     *bool       `json:"visible"`
	OffsetX     float64     `json:"offsetx"`
	OffsetY     float64     `json:"offsety"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	Data        CellData    `json:"data"`
	Encoding    string      `json:"encoding"`
	Compression string      `json:"compression"`
	Objects     []ObjectDoc `json:"objects"`
	Layers      []LayerDoc  `json:"layers"`
	Properties  Properties  `json:"properties"`
}

type ObjectDoc struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Class      string     `json:"class"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	Width      float64    `json:"width"`
	Height     float64    `json:"height"`
	GID        *uint32    `json:"gid"`
	Properties Properties `json:"properties"`
}

// CellData is either the plain array form of a tile layer's data or its
// base64 string form, decoded later against the layer's encoding.
type CellData struct {
	Cells   []uint32
	Encoded string
}

func (c *CellData) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &c.Encoded)
	}
	return json.Unmarshal(data, &c.Cells)
}

var (
	ErrMalformed   = errors.New("tilemap: malformed document")
	ErrUnsupported = errors.New("tilemap: unsupported document feature")
)

// ParseDocument decodes a JSON map document
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &doc, nil
}

// cells returns the raw cell values of a tile layer
func (l *LayerDoc) cells() ([]uint32, error) {
	if l.Data.Encoded == "" {
		return l.Data.Cells, nil
	}
	if l.Encoding != "base64" {
		return nil, fmt.Errorf("%w: layer %q encoding %q", ErrUnsupported, l.Name, l.Encoding)
	}
	raw, err := base64.StdEncoding.DecodeString(l.Data.Encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: layer %q: %v", ErrMalformed, l.Name, err)
	}

	var r io.Reader = bytes.NewReader(raw)
	switch l.Compression {
	case "":
	case "zlib":
		zr, err := zlib.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: layer %q: %v", ErrMalformed, l.Name, err)
		}
		defer zr.Close()
		r = zr
	case "gzip":
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: layer %q: %v", ErrMalformed, l.Name, err)
		}
		defer gr.Close()
		r = gr
	default:
		return nil, fmt.Errorf("%w: layer %q compression %q", ErrUnsupported, l.Name, l.Compression)
	}

	raw, err = io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: layer %q: %v", ErrMalformed, l.Name, err)
	}
	if len(raw)%4 != 0 {
		return nil, fmt.Errorf("%w: layer %q data is %d bytes", ErrMalformed, l.Name, len(raw))
	}
	cells := make([]uint32, len(raw)/4)
	for i := range cells {
		cells[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return cells, nil
}
