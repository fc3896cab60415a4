package assets

import (
	"bytes"
	"image"
	"image/png"
	"testing"
	"testing/fstest"
	"time"

	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

const tinyMap = `{
  "width": 2, "height": 2, "tilewidth": 32, "tileheight": 32,
  "tilesets": [{"firstgid": 1, "name": "TX Tileset Wall", "image": "img/walls.png",
    "imagewidth": 64, "imageheight": 32, "tilewidth": 32, "tileheight": 32, "columns": 2, "tilecount": 2}],
  "layers": [{"name": "3-1", "type": "tilelayer", "width": 2, "height": 2, "data": [1, 0, 0, 0]}]
}`

func wait(t *testing.T, p *Pending) {
	t.Helper()
	select {
	case <-p.Done():
	case <-p.Failed():
	case <-time.After(5 * time.Second):
		t.Fatal("load did not settle")
	}
}

func TestLoaderReady(t *testing.T) {
	fsys := fstest.MapFS{
		"maps/tiny.json":     {Data: []byte(tinyMap)},
		"maps/img/walls.png": {Data: encodePNG(t, 64, 32)},
	}
	p := NewLoader(fsys).Load("maps/tiny.json")
	wait(t, p)

	require.NoError(t, p.Err())
	assert.True(t, p.Ready())
	assert.True(t, p.Readiness().JSON.IsOpen())
	assert.True(t, p.Readiness().Images.IsOpen())
	require.NotNil(t, p.Map())
	assert.Equal(t, 2, p.Map().Width)
}

func TestLoaderMissingImage(t *testing.T) {
	fsys := fstest.MapFS{
		"tiny.json": {Data: []byte(tinyMap)},
	}
	p := NewLoader(fsys).Load("tiny.json")
	wait(t, p)

	assert.False(t, p.Ready())
	assert.ErrorIs(t, p.Err(), sim.ErrLoadFailure)
	assert.True(t, p.Readiness().JSON.IsOpen(), "the structure parsed")
	assert.False(t, p.Readiness().Images.IsOpen())
}

func TestLoaderImageSizeMismatch(t *testing.T) {
	fsys := fstest.MapFS{
		"tiny.json":     {Data: []byte(tinyMap)},
		"img/walls.png": {Data: encodePNG(t, 32, 32)},
	}
	p := NewLoader(fsys).Load("tiny.json")
	wait(t, p)

	assert.False(t, p.Ready())
	assert.ErrorContains(t, p.Err(), "32x32")
}

func TestLoaderMalformedMap(t *testing.T) {
	tests := map[string]string{
		"not json":  `{"width": `,
		"zero size": `{"width": 0, "height": 2, "tilewidth": 32, "tileheight": 32}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			p := NewLoader(fstest.MapFS{"bad.json": {Data: []byte(doc)}}).Load("bad.json")
			wait(t, p)
			assert.False(t, p.Ready())
			assert.Nil(t, p.Map())
			assert.ErrorIs(t, p.Err(), sim.ErrLoadFailure)
			assert.False(t, p.Readiness().JSON.IsOpen())
		})
	}

	p := NewLoader(fstest.MapFS{}).Load("missing.json")
	wait(t, p)
	assert.Error(t, p.Err())
}

func TestEmbeddedLevels(t *testing.T) {
	first, err := cfg.LoadLevels(Levels(), "levels.yaml")
	require.NoError(t, err)
	require.Equal(t, 2, first.Count())
	assert.Nil(t, first.Start)
	assert.Equal(t, 5, first.KeysRequired)
	assert.Equal(t, 3, first.Next.KeysRequired)
	assert.True(t, first.Next.KeepScore)

	loader := NewLoader(Levels())
	for lvl := first; lvl != nil; lvl = lvl.Next {
		p := loader.Load(lvl.Map)
		wait(t, p)
		require.NoError(t, p.Err(), lvl.Map)
		m := p.Map()
		assert.Equal(t, 30, m.Width)
		assert.NotNil(t, m.Layer("3-1"))
		assert.NotEmpty(t, m.ObjectLayers())
	}
}
