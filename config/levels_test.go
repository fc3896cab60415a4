package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sequence = `
levels:
  - name: courtyard
    map: levels/level1.json
    player_sprite: cat_ginger_1
  - name: cellar
    map: levels/level2.json
    keys_required: 3
    start: {x: 224, y: 896}
  - name: attic
    map: levels/level3.tmx
    keep_score: false
    keys_required: 0
`

func TestParseLevels(t *testing.T) {
	first, err := ParseLevels([]byte(sequence))
	require.NoError(t, err)
	require.Equal(t, 3, first.Count())

	assert.Equal(t, "courtyard", first.Name)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, Levels.KeysRequired, first.KeysRequired)
	assert.False(t, first.KeepScore)
	assert.Nil(t, first.Start)

	second := first.Next
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, 3, second.KeysRequired)
	assert.True(t, second.KeepScore)
	require.NotNil(t, second.Start)
	assert.Equal(t, Point{X: 224, Y: 896}, *second.Start)
	assert.Equal(t, Player.SpriteKey, second.PlayerSprite)

	third := second.Next
	assert.False(t, third.KeepScore)
	assert.Equal(t, 0, third.KeysRequired)
	assert.Nil(t, third.Next)
}

func TestParseLevelsErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "levels: []"},
		{"missing map", "levels:\n  - name: nowhere\n"},
		{"bad yaml", "levels: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLevels([]byte(tt.data))
			assert.Error(t, err)
		})
	}
	_, err := ParseLevels([]byte("levels: []"))
	assert.ErrorIs(t, err, ErrNoLevels)
}

func TestLoadLevels(t *testing.T) {
	fsys := fstest.MapFS{
		"levels.yaml": {Data: []byte(sequence)},
	}
	first, err := LoadLevels(fsys, "levels.yaml")
	require.NoError(t, err)
	assert.Equal(t, "levels/level1.json", first.Map)

	_, err = LoadLevels(fsys, "missing.yaml")
	assert.Error(t, err)
}
