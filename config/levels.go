package config

import (
	"errors"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// Point is a world position in pixels
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Level is one entry of the level sequence. Next is nil on the last level.
type Level struct {
	Name string
	Map  string

	// Start places the player; nil means spawn from the map
	Start *Point

	// Passed through to the renderer
	PlayerSprite string
	PlayerName   string
	AtlasJSON    string
	AtlasImage   string

	Number       int
	KeysRequired int
	KeepScore    bool

	Next *Level
}

// Count returns the number of levels in the chain starting at l
func (l *Level) Count() int {
	n := 0
	for cur := l; cur != nil; cur = cur.Next {
		n++
	}
	return n
}

type levelEntry struct {
	Name         string `yaml:"name"`
	Map          string `yaml:"map"`
	Start        *Point `yaml:"start"`
	PlayerSprite string `yaml:"player_sprite"`
	PlayerName   string `yaml:"player_name"`
	AtlasJSON    string `yaml:"atlas_json"`
	AtlasImage   string `yaml:"atlas_image"`
	Number       int    `yaml:"level"`
	KeysRequired *int   `yaml:"keys_required"`
	KeepScore    *bool  `yaml:"keep_score"`
}

type levelFile struct {
	Levels []levelEntry `yaml:"levels"`
}

var ErrNoLevels = errors.New("config: level file has no levels")

// ParseLevels decodes a YAML level sequence into a chain of levels
func ParseLevels(data []byte) (*Level, error) {
	var file levelFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: unmarshal levels: %w", err)
	}
	if len(file.Levels) == 0 {
		return nil, ErrNoLevels
	}

	var first, prev *Level
	for i, entry := range file.Levels {
		if entry.Map == "" {
			return nil, fmt.Errorf("config: level %d has no map", i+1)
		}
		lvl := &Level{
			Name:         entry.Name,
			Map:          entry.Map,
			Start:        entry.Start,
			PlayerSprite: entry.PlayerSprite,
			PlayerName:   entry.PlayerName,
			AtlasJSON:    entry.AtlasJSON,
			AtlasImage:   entry.AtlasImage,
			Number:       entry.Number,
			KeysRequired: Levels.KeysRequired,
			// Score carries over on every level after the first unless disabled
			KeepScore: i > 0,
		}
		if lvl.Number == 0 {
			lvl.Number = i + 1
		}
		if entry.KeysRequired != nil {
			lvl.KeysRequired = *entry.KeysRequired
		}
		if entry.KeepScore != nil {
			lvl.KeepScore = *entry.KeepScore
		}
		if lvl.PlayerSprite == "" {
			lvl.PlayerSprite = Player.SpriteKey
		}

		if first == nil {
			first = lvl
		} else {
			prev.Next = lvl
		}
		prev = lvl
	}
	return first, nil
}

// LoadLevels reads and parses a level sequence file from fsys
func LoadLevels(fsys fs.FS, path string) (*Level, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	return ParseLevels(data)
}
