package config

import "image/color"

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	// Movement
	BaseSpeed float64 // pixels per second
	StartX    float64 // used when neither the level nor the map place the player
	StartY    float64

	// Lives
	StartingLives  int
	MaxLives       int
	InvulnDuration float64 // seconds of immunity after a hit

	// Barrier breaking
	BreakReach    float64 // reach ahead of the hitbox
	BreakDuration float64 // seconds the break action must be held

	// Dimensions
	CollisionWidth  float64
	CollisionHeight float64

	SpriteKey string
}

// EnemyTypeConfig contains configuration for specific enemy variants
type EnemyTypeConfig struct {
	Name       string
	Speed      float64
	ViewRadius float64
	ZoneRadius float64 // 0 disables the home-zone constraint

	// Patrol waypoints relative to the spawn origin, visited cyclically
	Patrol      [][2]float64
	WaitAtPoint float64

	// Wander is used when Patrol is empty
	Wander        bool
	WanderMinTime float64
	WanderMaxTime float64

	// Dimensions
	CollisionWidth  float64
	CollisionHeight float64

	// Visual
	TintColor color.RGBA
}

// EnemyConfig contains enemy system configuration
type EnemyConfig struct {
	Types map[string]EnemyTypeConfig

	// Aliases maps spawn keys onto variant names ("Enemy" -> "Enemy2")
	Aliases map[string]string

	DefaultType    string
	ArrivalEpsilon float64 // distance at which a waypoint counts as reached
}

// PickupConfig covers keys and bonuses
type PickupConfig struct {
	Value  int
	Width  float64
	Height float64

	// Bonus only
	BoostSpeed    float64
	BoostDuration float64
	BoostChance   float64
}

// ExitConfig contains level exit configuration
type ExitConfig struct {
	Width     float64
	Height    float64
	SpriteKey string
}

// BarrierConfig contains breakable barrier configuration
type BarrierConfig struct {
	Width  float64
	Height float64
	Score  int
}

// CollisionConfig drives the tile collision resolver
type CollisionConfig struct {
	// Tile layers tested for solidity, by name
	Layers []string
	// Tile layers with this bool property set are collision layers too
	LayerProperty string

	// Tilesets whose tiles are solid unless a tile says otherwise
	WallTilesets []string

	// Tile object properties marking a collider sub-rectangle
	ColliderProperties []string
	SolidProperty      string
	PassableProperty   string
	AboveProperty      string

	// Sampling for rectangle tests
	Padding       float64
	MaxSampleStep float64

	// Blocker space cell size
	CellSize int
}

// LevelDefaults are applied to level entries that leave a field unset
type LevelDefaults struct {
	KeysRequired int
	FrameDelta   float64 // fallback dt for non-finite or non-positive frame times
	SpawnNames   []string
	SpawnTypes   []string
}

// Config holds window settings
type Config struct {
	Width  int
	Height int
	TPS    int
	Title  string
}

var C *Config
var Player PlayerConfig
var Enemy EnemyConfig
var Key PickupConfig
var Bonus PickupConfig
var Exit ExitConfig
var Barrier BarrierConfig
var Collision CollisionConfig
var Levels LevelDefaults

func init() {
	C = &Config{
		Width:  960,
		Height: 640,
		TPS:    60,
		Title:  "Key Runner",
	}

	// Player Config
	Player = PlayerConfig{
		BaseSpeed:       200,
		StartX:          100,
		StartY:          100,
		StartingLives:   3,
		MaxLives:        3,
		InvulnDuration:  1.0,
		BreakReach:      4,
		BreakDuration:   0.5,
		CollisionWidth:  24,
		CollisionHeight: 24,
		SpriteKey:       "cat_ginger_1",
	}

	// Enemy Config
	Enemy = EnemyConfig{
		Types: map[string]EnemyTypeConfig{
			"Enemy1": {
				Name:            "Enemy1",
				Speed:           70,
				ViewRadius:      140,
				ZoneRadius:      160,
				Patrol:          [][2]float64{{0, 0}, {64, 0}, {64, 64}, {0, 64}},
				WaitAtPoint:     0.3,
				CollisionWidth:  24,
				CollisionHeight: 24,
				TintColor:       color.RGBA{R: 200, G: 80, B: 80, A: 255},
			},
			"Enemy2": {
				Name:            "Enemy2",
				Speed:           90,
				ViewRadius:      170,
				ZoneRadius:      210,
				Patrol:          [][2]float64{{-64, 0}, {64, 0}, {64, 64}, {-64, 64}},
				WaitAtPoint:     0.3,
				CollisionWidth:  24,
				CollisionHeight: 24,
				TintColor:       color.RGBA{R: 220, G: 120, B: 40, A: 255},
			},
			"Enemy3": {
				Name:            "Enemy3",
				Speed:           110,
				ViewRadius:      200,
				ZoneRadius:      260,
				Patrol:          [][2]float64{{0, -80}, {80, 0}, {0, 80}, {-80, 0}},
				WaitAtPoint:     0.3,
				CollisionWidth:  24,
				CollisionHeight: 24,
				TintColor:       color.RGBA{R: 160, G: 40, B: 160, A: 255},
			},
			"Wanderer": {
				Name:            "Wanderer",
				Speed:           60,
				ViewRadius:      120,
				ZoneRadius:      180,
				Wander:          true,
				WanderMinTime:   0.5,
				WanderMaxTime:   2.0,
				CollisionWidth:  24,
				CollisionHeight: 24,
				TintColor:       color.RGBA{R: 120, G: 120, B: 200, A: 255},
			},
		},
		Aliases: map[string]string{
			"Enemy": "Enemy2",
		},
		DefaultType:    "Enemy2",
		ArrivalEpsilon: 4,
	}

	Key = PickupConfig{
		Value:  100,
		Width:  32,
		Height: 32,
	}

	Bonus = PickupConfig{
		Value:         100,
		Width:         32,
		Height:        32,
		BoostSpeed:    300,
		BoostDuration: 3,
		BoostChance:   0.5,
	}

	Exit = ExitConfig{
		Width:     32,
		Height:    32,
		SpriteKey: "Ex1",
	}

	Barrier = BarrierConfig{
		Width:  32,
		Height: 32,
		Score:  50,
	}

	Collision = CollisionConfig{
		Layers:             []string{"3-1"},
		LayerProperty:      "collision",
		WallTilesets:       []string{"TX Tileset Wall", "TX Struct"},
		ColliderProperties: []string{"collides", "collieds"},
		SolidProperty:      "solid",
		PassableProperty:   "passable",
		AboveProperty:      "above",
		Padding:            2,
		MaxSampleStep:      4,
		CellSize:           16,
	}

	Levels = LevelDefaults{
		KeysRequired: 5,
		FrameDelta:   1.0 / 60.0,
		SpawnNames:   []string{"Cat"},
		SpawnTypes:   []string{"Cat", "Player"},
	}
}
