package config

import "image/color"

// UIConfig contains colours and layout for the screens and the HUD
type UIConfig struct {
	BackgroundColor   color.RGBA
	TextColorNormal   color.RGBA
	TextColorSelected color.RGBA
	TitleColor        color.RGBA
	TitleY            float64
	MenuStartY        float64
	MenuItemHeight    float64
	MenuItemGap       float64

	// HUD
	HUDHeight     float64
	HUDColor      color.RGBA
	HUDTextColor  color.RGBA
	KeyDoneColor  color.RGBA
	LifeColor     color.RGBA
	BannerColor   color.RGBA
	BannerSeconds float32 // fade duration of the level banner

	// Entity rectangles drawn when no sprite is available
	KindColors   map[string]color.RGBA
	BlinkSeconds float64 // invulnerability blink period

	// Debug outlines of entity hitboxes and tile colliders
	DebugHitbox   bool
	HitboxColor   color.RGBA
	ColliderColor color.RGBA
}

// CameraConfig drives the follow camera
type CameraConfig struct {
	FollowSmoothing float64 // fraction of the distance closed per frame
	ShakeIntensity  float64 // pixels
	ShakeSeconds    float64
}

var UI UIConfig
var Camera CameraConfig

func init() {
	UI = UIConfig{
		BackgroundColor:   color.RGBA{R: 16, G: 16, B: 24, A: 255},
		TextColorNormal:   color.RGBA{R: 180, G: 180, B: 190, A: 255},
		TextColorSelected: color.RGBA{R: 255, G: 210, B: 80, A: 255},
		TitleColor:        color.RGBA{R: 255, G: 255, B: 255, A: 255},
		TitleY:            140,
		MenuStartY:        240,
		MenuItemHeight:    24,
		MenuItemGap:       12,

		HUDHeight:     28,
		HUDColor:      color.RGBA{R: 0, G: 0, B: 0, A: 180},
		HUDTextColor:  color.RGBA{R: 240, G: 240, B: 240, A: 255},
		KeyDoneColor:  color.RGBA{R: 120, G: 220, B: 120, A: 255},
		LifeColor:     color.RGBA{R: 230, G: 70, B: 90, A: 255},
		BannerColor:   color.RGBA{R: 255, G: 230, B: 120, A: 255},
		BannerSeconds: 2,

		KindColors: map[string]color.RGBA{
			"Player":  {R: 240, G: 160, B: 60, A: 255},
			"Enemy":   {R: 200, G: 80, B: 80, A: 255},
			"Key":     {R: 250, G: 220, B: 60, A: 255},
			"Bonus":   {R: 240, G: 120, B: 200, A: 255},
			"Exit":    {R: 80, G: 200, B: 120, A: 255},
			"Barrier": {R: 150, G: 110, B: 70, A: 255},
		},
		BlinkSeconds: 0.1,

		HitboxColor:   color.RGBA{R: 255, A: 255},
		ColliderColor: color.RGBA{G: 200, B: 255, A: 255},
	}

	Camera = CameraConfig{
		FollowSmoothing: 0.15,
		ShakeIntensity:  4,
		ShakeSeconds:    0.25,
	}
}
