package components

import (
	"github.com/yohamta/donburi"
)

// Vector represents a 2D vector.
type Vector struct {
	X, Y float64
}

// MotionData is the movement request the collision resolver consumes each frame
type MotionData struct {
	Intent  Vector  // direction, length at most 1
	Speed   float64 // pixels per second
	FacingX float64 // -1 or 1, follows the last horizontal intent
}

var Motion = donburi.NewComponentType[MotionData]()
