package scenes

import (
	"math"
	"math/rand"

	cfg "github.com/automoto/keyrunner/config"
)

// Camera follows the player over levels larger than the screen. Position is
// the world point at the centre of the screen.
type Camera struct {
	X, Y float64

	shakeLeft float64
	shakeX    float64
	shakeY    float64
	rand      *rand.Rand
	placed    bool
}

func NewCamera(seed int64) *Camera {
	return &Camera{rand: rand.New(rand.NewSource(seed))}
}

// Follow eases toward the target, kept inside the level. A level narrower
// than the screen is centred instead.
func (c *Camera) Follow(targetX, targetY, levelW, levelH, screenW, screenH float64) {
	targetX = clampAxis(targetX, levelW, screenW)
	targetY = clampAxis(targetY, levelH, screenH)

	if !c.placed {
		c.X, c.Y = targetX, targetY
		c.placed = true
		return
	}
	c.X += (targetX - c.X) * cfg.Camera.FollowSmoothing
	c.Y += (targetY - c.Y) * cfg.Camera.FollowSmoothing
}

func clampAxis(target, level, screen float64) float64 {
	if level <= screen {
		return level / 2
	}
	return math.Max(screen/2, math.Min(level-screen/2, target))
}

// Reset makes the next Follow jump straight to its target
func (c *Camera) Reset() {
	c.placed = false
	c.shakeLeft = 0
	c.shakeX, c.shakeY = 0, 0
}

// Shake starts a screen shake that decays over ShakeSeconds
func (c *Camera) Shake() {
	c.shakeLeft = cfg.Camera.ShakeSeconds
}

func (c *Camera) Update(dt float64) {
	if c.shakeLeft <= 0 {
		c.shakeX, c.shakeY = 0, 0
		return
	}
	c.shakeLeft = math.Max(0, c.shakeLeft-dt)
	intensity := cfg.Camera.ShakeIntensity * c.shakeLeft / cfg.Camera.ShakeSeconds
	c.shakeX = (c.rand.Float64()*2 - 1) * intensity
	c.shakeY = (c.rand.Float64()*2 - 1) * intensity
}

// Offset is the translation from world to screen coordinates
func (c *Camera) Offset(screenW, screenH float64) (float64, float64) {
	return math.Round(screenW/2 - c.X + c.shakeX), math.Round(screenH/2 - c.Y + c.shakeY)
}
