package animations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnimationLoops(t *testing.T) {
	a := NewAnimation(0, 2, 0.1)

	a.Update(0.05)
	assert.Equal(t, 0, a.Frame())
	a.Update(0.06)
	assert.Equal(t, 1, a.Frame())
	a.Update(0.1)
	assert.Equal(t, 2, a.Frame())
	assert.False(t, a.Looped)

	a.Update(0.1)
	assert.Equal(t, 0, a.Frame())
	assert.True(t, a.Looped)
}

func TestAnimationCatchesUp(t *testing.T) {
	a := NewAnimation(0, 3, 0.1)
	a.Update(0.25)
	assert.Equal(t, 2, a.Frame())
}

func TestAnimationFreezes(t *testing.T) {
	a := NewAnimation(0, 1, 0.1)
	a.FreezeOnComplete = true
	a.Update(1)
	assert.Equal(t, 1, a.Frame())
	assert.True(t, a.Looped)

	a.Restart()
	assert.Equal(t, 0, a.Frame())
	assert.False(t, a.Looped)
}

func TestAnimationIgnoresBadInput(t *testing.T) {
	a := NewAnimation(0, 1, 0)
	a.Update(1)
	assert.Equal(t, 0, a.Frame())

	b := NewAnimation(0, 1, 0.1)
	b.Update(-1)
	assert.Equal(t, 0, b.Frame())
}
