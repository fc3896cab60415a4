package scenes

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/automoto/keyrunner/assets"
	cfg "github.com/automoto/keyrunner/config"
	"github.com/automoto/keyrunner/logger"
	"github.com/automoto/keyrunner/sim"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Global audio state - created once and shared across all scenes
var (
	globalAudioContext *audio.Context
	globalAudioLoader  *AudioLoader
	globalSFXVolume    = cfg.Audio.DefaultSFXVol
	audioInitOnce      sync.Once
)

func initGlobalAudio() {
	audioInitOnce.Do(func() {
		globalAudioContext = audio.NewContext(cfg.Audio.SampleRate)
		globalAudioLoader = NewAudioLoader(globalAudioContext)
	})
}

// AudioLoader synthesizes and caches sound effects
type AudioLoader struct {
	sfxCache map[cfg.SoundID][]byte // PCM bytes, ready to play
	context  *audio.Context
}

// NewAudioLoader creates a new audio loader with the given context
func NewAudioLoader(ctx *audio.Context) *AudioLoader {
	return &AudioLoader{
		sfxCache: make(map[cfg.SoundID][]byte),
		context:  ctx,
	}
}

// PreloadSFX renders a sound effect into the cache without creating a player
func (l *AudioLoader) PreloadSFX(id cfg.SoundID) error {
	if _, ok := l.sfxCache[id]; ok {
		return nil
	}
	tone, ok := cfg.Sound.Tones[id]
	if !ok {
		return fmt.Errorf("no tone for sound %d", id)
	}
	l.sfxCache[id] = assets.Synthesize(tone, l.context.SampleRate())
	return nil
}

// LoadSFX returns a new player for a sound effect each time
func (l *AudioLoader) LoadSFX(id cfg.SoundID) (*audio.Player, error) {
	if err := l.PreloadSFX(id); err != nil {
		return nil, err
	}
	return l.context.NewPlayer(bytes.NewReader(l.sfxCache[id]))
}

// PreloadAllSFX renders every sound effect up front
func PreloadAllSFX() {
	initGlobalAudio()
	for id := range cfg.Sound.Tones {
		if err := globalAudioLoader.PreloadSFX(id); err != nil {
			logger.For("audio").WithError(err).Warn("Could not preload sound")
		}
	}
}

// PlaySFX plays a sound effect once. Failures are logged and ignored.
func PlaySFX(id cfg.SoundID) {
	if id == cfg.SoundNone {
		return
	}
	initGlobalAudio()
	player, err := globalAudioLoader.LoadSFX(id)
	if err != nil {
		logger.For("audio").WithError(err).Debug("Could not play sound")
		return
	}
	vol := globalSFXVolume
	if mult, ok := cfg.Sound.VolumeMultipliers[id]; ok {
		vol *= mult
	}
	player.SetVolume(min(vol, 1))
	player.Play()
}

// SetSFXVolume sets the effect volume, 0 mutes
func SetSFXVolume(v float64) {
	globalSFXVolume = max(0, min(v, 1))
}

// SoundFor picks the effect played for a simulation event
func SoundFor(ev sim.Event) cfg.SoundID {
	switch ev.Kind {
	case sim.KeyCollected:
		return cfg.SoundKey
	case sim.BonusCollected:
		return cfg.SoundBonus
	case sim.EnemyHit:
		if ev.Lives <= 0 {
			// PlayerDied follows in the same frame
			return cfg.SoundNone
		}
		return cfg.SoundHit
	case sim.PlayerDied:
		return cfg.SoundDeath
	case sim.BarrierBroken:
		return cfg.SoundBarrier
	case sim.LevelComplete:
		return cfg.SoundLevelComplete
	}
	return cfg.SoundNone
}
