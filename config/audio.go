package config

// SoundID represents a logical sound effect
type SoundID int

const (
	SoundNone SoundID = iota

	SoundKey
	SoundBonus
	SoundHit
	SoundDeath
	SoundBarrier
	SoundLevelComplete

	SoundMenuNavigate
	SoundMenuSelect
)

// AudioConfig contains audio-related configuration values
type AudioConfig struct {
	SampleRate    int
	DefaultSFXVol float64
}

// Tone is a synthesized effect: a sine sweep from Freq to EndFreq with a
// linear fade out.
type Tone struct {
	Freq     float64 // Hz
	EndFreq  float64 // Hz, 0 keeps Freq
	Duration float64 // seconds
}

// SoundConfig maps sound IDs to the tones they play
type SoundConfig struct {
	Tones             map[SoundID]Tone
	VolumeMultipliers map[SoundID]float64
}

var Audio AudioConfig
var Sound SoundConfig

func init() {
	Audio = AudioConfig{
		SampleRate:    44100,
		DefaultSFXVol: 0.5,
	}

	Sound = SoundConfig{
		Tones: map[SoundID]Tone{
			SoundKey:           {Freq: 880, EndFreq: 1320, Duration: 0.12},
			SoundBonus:         {Freq: 660, EndFreq: 990, Duration: 0.2},
			SoundHit:           {Freq: 220, EndFreq: 110, Duration: 0.18},
			SoundDeath:         {Freq: 330, EndFreq: 55, Duration: 0.6},
			SoundBarrier:       {Freq: 140, Duration: 0.15},
			SoundLevelComplete: {Freq: 523, EndFreq: 1046, Duration: 0.5},
			SoundMenuNavigate:  {Freq: 440, Duration: 0.05},
			SoundMenuSelect:    {Freq: 660, Duration: 0.08},
		},
		VolumeMultipliers: map[SoundID]float64{
			SoundHit:   1.5,
			SoundDeath: 1.5,
		},
	}
}
