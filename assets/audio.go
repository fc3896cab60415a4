package assets

import (
	"encoding/binary"
	"math"

	cfg "github.com/automoto/keyrunner/config"
)

// Synthesize renders a tone as 16-bit signed little-endian stereo PCM, the
// format an audio.Context plays.
func Synthesize(tone cfg.Tone, sampleRate int) []byte {
	n := int(tone.Duration * float64(sampleRate))
	if n <= 0 || tone.Freq <= 0 {
		return nil
	}
	end := tone.EndFreq
	if end <= 0 {
		end = tone.Freq
	}

	buf := make([]byte, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		freq := tone.Freq + (end-tone.Freq)*t
		phase += 2 * math.Pi * freq / float64(sampleRate)
		// Fade out so the effect ends without a click
		v := int16(math.Sin(phase) * (1 - t) * 0.3 * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
