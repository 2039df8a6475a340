package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// Tone is a sine note with a short attack and an exponential release.
type Tone struct {
	sr     beep.SampleRate
	freq   float64
	volume float64
	length int
	pos    int
}

// NewTone creates a note generator that ends after d.
//
// Parameters:
//   - sr: output sample rate
//   - freq: pitch in Hz
//   - d: note length
//   - volume: peak amplitude in [0, 1]
//
// Returns:
//   - *Tone: the generator
func NewTone(sr beep.SampleRate, freq float64, d time.Duration, volume float64) *Tone {
	return &Tone{sr: sr, freq: freq, volume: volume, length: sr.N(d)}
}

func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.length {
		return 0, false
	}
	attack := float64(t.sr) * 0.01
	for i := range samples {
		if t.pos >= t.length {
			return i, true
		}
		x := float64(t.pos) / float64(t.sr)
		env := math.Min(float64(t.pos)/attack, 1) * math.Exp(-4*float64(t.pos)/float64(t.length))
		v := t.volume * env * math.Sin(2*math.Pi*t.freq*x)
		samples[i][0] = v
		samples[i][1] = v
		t.pos++
	}
	return len(samples), true
}

func (t *Tone) Err() error {
	return nil
}

// Arpeggio plays each frequency in turn for d.
//
// Parameters:
//   - sr: output sample rate
//   - d: length of each note
//   - volume: peak amplitude in [0, 1]
//   - freqs: pitches in Hz
//
// Returns:
//   - beep.Streamer: the sequenced notes
func Arpeggio(sr beep.SampleRate, d time.Duration, volume float64, freqs ...float64) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		notes = append(notes, beep.Take(sr.N(d), NewTone(sr, f, d, volume)))
	}
	return beep.Seq(notes...)
}
