// Package audio synthesizes the board's sound cues from tone descriptors
// and plays them through a lazily created output device.
package audio

import "time"

// Waveform is the oscillator shape of a tone.
type Waveform string

const (
	Sine     Waveform = "sine"
	Triangle Waveform = "triangle"
	Square   Waveform = "square"
	Sawtooth Waveform = "sawtooth"
)

// DefaultAttack is the linear rise time of a tone's envelope.
const DefaultAttack = 20 * time.Millisecond

// DecayFloor is the level a tone decays to by its end time.
const DecayFloor = 0.001

// Tone is one scheduled note of a cue.
type Tone struct {
	Freq     float64 // Hz
	Duration time.Duration
	Wave     Waveform
	Volume   float64       // 0..1
	Start    time.Duration // offset from the start of the cue

	// EndFreq, when non-zero, is the frequency reached at the end of the
	// tone through a linear glide.
	EndFreq float64

	// Attack overrides DefaultAttack when non-zero.
	Attack time.Duration
}

// End returns the offset at which the tone stops.
func (t Tone) End() time.Duration {
	return t.Start + t.Duration
}

func (t Tone) attack() time.Duration {
	if t.Attack > 0 {
		return t.Attack
	}
	return DefaultAttack
}

// Cue is a named sequence of tones played together.
type Cue struct {
	Name  string
	Tones []Tone
}

// Length is the time from the cue start to the end of its last tone.
func (c Cue) Length() time.Duration {
	var end time.Duration
	for _, t := range c.Tones {
		if e := t.End(); e > end {
			end = e
		}
	}
	return end
}

// Empty reports whether the cue has no tones.
func (c Cue) Empty() bool {
	return len(c.Tones) == 0
}
