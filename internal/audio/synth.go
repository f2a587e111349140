package audio

import (
	"encoding/binary"
	"math"
)

// DefaultSampleRate is used when no device dictates one.
const DefaultSampleRate = 44100

// Render synthesizes cue into mono samples in [-1, 1].
func Render(cue Cue, sampleRate int) []float32 {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	total := int(math.Ceil(cue.Length().Seconds() * float64(sampleRate)))
	mix := make([]float64, total)
	for _, t := range cue.Tones {
		renderTone(mix, t, sampleRate)
	}
	out := make([]float32, total)
	for i, v := range mix {
		out[i] = float32(math.Max(-1, math.Min(1, v)))
	}
	return out
}

func renderTone(mix []float64, t Tone, sampleRate int) {
	sr := float64(sampleRate)
	start := int(t.Start.Seconds() * sr)
	n := int(t.Duration.Seconds() * sr)
	dur := t.Duration.Seconds()
	attack := t.attack().Seconds()

	phase := 0.0
	for i := 0; i < n && start+i < len(mix); i++ {
		sec := float64(i) / sr
		freq := t.Freq
		if t.EndFreq > 0 && dur > 0 {
			freq = t.Freq + (t.EndFreq-t.Freq)*sec/dur
		}
		mix[start+i] += oscillate(t.Wave, phase) * Envelope(sec, attack, dur, t.Volume)
		phase += freq / sr
		phase -= math.Floor(phase)
	}
}

// Envelope returns the gain at sec seconds into a tone: a linear rise to
// volume over attack, then an exponential decay reaching DecayFloor at dur.
func Envelope(sec, attack, dur, volume float64) float64 {
	if volume <= 0 || sec < 0 || sec > dur {
		return 0
	}
	if attack > dur {
		attack = dur
	}
	if sec < attack {
		return volume * sec / attack
	}
	if dur <= attack {
		return volume
	}
	return volume * math.Pow(DecayFloor/volume, (sec-attack)/(dur-attack))
}

// oscillate evaluates one period of wave at phase in [0, 1).
func oscillate(wave Waveform, phase float64) float64 {
	switch wave {
	case Square:
		if phase < 0.5 {
			return 1
		}
		return -1
	case Sawtooth:
		return 2*phase - 1
	case Triangle:
		switch {
		case phase < 0.25:
			return 4 * phase
		case phase < 0.75:
			return 2 - 4*phase
		default:
			return 4*phase - 4
		}
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// EncodePCM16Stereo converts mono samples to interleaved signed 16-bit
// little-endian stereo frames, the format the output device expects.
func EncodePCM16Stereo(samples []float32) []byte {
	out := make([]byte, len(samples)*4)
	for i, s := range samples {
		v := uint16(toInt16(s))
		binary.LittleEndian.PutUint16(out[i*4:], v)
		binary.LittleEndian.PutUint16(out[i*4+2:], v)
	}
	return out
}

func toInt16(s float32) int16 {
	f := math.Max(-1, math.Min(1, float64(s)))
	return int16(math.Round(f * math.MaxInt16))
}
