package audio

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/placar/internal/domain"
)

func TestRender_LengthMatchesCue(t *testing.T) {
	cue := StageCue(domain.StageStart) // ends at 250ms
	samples := Render(cue, 8000)

	assert.Len(t, samples, 2000)
}

func TestRender_SilentBetweenTones(t *testing.T) {
	cue := StageCue(domain.StageStart) // gap from 120ms to 150ms
	samples := Render(cue, 8000)

	for i := 8 * 125; i < 8*149; i++ {
		require.Zero(t, samples[i], "sample %d", i)
	}
	assert.NotZero(t, samples[8*50+3])
}

func TestRender_ClipsMix(t *testing.T) {
	loud := Cue{Name: "loud", Tones: []Tone{
		{Freq: 100, Duration: 100 * time.Millisecond, Wave: Square, Volume: 1},
		{Freq: 100, Duration: 100 * time.Millisecond, Wave: Square, Volume: 1},
	}}
	for _, s := range Render(loud, 8000) {
		require.LessOrEqual(t, math.Abs(float64(s)), 1.0)
	}
}

func TestRender_EmptyCue(t *testing.T) {
	assert.Empty(t, Render(Cue{}, 44100))
}

func TestEnvelope(t *testing.T) {
	const attack, dur, vol = 0.02, 0.1, 0.12

	assert.Zero(t, Envelope(0, attack, dur, vol))
	assert.InDelta(t, vol/2, Envelope(attack/2, attack, dur, vol), 1e-9)
	assert.InDelta(t, vol, Envelope(attack, attack, dur, vol), 1e-9)
	assert.InDelta(t, DecayFloor, Envelope(dur, attack, dur, vol), 1e-9)
	assert.Zero(t, Envelope(dur+0.01, attack, dur, vol))
	assert.Zero(t, Envelope(0.05, attack, dur, 0))

	prev := Envelope(attack, attack, dur, vol)
	for sec := attack + 0.005; sec <= dur; sec += 0.005 {
		cur := Envelope(sec, attack, dur, vol)
		assert.Less(t, cur, prev, "decays after the attack")
		prev = cur
	}
}

func TestOscillate(t *testing.T) {
	assert.InDelta(t, 1, oscillate(Sine, 0.25), 1e-9)
	assert.Equal(t, 1.0, oscillate(Square, 0.1))
	assert.Equal(t, -1.0, oscillate(Square, 0.6))
	assert.Equal(t, -1.0, oscillate(Sawtooth, 0))
	assert.InDelta(t, 0, oscillate(Triangle, 0), 1e-9)
	assert.InDelta(t, 1, oscillate(Triangle, 0.25), 1e-9)
	assert.InDelta(t, -1, oscillate(Triangle, 0.75), 1e-9)
}

func TestEncodePCM16Stereo(t *testing.T) {
	out := EncodePCM16Stereo([]float32{1, -1, 0, 2})
	require.Len(t, out, 16)

	frame := func(i int) (int16, int16) {
		l := int16(binary.LittleEndian.Uint16(out[i*4:]))
		r := int16(binary.LittleEndian.Uint16(out[i*4+2:]))
		return l, r
	}
	l, r := frame(0)
	assert.Equal(t, int16(math.MaxInt16), l)
	assert.Equal(t, l, r)
	l, _ = frame(1)
	assert.Equal(t, int16(-math.MaxInt16), l)
	l, _ = frame(2)
	assert.Zero(t, l)
	l, _ = frame(3)
	assert.Equal(t, int16(math.MaxInt16), l, "out-of-range samples clip")
}
