package audio

import (
	"fmt"
	"time"

	"github.com/alexanderramin/placar/internal/domain"
)

func ms(n float64) time.Duration {
	return time.Duration(n * float64(time.Millisecond))
}

func secs(f float64) time.Duration {
	return time.Duration(f * float64(time.Second))
}

var stageCues = [domain.StageCount][]Tone{
	// sleepy "zzz"
	domain.StageStart: {
		{Freq: 220, Duration: ms(120), Wave: Sine, Volume: 0.12},
		{Freq: 200, Duration: ms(100), Wave: Sine, Volume: 0.1, Start: ms(150)},
	},
	// two low tones, someone waiting
	domain.StageWaiting: {
		{Freq: 260, Duration: ms(80), Wave: Triangle, Volume: 0.12},
		{Freq: 240, Duration: ms(100), Wave: Triangle, Volume: 0.1, Start: ms(120)},
	},
	// slow-motion slide down
	domain.StageSlowMotion: {
		{Freq: 300, Duration: ms(150), Wave: Sawtooth, Volume: 0.08, EndFreq: 180},
	},
	// engines warming up
	domain.StageWarmingUp: {
		{Freq: 320, Duration: ms(100), Wave: Square, Volume: 0.08},
		{Freq: 400, Duration: ms(100), Wave: Square, Volume: 0.08, Start: ms(100)},
	},
	domain.StagePickingUp: {
		{Freq: 400, Duration: ms(70), Wave: Sine, Volume: 0.1},
		{Freq: 500, Duration: ms(70), Wave: Sine, Volume: 0.1, Start: ms(80)},
		{Freq: 600, Duration: ms(100), Wave: Sine, Volume: 0.12, Start: ms(160)},
	},
	domain.StageAlmostThere: {
		{Freq: 523, Duration: ms(80), Wave: Sine, Volume: 0.12},
		{Freq: 659, Duration: ms(80), Wave: Sine, Volume: 0.12, Start: ms(60)},
		{Freq: 784, Duration: ms(120), Wave: Sine, Volume: 0.14, Start: ms(120)},
	},
	// mini fanfare
	domain.StageGoalMet: {
		{Freq: 523, Duration: ms(100), Wave: Sine, Volume: 0.15},
		{Freq: 659, Duration: ms(100), Wave: Sine, Volume: 0.15, Start: ms(80)},
		{Freq: 784, Duration: ms(100), Wave: Sine, Volume: 0.15, Start: ms(160)},
		{Freq: 1047, Duration: ms(200), Wave: Sine, Volume: 0.18, Start: ms(240)},
	},
	domain.StageBeyondGoal: {
		{Freq: 523, Duration: ms(80), Wave: Sine, Volume: 0.14},
		{Freq: 659, Duration: ms(80), Wave: Sine, Volume: 0.14, Start: ms(60)},
		{Freq: 784, Duration: ms(80), Wave: Sine, Volume: 0.14, Start: ms(120)},
		{Freq: 1047, Duration: ms(80), Wave: Sine, Volume: 0.16, Start: ms(180)},
		{Freq: 1319, Duration: ms(250), Wave: Sine, Volume: 0.18, Start: ms(240)},
	},
}

// StageCue returns the fixed cue for stage. Stages outside 0..7 yield an
// empty cue.
func StageCue(stage domain.Stage) Cue {
	if !stage.Valid() {
		return Cue{Name: fmt.Sprintf("stage-%d", stage)}
	}
	tones := make([]Tone, len(stageCues[stage]))
	copy(tones, stageCues[stage])
	return Cue{Name: fmt.Sprintf("stage-%d", stage), Tones: tones}
}

// MotivationDuration is the fixed length of the motivation cue. Playback
// is stopped by a timer after exactly this long.
const MotivationDuration = 30 * time.Second

const (
	noteC4 = 262
	noteE4 = 330
	noteG4 = 392
	noteC5 = 523
	noteE5 = 659
	noteG5 = 784
	noteC6 = 1047
	noteE6 = 1319
	noteG6 = 1568
)

const (
	beat             = 0.4 // seconds
	motivationAttack = 30 * time.Millisecond
)

// note is a fanfare note: length and step are in beats.
type note struct {
	freq   float64
	length float64
	volume float64
	step   float64
}

type section struct {
	start float64 // seconds
	notes []note
}

var fanfare = []section{
	// opening fanfare
	{start: 0, notes: []note{
		{noteC4, 1.2, 0.14, 1}, {noteE4, 1.2, 0.14, 1}, {noteG4, 1.2, 0.14, 1},
		{noteC5, 1.5, 0.16, 1.5}, {noteG4, 1, 0.14, 1}, {noteE4, 1.5, 0.14, 2},
		{noteC5, 1.2, 0.15, 1}, {noteE5, 1.2, 0.15, 1}, {noteG5, 1.5, 0.16, 1.5},
		{noteC6, 2, 0.18, 2.5},
	}},
	// rising reprise
	{start: 8, notes: []note{
		{noteE4, 1, 0.12, 1}, {noteG4, 1, 0.12, 1}, {noteC5, 1.2, 0.14, 1.2},
		{noteE5, 1, 0.14, 1}, {noteG5, 1.2, 0.15, 1.2}, {noteC6, 1.5, 0.16, 2},
		{noteE6, 2, 0.16, 2.5},
	}},
	// build
	{start: 16, notes: []note{
		{noteC5, 1.5, 0.14, 1.5}, {noteG5, 1.5, 0.15, 1.5}, {noteC6, 2, 0.16, 2.5},
		{noteG5, 1, 0.14, 1}, {noteC6, 1.5, 0.16, 2}, {noteE6, 2, 0.16, 2.5},
	}},
	// finale, the last note is held until the end
	{start: 24, notes: []note{
		{noteC5, 1, 0.14, 1}, {noteE5, 1, 0.14, 1}, {noteG5, 1, 0.15, 1},
		{noteC6, 1.2, 0.16, 1.2}, {noteE6, 1.2, 0.16, 1.2}, {noteG6, 2, 0.18, 2},
	}},
}

// MotivationCue is the composed fanfare played on demand. It lasts
// exactly MotivationDuration.
func MotivationCue() Cue {
	var tones []Tone
	t := 0.0
	for _, sec := range fanfare {
		t = sec.start
		for _, n := range sec.notes {
			tones = append(tones, Tone{
				Freq:     n.freq,
				Duration: secs(beat * n.length),
				Wave:     Sine,
				Volume:   n.volume,
				Start:    secs(t),
				Attack:   motivationAttack,
			})
			t += beat * n.step
		}
	}
	start := secs(t)
	tones = append(tones, Tone{
		Freq:     noteC6,
		Duration: MotivationDuration - start,
		Wave:     Sine,
		Volume:   0.2,
		Start:    start,
		Attack:   motivationAttack,
	})
	return Cue{Name: "motivation", Tones: tones}
}
