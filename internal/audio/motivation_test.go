package audio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMotivator(t *testing.T, track string) (*Motivator, *fakeDevice) {
	t.Helper()
	dev := &fakeDevice{rate: 8000}
	factory, _ := countingFactory(dev, nil)
	return NewMotivator(NewEngine(factory, zap.NewNop()), track, zap.NewNop()), dev
}

func TestMotivator_RefusesWhilePlaying(t *testing.T) {
	m, dev := newTestMotivator(t, "")
	ctx := context.Background()

	assert.True(t, m.Start(ctx))
	assert.True(t, m.Playing())
	assert.False(t, m.Start(ctx), "second start while playing")
	assert.Equal(t, 1, dev.Plays())

	m.Stop()
	assert.False(t, m.Playing())
	assert.True(t, m.Start(ctx), "start again after stop")
	assert.Equal(t, 2, dev.Plays())
	m.Stop()
}

func TestMotivator_FallsBackToFanfare(t *testing.T) {
	m, dev := newTestMotivator(t, filepath.Join(t.TempDir(), "missing.mp3"))

	require.True(t, m.Start(context.Background()))
	assert.Equal(t, SourceSynth, m.Source())

	require.Len(t, dev.played, 1)
	assert.Len(t, dev.played[0], 30*8000*4)
	m.Stop()
}

func TestMotivator_CorruptTrackFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motivacao.mp3")
	require.NoError(t, os.WriteFile(path, []byte("not an mp3"), 0o644))
	m, _ := newTestMotivator(t, path)

	require.True(t, m.Start(context.Background()))
	assert.Equal(t, SourceSynth, m.Source())
	m.Stop()
}

func TestMotivator_StopStopsVoice(t *testing.T) {
	m, dev := newTestMotivator(t, "")
	require.True(t, m.Start(context.Background()))

	m.Stop()
	m.Stop()

	require.Len(t, dev.voices, 1)
	assert.Equal(t, 1, dev.voices[0].Stops())
	assert.Equal(t, SourceNone, m.Source())
}

func TestMotivator_SilentWithoutDevice(t *testing.T) {
	factory, _ := countingFactory(nil, errors.New("no sound card"))
	m := NewMotivator(NewEngine(factory, nil), "", nil)

	assert.True(t, m.Start(context.Background()), "run starts even when silent")
	assert.Equal(t, SourceNone, m.Source())
	assert.False(t, m.Start(context.Background()))
	m.Stop()
	assert.False(t, m.Playing())
}

func TestMotivator_Duration(t *testing.T) {
	m, _ := newTestMotivator(t, "")
	assert.Equal(t, MotivationDuration, m.Duration())
}

func TestOpenTrack_Errors(t *testing.T) {
	_, err := OpenTrack("", 44100)
	assert.Error(t, err)

	_, err = OpenTrack(filepath.Join(t.TempDir(), "nope.mp3"), 44100)
	assert.Error(t, err)
}
