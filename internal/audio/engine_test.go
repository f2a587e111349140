package audio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alexanderramin/placar/internal/domain"
)

func TestEngine_CreatesDeviceLazilyAndOnce(t *testing.T) {
	dev := &fakeDevice{rate: 8000}
	factory, calls := countingFactory(dev, nil)
	e := NewEngine(factory, zap.NewNop())

	assert.Zero(t, *calls, "no device before the first request")

	assert.True(t, e.PlayStage(domain.StageWarmingUp))
	assert.True(t, e.PlayStage(domain.StageGoalMet))

	assert.Equal(t, 1, *calls)
	assert.Equal(t, 2, dev.Plays())
}

func TestEngine_PlaysDeviceFormat(t *testing.T) {
	dev := &fakeDevice{rate: 8000}
	factory, _ := countingFactory(dev, nil)
	e := NewEngine(factory, nil)

	_, err := e.PlayCue(StageCue(domain.StageStart))
	require.NoError(t, err)

	require.Len(t, dev.played, 1)
	assert.Len(t, dev.played[0], 2000*4, "250ms at 8kHz, 4 bytes per stereo frame")
}

func TestEngine_FactoryFailureIsSwallowed(t *testing.T) {
	factory, calls := countingFactory(nil, errors.New("no sound card"))
	e := NewEngine(factory, zap.NewNop())

	assert.False(t, e.PlayStage(domain.StageGoalMet))
	assert.False(t, e.PlayStage(domain.StageGoalMet))
	assert.Equal(t, 1, *calls, "failed creation is not retried")

	err := e.Resume()
	assert.ErrorIs(t, err, ErrNoDevice)
	assert.Equal(t, DefaultSampleRate, e.SampleRate())
}

func TestEngine_NilFactory(t *testing.T) {
	e := NewEngine(nil, nil)
	assert.ErrorIs(t, e.Resume(), ErrNoDevice)
	assert.False(t, e.PlayStage(domain.StageStart))
}

func TestEngine_ResumesSuspendedDeviceBeforePlaying(t *testing.T) {
	dev := &fakeDevice{rate: 8000}
	factory, _ := countingFactory(dev, nil)
	e := NewEngine(factory, nil)

	require.NoError(t, e.Resume())
	assert.Zero(t, dev.resumes, "a fresh device is already running")

	require.NoError(t, e.Suspend())
	assert.Equal(t, 1, dev.suspends)

	assert.True(t, e.PlayStage(domain.StageStart))
	assert.Equal(t, 1, dev.resumes)
}

func TestEngine_SuspendWithoutDeviceIsNoop(t *testing.T) {
	factory, calls := countingFactory(&fakeDevice{rate: 8000}, nil)
	e := NewEngine(factory, nil)

	require.NoError(t, e.Suspend())
	assert.Zero(t, *calls)
}

func TestEngine_PlayCueRejectsEmptyCue(t *testing.T) {
	dev := &fakeDevice{rate: 8000}
	factory, _ := countingFactory(dev, nil)
	e := NewEngine(factory, nil)

	_, err := e.PlayCue(StageCue(99))
	assert.Error(t, err)
	assert.Zero(t, dev.Plays())
}

func TestEngine_PlayFailureIsSwallowed(t *testing.T) {
	dev := &fakeDevice{rate: 8000, failPlays: true}
	factory, _ := countingFactory(dev, nil)
	e := NewEngine(factory, nil)

	assert.False(t, e.PlayStage(domain.StagePickingUp))
}
