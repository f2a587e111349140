package otodevice

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	playing bool
	paused  int
	closed  int
}

func (p *fakePlayer) Play()           { p.playing = true }
func (p *fakePlayer) Pause()          { p.playing = false; p.paused++ }
func (p *fakePlayer) IsPlaying() bool { return p.playing }
func (p *fakePlayer) Err() error      { return nil }
func (p *fakePlayer) Close() error    { p.closed++; return nil }

func newFakeDevice() (*Device, *[]*fakePlayer) {
	var players []*fakePlayer
	d := &Device{
		sampleRate: 44100,
		newPlayer: func(io.Reader) player {
			p := &fakePlayer{}
			players = append(players, p)
			return p
		},
	}
	return d, &players
}

func TestDevice_StopClosesPlayer(t *testing.T) {
	d, players := newFakeDevice()

	v, err := d.Play(bytes.NewReader(nil))
	require.NoError(t, err)
	require.Equal(t, 1, d.Live())

	require.NoError(t, v.Stop())
	require.NoError(t, v.Stop())

	p := (*players)[0]
	assert.Equal(t, 1, p.paused)
	assert.Equal(t, 1, p.closed, "a second Stop does not close again")
	assert.Zero(t, d.Live())
}

func TestDevice_FinishedPlayersAreClosedOnNextPlay(t *testing.T) {
	d, players := newFakeDevice()

	for range 3 {
		_, err := d.Play(bytes.NewReader(nil))
		require.NoError(t, err)
	}
	// The first two cues have played to the end.
	(*players)[0].playing = false
	(*players)[1].playing = false

	_, err := d.Play(bytes.NewReader(nil))
	require.NoError(t, err)

	assert.Equal(t, 1, (*players)[0].closed)
	assert.Equal(t, 1, (*players)[1].closed)
	assert.Zero(t, (*players)[2].closed, "a playing cue is kept")
	assert.Equal(t, 2, d.Live())
}

func TestDevice_StoppedVoiceIsNotClosedTwiceByReap(t *testing.T) {
	d, players := newFakeDevice()

	v, err := d.Play(bytes.NewReader(nil))
	require.NoError(t, err)
	require.NoError(t, v.Stop())

	_, err = d.Play(bytes.NewReader(nil))
	require.NoError(t, err)

	assert.Equal(t, 1, (*players)[0].closed)
	assert.Equal(t, 1, d.Live())
}
