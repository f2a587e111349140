// Package otodevice connects the audio engine to the system output
// through oto.
package otodevice

import (
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"

	"github.com/alexanderramin/placar/internal/audio"
)

// player is the part of *oto.Player a voice drives.
type player interface {
	Play()
	Pause()
	IsPlaying() bool
	Err() error
	Close() error
}

// Device is the process-wide oto context. oto allows only one per
// process, so New must be called at most once.
type Device struct {
	ctx        *oto.Context
	sampleRate int
	newPlayer  func(io.Reader) player

	mu     sync.Mutex
	voices []*voice
}

// New creates the context and waits until it is ready.
func New(sampleRate int) (*Device, error) {
	if sampleRate <= 0 {
		sampleRate = audio.DefaultSampleRate
	}
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready
	return &Device{
		ctx:        ctx,
		sampleRate: sampleRate,
		newPlayer:  func(r io.Reader) player { return ctx.NewPlayer(r) },
	}, nil
}

// Factory adapts New to audio.DeviceFactory.
func Factory(sampleRate int) audio.DeviceFactory {
	return func() (audio.Device, error) {
		d, err := New(sampleRate)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

func (d *Device) SampleRate() int { return d.sampleRate }

// Play starts r on a new player. Players whose source has run out are
// closed first.
func (d *Device) Play(r io.Reader) (audio.Voice, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reapLocked()

	p := d.newPlayer(r)
	p.Play()
	if err := p.Err(); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("starting player: %w", err)
	}
	v := &voice{player: p}
	d.voices = append(d.voices, v)
	return v, nil
}

// Live is the number of players not yet closed.
func (d *Device) Live() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reapLocked()
	return len(d.voices)
}

func (d *Device) reapLocked() {
	kept := d.voices[:0]
	for _, v := range d.voices {
		if v.done() {
			v.close()
			continue
		}
		kept = append(kept, v)
	}
	clear(d.voices[len(kept):])
	d.voices = kept
}

func (d *Device) Suspend() error { return d.ctx.Suspend() }

func (d *Device) Resume() error { return d.ctx.Resume() }

type voice struct {
	mu     sync.Mutex
	player player
	closed bool
}

// done reports a voice that was stopped or has played to the end.
func (v *voice) done() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed || !v.player.IsPlaying()
}

func (v *voice) close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	v.closed = true
	return v.player.Close()
}

// Stop silences the voice and releases its player.
func (v *voice) Stop() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	v.player.Pause()
	v.closed = true
	if err := v.player.Close(); err != nil {
		return fmt.Errorf("closing player: %w", err)
	}
	return nil
}
