package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/alexanderramin/placar/internal/domain"
)

// ErrNoDevice is returned when the output device could not be created.
var ErrNoDevice = errors.New("audio device unavailable")

// Engine owns the process-wide output device. The device is created on
// the first request, since some platforms refuse audio before a user
// gesture, and reused afterwards.
type Engine struct {
	mu        sync.Mutex
	factory   DeviceFactory
	device    Device
	createErr error
	created   bool
	suspended bool
	logger    *zap.Logger
}

// NewEngine returns an engine that creates its device through factory.
func NewEngine(factory DeviceFactory, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{factory: factory, logger: logger.Named("audio")}
}

func (e *Engine) deviceLocked() (Device, error) {
	if !e.created {
		e.created = true
		if e.factory == nil {
			e.createErr = ErrNoDevice
		} else if d, err := e.factory(); err != nil {
			e.createErr = fmt.Errorf("%w: %v", ErrNoDevice, err)
		} else if d == nil {
			e.createErr = ErrNoDevice
		} else {
			e.device = d
		}
		if e.createErr != nil {
			e.logger.Warn("audio disabled", zap.Error(e.createErr))
		}
	}
	return e.device, e.createErr
}

// Resume creates the device if needed and resumes it when suspended.
func (e *Engine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.resumeLocked()
}

func (e *Engine) resumeLocked() error {
	d, err := e.deviceLocked()
	if err != nil {
		return err
	}
	if e.suspended {
		if err := d.Resume(); err != nil {
			return fmt.Errorf("resuming audio device: %w", err)
		}
		e.suspended = false
	}
	return nil
}

// Suspend pauses all output until the next Resume.
func (e *Engine) Suspend() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.device == nil || e.suspended {
		return nil
	}
	if err := e.device.Suspend(); err != nil {
		return fmt.Errorf("suspending audio device: %w", err)
	}
	e.suspended = true
	return nil
}

// SampleRate is the device rate, or DefaultSampleRate when no device
// can be created.
func (e *Engine) SampleRate() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	d, err := e.deviceLocked()
	if err != nil {
		return DefaultSampleRate
	}
	return d.SampleRate()
}

// PlayReader starts a stream of device-format PCM.
func (e *Engine) PlayReader(r io.Reader) (Voice, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.resumeLocked(); err != nil {
		return nil, err
	}
	v, err := e.device.Play(r)
	if err != nil {
		return nil, fmt.Errorf("starting playback: %w", err)
	}
	return v, nil
}

// PlayCue synthesizes cue at the device rate and starts it.
func (e *Engine) PlayCue(cue Cue) (Voice, error) {
	if cue.Empty() {
		return nil, fmt.Errorf("cue %q has no tones", cue.Name)
	}
	rate := e.SampleRate()
	pcm := EncodePCM16Stereo(Render(cue, rate))
	v, err := e.PlayReader(bytes.NewReader(pcm))
	if err != nil {
		return nil, fmt.Errorf("playing cue %q: %w", cue.Name, err)
	}
	e.logger.Debug("cue started", zap.String("cue", cue.Name), zap.Duration("length", cue.Length()))
	return v, nil
}

// PlayStage plays the transition cue for stage. Failures are logged and
// otherwise ignored.
func (e *Engine) PlayStage(stage domain.Stage) bool {
	if _, err := e.PlayCue(StageCue(stage)); err != nil {
		e.logger.Debug("stage cue skipped", zap.Int("stage", int(stage)), zap.Error(err))
		return false
	}
	return true
}
