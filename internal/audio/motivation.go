package audio

import (
	"context"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Source names what the motivator ended up playing.
type Source string

const (
	SourceNone  Source = ""
	SourceTrack Source = "track"
	SourceSynth Source = "synth"
)

// Motivator plays the motivation piece, at most one at a time. The
// caller stops it after Duration.
type Motivator struct {
	mu        sync.Mutex
	engine    *Engine
	trackPath string
	playing   bool
	source    Source
	voice     Voice
	closer    io.Closer
	logger    *zap.Logger
}

// NewMotivator plays trackPath when it can, else the synthesized fanfare.
func NewMotivator(engine *Engine, trackPath string, logger *zap.Logger) *Motivator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Motivator{engine: engine, trackPath: trackPath, logger: logger.Named("motivation")}
}

// Duration is how long a run lasts before the caller stops it.
func (m *Motivator) Duration() time.Duration {
	return MotivationDuration
}

// Start begins a run. It returns false if a run is already in progress.
// Playback failures are not errors: the run still counts as started and
// stays silent until stopped.
func (m *Motivator) Start(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.playing {
		return false
	}
	m.playing = true
	m.source = SourceNone

	if ctx.Err() != nil {
		return true
	}
	if m.startTrackLocked() {
		return true
	}
	v, err := m.engine.PlayCue(MotivationCue())
	if err != nil {
		m.logger.Warn("motivation silent", zap.Error(err))
		return true
	}
	m.voice = v
	m.source = SourceSynth
	return true
}

func (m *Motivator) startTrackLocked() bool {
	if m.trackPath == "" {
		return false
	}
	track, err := OpenTrack(m.trackPath, m.engine.SampleRate())
	if err != nil {
		m.logger.Info("motivation track unavailable, using fanfare", zap.Error(err))
		return false
	}
	v, err := m.engine.PlayReader(track)
	if err != nil {
		track.Close()
		m.logger.Info("motivation track failed, using fanfare", zap.Error(err))
		return false
	}
	m.voice = v
	m.closer = track
	m.source = SourceTrack
	return true
}

// Stop ends the current run, if any.
func (m *Motivator) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.voice != nil {
		if err := m.voice.Stop(); err != nil {
			m.logger.Debug("stopping motivation", zap.Error(err))
		}
		m.voice = nil
	}
	if m.closer != nil {
		m.closer.Close()
		m.closer = nil
	}
	m.playing = false
	m.source = SourceNone
}

// Playing reports whether a run is in progress.
func (m *Motivator) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// Source reports what the current run is playing.
func (m *Motivator) Source() Source {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}
