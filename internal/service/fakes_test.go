package service

import (
	"errors"
	"sync"

	"github.com/alexanderramin/placar/internal/domain"
)

type fakeCues struct {
	mu        sync.Mutex
	played    []domain.Stage
	resumes   int
	resumeErr error
	fail      bool
}

func (f *fakeCues) PlayStage(stage domain.Stage) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return false
	}
	f.played = append(f.played, stage)
	return true
}

func (f *fakeCues) Resume() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumes++
	return f.resumeErr
}

func (f *fakeCues) Played() []domain.Stage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Stage(nil), f.played...)
}

var errNoAudio = errors.New("no audio device")
