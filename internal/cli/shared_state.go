package cli

import (
	"time"

	"github.com/alexanderramin/placar/internal/service"
)

// SharedState holds what every view reads, shared by pointer.
type SharedState struct {
	App *App

	// Board is the latest state of the scoreboard.
	Board service.Board

	// Motivation run in progress and when its window closes.
	Motivating     bool
	MotivationEnds time.Time

	// Notice is a one-line status shown under the header until replaced.
	Notice string

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(app *App) *SharedState {
	return &SharedState{App: app, Board: app.Scoreboard.Board()}
}

// ApplyUpdate records a board change.
func (s *SharedState) ApplyUpdate(u service.Update) {
	s.Board = u.Board
	if u.Changed {
		s.Notice = stageNotice(u)
	}
}

// ContentHeight returns the available height for view content,
// accounting for header (3 lines: title, notice, separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 6
	if h < 1 {
		return 1
	}
	return h
}
