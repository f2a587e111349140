package service

import (
	"context"
	"image"
	"time"

	"github.com/alexanderramin/placar/internal/domain"
	"github.com/alexanderramin/placar/internal/feedback"
	"github.com/alexanderramin/placar/internal/imageref"
	"github.com/alexanderramin/placar/internal/progress"
)

// Settings are the parts of the configuration the board computes with.
type Settings struct {
	Goal  domain.Goal
	Bands feedback.Bands
	Weeks int
	Sound bool
}

// Board is the derived state shown after every recompute.
type Board struct {
	Weeks    int
	Goal     domain.Goal
	Input    domain.WeeklyInput
	Snapshot progress.Snapshot
	Feedback feedback.Feedback
	Sound    bool
}

// Current is a shortcut for the board's current state.
func (b Board) Current() domain.CurrentState {
	return b.Snapshot.Current
}

// Update is the result of a change to the board.
type Update struct {
	Board Board
	// Changed reports a stage transition caused by this change.
	Changed bool
	// From is the stage before the transition.
	From      domain.Stage
	CuePlayed bool
}

// CuePlayer plays stage transition cues. Implemented by the audio engine.
type CuePlayer interface {
	PlayStage(stage domain.Stage) bool
	Resume() error
}

// Motivator plays the motivation piece. Implemented by the audio package.
type Motivator interface {
	Start(ctx context.Context) bool
	Stop()
	Playing() bool
	Duration() time.Duration
}

type ScoreboardService interface {
	Board() Board
	SetWeeks(ctx context.Context, n int) Update
	SetEntry(ctx context.Context, week domain.WeekIndex, text string) (Update, error)
	ClearEntry(ctx context.Context, week domain.WeekIndex) (Update, error)
	SetSound(ctx context.Context, enabled bool) Board
	Reconfigure(ctx context.Context, s Settings) Update
}

type HistoryService interface {
	Edits(ctx context.Context) ([]*domain.EntryEdit, error)
	Transitions(ctx context.Context) ([]*domain.StageEvent, error)
}

type PhotoService interface {
	Load(ctx context.Context, slot imageref.SlotName, path string) error
	Clear(ctx context.Context, slot imageref.SlotName) error
	Image(slot imageref.SlotName) *imageref.Image
	// Markers returns the pictures for the progress and target markers.
	Markers(stage domain.Stage) (progress, target image.Image)
}
