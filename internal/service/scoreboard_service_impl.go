package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alexanderramin/placar/internal/db"
	"github.com/alexanderramin/placar/internal/domain"
	"github.com/alexanderramin/placar/internal/feedback"
	"github.com/alexanderramin/placar/internal/progress"
	"github.com/alexanderramin/placar/internal/repository"
)

// scoreboardService owns the board state for the session. Every change
// recomputes the board, compares the stage with the previous one and, on
// a transition with sound enabled, plays exactly one cue.
type scoreboardService struct {
	mu       sync.Mutex
	settings Settings
	input    domain.WeeklyInput
	tracker  feedback.Tracker
	board    Board

	cues     CuePlayer
	uow      db.UnitOfWork
	logger   *zap.Logger
	observer UseCaseObserver
	now      func() time.Time
}

func NewScoreboardService(
	settings Settings,
	cues CuePlayer,
	uow db.UnitOfWork,
	logger *zap.Logger,
	observers ...UseCaseObserver,
) ScoreboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &scoreboardService{
		settings: settings,
		input:    domain.WeeklyInput{},
		cues:     cues,
		uow:      uow,
		logger:   logger.Named("scoreboard"),
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
	s.settings.Weeks = progress.ClampWeeks(settings.Weeks)
	s.board = s.compute()
	s.tracker.Observe(s.board.Feedback.Stage)
	return s
}

func (s *scoreboardService) Board() Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}

func (s *scoreboardService) SetWeeks(ctx context.Context, n int) Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	done := observe(ctx, s.observer, "set-weeks", map[string]any{"weeks": n})
	s.settings.Weeks = progress.ClampWeeks(n)
	u := s.recompute(ctx, "")
	done(nil)
	return u
}

func (s *scoreboardService) SetEntry(ctx context.Context, week domain.WeekIndex, text string) (u Update, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	done := observe(ctx, s.observer, "set-entry", map[string]any{"week": int(week)})
	defer func() { done(err) }()

	if week < 1 || int(week) > s.settings.Weeks {
		return Update{Board: s.board}, fmt.Errorf("week %d is outside 1..%d", week, s.settings.Weeks)
	}
	if s.input[week] == text {
		return Update{Board: s.board}, nil
	}
	if text == "" {
		delete(s.input, week)
	} else {
		s.input[week] = text
	}

	edit := &domain.EntryEdit{ID: uuid.New().String(), Week: week, Text: text, CreatedAt: s.now()}
	u = s.recompute(ctx, edit.ID)
	s.journal(ctx, edit, u)
	return u, nil
}

func (s *scoreboardService) ClearEntry(ctx context.Context, week domain.WeekIndex) (Update, error) {
	return s.SetEntry(ctx, week, "")
}

func (s *scoreboardService) SetSound(ctx context.Context, enabled bool) Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	done := observe(ctx, s.observer, "set-sound", map[string]any{"enabled": enabled})
	var err error
	if enabled && s.cues != nil {
		// Audio may stay unavailable; the toggle still takes effect.
		if err = s.cues.Resume(); err != nil {
			s.logger.Info("audio unavailable", zap.Error(err))
		}
	}
	s.settings.Sound = enabled
	s.board.Sound = enabled
	done(err)
	return s.board
}

func (s *scoreboardService) Reconfigure(ctx context.Context, settings Settings) Update {
	s.mu.Lock()
	defer s.mu.Unlock()
	done := observe(ctx, s.observer, "reconfigure", map[string]any{"weeks": settings.Weeks})
	sound := s.settings.Sound
	s.settings = settings
	s.settings.Sound = sound
	s.settings.Weeks = progress.ClampWeeks(settings.Weeks)
	u := s.recompute(ctx, "")
	done(nil)
	return u
}

// compute derives the board from the current input and settings.
func (s *scoreboardService) compute() Board {
	snap := progress.Compute(s.input, s.settings.Weeks, s.settings.Goal)
	fb := feedback.For(snap.Current.Value, s.settings.Bands)
	snap.Current.Stage = fb.Stage
	return Board{
		Weeks:    snap.Weeks,
		Goal:     s.settings.Goal,
		Input:    s.input.Clone(),
		Snapshot: snap,
		Feedback: fb,
		Sound:    s.settings.Sound,
	}
}

// recompute refreshes the board and handles a stage transition. Called
// with s.mu held.
func (s *scoreboardService) recompute(ctx context.Context, editID string) Update {
	prev, _ := s.tracker.Previous()
	s.board = s.compute()
	u := Update{Board: s.board, From: prev}
	if !s.tracker.Observe(s.board.Feedback.Stage) {
		return u
	}
	u.Changed = true
	if s.settings.Sound && s.cues != nil {
		u.CuePlayed = s.cues.PlayStage(s.board.Feedback.Stage)
	}
	s.logger.Info("stage changed",
		zap.Int("from", int(prev)),
		zap.Int("to", int(s.board.Feedback.Stage)),
		zap.Float64("value", s.board.Current().Value),
		zap.Bool("cue", u.CuePlayed))
	if editID == "" {
		s.journal(ctx, nil, u)
	}
	return u
}

// journal records the edit and any transition in one transaction.
// Failures are logged; the board never depends on the journal.
func (s *scoreboardService) journal(ctx context.Context, edit *domain.EntryEdit, u Update) {
	if s.uow == nil || (edit == nil && !u.Changed) {
		return
	}
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		ev := &domain.StageEvent{
			ID:        uuid.New().String(),
			From:      u.From,
			To:        u.Board.Feedback.Stage,
			Value:     u.Board.Current().Value,
			CuePlayed: u.CuePlayed,
			CreatedAt: s.now(),
		}
		if edit != nil {
			if err := repository.NewSQLiteEntryEditRepo(tx).Create(ctx, edit); err != nil {
				return err
			}
			ev.EditID = edit.ID
		}
		if !u.Changed {
			return nil
		}
		return repository.NewSQLiteStageEventRepo(tx).Create(ctx, ev)
	})
	if err != nil {
		s.logger.Warn("journal write failed", zap.Error(err))
	}
}
