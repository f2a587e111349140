package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/placar/internal/domain"
)

// EditOption customizes NewTestEdit.
type EditOption func(*domain.EntryEdit)

func WithEditTime(t time.Time) EditOption {
	return func(e *domain.EntryEdit) {
		e.CreatedAt = t
	}
}

// NewTestEdit returns an entry edit for week with the given text.
func NewTestEdit(week domain.WeekIndex, text string, opts ...EditOption) *domain.EntryEdit {
	e := &domain.EntryEdit{
		ID:        uuid.New().String(),
		Week:      week,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EventOption customizes NewTestStageEvent.
type EventOption func(*domain.StageEvent)

func WithCuePlayed() EventOption {
	return func(ev *domain.StageEvent) {
		ev.CuePlayed = true
	}
}

func WithEdit(editID string) EventOption {
	return func(ev *domain.StageEvent) {
		ev.EditID = editID
	}
}

// NewTestStageEvent returns a transition from one stage to another.
func NewTestStageEvent(from, to domain.Stage, value float64, opts ...EventOption) *domain.StageEvent {
	ev := &domain.StageEvent{
		ID:        uuid.New().String(),
		From:      from,
		To:        to,
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}
