package repository

import (
	"context"

	"github.com/alexanderramin/placar/internal/domain"
)

// EntryEditRepo journals every change to a week's text.
type EntryEditRepo interface {
	Create(ctx context.Context, e *domain.EntryEdit) error
	GetByID(ctx context.Context, id string) (*domain.EntryEdit, error)
	ListByWeek(ctx context.Context, week domain.WeekIndex) ([]*domain.EntryEdit, error)
	List(ctx context.Context) ([]*domain.EntryEdit, error)
	Count(ctx context.Context) (int, error)
}

// StageEventRepo journals stage transitions.
type StageEventRepo interface {
	Create(ctx context.Context, ev *domain.StageEvent) error
	Latest(ctx context.Context) (*domain.StageEvent, error)
	List(ctx context.Context) ([]*domain.StageEvent, error)
	MarkCuePlayed(ctx context.Context, id string) error
}
