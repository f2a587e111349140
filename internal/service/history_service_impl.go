package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/placar/internal/domain"
	"github.com/alexanderramin/placar/internal/repository"
)

type historyService struct {
	edits  repository.EntryEditRepo
	events repository.StageEventRepo
}

func NewHistoryService(edits repository.EntryEditRepo, events repository.StageEventRepo) HistoryService {
	return &historyService{edits: edits, events: events}
}

func (s *historyService) Edits(ctx context.Context) ([]*domain.EntryEdit, error) {
	edits, err := s.edits.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading edit history: %w", err)
	}
	return edits, nil
}

func (s *historyService) Transitions(ctx context.Context) ([]*domain.StageEvent, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading stage history: %w", err)
	}
	return events, nil
}
