package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/placar/internal/db"
	"github.com/alexanderramin/placar/internal/domain"
)

// SQLiteStageEventRepo implements StageEventRepo.
type SQLiteStageEventRepo struct {
	db db.DBTX
}

func NewSQLiteStageEventRepo(db db.DBTX) *SQLiteStageEventRepo {
	return &SQLiteStageEventRepo{db: db}
}

const stageEventColumns = `id, from_stage, to_stage, value, cue_played, COALESCE(edit_id, ''), created_at`

func (r *SQLiteStageEventRepo) Create(ctx context.Context, ev *domain.StageEvent) error {
	query := `INSERT INTO stage_events (id, from_stage, to_stage, value, cue_played, edit_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		ev.ID,
		int(ev.From),
		int(ev.To),
		ev.Value,
		boolToInt(ev.CuePlayed),
		nullableString(ev.EditID),
		formatTime(ev.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting stage event: %w", err)
	}
	return nil
}

// Latest returns the most recent transition.
func (r *SQLiteStageEventRepo) Latest(ctx context.Context) (*domain.StageEvent, error) {
	query := `SELECT ` + stageEventColumns + ` FROM stage_events ORDER BY rowid DESC LIMIT 1`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying latest stage event: %w", err)
	}
	defer rows.Close()
	events, err := scanStageEvents(rows)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("stage event: %w", ErrNotFound)
	}
	return events[0], nil
}

func (r *SQLiteStageEventRepo) List(ctx context.Context) ([]*domain.StageEvent, error) {
	query := `SELECT ` + stageEventColumns + ` FROM stage_events ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing stage events: %w", err)
	}
	defer rows.Close()
	return scanStageEvents(rows)
}

func (r *SQLiteStageEventRepo) MarkCuePlayed(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE stage_events SET cue_played = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("marking cue played: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("marking cue played: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("stage event %s: %w", id, ErrNotFound)
	}
	return nil
}

func scanStageEvents(rows *sql.Rows) ([]*domain.StageEvent, error) {
	var events []*domain.StageEvent
	for rows.Next() {
		var ev domain.StageEvent
		var from, to, played int
		var createdAt string
		if err := rows.Scan(&ev.ID, &from, &to, &ev.Value, &played, &ev.EditID, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning stage event row: %w", err)
		}
		ev.From = domain.Stage(from)
		ev.To = domain.Stage(to)
		ev.CuePlayed = intToBool(played)
		t, err := parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		ev.CreatedAt = t
		events = append(events, &ev)
	}
	if err := rows.Err(); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("iterating stage events: %w", err)
	}
	return events, nil
}
