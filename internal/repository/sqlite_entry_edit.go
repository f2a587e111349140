package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/placar/internal/db"
	"github.com/alexanderramin/placar/internal/domain"
)

// SQLiteEntryEditRepo implements EntryEditRepo.
type SQLiteEntryEditRepo struct {
	db db.DBTX
}

func NewSQLiteEntryEditRepo(db db.DBTX) *SQLiteEntryEditRepo {
	return &SQLiteEntryEditRepo{db: db}
}

const entryEditColumns = `id, week, text, created_at`

func (r *SQLiteEntryEditRepo) Create(ctx context.Context, e *domain.EntryEdit) error {
	query := `INSERT INTO entry_edits (` + entryEditColumns + `) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, e.ID, int(e.Week), e.Text, formatTime(e.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting entry edit: %w", err)
	}
	return nil
}

func (r *SQLiteEntryEditRepo) GetByID(ctx context.Context, id string) (*domain.EntryEdit, error) {
	query := `SELECT ` + entryEditColumns + ` FROM entry_edits WHERE id = ?`
	var e domain.EntryEdit
	var week int
	var createdAt string
	err := r.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &week, &e.Text, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("entry edit: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning entry edit: %w", err)
	}
	e.Week = domain.WeekIndex(week)
	if e.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &e, nil
}

func (r *SQLiteEntryEditRepo) ListByWeek(ctx context.Context, week domain.WeekIndex) ([]*domain.EntryEdit, error) {
	query := `SELECT ` + entryEditColumns + ` FROM entry_edits WHERE week = ? ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query, int(week))
	if err != nil {
		return nil, fmt.Errorf("listing entry edits by week: %w", err)
	}
	defer rows.Close()
	return scanEntryEdits(rows)
}

func (r *SQLiteEntryEditRepo) List(ctx context.Context) ([]*domain.EntryEdit, error) {
	query := `SELECT ` + entryEditColumns + ` FROM entry_edits ORDER BY rowid`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing entry edits: %w", err)
	}
	defer rows.Close()
	return scanEntryEdits(rows)
}

func (r *SQLiteEntryEditRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entry_edits`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting entry edits: %w", err)
	}
	return n, nil
}

func scanEntryEdits(rows *sql.Rows) ([]*domain.EntryEdit, error) {
	var edits []*domain.EntryEdit
	for rows.Next() {
		var e domain.EntryEdit
		var week int
		var createdAt string
		if err := rows.Scan(&e.ID, &week, &e.Text, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning entry edit row: %w", err)
		}
		e.Week = domain.WeekIndex(week)
		t, err := parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at: %w", err)
		}
		e.CreatedAt = t
		edits = append(edits, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entry edits: %w", err)
	}
	return edits, nil
}
