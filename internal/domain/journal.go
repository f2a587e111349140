package domain

import "time"

// EntryEdit records one change to a week's text during the session.
type EntryEdit struct {
	ID        string
	Week      WeekIndex
	Text      string
	CreatedAt time.Time
}

// StageEvent records a stage transition observed during the session.
type StageEvent struct {
	ID        string
	From      Stage
	To        Stage
	Value     float64
	CuePlayed bool
	// EditID is the entry edit that caused the transition, if any.
	EditID    string
	CreatedAt time.Time
}
