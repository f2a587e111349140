package feedback

import "github.com/alexanderramin/placar/internal/domain"

// Tracker keeps the previously observed stage so a cue fires once per
// transition. The first observation only records a baseline.
type Tracker struct {
	prev    domain.Stage
	hasPrev bool
}

// Observe records stage and reports whether it differs from the previous
// observation. The stored stage is updated after the comparison.
func (t *Tracker) Observe(stage domain.Stage) bool {
	changed := t.hasPrev && t.prev != stage
	t.prev = stage
	t.hasPrev = true
	return changed
}

// Previous returns the last observed stage.
func (t *Tracker) Previous() (domain.Stage, bool) {
	return t.prev, t.hasPrev
}

// Reset forgets the baseline.
func (t *Tracker) Reset() {
	t.prev = 0
	t.hasPrev = false
}
