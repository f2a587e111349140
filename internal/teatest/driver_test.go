package teatest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type recordMsg string

// recorder keeps every recordMsg it sees and turns "go" into a sequence.
type recorder struct {
	seen []string
}

func (r *recorder) Init() tea.Cmd { return nil }

func (r *recorder) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case recordMsg:
		r.seen = append(r.seen, string(msg))
	case tea.KeyMsg:
		if msg.String() == "g" {
			return r, tea.Sequence(emit("one"), tea.Batch(emit("two")), emit("three"))
		}
	}
	return r, nil
}

func (r *recorder) View() string { return "" }

func emit(s string) tea.Cmd {
	return func() tea.Msg { return recordMsg(s) }
}

func TestDriver_DrainsSequencesInOrder(t *testing.T) {
	r := &recorder{}
	d := New(t, r)

	d.PressKey('g')

	assert.Equal(t, []string{"one", "two", "three"}, r.seen)
}

func TestSequenceCmds_IgnoresOtherMessages(t *testing.T) {
	_, ok := sequenceCmds(recordMsg("x"))
	assert.False(t, ok)
	_, ok = sequenceCmds(tea.BatchMsg{emit("x")})
	assert.True(t, ok, "a batch has the same shape; the driver checks for it first")
}
