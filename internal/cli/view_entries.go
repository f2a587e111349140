package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/placar/internal/cli/formatter"
	"github.com/alexanderramin/placar/internal/domain"
	"github.com/alexanderramin/placar/internal/progress"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// entriesView is a grid with one input per week, oldest week on top.
// Every keystroke updates the board.
type entriesView struct {
	state  *SharedState
	inputs []textinput.Model // index 0 is week N
	cursor int
	errMsg string
}

func newEntriesView(state *SharedState) *entriesView {
	v := &entriesView{state: state}
	v.rebuild()
	return v
}

func (v *entriesView) ID() ViewID    { return ViewEntries }
func (v *entriesView) Title() string { return "Entries" }

func (v *entriesView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓/tab", "week")),
		key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "clear")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done")),
	}
}

// rebuild creates one input per week from the board, keeping the cursor
// on the same week when it still exists.
func (v *entriesView) rebuild() {
	board := v.state.Board
	focused := v.week()
	v.inputs = make([]textinput.Model, board.Weeks)
	for i := range v.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = "—"
		ti.CharLimit = 16
		ti.Width = 10
		ti.SetValue(board.Input[v.weekAt(i)])
		v.inputs[i] = ti
	}
	v.cursor = 0
	if focused >= 1 && int(focused) <= board.Weeks {
		v.cursor = board.Weeks - int(focused)
	}
	v.focus(v.cursor)
}

func (v *entriesView) weekAt(i int) domain.WeekIndex {
	return domain.WeekIndex(len(v.inputs) - i)
}

// week is the week under the cursor, or 0 before the first rebuild.
func (v *entriesView) week() domain.WeekIndex {
	if len(v.inputs) == 0 {
		return 0
	}
	return v.weekAt(v.cursor)
}

func (v *entriesView) focus(i int) {
	if len(v.inputs) == 0 {
		return
	}
	v.inputs[v.cursor].Blur()
	v.cursor = (i + len(v.inputs)) % len(v.inputs)
	v.inputs[v.cursor].Focus()
	v.inputs[v.cursor].CursorEnd()
}

func (v *entriesView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *entriesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case boardUpdatedMsg:
		if msg.update.Board.Weeks != len(v.inputs) {
			v.rebuild()
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc:
			return v, popView()
		case tea.KeyUp, tea.KeyShiftTab:
			v.focus(v.cursor - 1)
			return v, nil
		case tea.KeyDown, tea.KeyTab, tea.KeyEnter:
			v.focus(v.cursor + 1)
			return v, nil
		case tea.KeyCtrlX:
			v.inputs[v.cursor].SetValue("")
			return v, v.commit()
		}

		before := v.inputs[v.cursor].Value()
		var cmd tea.Cmd
		v.inputs[v.cursor], cmd = v.inputs[v.cursor].Update(msg)
		if v.inputs[v.cursor].Value() == before {
			return v, cmd
		}
		return v, tea.Batch(cmd, v.commit())
	}

	if len(v.inputs) == 0 {
		return v, nil
	}
	var cmd tea.Cmd
	v.inputs[v.cursor], cmd = v.inputs[v.cursor].Update(msg)
	return v, cmd
}

// commit sends the focused input to the board.
func (v *entriesView) commit() tea.Cmd {
	u, err := v.state.App.Scoreboard.SetEntry(context.Background(), v.week(), v.inputs[v.cursor].Value())
	if err != nil {
		v.errMsg = err.Error()
		return nil
	}
	v.errMsg = ""
	return boardCmd(u)
}

func (v *entriesView) View() string {
	board := v.state.Board
	var b strings.Builder

	b.WriteString(formatter.FormatFeedback(board.Feedback, board.Sound))
	b.WriteString("\n\n")

	first, last := v.visibleRange()
	header := fmt.Sprintf("  %-8s %-12s %10s %10s", "Semana", "Entrada", "Progresso", "Meta")
	b.WriteString(formatter.StyleHeader.Render(header))
	b.WriteString("\n")
	cur := board.Current().Week
	for i := first; i < last; i++ {
		w := v.weekAt(i)
		marker := "  "
		if i == v.cursor {
			marker = formatter.StyleHeader.Render("▸ ")
		}
		label := fmt.Sprintf("%-8d", int(w))
		if w == cur {
			label = formatter.StyleProgress.Render(label)
		}
		p, _ := board.Snapshot.ProgressAt(w)
		t, _ := board.Snapshot.TargetAt(w)
		input := v.inputs[i].View()
		if _, ok := progress.ParseEntry(v.inputs[i].Value()); !ok && strings.TrimSpace(v.inputs[i].Value()) != "" {
			input += formatter.Dim(" ?")
		}
		fmt.Fprintf(&b, "%s%s %s %10s %10s\n",
			marker, label, padRight(input, 12),
			formatter.FormatValue(p, formatter.Unit), formatter.FormatValue(t, formatter.Unit))
	}

	if first > 0 || last < len(v.inputs) {
		b.WriteString(formatter.Dim(fmt.Sprintf("  weeks %d–%d of %d\n", int(v.weekAt(first)), int(v.weekAt(last-1)), len(v.inputs))))
	}
	if v.errMsg != "" {
		b.WriteString(formatter.StyleRed.Render(v.errMsg) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(formatter.FormatStats(board))
	return b.String()
}

// visibleRange keeps the cursor on screen when the grid is taller than
// the content area.
func (v *entriesView) visibleRange() (int, int) {
	n := len(v.inputs)
	rows := n
	if v.state.Height > 0 {
		rows = max(v.state.ContentHeight()-10, 3)
	}
	if rows >= n {
		return 0, n
	}
	first := min(max(v.cursor-rows/2, 0), n-rows)
	return first, first + rows
}

func padRight(s string, w int) string {
	if pad := w - lipgloss.Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
