package cli

import (
	"context"

	"github.com/alexanderramin/placar/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// historyView lists entry edits and stage transitions in a scrollable
// viewport. It reloads whenever the board changes.
type historyView struct {
	state *SharedState
	vp    viewport.Model
}

func newHistoryView(state *SharedState) *historyView {
	v := &historyView{state: state, vp: viewport.New(max(state.Width, 40), max(state.ContentHeight(), 5))}
	v.reload()
	return v
}

func (v *historyView) ID() ViewID    { return ViewHistory }
func (v *historyView) Title() string { return "History" }

func (v *historyView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

func (v *historyView) reload() {
	ctx := context.Background()
	history := v.state.App.History
	if history == nil {
		v.vp.SetContent(formatter.Dim("History is not recorded."))
		return
	}
	edits, err := history.Edits(ctx)
	if err != nil {
		v.vp.SetContent(commandError(err))
		return
	}
	events, err := history.Transitions(ctx)
	if err != nil {
		v.vp.SetContent(commandError(err))
		return
	}
	v.vp.SetContent(formatter.FormatHistory(edits, events))
}

func (v *historyView) Init() tea.Cmd { return nil }

func (v *historyView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = max(msg.Width, 40)
		v.vp.Height = max(v.state.ContentHeight(), 5)
		return v, nil
	case boardUpdatedMsg:
		v.reload()
		return v, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, popView()
		}
	}
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *historyView) View() string {
	return v.vp.View()
}
