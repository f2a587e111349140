package cli

import (
	"github.com/alexanderramin/placar/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// formView puts a huh.Form on the navigation stack. It leaves the stack
// through wizardCompleteMsg, carrying onSubmit's command when the form is
// completed and a "Cancelled." note when it is dismissed.
type formView struct {
	state    *SharedState
	form     *huh.Form
	title    string
	onSubmit func() tea.Cmd
	finished bool
}

func newFormView(state *SharedState, title string, form *huh.Form, onSubmit func() tea.Cmd) *formView {
	return &formView{state: state, form: form, title: title, onSubmit: onSubmit}
}

func (v *formView) ID() ViewID    { return ViewForm }
func (v *formView) Title() string { return v.title }

func (v *formView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

func (v *formView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *formView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if v.finished {
		return v, nil
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, v.finish(outputCmd(formatter.Dim("Cancelled.")))
		}
	case boardUpdatedMsg, photoLoadedMsg:
		return v, nil
	}

	updated, cmd := v.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		v.form = f
	}

	switch v.form.State {
	case huh.StateCompleted:
		var next tea.Cmd
		if v.onSubmit != nil {
			next = v.onSubmit()
		}
		return v, v.finish(next)
	case huh.StateAborted:
		return v, v.finish(outputCmd(formatter.Dim("Cancelled.")))
	}
	return v, cmd
}

// finish pops the form once, then runs next.
func (v *formView) finish(next tea.Cmd) tea.Cmd {
	v.finished = true
	return func() tea.Msg { return wizardCompleteMsg{nextCmd: next} }
}

func (v *formView) View() string {
	return v.form.View()
}
