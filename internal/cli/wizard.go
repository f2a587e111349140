package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alexanderramin/placar/internal/cli/formatter"
	"github.com/alexanderramin/placar/internal/domain"
	"github.com/alexanderramin/placar/internal/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// placarHuhTheme styles huh forms with the formatter palette.
func placarHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorInk).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// weeksForm holds the answers of the board settings form.
type weeksForm struct {
	weeks string
	sound bool
}

// newWeeksForm asks for the week count and whether cues should play.
// Any text is accepted: the count is clamped to 1-52 and anything that
// is not a number becomes 1.
func newWeeksForm(answers *weeksForm) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Quantas semanas até o prazo?").
				Description(fmt.Sprintf("%d a %d", domain.MinWeeks, domain.MaxWeeks)).
				CharLimit(4).
				Value(&answers.weeks),
			huh.NewConfirm().
				Title("Tocar um som quando o estágio mudar?").
				Affirmative("Sim").
				Negative("Não").
				Value(&answers.sound),
		),
	).WithTheme(placarHuhTheme()).WithShowHelp(false)
}

// startWeeksWizard pushes the board settings form, prefilled from the
// current board.
func startWeeksWizard(state *SharedState) tea.Cmd {
	answers := &weeksForm{
		weeks: strconv.Itoa(state.Board.Weeks),
		sound: state.Board.Sound,
	}
	done := func() tea.Cmd {
		return applyWeeksForm(state, answers)
	}
	return pushView(newFormView(state, "Weeks", newWeeksForm(answers), done))
}

func applyWeeksForm(state *SharedState, answers *weeksForm) tea.Cmd {
	ctx := context.Background()
	sb := state.App.Scoreboard
	var cmds []tea.Cmd
	if answers.sound != state.Board.Sound {
		cmds = append(cmds, setSound(state, answers.sound))
	}
	cmds = append(cmds, boardCmd(sb.SetWeeks(ctx, progress.ParseWeeks(answers.weeks))))
	return tea.Sequence(cmds...)
}
