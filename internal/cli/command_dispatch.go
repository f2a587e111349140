package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/placar/internal/chart"
	"github.com/alexanderramin/placar/internal/cli/formatter"
	"github.com/alexanderramin/placar/internal/domain"
	"github.com/alexanderramin/placar/internal/imageref"
	"github.com/alexanderramin/placar/internal/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// executeCommand dispatches a text command and returns a tea.Cmd.
// Commands may return cmdOutputMsg for display, navigation messages
// for view transitions, or quitMsg for exit.
func (c *commandBar) executeCommand(input string) tea.Cmd {
	parts, err := splitArgs(input)
	if err != nil {
		return outputCmd(commandError(err))
	}
	if len(parts) == 0 {
		return nil
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "weeks":
		return c.cmdWeeks(args)
	case "set":
		return c.cmdSet(args)
	case "clear":
		return c.cmdClear(args)
	case "entries", "edit":
		return pushView(newEntriesView(c.state))
	case "sound":
		return c.cmdSound(args)
	case "motivate":
		return startMotivation(c.state)
	case "photo":
		return c.cmdPhoto(args)
	case "export":
		return c.cmdExport(args)
	case "history":
		return pushView(newHistoryView(c.state))
	case "help":
		return outputCmd(formatter.FormatHelp())
	case "quit", "exit":
		return func() tea.Msg { return quitMsg{} }
	default:
		return outputCmd(commandError(fmt.Errorf("unknown command %q, type help for the list", cmd)))
	}
}

func (c *commandBar) cmdWeeks(args []string) tea.Cmd {
	if len(args) == 0 {
		return startWeeksWizard(c.state)
	}
	n := progress.ParseWeeks(args[0])
	u := c.state.App.Scoreboard.SetWeeks(context.Background(), n)
	return tea.Batch(boardCmd(u), outputCmd(fmt.Sprintf("Board now spans %d weeks.", u.Board.Weeks)))
}

func (c *commandBar) cmdSet(args []string) tea.Cmd {
	if len(args) < 2 {
		return outputCmd(usage("set <week> <value>"))
	}
	week, err := parseWeek(args[0], c.state.Board.Weeks)
	if err != nil {
		return outputCmd(commandError(err))
	}
	u, err := c.state.App.Scoreboard.SetEntry(context.Background(), week, strings.Join(args[1:], " "))
	if err != nil {
		return outputCmd(commandError(err))
	}
	return boardCmd(u)
}

func (c *commandBar) cmdClear(args []string) tea.Cmd {
	if len(args) != 1 {
		return outputCmd(usage("clear <week>"))
	}
	week, err := parseWeek(args[0], c.state.Board.Weeks)
	if err != nil {
		return outputCmd(commandError(err))
	}
	u, err := c.state.App.Scoreboard.ClearEntry(context.Background(), week)
	if err != nil {
		return outputCmd(commandError(err))
	}
	return boardCmd(u)
}

func (c *commandBar) cmdSound(args []string) tea.Cmd {
	if len(args) == 0 {
		return toggleSound(c.state)
	}
	switch strings.ToLower(args[0]) {
	case "on":
		return setSound(c.state, true)
	case "off":
		return setSound(c.state, false)
	default:
		return outputCmd(usage("sound on|off"))
	}
}

func (c *commandBar) cmdPhoto(args []string) tea.Cmd {
	if len(args) == 0 {
		return outputCmd(usage("photo client|ours [path]  or  photo clear client|ours"))
	}
	if strings.EqualFold(args[0], "clear") {
		if len(args) != 2 {
			return outputCmd(usage("photo clear client|ours"))
		}
		slot, err := imageref.ParseSlot(args[1])
		if err != nil {
			return outputCmd(commandError(err))
		}
		return clearPhoto(c.state, slot)
	}
	slot, err := imageref.ParseSlot(args[0])
	if err != nil {
		return outputCmd(commandError(err))
	}
	if len(args) == 1 {
		return pushView(newPhotoView(c.state, slot))
	}
	return loadPhotoCmd(c.state, slot, strings.Join(args[1:], " "))
}

func (c *commandBar) cmdExport(args []string) tea.Cmd {
	path := "placar.png"
	if len(args) > 0 {
		path = args[0]
	}
	if err := exportPNG(c.state.App, c.state.Board, path, chart.PNGOptions{}); err != nil {
		return outputCmd(commandError(err))
	}
	return outputCmd(formatter.StyleGreen.Render("Saved ") + path)
}

// ── argument parsing helpers ─────────────────────────────────────────────────

// parseWeek reads a week number and checks it against the board.
func parseWeek(s string, weeks int) (domain.WeekIndex, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(s, "#"))
	if err != nil {
		return 0, fmt.Errorf("week %q is not a number", s)
	}
	if n < 1 || n > weeks {
		return 0, fmt.Errorf("week %d is outside 1..%d", n, weeks)
	}
	return domain.WeekIndex(n), nil
}

var errUnterminatedQuote = errors.New("unterminated quoted string")

// splitArgs splits a command line on whitespace. Single or double quotes
// group words, so paths with spaces can be typed.
func splitArgs(input string) ([]string, error) {
	var (
		parts   []string
		cur     strings.Builder
		quote   rune
		started bool
	)
	for _, r := range input {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			started = true
		case r == ' ' || r == '\t':
			if started {
				parts = append(parts, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if quote != 0 {
		return nil, errUnterminatedQuote
	}
	if started {
		parts = append(parts, cur.String())
	}
	return parts, nil
}

func commandError(err error) string {
	return formatter.StyleRed.Render("Error: ") + err.Error()
}

func usage(u string) string {
	return formatter.Dim("Usage: ") + u
}
