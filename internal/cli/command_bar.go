package cli

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/placar/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const maxHistoryLines = 200

// commandBar is the persistent text input at the bottom of the TUI.
// It handles command entry, suggestions and in-session history.
type commandBar struct {
	input   textinput.Model
	state   *SharedState
	focused bool

	history lineHistory
}

func newCommandBar(state *SharedState) commandBar {
	ti := textinput.New()
	ti.Prompt = ""
	ti.ShowSuggestions = true
	ti.CharLimit = 300
	ti.KeyMap.NextSuggestion = key.NewBinding(key.WithKeys("ctrl+n"))
	ti.KeyMap.PrevSuggestion = key.NewBinding(key.WithKeys("ctrl+p"))

	return commandBar{input: ti, state: state}
}

// Focus gives focus to the command bar.
func (c *commandBar) Focus() {
	c.focused = true
	c.input.Focus()
}

// Blur removes focus from the command bar.
func (c *commandBar) Blur() {
	c.focused = false
	c.input.Blur()
}

// Focused returns whether the command bar has focus.
func (c *commandBar) Focused() bool {
	return c.focused
}

// SetWidth updates the input width for terminal resizing.
func (c *commandBar) SetWidth(w int) {
	c.input.Width = max(w-len(promptPlain)-1, 1)
}

// Update handles key messages when the command bar is focused. Running a
// command leaves the bar so the next key reaches the board.
func (c *commandBar) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		input := strings.TrimSpace(c.input.Value())
		c.input.Reset()
		c.input.SetSuggestions(nil)
		c.Blur()
		if input == "" {
			return nil
		}
		c.history.add(input)
		return c.executeCommand(input)

	case tea.KeyUp:
		if line, ok := c.history.prev(); ok {
			c.recall(line)
		}
		return nil

	case tea.KeyDown:
		c.recall(c.history.next())
		return nil

	case tea.KeyEsc:
		c.input.Reset()
		c.Blur()
		return nil

	default:
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		c.updateSuggestions()
		return cmd
	}
}

// UpdateNonKey handles non-key messages (e.g., cursor blink).
func (c *commandBar) UpdateNonKey(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return cmd
}

const promptPlain = "placar > "

// View renders the command bar.
func (c *commandBar) View() string {
	prompt := formatter.StylePurple.Render("placar") + " " + formatter.Dim("❯") + " "
	if !c.focused {
		return prompt + formatter.Dim("press : to type a command, ? for help")
	}
	return prompt + c.input.View()
}

// ── history ──────────────────────────────────────────────────────────────────

// lineHistory keeps the commands typed this session, oldest first.
// pos == len(lines) means the bar is past the newest line.
type lineHistory struct {
	lines []string
	pos   int
}

// add appends line unless it repeats the newest one, and rewinds to the end.
func (h *lineHistory) add(line string) {
	if n := len(h.lines); n == 0 || h.lines[n-1] != line {
		h.lines = append(h.lines, line)
		if over := len(h.lines) - maxHistoryLines; over > 0 {
			h.lines = h.lines[over:]
		}
	}
	h.pos = len(h.lines)
}

// prev steps back and returns the line to show.
func (h *lineHistory) prev() (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	h.pos--
	return h.lines[h.pos], true
}

// next steps forward. Past the newest line it yields an empty bar.
func (h *lineHistory) next() string {
	if h.pos < len(h.lines)-1 {
		h.pos++
		return h.lines[h.pos]
	}
	h.pos = len(h.lines)
	return ""
}

func (c *commandBar) recall(line string) {
	c.input.SetValue(line)
	c.input.CursorEnd()
}

// ── suggestions ──────────────────────────────────────────────────────────────

func allCommandNames() []string {
	return []string{
		"weeks", "set", "clear", "entries",
		"sound", "motivate", "photo",
		"export", "history", "help", "quit",
	}
}

func (c *commandBar) updateSuggestions() {
	text := c.input.Value()
	if text == "" {
		c.input.SetSuggestions(nil)
		return
	}

	parts := strings.Fields(text)
	trailingSpace := strings.HasSuffix(text, " ")

	if len(parts) <= 1 && !trailingSpace {
		c.input.SetSuggestions(filterSuggestions(allCommandNames(), parts[0]))
		return
	}

	if len(parts) > 2 || (len(parts) == 2 && trailingSpace) {
		c.input.SetSuggestions(nil)
		return
	}

	prefix := ""
	if len(parts) == 2 {
		prefix = parts[1]
	}
	var pool []string
	switch strings.ToLower(parts[0]) {
	case "sound":
		pool = []string{"on", "off"}
	case "photo":
		pool = []string{"client", "ours", "clear"}
	case "set", "clear":
		pool = c.weekSuggestions()
	}
	// Completions replace the whole line, so suggest full commands.
	full := make([]string, 0, len(pool))
	for _, s := range filterSuggestions(pool, prefix) {
		full = append(full, parts[0]+" "+s)
	}
	c.input.SetSuggestions(full)
}

func (c *commandBar) weekSuggestions() []string {
	n := c.state.Board.Weeks
	out := make([]string, 0, n)
	for w := n; w >= 1; w-- {
		out = append(out, strconv.Itoa(w))
	}
	return out
}

// filterSuggestions returns items from pool that start with prefix (case-insensitive).
func filterSuggestions(pool []string, prefix string) []string {
	if prefix == "" {
		return pool
	}
	lp := strings.ToLower(prefix)
	var result []string
	for _, s := range pool {
		if strings.HasPrefix(strings.ToLower(s), lp) {
			result = append(result, s)
		}
	}
	return result
}
