package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/placar/internal/cli/formatter"
	"github.com/alexanderramin/placar/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack and a persistent command bar.
type appModel struct {
	state     *SharedState
	viewStack []View
	cmdBar    commandBar
	quitting  bool

	// Transient output from the command bar, displayed in content area.
	lastOutput string

	// Scrollable viewport for command output that exceeds terminal height.
	outputVP     viewport.Model
	outputActive bool

	// Shown in the header while the motivation piece plays.
	spinner spinner.Model
}

func newAppModel(app *App) appModel {
	state := newSharedState(app)

	vp := viewport.New(0, 0)
	vp.KeyMap = outputViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	return appModel{
		state:     state,
		cmdBar:    newCommandBar(state),
		outputVP:  vp,
		spinner:   sp,
		viewStack: []View{newDashboardView(state)},
	}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// broadcast sends msg to every view on the stack so views below the top
// redraw from the new state too.
func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.cmdBar.SetWidth(msg.Width)
		if m.outputActive {
			m.outputVP.Width = msg.Width
			m.outputVP.Height = m.state.ContentHeight()
		}
		return m, m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.outputActive {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return m, cmd
		}

	case pushViewMsg:
		m.cmdBar.Blur()
		m.clearOutput()
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case cmdOutputMsg:
		m.showOutput(msg.output)
		return m, nil

	case wizardCompleteMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		m.clearOutput()
		return m, msg.nextCmd

	case boardUpdatedMsg:
		m.state.ApplyUpdate(msg.update)
		return m, m.broadcast(msg)

	case photoLoadedMsg:
		if msg.err != nil {
			m.state.Notice = formatter.StyleRed.Render(fmt.Sprintf("Could not load %s: %v", msg.path, msg.err))
		} else {
			m.state.Notice = formatter.StyleGreen.Render(fmt.Sprintf("%s photo: %s", slotLabel(msg.slot), msg.path))
		}
		return m, m.broadcast(msg)

	case motivationStartedMsg:
		if !msg.started {
			m.state.Notice = formatter.Dim("Motivation is already playing.")
			return m, nil
		}
		d := m.state.App.Motivator.Duration()
		m.state.Motivating = true
		m.state.MotivationEnds = time.Now().Add(d)
		return m, tea.Batch(
			m.spinner.Tick,
			tea.Tick(d, func(time.Time) tea.Msg { return motivationDoneMsg{} }),
		)

	case motivationDoneMsg:
		if m.state.App.Motivator != nil {
			m.state.App.Motivator.Stop()
		}
		m.state.Motivating = false
		m.state.Notice = formatter.Dim("Motivation finished.")
		return m, nil

	case spinner.TickMsg:
		if !m.state.Motivating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case configReloadedMsg:
		return m, m.applyConfig(msg)

	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	// Forward other messages to command bar (e.g., cursor blink)
	if m.cmdBar.Focused() {
		return m, m.cmdBar.UpdateNonKey(msg)
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.cmdBar.Focused() {
		if msg.Type == tea.KeyEnter {
			m.clearOutput()
		}
		return m, m.cmdBar.Update(msg)
	}

	// Scroll keys move the output; anything else dismisses it and is then
	// handled as usual.
	if m.outputActive {
		if isOutputScrollKey(msg) {
			var cmd tea.Cmd
			m.outputVP, cmd = m.outputVP.Update(msg)
			return m, cmd
		}
		m.clearOutput()
		if msg.Type == tea.KeyEsc {
			return m, nil
		}
	}

	// Views with their own inputs receive every key, including q and :.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == ":":
		m.cmdBar.Focus()
		return m, nil

	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.String() == "?":
		return m, outputCmd(formatter.FormatHelp())

	case msg.String() == "m":
		return m, startMotivation(m.state)

	case msg.String() == "s":
		return m, toggleSound(m.state)

	case msg.Type == tea.KeyEsc:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	return m, nil
}

// applyConfig installs a configuration reloaded from disk. The week
// entries typed so far are kept.
func (m *appModel) applyConfig(msg configReloadedMsg) tea.Cmd {
	app := m.state.App
	app.Config = msg.cfg
	u := app.Scoreboard.Reconfigure(context.Background(), SettingsFrom(msg.cfg))
	app.Logger.Info("board reconfigured", zap.Int("weeks", u.Board.Weeks))
	m.state.ApplyUpdate(u)
	if !u.Changed {
		m.state.Notice = formatter.Dim("Configuration reloaded.")
	}
	return m.broadcast(boardUpdatedMsg{update: u})
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if m.outputActive {
		if m.state.Height > 0 {
			sections = append(sections, m.outputVP.View())
		} else {
			sections = append(sections, m.lastOutput)
		}
	} else if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	sections = append(sections, m.renderStatusBar())
	sections = append(sections, m.cmdBar.View())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("placar")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	header := title
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	if m.state.Motivating {
		left := formatter.FormatCountdown(time.Until(m.state.MotivationEnds))
		header += "  " + m.spinner.View() + " " + formatter.StylePurple.Render("motivação "+left)
	}

	notice := m.state.Notice
	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + notice + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string

	if m.outputActive && m.outputVP.TotalLineCount() > m.outputVP.Height {
		hints = append(hints, scrollIndicator(m.outputVP))
		hints = append(hints, formatter.Dim("↑↓ pgup/pgdn: scroll"))
		hints = append(hints, formatter.Dim("esc: dismiss"))
	} else if v := m.activeView(); v != nil && !m.outputActive {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}

	if !m.cmdBar.Focused() && !m.outputActive {
		if len(m.viewStack) > 1 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		hints = append(hints, formatter.Dim(": command"))
	}

	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}

func (m *appModel) showOutput(s string) {
	m.lastOutput = s
	m.outputActive = true
	m.outputVP.SetContent(s)
	m.outputVP.Width = m.state.Width
	m.outputVP.Height = m.state.ContentHeight()
	m.outputVP.GotoTop()
}

// clearOutput dismisses the transient command output.
func (m *appModel) clearOutput() {
	m.lastOutput = ""
	m.outputActive = false
}

// outputViewportKeyMap only scrolls on arrow and page keys so letters stay
// free to dismiss the output or act as shortcuts.
func outputViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}

func isOutputScrollKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown,
		tea.KeyHome, tea.KeyEnd, tea.KeyCtrlU, tea.KeyCtrlD:
		return true
	}
	return false
}

func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}

// viewCapturesInput returns true if the view has its own text input and
// should receive all key events.
func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewEntries, ViewForm, ViewPhotoPicker:
		return true
	}
	return false
}

// ── shared actions ───────────────────────────────────────────────────────────

// startMotivation asks the motivator for a run. The motivator refuses
// while a run is in progress.
func startMotivation(state *SharedState) tea.Cmd {
	mot := state.App.Motivator
	if mot == nil {
		return outputCmd(formatter.Dim("Audio is not available."))
	}
	if state.Motivating {
		return func() tea.Msg { return motivationStartedMsg{started: false} }
	}
	return func() tea.Msg {
		return motivationStartedMsg{started: mot.Start(context.Background())}
	}
}

func toggleSound(state *SharedState) tea.Cmd {
	return setSound(state, !state.Board.Sound)
}

func setSound(state *SharedState, enabled bool) tea.Cmd {
	board := state.App.Scoreboard.SetSound(context.Background(), enabled)
	if enabled {
		state.Notice = formatter.StyleGreen.Render("Sound on: stage changes play a cue.")
	} else {
		state.Notice = formatter.Dim("Sound off.")
	}
	return boardCmd(service.Update{Board: board})
}

// stageNotice describes a stage transition for the header.
func stageNotice(u service.Update) string {
	text := fmt.Sprintf("Stage %d → %d", int(u.From), int(u.Board.Feedback.Stage))
	if u.CuePlayed {
		text += " ♪"
	}
	return formatter.StageStyle(u.Board.Feedback.Stage).Render(text)
}
