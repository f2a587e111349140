package cli

import (
	"github.com/alexanderramin/placar/internal/config"
	"github.com/alexanderramin/placar/internal/imageref"
	"github.com/alexanderramin/placar/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages. The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg returns to the previous view.
type popViewMsg struct{}

// cmdOutputMsg carries command output shown in place of the active view
// until the next key press.
type cmdOutputMsg struct {
	output string
}

// wizardCompleteMsg pops a finished form and runs nextCmd.
type wizardCompleteMsg struct {
	nextCmd tea.Cmd
}

// quitMsg signals the app to quit.
type quitMsg struct{}

// Board messages.

// boardUpdatedMsg is sent after any change to the board so every view on
// the stack can redraw from the new state.
type boardUpdatedMsg struct {
	update service.Update
}

// photoLoadedMsg reports the end of an asynchronous image load.
type photoLoadedMsg struct {
	slot imageref.SlotName
	path string
	err  error
}

// motivationStartedMsg reports whether the motivation piece started.
type motivationStartedMsg struct {
	started bool
}

// motivationDoneMsg fires when the fixed playback window ends.
type motivationDoneMsg struct{}

// configReloadedMsg carries a configuration reloaded from disk.
type configReloadedMsg struct {
	cfg config.Config
}

func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

func outputCmd(s string) tea.Cmd {
	if s == "" {
		return nil
	}
	return func() tea.Msg { return cmdOutputMsg{output: s} }
}

func boardCmd(u service.Update) tea.Cmd {
	return func() tea.Msg { return boardUpdatedMsg{update: u} }
}
