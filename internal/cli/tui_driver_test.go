package cli

import (
	"testing"

	"github.com/alexanderramin/placar/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to appModel internals: the
// view stack, the shared state and command bar focus.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel for app at 120x40 and drains Init.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// Command focuses the command bar with ':', types the command and presses
// Enter. The bar blurs itself after running a command.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.Type(input)
	d.PressEnter()
}

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting reports a quit from q, ctrl+c or the quit command.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// CmdBarFocused returns whether the command bar currently has focus.
func (d *TestDriver) CmdBarFocused() bool {
	m := d.appModel()
	return m.cmdBar.Focused()
}

// LastOutput returns the command output shown in the content area.
func (d *TestDriver) LastOutput() string {
	return d.appModel().lastOutput
}
