package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/placar/internal/config"
	"github.com/alexanderramin/placar/internal/domain"
	"github.com/alexanderramin/placar/internal/imageref"
)

// tuiApp is a testApp whose motivation window outlasts the driver's
// command timeout, so tests decide when it ends.
func tuiApp(t *testing.T) (*App, *fakeMotivator) {
	t.Helper()
	app := testApp(t)
	mot := &fakeMotivator{duration: time.Minute}
	app.Motivator = mot
	return app, mot
}

func TestTUI_DashboardLoadsOnStartup(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Equal(t, 1, d.ViewStackLen())

	view := d.View()
	assert.Contains(t, view, app.Config.Title)
	assert.Contains(t, view, "Ponto de partida")
	assert.Contains(t, view, "Semanas restantes (atual): 8 de 8")
	assert.Contains(t, view, "som desligado")
}

func TestTUI_QuitWithQ(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('q')

	assert.True(t, d.IsQuitting())
}

func TestTUI_QuitWithCtrlC(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.PressCtrlC()

	assert.True(t, d.IsQuitting())
}

func TestTUI_QuitCommand(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.Command("quit")

	assert.True(t, d.IsQuitting())
}

func TestTUI_CommandBarFocusBlur(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	assert.False(t, d.CmdBarFocused())

	d.PressKey(':')
	assert.True(t, d.CmdBarFocused())

	d.PressEsc()
	assert.False(t, d.CmdBarFocused())
}

func TestTUI_CommandBarBlursAfterRunning(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.Command("set 8 1")

	assert.False(t, d.CmdBarFocused())
}

func TestTUI_SetCommandUpdatesBoard(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.Command("set 8 1")

	board := d.State().Board
	assert.Equal(t, "1", board.Input[8])
	assert.Equal(t, domain.StageSlowMotion, board.Feedback.Stage)
	assert.Contains(t, d.State().Notice, "Stage 0 → 2")
	assert.Contains(t, d.View(), "Ainda em câmera lenta...")
}

func TestTUI_SetCommandKeepsSpacesInValue(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.Command("set 7 1, 5")

	assert.Equal(t, "1, 5", d.State().Board.Input[7])
}

func TestTUI_SetCommandRejectsWeekOutsideBoard(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.Command("set 9 1")

	assert.Contains(t, d.LastOutput(), "outside 1..8")
	assert.Empty(t, d.State().Board.Input)
}

func TestTUI_ClearCommand(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.Command("set 8 2")
	d.Command("clear 8")

	assert.Empty(t, d.State().Board.Input[8])
	assert.Equal(t, 5.0, d.State().Board.Current().Value)
}

func TestTUI_WeeksCommand(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.Command("weeks 12")
	assert.Equal(t, 12, d.State().Board.Weeks)
	assert.Contains(t, d.LastOutput(), "12 weeks")

	d.PressKey('x')
	d.Command("weeks 400")
	assert.Equal(t, domain.MaxWeeks, d.State().Board.Weeks)

	d.PressKey('x')
	d.Command("weeks abc")
	assert.Equal(t, 1, d.State().Board.Weeks, "text that is not a number becomes one week")
}

func TestTUI_UnknownCommand(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.Command("fly")

	assert.Contains(t, d.LastOutput(), `unknown command "fly"`)
}

func TestTUI_HelpOutputDismissedByKey(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('?')
	assert.Contains(t, d.LastOutput(), "weeks [n]")

	d.PressEsc()
	assert.Empty(t, d.LastOutput())
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
}

func TestTUI_EntriesViewTypesLive(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('e')
	require.Equal(t, ViewEntries, d.ActiveViewID())

	// The cursor starts on the oldest week.
	d.Type("1")
	assert.Equal(t, "1", d.State().Board.Input[8])
	assert.Equal(t, domain.StageSlowMotion, d.State().Board.Feedback.Stage)

	d.PressDown()
	d.Type("0.5")
	assert.Equal(t, "0.5", d.State().Board.Input[7])
	assert.InDelta(t, 3.5, d.State().Board.Current().Value, 1e-9)

	d.SendKey(tea.KeyMsg{Type: tea.KeyCtrlX})
	assert.Empty(t, d.State().Board.Input[7])

	d.PressEsc()
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
}

func TestTUI_EntriesViewCapturesShortcutKeys(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('e')
	d.PressKey('q')

	assert.False(t, d.IsQuitting())
	assert.Equal(t, "q", d.State().Board.Input[8])
}

func TestTUI_EntriesViewFollowsWeekCount(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('e')
	m := d.appModel()
	view := m.activeView().(*entriesView)
	require.Len(t, view.inputs, 8)

	d.Send(boardCmd(app.Scoreboard.SetWeeks(t.Context(), 3))())

	m = d.appModel()
	view = m.activeView().(*entriesView)
	assert.Len(t, view.inputs, 3)
}

func TestTUI_SoundToggle(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('s')
	assert.True(t, d.State().Board.Sound)
	assert.Contains(t, d.View(), "som ligado")

	d.Command("sound off")
	assert.False(t, d.State().Board.Sound)
}

func TestTUI_MotivationRunsOnceAtATime(t *testing.T) {
	app, mot := tuiApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('m')
	assert.True(t, d.State().Motivating)
	assert.True(t, mot.Playing())
	assert.Contains(t, d.View(), "motivação")

	d.PressKey('m')
	starts, _ := mot.counts()
	assert.Equal(t, 1, starts)

	d.Send(motivationDoneMsg{})
	assert.False(t, d.State().Motivating)
	assert.False(t, mot.Playing())

	d.Command("motivate")
	starts, stops := mot.counts()
	assert.Equal(t, 2, starts)
	assert.Equal(t, 1, stops)
}

func TestTUI_HistoryView(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.Command("set 8 1")
	d.PressKey('h')

	require.Equal(t, ViewHistory, d.ActiveViewID())
	view := d.View()
	assert.Contains(t, view, "Edições")
	assert.Contains(t, view, "Mudanças de estágio")

	d.PressEsc()
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
}

func TestTUI_PhotoCommandLoadsAndClears(t *testing.T) {
	app, _ := tuiApp(t)
	path := writeTestPNG(t, t.TempDir(), "cliente.png")
	d := NewTestDriver(t, app)

	d.Command("photo client " + path)
	img := app.Photos.Image(imageref.SlotClient)
	require.NotNil(t, img)
	assert.Equal(t, "cliente.png", img.Name)
	assert.Contains(t, d.State().Notice, "client photo")
	assert.Contains(t, d.View(), "cliente.png")

	d.Command("photo clear client")
	assert.Nil(t, app.Photos.Image(imageref.SlotClient))
}

func TestTUI_PhotoCommandReportsBadFile(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.Command("photo ours /does/not/exist.png")

	assert.Nil(t, app.Photos.Image(imageref.SlotOurs))
	assert.Contains(t, d.State().Notice, "Could not load")
}

func TestTUI_PhotoPickerOpensAndCancels(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('c')
	require.Equal(t, ViewPhotoPicker, d.ActiveViewID())
	assert.Contains(t, d.View(), "Choose the client photo")

	d.PressEsc()
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
}

func TestTUI_ExportCommand(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)
	path := filepath.Join(t.TempDir(), "out.png")

	d.Command("export " + path)

	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Contains(t, d.LastOutput(), "Saved")
}

func TestTUI_WeeksWizardCancel(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.PressKey('w')
	require.Equal(t, ViewForm, d.ActiveViewID())

	d.PressEsc()
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Contains(t, d.LastOutput(), "Cancelled.")
	assert.Equal(t, 8, d.State().Board.Weeks)
}

func TestApplyWeeksForm(t *testing.T) {
	app, _ := tuiApp(t)
	state := newSharedState(app)

	applyWeeksForm(state, &weeksForm{weeks: "60", sound: true})

	board := app.Scoreboard.Board()
	assert.Equal(t, domain.MaxWeeks, board.Weeks)
	assert.True(t, board.Sound)
}

func TestTUI_ConfigReloadKeepsEntries(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)
	d.Command("set 8 1")

	cfg := config.Default()
	cfg.Title = "Novo título"
	cfg.Weeks = 10
	d.Send(configReloadedMsg{cfg: cfg})

	board := d.State().Board
	assert.Equal(t, 10, board.Weeks)
	assert.Equal(t, "1", board.Input[8])
	assert.Contains(t, d.View(), "Novo título")
}

func TestTUI_CommandHistory(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.Command("weeks 6")
	d.PressKey('x')

	d.PressKey(':')
	d.PressUp()
	d.PressEnter()

	assert.Equal(t, 6, d.State().Board.Weeks)
	m := d.appModel()
	assert.Equal(t, []string{"weeks 6"}, m.cmdBar.history.lines, "repeated lines are stored once")
}

func TestTUI_Resize(t *testing.T) {
	app, _ := tuiApp(t)
	d := NewTestDriver(t, app)

	d.Resize(60, 20)

	assert.Equal(t, 60, d.State().Width)
	assert.Equal(t, 20, d.State().Height)
	assert.Contains(t, d.View(), "Ponto de partida")
}
