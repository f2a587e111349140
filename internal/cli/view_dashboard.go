package cli

import (
	"strings"

	"github.com/alexanderramin/placar/internal/chart"
	"github.com/alexanderramin/placar/internal/cli/formatter"
	"github.com/alexanderramin/placar/internal/imageref"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const minChartHeight = 8

// dashboardView is the home screen: goal description, feedback line,
// chart and readouts.
type dashboardView struct {
	state *SharedState

	// Rendered markdown is cached per description and width.
	descSrc   string
	descWidth int
	desc      string
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "entries")),
		key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "weeks")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sound")),
		key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "motivate")),
		key.NewBinding(key.WithKeys("c", "o"), key.WithHelp("c/o", "photos")),
		key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "history")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd { return nil }

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	switch keyMsg.String() {
	case "e", "enter":
		return v, pushView(newEntriesView(v.state))
	case "w":
		return v, startWeeksWizard(v.state)
	case "c":
		return v, pushView(newPhotoView(v.state, imageref.SlotClient))
	case "o":
		return v, pushView(newPhotoView(v.state, imageref.SlotOurs))
	case "h":
		return v, pushView(newHistoryView(v.state))
	}
	return v, nil
}

func (v *dashboardView) View() string {
	app := v.state.App
	board := v.state.Board
	width := max(v.state.Width, 40)

	top := []string{formatter.StyleHeader.Render(app.Config.Title)}
	if d := v.description(width - 4); d != "" {
		top = append(top, d)
	}
	top = append(top, "", formatter.FormatFeedback(board.Feedback, board.Sound), "")

	bottom := []string{"", formatter.FormatStats(board)}
	if photos := v.photoLine(); photos != "" {
		bottom = append(bottom, photos)
	}

	used := lineCount(top) + lineCount(bottom)
	height := minChartHeight
	if v.state.Height > 0 {
		height = max(v.state.ContentHeight()-used, minChartHeight)
	}
	plot := chart.New(board.Snapshot, chart.Options{
		Title:  app.Config.Title,
		YLabel: app.Config.YLabel,
		YMin:   app.Config.YMin,
		YMax:   app.Config.YMax,
	})
	graph := chart.RenderTerminal(plot, width-2, height, formatter.ChartPaint)

	return strings.Join(append(append(top, graph), bottom...), "\n")
}

func (v *dashboardView) description(width int) string {
	src := v.state.App.Config.Description
	if src != v.descSrc || width != v.descWidth {
		v.descSrc = src
		v.descWidth = width
		v.desc = formatter.RenderMarkdown(src, width)
	}
	return v.desc
}

func (v *dashboardView) photoLine() string {
	photos := v.state.App.Photos
	if photos == nil {
		return ""
	}
	var parts []string
	for _, slot := range []imageref.SlotName{imageref.SlotClient, imageref.SlotOurs} {
		name := formatter.Dim("padrão")
		if img := photos.Image(slot); img != nil {
			name = formatter.StyleFg.Render(formatter.Truncate(img.Name, 30))
		}
		parts = append(parts, formatter.Dim(slotLabel(slot)+":")+" "+name)
	}
	return strings.Join(parts, "   ")
}

func lineCount(sections []string) int {
	n := 0
	for _, s := range sections {
		n += strings.Count(s, "\n") + 1
	}
	return n
}
