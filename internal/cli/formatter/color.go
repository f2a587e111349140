package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/placar/internal/chart"
	"github.com/alexanderramin/placar/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
	ColorInk    = lipgloss.Color("#282828")

	// Chart series, as on the first printed board.
	ColorProgress = lipgloss.Color("#c0392b")
	ColorTarget   = lipgloss.Color("#7f8c8d")
)

// Predefined lipgloss styles.
var (
	StyleGreen    = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow   = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed      = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue     = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple   = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim      = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg       = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader   = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold     = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleProgress = lipgloss.NewStyle().Foreground(ColorProgress)
	StyleTarget   = lipgloss.NewStyle().Foreground(ColorTarget)
)

// StageStyle returns the style for a stage: red while the board has barely
// moved, yellow while warming up, blue when close and green once the goal
// is met.
func StageStyle(stage domain.Stage) lipgloss.Style {
	switch stage.Clamp() {
	case domain.StageStart, domain.StageWaiting:
		return StyleRed
	case domain.StageSlowMotion, domain.StageWarmingUp:
		return StyleYellow
	case domain.StagePickingUp, domain.StageAlmostThere:
		return StyleBlue
	default:
		return StyleGreen
	}
}

// StageBadge returns a colored stage indicator such as "● 5/7".
func StageBadge(stage domain.Stage) string {
	s := stage.Clamp()
	return StageStyle(s).Render(fmt.Sprintf("● %d/%d", int(s), int(domain.StageBeyondGoal)))
}

// ChartPaint colors terminal chart cells with the series palette.
func ChartPaint(elem chart.Element, text string) string {
	switch elem {
	case chart.ElemProgress:
		return StyleProgress.Render(text)
	case chart.ElemProgressMarker:
		return StyleProgress.Bold(true).Render(text)
	case chart.ElemTarget:
		return StyleTarget.Render(text)
	case chart.ElemTargetMarker:
		return StyleTarget.Bold(true).Render(text)
	case chart.ElemLabel:
		return StyleFg.Render(text)
	default:
		return StyleDim.Render(text)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
