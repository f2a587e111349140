package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// GoalFraction is how much of the planned reduction has been achieved,
// clamped to [0, 1].
func GoalFraction(initial, final, current float64) float64 {
	span := initial - final
	if span <= 0 {
		return 0
	}
	f := (initial - current) / span
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// RenderProgress renders a bar like [████░░░░]  45% in the given style.
func RenderProgress(pct float64, width int, style lipgloss.Style) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}
