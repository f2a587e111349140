package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}

	return boxStyle.Render(content)
}

// FormatValue prints a tracked value with one decimal place and a unit
// suffix, e.g. "3.5h". Negative zero prints as zero.
func FormatValue(v float64, unit string) string {
	if math.Abs(v) < 0.05 {
		v = 0
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + unit
}

// FormatDelta prints a signed change, e.g. "+0.5" or "-1.0".
func FormatDelta(v float64) string {
	if math.Abs(v) < 0.05 {
		return "0.0"
	}
	return fmt.Sprintf("%+.1f", v)
}

// FormatClock prints a short wall-clock time for the session journal.
func FormatClock(t time.Time) string {
	return t.Local().Format("15:04:05")
}

// FormatCountdown prints the seconds left as "0:27".
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(math.Ceil(d.Seconds()))
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// RenderMarkdown renders the goal description for the terminal. Rendering
// failures fall back to the raw text.
func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// Truncate shortens s to max visible cells, ending with an ellipsis.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
