package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type helpEntry struct {
	usage string
	desc  string
}

var commandHelp = []helpEntry{
	{"weeks [n]", "set the number of weeks (1-52); without n opens a form"},
	{"set <week> <value>", "record the change for a week"},
	{"clear <week>", "erase a week's entry"},
	{"entries", "edit every week in a grid"},
	{"sound on|off", "enable or disable stage cues"},
	{"motivate", "play the 30s motivation piece"},
	{"photo client|ours [path]", "pick the picture for a marker"},
	{"photo clear client|ours", "go back to the default picture"},
	{"export <file.png>", "save the chart as PNG"},
	{"history", "edits and stage changes of this session"},
	{"help", "this list"},
	{"quit", "leave"},
}

var keyHelp = []helpEntry{
	{"e", "edit entries"},
	{"w", "weeks form"},
	{"s", "toggle sound"},
	{"m", "motivation"},
	{"c / o", "client / our photo"},
	{"h", "history"},
	{":", "command bar"},
	{"esc", "back"},
	{"q", "quit"},
}

// FormatHelp renders the command and key reference.
func FormatHelp() string {
	var b strings.Builder
	b.WriteString(Header("Commands"))
	b.WriteString("\n")
	writeHelp(&b, commandHelp, StyleGreen)
	b.WriteString("\n")
	b.WriteString(Header("Keys"))
	b.WriteString("\n")
	writeHelp(&b, keyHelp, StyleBlue)
	return RenderBox("Help", strings.TrimRight(b.String(), "\n"))
}

func writeHelp(b *strings.Builder, entries []helpEntry, style lipgloss.Style) {
	width := 0
	for _, e := range entries {
		width = max(width, len([]rune(e.usage)))
	}
	for _, e := range entries {
		pad := strings.Repeat(" ", width-len([]rune(e.usage)))
		b.WriteString("  " + style.Render(e.usage) + pad + "  " + Dim(e.desc) + "\n")
	}
}
