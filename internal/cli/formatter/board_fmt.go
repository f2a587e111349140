package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/placar/internal/domain"
	"github.com/alexanderramin/placar/internal/feedback"
	"github.com/alexanderramin/placar/internal/service"
)

// Unit is appended to tracked values.
const Unit = "h"

const (
	goalMetBadge = " Meta batida! "
	soundOn      = "🔊 som ligado"
	soundOff     = "🔇 som desligado"
)

var styleBadge = StyleBold.Background(ColorGreen).Foreground(ColorInk)

// FormatFeedback renders the feedback line: emoji, phrase, the goal badge
// once the goal is met and the sound indicator.
func FormatFeedback(fb feedback.Feedback, sound bool) string {
	var b strings.Builder
	if fb.Emoji != "" {
		b.WriteString(fb.Emoji)
		b.WriteString("  ")
	}
	b.WriteString(StageStyle(fb.Stage).Bold(true).Render(fb.Message))
	if fb.MetGoal {
		b.WriteString("  ")
		b.WriteString(styleBadge.Render(goalMetBadge))
	}
	b.WriteString("  ")
	if sound {
		b.WriteString(StyleFg.Render(soundOn))
	} else {
		b.WriteString(Dim(soundOff))
	}
	return b.String()
}

// FormatStats renders the readouts under the chart.
func FormatStats(board service.Board) string {
	cur := board.Current()
	target, _ := board.Snapshot.TargetAt(cur.Week)
	frac := GoalFraction(board.Goal.Initial, board.Goal.Final, cur.Value)

	lines := []string{
		fmt.Sprintf("%s %s",
			Dim("Semanas restantes (atual):"),
			Bold(fmt.Sprintf("%d de %d", cur.Week, board.Weeks))),
		fmt.Sprintf("%s %s   %s %s   %s %s",
			Dim("Atual:"), StyleProgress.Bold(true).Render(FormatValue(cur.Value, Unit)),
			Dim("Meta da semana:"), StyleTarget.Bold(true).Render(FormatValue(target, Unit)),
			Dim("Estágio:"), StageBadge(cur.Stage)),
		fmt.Sprintf("%s %s",
			Dim(fmt.Sprintf("%s → %s", FormatValue(board.Goal.Initial, Unit), FormatValue(board.Goal.Final, Unit))),
			RenderProgress(frac, 24, StageStyle(cur.Stage))),
	}
	return strings.Join(lines, "\n")
}

// FormatWeekTable lists every week with its entry, progress and target
// values, oldest week first.
func FormatWeekTable(board service.Board) string {
	snap := board.Snapshot
	cur := board.Current()
	rows := make([][]string, 0, len(snap.Progress))
	for i := len(snap.Progress) - 1; i >= 0; i-- {
		p := snap.Progress[i]
		target, _ := snap.TargetAt(p.Week)
		entry := strings.TrimSpace(board.Input[p.Week])
		if entry == "" {
			entry = Dim("—")
		}
		week := strconv.Itoa(int(p.Week))
		if p.Week == cur.Week {
			week = StyleHeader.Render("▸ " + week)
		}
		rows = append(rows, []string{
			week,
			entry,
			FormatValue(p.Value, Unit),
			FormatValue(target, Unit),
		})
	}
	return RenderTable([]string{"Semana", "Entrada", "Progresso", "Meta"}, rows, 0, 2, 3)
}

// FormatSummary is the plain board printed when no terminal is attached.
func FormatSummary(title string, board service.Board, chart string) string {
	var b strings.Builder
	b.WriteString(Header(title))
	b.WriteString("\n\n")
	b.WriteString(FormatFeedback(board.Feedback, board.Sound))
	b.WriteString("\n\n")
	b.WriteString(FormatStats(board))
	b.WriteString("\n\n")
	if chart != "" {
		b.WriteString(chart)
		b.WriteString("\n\n")
	}
	b.WriteString(FormatWeekTable(board))
	return b.String()
}

// FormatHistory renders the session journal: entry edits and stage
// transitions, in the order they happened.
func FormatHistory(edits []*domain.EntryEdit, events []*domain.StageEvent) string {
	var b strings.Builder

	b.WriteString(Header("Edições"))
	b.WriteString("\n")
	if len(edits) == 0 {
		b.WriteString(Dim("  Nenhuma edição nesta sessão.\n"))
	} else {
		rows := make([][]string, 0, len(edits))
		for _, e := range edits {
			text := e.Text
			if strings.TrimSpace(text) == "" {
				text = Dim("(vazio)")
			}
			rows = append(rows, []string{FormatClock(e.CreatedAt), strconv.Itoa(int(e.Week)), text})
		}
		b.WriteString(RenderTable([]string{"Hora", "Semana", "Texto"}, rows, 1))
	}

	b.WriteString("\n")
	b.WriteString(Header("Mudanças de estágio"))
	b.WriteString("\n")
	if len(events) == 0 {
		b.WriteString(Dim("  Nenhuma mudança de estágio nesta sessão.\n"))
		return b.String()
	}
	rows := make([][]string, 0, len(events))
	for _, ev := range events {
		cue := Dim("—")
		if ev.CuePlayed {
			cue = StyleGreen.Render("♪")
		}
		rows = append(rows, []string{
			FormatClock(ev.CreatedAt),
			fmt.Sprintf("%s → %s", StageBadge(ev.From), StageBadge(ev.To)),
			FormatValue(ev.Value, Unit),
			cue,
			Truncate(feedback.Message(ev.To), 40),
		})
	}
	b.WriteString(RenderTable([]string{"Hora", "Estágio", "Valor", "Som", "Frase"}, rows, 2))
	return b.String()
}
