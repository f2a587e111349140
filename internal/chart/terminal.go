package chart

import (
	"fmt"
	"math"
	"strings"
)

// Element classifies a cell of the terminal chart for styling.
type Element int

const (
	ElemAxis Element = iota
	ElemProgress
	ElemTarget
	ElemProgressMarker
	ElemTargetMarker
	ElemLabel
)

const (
	glyphProgress       = '•'
	glyphTarget         = '·'
	glyphProgressMarker = '●'
	glyphTargetMarker   = '◆'
	yLabelWidth         = 6
)

// Paint styles a run of text; nil leaves it plain.
type Paint func(Element, string) string

type cell struct {
	r    rune
	elem Element
}

// RenderTerminal draws p into a width x height block of text, axes and
// legend included.
func RenderTerminal(p Plot, width, height int, paint Paint) string {
	if paint == nil {
		paint = func(_ Element, s string) string { return s }
	}
	plotW := max(width-yLabelWidth-1, 8)
	plotH := max(height-3, 3) // x axis, week labels, legend

	lo, hi := p.YRange()
	grid := make([][]cell, plotH)
	for i := range grid {
		grid[i] = make([]cell, plotW)
		for j := range grid[i] {
			grid[i][j] = cell{r: ' '}
		}
	}

	col := func(x float64) int {
		if p.Weeks <= 1 {
			return plotW / 2
		}
		return int(math.Round((x - 1) / float64(p.Weeks-1) * float64(plotW-1)))
	}
	row := func(v float64) int {
		r := int(math.Round((hi - v) / (hi - lo) * float64(plotH-1)))
		return min(max(r, 0), plotH-1)
	}
	xAt := func(c int) float64 {
		if p.Weeks <= 1 {
			return 1
		}
		return 1 + float64(c)/float64(plotW-1)*float64(p.Weeks-1)
	}
	trace := func(pts []xy, r rune, elem Element) {
		if len(pts) == 1 {
			grid[row(pts[0].y)][col(pts[0].x)] = cell{r, elem}
			return
		}
		for c := 0; c < plotW; c++ {
			if v, ok := valueAt(pts, xAt(c)); ok {
				grid[row(v)][c] = cell{r, elem}
			}
		}
	}

	trace(p.targetXY(), glyphTarget, ElemTarget)
	trace(p.progressXY(), glyphProgress, ElemProgress)
	if p.TargetMarker.Week > 0 {
		x := p.position(p.TargetMarker.Week)
		grid[row(p.TargetMarker.Value)][col(x)] = cell{glyphTargetMarker, ElemTargetMarker}
	}
	if p.ProgressMarker.Week > 0 {
		x := p.position(p.ProgressMarker.Week)
		grid[row(p.ProgressMarker.Value)][col(x)] = cell{glyphProgressMarker, ElemProgressMarker}
	}

	var b strings.Builder
	for i, line := range grid {
		label := strings.Repeat(" ", yLabelWidth)
		if i == 0 || i == plotH-1 || i == plotH/2 {
			v := hi - float64(i)/float64(plotH-1)*(hi-lo)
			label = fmt.Sprintf("%*.1f", yLabelWidth-1, v) + " "
		}
		b.WriteString(paint(ElemLabel, label))
		b.WriteString(paint(ElemAxis, "│"))
		writeCells(&b, line, paint)
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(" ", yLabelWidth))
	b.WriteString(paint(ElemAxis, "└"+strings.Repeat("─", plotW)))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", yLabelWidth+1))
	b.WriteString(paint(ElemLabel, weekLabels(p, plotW, col)))
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", yLabelWidth+1))
	b.WriteString(paint(ElemProgress, string(glyphProgress)+" "+ProgressName))
	b.WriteString("  ")
	b.WriteString(paint(ElemTarget, string(glyphTarget)+" "+TargetName))
	b.WriteString("  ")
	b.WriteString(paint(ElemLabel, p.XLabel))
	return b.String()
}

// writeCells emits a row, painting runs of the same element together.
func writeCells(b *strings.Builder, line []cell, paint Paint) {
	start := 0
	for i := 1; i <= len(line); i++ {
		if i == len(line) || line[i].elem != line[start].elem {
			var run strings.Builder
			for _, c := range line[start:i] {
				run.WriteRune(c.r)
			}
			b.WriteString(paint(line[start].elem, run.String()))
			start = i
		}
	}
}

// weekLabels places week numbers under their columns, skipping labels
// that would collide.
func weekLabels(p Plot, plotW int, col func(float64) int) string {
	out := []rune(strings.Repeat(" ", plotW))
	next := 0
	for w := p.Weeks; w >= 1; w-- {
		label := []rune(fmt.Sprint(w))
		c := col(float64(p.Weeks + 1 - w))
		start := c - len(label)/2
		if start < next || start+len(label) > plotW {
			continue
		}
		copy(out[start:], label)
		next = start + len(label) + 1
	}
	return strings.TrimRight(string(out), " ")
}
