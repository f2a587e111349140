// Package chart draws the progress and target series against weeks
// remaining, either as text for the terminal or as a PNG.
package chart

import (
	"image"
	"math"

	"github.com/alexanderramin/placar/internal/domain"
	"github.com/alexanderramin/placar/internal/progress"
)

const (
	DefaultTitle  = "O Cliente tem razão, mas eu sou o Flash"
	DefaultXLabel = "Semanas restantes"
	DefaultYLabel = "Tempo de produção (horas)"

	ProgressName = "Progresso"
	TargetName   = "Meta"
)

// Marker sits on a series at the current week.
type Marker struct {
	Week  domain.WeekIndex
	Value float64
	// Image is drawn in a circle when set; otherwise a dot is drawn.
	Image image.Image
}

// Plot is everything needed to draw the board's chart.
type Plot struct {
	Title  string
	XLabel string
	YLabel string
	Weeks  int
	YMin   float64
	YMax   float64

	Progress []domain.ProgressPoint
	Target   []domain.TargetPoint

	ProgressMarker Marker
	TargetMarker   Marker
}

// Options customize New.
type Options struct {
	Title  string
	YLabel string
	YMin   float64
	YMax   float64

	ProgressImage image.Image
	TargetImage   image.Image
}

// New builds a plot from a snapshot. Both markers sit on the snapshot's
// current week.
func New(snap progress.Snapshot, opts Options) Plot {
	p := Plot{
		Title:    opts.Title,
		XLabel:   DefaultXLabel,
		YLabel:   opts.YLabel,
		Weeks:    snap.Weeks,
		YMin:     opts.YMin,
		YMax:     opts.YMax,
		Progress: snap.Progress,
		Target:   snap.Target,
	}
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if p.YLabel == "" {
		p.YLabel = DefaultYLabel
	}

	week := snap.Current.Week
	pv, _ := snap.ProgressAt(week)
	tv, _ := snap.TargetAt(week)
	p.ProgressMarker = Marker{Week: week, Value: pv, Image: opts.ProgressImage}
	p.TargetMarker = Marker{Week: week, Value: tv, Image: opts.TargetImage}
	return p
}

// position maps a week to its x coordinate: week N is 1 at the left,
// week 1 is N at the right.
func (p Plot) position(w domain.WeekIndex) float64 {
	return float64(p.Weeks + 1 - int(w))
}

// YRange is the vertical extent: the configured range widened to fit
// every plotted value.
func (p Plot) YRange() (lo, hi float64) {
	lo, hi = p.YMin, p.YMax
	for _, pt := range p.Progress {
		lo, hi = math.Min(lo, pt.Value), math.Max(hi, pt.Value)
	}
	for _, pt := range p.Target {
		lo, hi = math.Min(lo, pt.Value), math.Max(hi, pt.Value)
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

type xy struct{ x, y float64 }

func (p Plot) progressXY() []xy {
	out := make([]xy, 0, len(p.Progress))
	for _, pt := range p.Progress {
		out = append(out, xy{p.position(pt.Week), pt.Value})
	}
	return sortByX(out)
}

func (p Plot) targetXY() []xy {
	out := make([]xy, 0, len(p.Target))
	for _, pt := range p.Target {
		out = append(out, xy{p.position(pt.Week), pt.Value})
	}
	return sortByX(out)
}

// sortByX relies on the series arriving in N..1 order, which maps to
// ascending x; anything else is sorted.
func sortByX(pts []xy) []xy {
	for i := 1; i < len(pts); i++ {
		for j := i; j > 0 && pts[j].x < pts[j-1].x; j-- {
			pts[j], pts[j-1] = pts[j-1], pts[j]
		}
	}
	return pts
}

// valueAt linearly interpolates pts at x.
func valueAt(pts []xy, x float64) (float64, bool) {
	if len(pts) == 0 {
		return 0, false
	}
	if x <= pts[0].x {
		return pts[0].y, x == pts[0].x || len(pts) == 1
	}
	for i := 1; i < len(pts); i++ {
		if x <= pts[i].x {
			a, b := pts[i-1], pts[i]
			t := (x - a.x) / (b.x - a.x)
			return a.y + t*(b.y-a.y), true
		}
	}
	return pts[len(pts)-1].y, false
}
