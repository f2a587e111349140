// Package progress turns weekly entries into the progress series, the ideal
// target series and the current state of the board. Everything here is a
// pure function of its inputs.
package progress

import (
	"math"

	"github.com/alexanderramin/placar/internal/domain"
)

// Snapshot is the full derived view of the board for one render cycle.
type Snapshot struct {
	Weeks      int
	Progress   []domain.ProgressPoint
	Target     []domain.TargetPoint
	Cumulative map[domain.WeekIndex]float64
	Current    domain.CurrentState
}

// Weeks returns the week indexes in display order: N down to 1.
func Weeks(n int) []domain.WeekIndex {
	n = ClampWeeks(n)
	out := make([]domain.WeekIndex, 0, n)
	for w := n; w >= 1; w-- {
		out = append(out, domain.WeekIndex(w))
	}
	return out
}

// TargetSeries interpolates the ideal trajectory from goal.Initial at week N
// to goal.Final at week 1. Interior points are rounded to one decimal and
// kept inside the goal range; the endpoints are exact.
func TargetSeries(n int, goal domain.Goal) []domain.TargetPoint {
	n = ClampWeeks(n)
	if n == 1 {
		return []domain.TargetPoint{{Week: 1, Value: goal.Final}}
	}

	lo, hi := math.Min(goal.Initial, goal.Final), math.Max(goal.Initial, goal.Final)
	out := make([]domain.TargetPoint, 0, n)
	for _, w := range Weeks(n) {
		var v float64
		switch int(w) {
		case n:
			v = goal.Initial
		case 1:
			v = goal.Final
		default:
			t := float64(n-int(w)) / float64(n-1)
			v = round1(goal.Initial + (goal.Final-goal.Initial)*t)
			v = clamp(v, lo, hi)
		}
		out = append(out, domain.TargetPoint{Week: w, Value: v})
	}
	return out
}

// Cumulative returns the cumulative reduction recorded as of each week.
func Cumulative(input domain.WeeklyInput, n int, goal domain.Goal) map[domain.WeekIndex]float64 {
	if goal.EffectiveVariant() == domain.VariantAbsolute {
		return absoluteCumulative(input, n, goal)
	}
	return deltaCumulative(input, n, goal)
}

// deltaCumulative walks from week N to week 1 summing weekly deltas.
// Positive deltas are capped by the remaining headroom so the total never
// exceeds MaxReduction. Negative deltas (regressions) are applied as-is
// unless goal.FloorRegression is set.
func deltaCumulative(input domain.WeeklyInput, n int, goal domain.Goal) map[domain.WeekIndex]float64 {
	maxRed := goal.MaxReduction()
	out := make(map[domain.WeekIndex]float64, n)
	acc := 0.0
	for _, w := range Weeks(n) {
		if delta, ok := ParseEntry(input[w]); ok {
			if delta >= 0 {
				acc += math.Max(0, math.Min(maxRed-acc, delta))
			} else {
				acc += delta
				if goal.FloorRegression && acc < 0 {
					acc = 0
				}
			}
		}
		out[w] = acc
	}
	return out
}

// absoluteCumulative reads each entry as the total reduction so far.
// Weeks without a valid entry count as no reduction.
func absoluteCumulative(input domain.WeeklyInput, n int, goal domain.Goal) map[domain.WeekIndex]float64 {
	out := make(map[domain.WeekIndex]float64, n)
	for _, w := range Weeks(n) {
		out[w] = absoluteReduction(input[w], goal)
	}
	return out
}

func absoluteReduction(text string, goal domain.Goal) float64 {
	v, ok := ParseEntry(text)
	if !ok || v < 0 {
		return 0
	}
	return math.Min(goal.MaxReduction(), v)
}

// ProgressSeries returns one point per week, N down to 1.
func ProgressSeries(input domain.WeeklyInput, n int, goal domain.Goal) []domain.ProgressPoint {
	return progressFrom(Cumulative(input, n, goal), n, goal)
}

func progressFrom(cum map[domain.WeekIndex]float64, n int, goal domain.Goal) []domain.ProgressPoint {
	lo := 0.0
	if goal.EffectiveVariant() == domain.VariantAbsolute {
		lo = goal.Final
	}
	out := make([]domain.ProgressPoint, 0, n)
	for _, w := range Weeks(n) {
		out = append(out, domain.ProgressPoint{
			Week:  w,
			Value: clamp(goal.Initial-cum[w], lo, goal.Initial),
		})
	}
	return out
}

// CurrentWeek is the lowest week among N and every week with recorded
// data: how far into the plan the team has actually reported.
func CurrentWeek(input domain.WeeklyInput, n int, goal domain.Goal) domain.WeekIndex {
	n = ClampWeeks(n)
	current := domain.WeekIndex(n)
	for _, w := range Weeks(n) {
		if hasData(input[w], goal) && w < current {
			current = w
		}
	}
	return current
}

func hasData(text string, goal domain.Goal) bool {
	v, ok := ParseEntry(text)
	if !ok {
		return false
	}
	if goal.EffectiveVariant() == domain.VariantAbsolute {
		return v >= 0
	}
	return true
}

// CurrentValue is the tracked metric as of the current week. Unlike the
// progress series it is not clamped at goal.Initial, so a regression past
// the starting point stays visible.
func CurrentValue(input domain.WeeklyInput, n int, goal domain.Goal) float64 {
	cum := Cumulative(input, n, goal)
	return goal.Initial - cum[CurrentWeek(input, n, goal)]
}

// Compute derives everything the board displays. The stage of the returned
// current state is left at zero; callers map the value through feedback.
func Compute(input domain.WeeklyInput, n int, goal domain.Goal) Snapshot {
	n = ClampWeeks(n)
	cum := Cumulative(input, n, goal)
	week := CurrentWeek(input, n, goal)
	return Snapshot{
		Weeks:      n,
		Progress:   progressFrom(cum, n, goal),
		Target:     TargetSeries(n, goal),
		Cumulative: cum,
		Current: domain.CurrentState{
			Week:  week,
			Value: goal.Initial - cum[week],
		},
	}
}

// ProgressAt returns the progress value for week w, or false if w is
// outside the snapshot.
func (s Snapshot) ProgressAt(w domain.WeekIndex) (float64, bool) {
	for _, p := range s.Progress {
		if p.Week == w {
			return p.Value, true
		}
	}
	return 0, false
}

// TargetAt returns the target value for week w, or false if w is outside
// the snapshot.
func (s Snapshot) TargetAt(w domain.WeekIndex) (float64, bool) {
	for _, p := range s.Target {
		if p.Week == w {
			return p.Value, true
		}
	}
	return 0, false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
