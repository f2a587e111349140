package domain

// WeekIndex counts weeks remaining until the deadline. Week N is the
// first (oldest) week of the plan and week 1 is the deadline week.
type WeekIndex int

// WeeklyInput holds the raw text typed for each week. A missing or blank
// entry means nothing was recorded for that week.
type WeeklyInput map[WeekIndex]string

// Clone returns an independent copy of the input.
func (in WeeklyInput) Clone() WeeklyInput {
	out := make(WeeklyInput, len(in))
	for w, v := range in {
		out[w] = v
	}
	return out
}

// ProgressPoint is the tracked metric as recorded for a week.
type ProgressPoint struct {
	Week  WeekIndex
	Value float64
}

// TargetPoint is the ideal value for a week on the straight line from the
// initial goal to the final goal.
type TargetPoint struct {
	Week  WeekIndex
	Value float64
}

// CurrentState is derived on every recompute and never stored.
type CurrentState struct {
	Week  WeekIndex
	Value float64
	Stage Stage
}
