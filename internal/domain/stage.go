package domain

// Stage is one of eight ordered feedback bands. Higher is closer to (or
// beyond) the final goal.
type Stage int

const (
	StageStart Stage = iota
	StageWaiting
	StageSlowMotion
	StageWarmingUp
	StagePickingUp
	StageAlmostThere
	StageGoalMet
	StageBeyondGoal
)

// StageCount is the number of stages.
const StageCount = 8

// Clamp bounds s to the valid stage range.
func (s Stage) Clamp() Stage {
	if s < StageStart {
		return StageStart
	}
	if s > StageBeyondGoal {
		return StageBeyondGoal
	}
	return s
}

// Valid reports whether s is one of the eight stages.
func (s Stage) Valid() bool {
	return s >= StageStart && s <= StageBeyondGoal
}
