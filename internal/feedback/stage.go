// Package feedback maps the current tracked value to a stage, a phrase,
// a default image and the transition signal that drives stage cues.
package feedback

import "github.com/alexanderramin/placar/internal/domain"

// DefaultOffsets are the band edges above the final goal, from the most
// advanced stage (7) down to stage 2.
var DefaultOffsets = [6]float64{0, 0.2, 0.5, 1.0, 1.5, 2.0}

// Bands discretizes values between the final and initial goals.
type Bands struct {
	Final   float64
	Initial float64
	Offsets [6]float64
}

// NewBands builds bands for a goal using DefaultOffsets.
func NewBands(goal domain.Goal) Bands {
	return Bands{Final: goal.Final, Initial: goal.Initial, Offsets: DefaultOffsets}
}

// StageFor returns the stage for value. Anything at or above the initial
// goal is stage 0. Below it, bands are checked from the most advanced upward
// and each upper edge is inclusive. Edges that reach the initial goal are
// skipped, so a narrow goal loses its middle stages instead of starting
// halfway through them.
func StageFor(value float64, b Bands) domain.Stage {
	if value >= b.Initial {
		return domain.StageStart
	}
	for i, off := range b.Offsets {
		edge := b.Final + off
		if edge >= b.Initial {
			break
		}
		if value <= edge {
			return domain.StageBeyondGoal - domain.Stage(i)
		}
	}
	return domain.StageWaiting
}
