package domain

// Variant selects how weekly entries are accumulated into progress.
type Variant string

const (
	// VariantDelta treats each entry as the change recorded that week.
	VariantDelta Variant = "delta"
	// VariantAbsolute treats each entry as the total reduction so far.
	// Kept for boards configured before weekly deltas existed.
	VariantAbsolute Variant = "absolute"
)

// ValidVariants is the canonical set of accepted variant strings.
var ValidVariants = map[string]bool{
	string(VariantDelta):    true,
	string(VariantAbsolute): true,
}

// Week count bounds accepted at the input boundary.
const (
	MinWeeks = 1
	MaxWeeks = 52
)

// Goal describes the tracked metric: it starts at Initial and the team
// wants to bring it down to Final. Lower is better.
type Goal struct {
	Initial float64
	Final   float64
	Variant Variant

	// FloorRegression stops negative deltas from pushing the cumulative
	// reduction below zero. Off by default.
	FloorRegression bool
}

// MaxReduction is the total improvement needed to reach the final goal.
func (g Goal) MaxReduction() float64 {
	return g.Initial - g.Final
}

// EffectiveVariant returns the configured variant, defaulting to delta.
func (g Goal) EffectiveVariant() Variant {
	if g.Variant == VariantAbsolute {
		return VariantAbsolute
	}
	return VariantDelta
}
