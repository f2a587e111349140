package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoalFraction(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		want    float64
	}{
		{"at start", 5, 0},
		{"halfway", 3.5, 0.5},
		{"at goal", 2, 1},
		{"beyond goal clamps", 1, 1},
		{"regressed clamps", 6, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, GoalFraction(5, 2, tt.current), 1e-9)
		})
	}
	assert.Zero(t, GoalFraction(2, 2, 1), "empty span")
}

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name   string
		pct    float64
		width  int
		filled int
		label  string
	}{
		{"empty", 0, 10, 0, "  0%"},
		{"half", 0.5, 10, 5, " 50%"},
		{"full", 1, 10, 10, "100%"},
		{"over clamps", 1.5, 10, 10, "100%"},
		{"negative clamps", -0.5, 10, 0, "  0%"},
		{"tiny width", 1, 1, 2, "100%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, tt.width, StyleGreen)
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
			assert.True(t, strings.HasSuffix(got, tt.label), got)
		})
	}
}
