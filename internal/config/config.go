// Package config loads board settings from defaults, an optional YAML
// file, PLACAR_* environment variables and command-line flags, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/placar/internal/domain"
	"github.com/alexanderramin/placar/internal/feedback"
	"github.com/alexanderramin/placar/internal/progress"
)

// DefaultDescription is the goal statement shown above the chart.
const DefaultDescription = `Para este ciclo, o **MCI** (Meta Crucialmente Importante) é reduzir o
tempo de produção de um relatório estratégico de **5 horas para 2 horas**.

Medidas de direção:

- Definição de um relatório padrão em HTML.
- Otimização do processo de coleta de dados.
- Upgrade do prompt de análise para resumir resultados e entregar valor.

**Queremos a cada semana uma melhoria no tempo de produção do relatório.**
`

// Config holds every setting of the board.
type Config struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	YLabel      string  `yaml:"y_label"`
	YMin        float64 `yaml:"y_min"`
	YMax        float64 `yaml:"y_max"`

	InitialGoal     float64        `yaml:"initial_goal"`
	FinalGoal       float64        `yaml:"final_goal"`
	Weeks           int            `yaml:"weeks"`
	Variant         domain.Variant `yaml:"variant"`
	FloorRegression bool           `yaml:"floor_regression"`
	StageOffsets    []float64      `yaml:"stage_offsets"`

	AssetsDir       string `yaml:"assets_dir"`
	MotivationTrack string `yaml:"motivation_track"`
	Sound           bool   `yaml:"sound"`
	SampleRate      int    `yaml:"sample_rate"`

	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the board as first shipped: 5h down to 2h over 8 weeks,
// sound off until the user enables it.
func Default() Config {
	return Config{
		Title:           "O Cliente tem razão, mas eu sou o Flash",
		Description:     DefaultDescription,
		YLabel:          "Tempo de produção (horas)",
		YMin:            0,
		YMax:            5,
		InitialGoal:     5,
		FinalGoal:       2,
		Weeks:           8,
		Variant:         domain.VariantDelta,
		StageOffsets:    append([]float64(nil), feedback.DefaultOffsets[:]...),
		AssetsDir:       "assets",
		MotivationTrack: "assets/motivacao.mp3",
		SampleRate:      44100,
		LogLevel:        "info",
	}
}

// Validate rejects settings the board cannot work with. The week count
// is never rejected; Normalize clamps it.
func (c Config) Validate() error {
	var errs []error
	if c.InitialGoal <= c.FinalGoal {
		errs = append(errs, fmt.Errorf("initial_goal (%g) must be greater than final_goal (%g)", c.InitialGoal, c.FinalGoal))
	}
	if !domain.ValidVariants[string(c.Variant)] {
		errs = append(errs, fmt.Errorf("variant %q must be delta or absolute", c.Variant))
	}
	if len(c.StageOffsets) != len(feedback.DefaultOffsets) {
		errs = append(errs, fmt.Errorf("stage_offsets needs %d values, got %d", len(feedback.DefaultOffsets), len(c.StageOffsets)))
	} else {
		for i, off := range c.StageOffsets {
			if off < 0 {
				errs = append(errs, fmt.Errorf("stage_offsets[%d] is negative", i))
			}
			if i > 0 && off < c.StageOffsets[i-1] {
				errs = append(errs, fmt.Errorf("stage_offsets must be non-decreasing (index %d)", i))
			}
		}
	}
	if c.YMax <= c.YMin {
		errs = append(errs, fmt.Errorf("y_max (%g) must be greater than y_min (%g)", c.YMax, c.YMin))
	}
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("sample_rate must be positive"))
	}
	return errors.Join(errs...)
}

// Normalize clamps the week count into range and fills an empty variant.
func (c *Config) Normalize() {
	c.Weeks = progress.ClampWeeks(c.Weeks)
	if c.Variant == "" {
		c.Variant = domain.VariantDelta
	}
}

// Goal returns the tracked goal.
func (c Config) Goal() domain.Goal {
	return domain.Goal{
		Initial:         c.InitialGoal,
		Final:           c.FinalGoal,
		Variant:         c.Variant,
		FloorRegression: c.FloorRegression,
	}
}

// Bands returns the stage bands for the goal. Invalid offsets fall back
// to the defaults.
func (c Config) Bands() feedback.Bands {
	b := feedback.NewBands(c.Goal())
	if len(c.StageOffsets) == len(b.Offsets) {
		copy(b.Offsets[:], c.StageOffsets)
	}
	return b
}
