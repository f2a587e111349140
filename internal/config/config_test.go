package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/placar/internal/domain"
	"github.com/alexanderramin/placar/internal/feedback"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "placar.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8, cfg.Weeks)
	assert.False(t, cfg.Sound, "sound starts disabled")
	assert.Equal(t, domain.Goal{Initial: 5, Final: 2, Variant: domain.VariantDelta}, cfg.Goal())
}

func TestDefault_OffsetsAreACopy(t *testing.T) {
	cfg := Default()
	cfg.StageOffsets[0] = 9
	assert.Equal(t, 0.0, feedback.DefaultOffsets[0])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"initial not above final", func(c *Config) { c.InitialGoal = 2 }, "initial_goal"},
		{"bad variant", func(c *Config) { c.Variant = "weekly" }, "variant"},
		{"short offsets", func(c *Config) { c.StageOffsets = []float64{0, 1} }, "stage_offsets needs 6"},
		{"decreasing offsets", func(c *Config) { c.StageOffsets = []float64{0, 0.5, 0.2, 1, 1.5, 2} }, "non-decreasing"},
		{"negative offset", func(c *Config) { c.StageOffsets = []float64{-1, 0.2, 0.5, 1, 1.5, 2} }, "negative"},
		{"empty y range", func(c *Config) { c.YMax = c.YMin }, "y_max"},
		{"no sample rate", func(c *Config) { c.SampleRate = 0 }, "sample_rate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNormalize_ClampsWeeks(t *testing.T) {
	for in, want := range map[int]int{0: 1, -3: 1, 1: 1, 52: 52, 53: 52, 400: 52} {
		cfg := Default()
		cfg.Weeks = in
		cfg.Normalize()
		assert.Equal(t, want, cfg.Weeks, "weeks %d", in)
	}
}

func TestBands_UsesConfiguredOffsets(t *testing.T) {
	cfg := Default()
	cfg.StageOffsets = []float64{0, 0.1, 0.2, 0.3, 0.4, 0.5}

	b := cfg.Bands()
	assert.Equal(t, [6]float64{0, 0.1, 0.2, 0.3, 0.4, 0.5}, b.Offsets)
	assert.Equal(t, 2.0, b.Final)
	assert.Equal(t, 5.0, b.Initial)
}

func TestLoad_NoPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
title: Deploy time
initial_goal: 60
final_goal: 15
weeks: 100
variant: absolute
y_max: 70
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Deploy time", cfg.Title)
	assert.Equal(t, 60.0, cfg.InitialGoal)
	assert.Equal(t, 15.0, cfg.FinalGoal)
	assert.Equal(t, 52, cfg.Weeks, "clamped, not rejected")
	assert.Equal(t, domain.VariantAbsolute, cfg.Variant)
	assert.Equal(t, Default().YLabel, cfg.YLabel, "unset keys keep defaults")
	require.NoError(t, cfg.Validate())
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "not found")

	_, err = Load(writeConfig(t, "weeks: [oops"))
	assert.ErrorContains(t, err, "parsing config")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "weeks: 10\nsound: false\n")
	t.Setenv("PLACAR_WEEKS", "12")
	t.Setenv("PLACAR_SOUND", "true")
	t.Setenv("PLACAR_FINAL_GOAL", "1.5")
	t.Setenv("PLACAR_VARIANT", "bogus")
	t.Setenv("PLACAR_Y_MAX", "not-a-number")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Weeks)
	assert.True(t, cfg.Sound)
	assert.Equal(t, 1.5, cfg.FinalGoal)
	assert.Equal(t, domain.VariantDelta, cfg.Variant, "invalid env values are ignored")
	assert.Equal(t, 5.0, cfg.YMax)
}

func TestResolve_FlagsWin(t *testing.T) {
	path := writeConfig(t, "weeks: 10\ninitial_goal: 6\n")
	t.Setenv("PLACAR_WEEKS", "12")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path, "--weeks", "3", "--sound"}))

	cfg, gotPath, err := Resolve(fs)
	require.NoError(t, err)

	assert.Equal(t, path, gotPath)
	assert.Equal(t, 3, cfg.Weeks)
	assert.Equal(t, 6.0, cfg.InitialGoal)
	assert.True(t, cfg.Sound)
}

func TestResolve_ConfigPathFromEnv(t *testing.T) {
	path := writeConfig(t, "weeks: 4\n")
	t.Setenv(EnvConfigPath, path)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, _, err := Resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Weeks)
}

func TestResolve_ValidationError(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--initial-goal", "1", "--final-goal", "3"}))

	_, _, err := Resolve(fs)
	assert.ErrorContains(t, err, "initial_goal")
}
