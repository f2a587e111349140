package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/placar/internal/domain"
)

// EnvConfigPath names the config file when --config is not given.
const EnvConfigPath = "PLACAR_CONFIG"

// Load applies the YAML file at path (if any) and then the environment
// over the defaults. A missing file is an error only when a path was
// given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	applyEnv(&cfg)
	cfg.Normalize()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file %s not found: %w", path, err)
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from PLACAR_* variables. Unparsable values
// are ignored.
func applyEnv(cfg *Config) {
	if v := os.Getenv("PLACAR_TITLE"); v != "" {
		cfg.Title = v
	}
	if v := os.Getenv("PLACAR_DESCRIPTION"); v != "" {
		cfg.Description = v
	}
	if v := os.Getenv("PLACAR_Y_LABEL"); v != "" {
		cfg.YLabel = v
	}
	envFloat("PLACAR_Y_MIN", &cfg.YMin)
	envFloat("PLACAR_Y_MAX", &cfg.YMax)
	envFloat("PLACAR_INITIAL_GOAL", &cfg.InitialGoal)
	envFloat("PLACAR_FINAL_GOAL", &cfg.FinalGoal)
	if v := os.Getenv("PLACAR_WEEKS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Weeks = n
		}
	}
	if v := os.Getenv("PLACAR_VARIANT"); v != "" && domain.ValidVariants[v] {
		cfg.Variant = domain.Variant(v)
	}
	envBool("PLACAR_FLOOR_REGRESSION", &cfg.FloorRegression)
	if v := os.Getenv("PLACAR_ASSETS_DIR"); v != "" {
		cfg.AssetsDir = v
	}
	if v := os.Getenv("PLACAR_MOTIVATION_TRACK"); v != "" {
		cfg.MotivationTrack = v
	}
	envBool("PLACAR_SOUND", &cfg.Sound)
	if v := os.Getenv("PLACAR_SAMPLE_RATE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SampleRate = n
		}
	}
	if v := os.Getenv("PLACAR_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("PLACAR_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}

func envFloat(name string, dst *float64) {
	if v := os.Getenv(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func envBool(name string, dst *bool) {
	if v := os.Getenv(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
