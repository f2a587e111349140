package config

import (
	"os"

	"github.com/spf13/pflag"

	"github.com/alexanderramin/placar/internal/domain"
)

// Flag names shared by every command.
const (
	FlagConfig          = "config"
	FlagWeeks           = "weeks"
	FlagInitialGoal     = "initial-goal"
	FlagFinalGoal       = "final-goal"
	FlagVariant         = "variant"
	FlagFloorRegression = "floor-regression"
	FlagSound           = "sound"
	FlagAssetsDir       = "assets-dir"
	FlagMotivationTrack = "motivation-track"
	FlagLogFile         = "log-file"
	FlagLogLevel        = "log-level"
)

// RegisterFlags defines the config flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(FlagConfig, "", "path to a YAML config file (env "+EnvConfigPath+")")
	fs.Int(FlagWeeks, d.Weeks, "number of weeks on the board (1-52)")
	fs.Float64(FlagInitialGoal, d.InitialGoal, "starting value of the tracked metric")
	fs.Float64(FlagFinalGoal, d.FinalGoal, "target value of the tracked metric")
	fs.String(FlagVariant, string(d.Variant), "how entries accumulate: delta or absolute")
	fs.Bool(FlagFloorRegression, d.FloorRegression, "do not let regressions undo more than was gained")
	fs.Bool(FlagSound, d.Sound, "play stage cues")
	fs.String(FlagAssetsDir, d.AssetsDir, "directory holding the default stage images")
	fs.String(FlagMotivationTrack, d.MotivationTrack, "MP3 played by motivate")
	fs.String(FlagLogFile, d.LogFile, "write logs to this file")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error")
}

// ConfigPath returns the config file from the flag, else the environment.
func ConfigPath(fs *pflag.FlagSet) string {
	if p, err := fs.GetString(FlagConfig); err == nil && p != "" {
		return p
	}
	return os.Getenv(EnvConfigPath)
}

// ApplyFlags copies explicitly set flags onto cfg.
func ApplyFlags(fs *pflag.FlagSet, cfg *Config) {
	if fs.Changed(FlagWeeks) {
		cfg.Weeks, _ = fs.GetInt(FlagWeeks)
	}
	if fs.Changed(FlagInitialGoal) {
		cfg.InitialGoal, _ = fs.GetFloat64(FlagInitialGoal)
	}
	if fs.Changed(FlagFinalGoal) {
		cfg.FinalGoal, _ = fs.GetFloat64(FlagFinalGoal)
	}
	if fs.Changed(FlagVariant) {
		v, _ := fs.GetString(FlagVariant)
		cfg.Variant = domain.Variant(v)
	}
	if fs.Changed(FlagFloorRegression) {
		cfg.FloorRegression, _ = fs.GetBool(FlagFloorRegression)
	}
	if fs.Changed(FlagSound) {
		cfg.Sound, _ = fs.GetBool(FlagSound)
	}
	if fs.Changed(FlagAssetsDir) {
		cfg.AssetsDir, _ = fs.GetString(FlagAssetsDir)
	}
	if fs.Changed(FlagMotivationTrack) {
		cfg.MotivationTrack, _ = fs.GetString(FlagMotivationTrack)
	}
	if fs.Changed(FlagLogFile) {
		cfg.LogFile, _ = fs.GetString(FlagLogFile)
	}
	if fs.Changed(FlagLogLevel) {
		cfg.LogLevel, _ = fs.GetString(FlagLogLevel)
	}
	cfg.Normalize()
}

// Resolve runs the whole precedence chain for fs and validates the result.
func Resolve(fs *pflag.FlagSet) (Config, string, error) {
	path := ConfigPath(fs)
	cfg, err := Load(path)
	if err != nil {
		return cfg, path, err
	}
	ApplyFlags(fs, &cfg)
	return cfg, path, cfg.Validate()
}
