// Package config loads bills configuration from JSONC files, the environment
// and command-line overrides.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tailscale/hujson"

	"github.com/calvinalkan/bills/internal/logging"
)

// Config holds all configuration options.
type Config struct {
	LogLevel       string  `json:"log_level,omitempty"`
	HistoryFile    *string `json:"history_file,omitempty"`
	AmountDecimals *int    `json:"amount_decimals,omitempty"`

	// Resolved values (computed, not serialized)
	Level   slog.Level `json:"-"`
	Sources Sources    `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global   string // Path to global config if loaded, empty otherwise
	Explicit string // Path to -c/--config file if loaded, empty otherwise
}

const (
	defaultLogLevel       = "warn"
	defaultAmountDecimals = 2
	maxAmountDecimals     = 8
	historyFileName       = ".bills_history"

	// EnvLogLevel overrides the configured log level.
	EnvLogLevel = "BILLS_LOG_LEVEL"
)

// Default returns the default configuration for the given environment.
func Default(env map[string]string) Config {
	history := ""
	if home := env["HOME"]; home != "" {
		history = filepath.Join(home, historyFileName)
	}

	decimals := defaultAmountDecimals

	return Config{
		LogLevel:       defaultLogLevel,
		HistoryFile:    &history,
		AmountDecimals: &decimals,
	}
}

// History returns the history file path, or "" if history is disabled.
func (c Config) History() string {
	if c.HistoryFile == nil {
		return ""
	}

	return *c.HistoryFile
}

// Decimals returns the number of decimals used to print amounts.
func (c Config) Decimals() int {
	if c.AmountDecimals == nil {
		return defaultAmountDecimals
	}

	return *c.AmountDecimals
}

// globalPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/bills/config.json if set, otherwise ~/.config/bills/config.json.
// Returns empty string if home directory cannot be determined.
func globalPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "bills", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "bills", "config.json")
	}

	return ""
}

// Overrides holds values set on the command line. Nil means not set.
type Overrides struct {
	LogLevel    *string
	HistoryFile *string
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDir    string            // base for a relative ConfigPath; os.Getwd() if empty
	ConfigPath string            // -c/--config flag value
	Overrides  Overrides         // command-line flags
	Env        map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/bills/config.json or $XDG_CONFIG_HOME/bills/config.json)
// 3. Explicit config file via ConfigPath (if non-empty)
// 4. BILLS_LOG_LEVEL environment variable
// 5. CLI overrides.
func Load(input LoadInput) (Config, error) {
	cfg := Default(input.Env)

	if path := globalPath(input.Env); path != "" {
		globalCfg, loaded, err := loadFile(path, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg = merge(cfg, globalCfg)
			cfg.Sources.Global = path
		}
	}

	if input.ConfigPath != "" {
		path, err := resolvePath(input.WorkDir, input.ConfigPath)
		if err != nil {
			return Config{}, err
		}

		explicitCfg, _, err := loadFile(path, true)
		if err != nil {
			return Config{}, err
		}

		cfg = merge(cfg, explicitCfg)
		cfg.Sources.Explicit = path
	}

	if lvl := input.Env[EnvLogLevel]; lvl != "" {
		cfg.LogLevel = lvl
	}

	if input.Overrides.LogLevel != nil {
		cfg.LogLevel = *input.Overrides.LogLevel
	}

	if input.Overrides.HistoryFile != nil {
		history := *input.Overrides.HistoryFile
		cfg.HistoryFile = &history
	}

	level, err := validate(cfg)
	if err != nil {
		return Config{}, err
	}

	cfg.Level = level

	return cfg, nil
}

func resolvePath(workDir, path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}

	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	return filepath.Join(workDir, path), nil
}

// loadFile loads a config file. If mustExist is false, a missing file returns a zero config.
// Returns the config, whether the file was loaded, and any error.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if mustExist {
				return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileNotFound, path)
			}

			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigFileRead, path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

// merge applies fields set in overlay on top of base. An explicit
// "history_file": "" in overlay disables history.
func merge(base, overlay Config) Config {
	if overlay.LogLevel != "" {
		base.LogLevel = overlay.LogLevel
	}

	if overlay.HistoryFile != nil {
		base.HistoryFile = overlay.HistoryFile
	}

	if overlay.AmountDecimals != nil {
		base.AmountDecimals = overlay.AmountDecimals
	}

	return base
}

func validate(cfg Config) (slog.Level, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}

	if d := cfg.Decimals(); d < 0 || d > maxAmountDecimals {
		return 0, fmt.Errorf("%w: %w: %d (must be 0-%d)", ErrConfigInvalid, ErrInvalidDecimals, d, maxAmountDecimals)
	}

	return level, nil
}

// Format renders the effective configuration as key=value lines.
func Format(cfg Config) string {
	var b strings.Builder

	b.WriteString("log_level=" + strings.ToLower(cfg.Level.String()) + "\n")

	history := cfg.History()
	if history == "" {
		history = "(disabled)"
	}

	b.WriteString("history_file=" + history + "\n")
	fmt.Fprintf(&b, "amount_decimals=%d\n", cfg.Decimals())

	b.WriteString("\n# sources\n")

	if cfg.Sources.Global == "" && cfg.Sources.Explicit == "" {
		b.WriteString("(defaults only)\n")
	}

	if cfg.Sources.Global != "" {
		b.WriteString("global_config=" + cfg.Sources.Global + "\n")
	}

	if cfg.Sources.Explicit != "" {
		b.WriteString("explicit_config=" + cfg.Sources.Explicit + "\n")
	}

	return b.String()
}
