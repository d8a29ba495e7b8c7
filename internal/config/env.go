package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Env is the runtime configuration read from MAGES_TOWER_* variables.
type Env struct {
	DataDir      string        `env:"MAGES_TOWER_DATA_DIR"`
	LogLevel     string        `env:"MAGES_TOWER_LOG_LEVEL" envDefault:"info"`
	Tick         time.Duration `env:"MAGES_TOWER_TICK" envDefault:"1s"`
	AutoRefresh  time.Duration `env:"MAGES_TOWER_AUTO_REFRESH" envDefault:"30s"`
	Sound        bool          `env:"MAGES_TOWER_SOUND" envDefault:"false"`
	Seed         int64         `env:"MAGES_TOWER_SEED"`
	OTelEndpoint string        `env:"MAGES_TOWER_OTEL_ENDPOINT"`
	ExportPath   string        `env:"MAGES_TOWER_EXPORT_PATH"`
}

// Load parses the environment and fills derived defaults.
func Load() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	if e.DataDir == "" {
		dir, err := DataDir()
		if err != nil {
			return Env{}, err
		}
		e.DataDir = dir
	}
	if e.ExportPath == "" {
		e.ExportPath = filepath.Join(e.DataDir, "tower_autosave.json")
	}
	return e, nil
}

// Rules applies the runtime overrides on top of the default balance.
func (e Env) Rules() Rules {
	r := Default()
	if e.Tick > 0 {
		r.TickInterval = e.Tick
	}
	// Zero disables the periodic refresh.
	if e.AutoRefresh >= 0 {
		r.AutoRefresh = e.AutoRefresh
	}
	return r
}

// Level maps LogLevel onto a slog level, defaulting to info.
func (e Env) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(e.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// DataDir returns the directory for saves and run logs.
// Follows XDG Base Directory spec: $XDG_DATA_HOME/mages-tower,
// defaulting to ~/.local/share/mages-tower.
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "mages-tower"), nil
}
