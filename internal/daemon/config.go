// Package daemon manages the SpendQuest daemon lifecycle and configuration.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all daemon configuration.
type Config struct {
	API       APIConfig       `toml:"api"`
	Store     StoreConfig     `toml:"store"`
	Telemetry TelemetryConfig `toml:"telemetry"`
	Logging   LoggingConfig   `toml:"logging"`
	Rewards   RewardsConfig   `toml:"rewards"`
}

// APIConfig controls the HTTP API server.
type APIConfig struct {
	Host        string   `toml:"host"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// StoreConfig controls the progression store.
type StoreConfig struct {
	Dir     string `toml:"dir"`
	Timeout string `toml:"timeout"`
}

// TelemetryConfig controls observability endpoints.
type TelemetryConfig struct {
	Prometheus bool `toml:"prometheus"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// RewardsConfig tunes the XP economy. The level, achievement, and
// challenge catalogs themselves are compiled in; only award sizes and
// the freeze cost are configurable.
type RewardsConfig struct {
	XPExpense     int64 `toml:"xp_expense"`
	XPReportView  int64 `toml:"xp_report"`
	XPStreakDay   int64 `toml:"xp_streak_day"`
	XPUnderBudget int64 `toml:"xp_under_budget"`
	FreezeCost    int64 `toml:"freeze_cost"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	homeDir := spendquestHome()
	return Config{
		API: APIConfig{
			Host:        "127.0.0.1",
			Port:        7780,
			CORSOrigins: []string{"*"},
		},
		Store: StoreConfig{
			Dir:     homeDir,
			Timeout: "5s",
		},
		Telemetry: TelemetryConfig{
			Prometheus: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, "spendquest.log"),
		},
		Rewards: RewardsConfig{
			XPExpense:     10,
			XPReportView:  15,
			XPStreakDay:   20,
			XPUnderBudget: 25,
			FreezeCost:    100,
		},
	}
}

// LoadConfig reads config from ~/.spendquest/config.toml, falling back
// to defaults.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	path := filepath.Join(spendquestHome(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil // No config file yet — use defaults
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes the config to ~/.spendquest/config.toml.
func SaveConfig(cfg Config) error {
	path := filepath.Join(spendquestHome(), "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// StoreTimeout parses the configured store timeout.
func (c Config) StoreTimeout() time.Duration {
	return parseDuration(c.Store.Timeout, 5*time.Second)
}

// parseDuration parses a duration string, falling back on bad input.
func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// spendquestHome returns the SpendQuest data directory.
func spendquestHome() string {
	if env := os.Getenv("SPENDQUEST_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".spendquest")
}
