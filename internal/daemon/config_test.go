package daemon

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("expected host 127.0.0.1, got %s", cfg.API.Host)
	}
	if cfg.API.Port != 7780 {
		t.Errorf("expected port 7780, got %d", cfg.API.Port)
	}
	if cfg.Store.Timeout != "5s" {
		t.Errorf("expected store timeout 5s, got %s", cfg.Store.Timeout)
	}
	if !cfg.Telemetry.Prometheus {
		t.Error("expected prometheus enabled by default")
	}
	if cfg.Rewards.XPExpense != 10 || cfg.Rewards.FreezeCost != 100 {
		t.Errorf("unexpected reward defaults: %+v", cfg.Rewards)
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"", 5 * time.Second},
		{"250ms", 250 * time.Millisecond},
		{"2s", 2 * time.Second},
		{"garbage", 5 * time.Second},
		{"-1s", 5 * time.Second},
	}
	for _, c := range cases {
		if got := parseDuration(c.in, 5*time.Second); got != c.want {
			t.Errorf("parseDuration(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestConfigRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SPENDQUEST_HOME", home)

	cfg := DefaultConfig()
	cfg.API.Port = 9911
	cfg.Rewards.FreezeCost = 250
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := os.Stat(filepath.Join(home, "config.toml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.API.Port != 9911 {
		t.Errorf("expected port 9911, got %d", loaded.API.Port)
	}
	if loaded.Rewards.FreezeCost != 250 {
		t.Errorf("expected freeze cost 250, got %d", loaded.Rewards.FreezeCost)
	}
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("SPENDQUEST_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != 7780 {
		t.Errorf("expected default port, got %d", cfg.API.Port)
	}
}
