package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	gerr "github.com/1ureka/salvo/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.GridSize != 10 || cfg.TickInterval != 4*time.Second || !cfg.TieBreak || cfg.Strategy != StrategyRandom {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if want := []int{5, 4, 3, 3, 2}; len(cfg.Fleet) != len(want) {
		t.Fatalf("fleet = %v, want %v", cfg.Fleet, want)
	}
	if cfg.PeerID == "" {
		t.Fatal("peer id was not generated")
	}
	if cfg.LLM.URL == "" || cfg.LLM.Timeout != 20*time.Second {
		t.Fatalf("unexpected LLM defaults: %+v", cfg.LLM)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults do not validate: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SALVO_ROLE", "client")
	t.Setenv("SALVO_WS_URL", "ws://localhost:9000/ws?pin=1")
	t.Setenv("SALVO_GRID_SIZE", "8")
	t.Setenv("SALVO_FLEET", "3,2")
	t.Setenv("SALVO_TICK_INTERVAL", "250ms")
	t.Setenv("SALVO_TIE_BREAK", "false")
	t.Setenv("SALVO_PEER_ID", "alice")
	t.Setenv("SALVO_STRATEGY", "model")
	t.Setenv("SALVO_LLM_API_KEY", "sk-test")
	t.Setenv("SALVO_LLM_MODEL", "gpt-test")
	t.Setenv("SALVO_STUN_SERVERS", "stun:a.example:3478,stun:b.example:3478")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Role != RoleClient || cfg.GridSize != 8 || cfg.TickInterval != 250*time.Millisecond || cfg.TieBreak {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if len(cfg.Fleet) != 2 || cfg.Fleet[0] != 3 || cfg.Fleet[1] != 2 {
		t.Fatalf("fleet = %v, want [3 2]", cfg.Fleet)
	}
	if cfg.PeerID != "alice" || cfg.LLM.APIKey != "sk-test" || cfg.LLM.Model != "gpt-test" {
		t.Fatalf("identity or LLM block not applied: %+v", cfg)
	}
	if len(cfg.STUNServers) != 2 || cfg.STUNServers[1] != "stun:b.example:3478" {
		t.Fatalf("STUN servers = %v", cfg.STUNServers)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	const key = "SALVO_SEND_BURST"
	os.Unsetenv(key)
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(key+"=9\n"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SendBurst != 9 {
		t.Fatalf("SendBurst = %d, want 9 from the env file", cfg.SendBurst)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing env file should be skipped: %v", err)
	}
}

func TestLoadRejectsMalformedEnv(t *testing.T) {
	t.Setenv("SALVO_GRID_SIZE", "ten")
	if _, err := Load(""); !errors.Is(err, gerr.ErrInvalidConfig) {
		t.Fatalf("expected InvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Strategy:     StrategyRandom,
			GridSize:     10,
			Fleet:        []int{5, 4, 3, 3, 2},
			TickInterval: time.Second,
		}
	}

	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown role", func(c *Config) { c.Role = "spectator" }},
		{"grid too small", func(c *Config) { c.GridSize = 0 }},
		{"grid too large", func(c *Config) { c.GridSize = 27 }},
		{"empty fleet", func(c *Config) { c.Fleet = nil }},
		{"ship too long", func(c *Config) { c.GridSize = 4 }},
		{"fleet too large", func(c *Config) { c.GridSize = 2; c.Fleet = []int{2, 2, 2} }},
		{"zero tick", func(c *Config) { c.TickInterval = 0 }},
		{"negative send rate", func(c *Config) { c.SendRate = -1 }},
		{"unknown strategy", func(c *Config) { c.Strategy = "psychic" }},
		{"model without key", func(c *Config) { c.Strategy = StrategyModel; c.LLM.Model = "m" }},
		{"client without url", func(c *Config) { c.Role = RoleClient }},
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("baseline config rejected: %v", err)
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, gerr.ErrInvalidConfig) {
				t.Fatalf("expected InvalidConfig, got %v", err)
			}
		})
	}
}
