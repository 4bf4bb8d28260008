// Package config loads the salvo settings from the environment, optionally
// seeded from a .env file. Command-line flags are applied on top by the
// caller.
package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/1ureka/salvo/internal/board"
	gerr "github.com/1ureka/salvo/internal/errors"
)

// Role represents how this process joins a game.
type Role string

const (
	RoleHost   Role = "host"   // run the signaling server and wait for a peer
	RoleClient Role = "client" // dial a host's signaling server
	RoleLocal  Role = "local"  // play both sides in-process
)

// Strategy names.
const (
	StrategyRandom = "random"
	StrategyModel  = "model"
)

// LLM configures the model-driven strategy.
type LLM struct {
	URL     string        `env:"URL"     envDefault:"https://api.openai.com/v1/responses"`
	APIKey  string        `env:"API_KEY"`
	Model   string        `env:"MODEL"   envDefault:"gpt-4o-mini"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"20s"`
}

// Config stores every runtime parameter. An empty Role means the role is
// asked for interactively.
type Config struct {
	Role     Role   `env:"SALVO_ROLE"`
	PeerID   string `env:"SALVO_PEER_ID"`
	Strategy string `env:"SALVO_STRATEGY"  envDefault:"random"`
	LLM      LLM    `envPrefix:"SALVO_LLM_"`

	GridSize     int           `env:"SALVO_GRID_SIZE"     envDefault:"10"`
	Fleet        []int         `env:"SALVO_FLEET"         envDefault:"5,4,3,3,2" envSeparator:","`
	TickInterval time.Duration `env:"SALVO_TICK_INTERVAL" envDefault:"4s"`
	TieBreak     bool          `env:"SALVO_TIE_BREAK"     envDefault:"true"`
	Seed         uint64        `env:"SALVO_SEED"` // 0 draws a fresh seed

	ListenAddr    string        `env:"SALVO_LISTEN_ADDR"    envDefault:":0"` // Host
	PIN           string        `env:"SALVO_PIN"`                            // Host: generated when empty
	WSURL         string        `env:"SALVO_WS_URL"`                         // Client
	STUNServers   []string      `env:"SALVO_STUN_SERVERS" envSeparator:","`
	SendRate      float64       `env:"SALVO_SEND_RATE"      envDefault:"8"`
	SendBurst     int           `env:"SALVO_SEND_BURST"     envDefault:"4"`
	StatsInterval time.Duration `env:"SALVO_STATS_INTERVAL" envDefault:"30s"`

	Debug bool `env:"SALVO_DEBUG"`
	Plain bool `env:"SALVO_PLAIN"` // line-oriented output instead of the full-screen view
}

// Load reads envFile (skipped when empty or missing) into the process
// environment without overriding variables already set, then parses the
// environment into a Config. A missing peer identity is generated.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, gerr.Wrap(gerr.CodeInvalidConfig, "load "+envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, gerr.Wrap(gerr.CodeInvalidConfig, "parse env", err)
	}
	if strings.TrimSpace(cfg.PeerID) == "" {
		cfg.PeerID = uuid.NewString()
	}

	return cfg, nil
}

// Validate checks the settings that do not depend on the role prompt.
func (c Config) Validate() error {
	switch c.Role {
	case "", RoleHost, RoleClient, RoleLocal:
	default:
		return gerr.Newf(gerr.CodeInvalidConfig, "unknown role %q", c.Role)
	}

	if c.GridSize < 1 || c.GridSize > board.MaxSize {
		return gerr.Newf(gerr.CodeInvalidConfig, "grid size %d outside 1..%d", c.GridSize, board.MaxSize)
	}
	if len(c.Fleet) == 0 {
		return gerr.New(gerr.CodeInvalidConfig, "fleet is empty")
	}
	cells := 0
	for _, length := range c.Fleet {
		if length < 1 || length > c.GridSize {
			return gerr.Newf(gerr.CodeInvalidConfig, "ship length %d does not fit a %dx%d grid", length, c.GridSize, c.GridSize)
		}
		cells += length
	}
	if cells > c.GridSize*c.GridSize {
		return gerr.Newf(gerr.CodeInvalidConfig, "fleet needs %d cells, grid has %d", cells, c.GridSize*c.GridSize)
	}

	if c.TickInterval <= 0 {
		return gerr.Newf(gerr.CodeInvalidConfig, "tick interval must be positive, got %s", c.TickInterval)
	}
	if c.SendRate < 0 {
		return gerr.Newf(gerr.CodeInvalidConfig, "send rate must not be negative, got %v", c.SendRate)
	}

	switch c.Strategy {
	case StrategyRandom:
	case StrategyModel:
		if strings.TrimSpace(c.LLM.APIKey) == "" || strings.TrimSpace(c.LLM.Model) == "" {
			return gerr.New(gerr.CodeInvalidConfig, "model strategy needs SALVO_LLM_API_KEY and SALVO_LLM_MODEL")
		}
	default:
		return gerr.Newf(gerr.CodeInvalidConfig, "unknown strategy %q", c.Strategy)
	}

	if c.Role == RoleClient && strings.TrimSpace(c.WSURL) == "" {
		return gerr.New(gerr.CodeInvalidConfig, "client role needs a WebSocket URL")
	}
	return nil
}
