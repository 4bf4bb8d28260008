// Command salvo plays battleship against a remote peer.
//
// Two players each run salvo and play battleship over a WebRTC DataChannel.
// The host starts a PIN-protected WebSocket signaling server; the client
// dials it. After signaling the peers talk directly. A local role plays both
// sides in-process.
//
// Settings come from SALVO_* environment variables (optionally loaded from a
// .env file) and can be overridden with flags. Without a role, the role is
// asked for interactively.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/1ureka/salvo/internal/app"
	"github.com/1ureka/salvo/internal/config"
	"github.com/1ureka/salvo/internal/game"
	"github.com/1ureka/salvo/internal/util"
)

var version = "dev"

// Exit codes.
const (
	exitWon   = 0
	exitError = 1
	exitLost  = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	// Root context, cancelled on Ctrl+C.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	envFile := flag.String("env", ".env", "Path to an optional .env file")
	role := flag.String("role", "", "Role: host, client or local")
	peerID := flag.String("id", "", "Peer identity (default: random UUID)")
	size := flag.Int("size", 0, "Grid size, 1~26")
	fleet := flag.String("fleet", "", "Comma-separated ship lengths, e.g. 5,4,3,3,2")
	tick := flag.Duration("tick", 0, "Interval between turns")
	strat := flag.String("strategy", "", "Target selection: random or model")
	seed := flag.Uint64("seed", 0, "Board and strategy seed (default: random)")
	tieBreak := flag.Bool("tiebreak", true, "Resolve crossed ready messages by peer identity")
	wsAddr := flag.String("wsAddr", "", "Signaling listen address (host only)")
	pin := flag.String("pin", "", "Signaling PIN (host: default random; client: appended to -wsUrl)")
	wsURL := flag.String("wsUrl", "", "Host WebSocket URL (client only)")
	plain := flag.Bool("plain", false, "Line-oriented output instead of the full-screen view")
	debugMode := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		util.LogError("%v", err)
		return exitError
	}

	// Flags set on the command line override the environment.
	var flagErr error
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "role":
			cfg.Role = config.Role(*role)
		case "id":
			cfg.PeerID = *peerID
		case "size":
			cfg.GridSize = *size
		case "fleet":
			lengths, err := parseFleet(*fleet)
			if err != nil {
				flagErr = err
			}
			cfg.Fleet = lengths
		case "tick":
			cfg.TickInterval = *tick
		case "strategy":
			cfg.Strategy = *strat
		case "seed":
			cfg.Seed = *seed
		case "tiebreak":
			cfg.TieBreak = *tieBreak
		case "wsAddr":
			cfg.ListenAddr = *wsAddr
		case "pin":
			cfg.PIN = *pin
		case "wsUrl":
			cfg.WSURL = *wsURL
		case "plain":
			cfg.Plain = *plain
		case "debug":
			cfg.Debug = *debugMode
		}
	})
	if flagErr != nil {
		util.LogError("%v", flagErr)
		return exitError
	}

	if cfg.Debug {
		util.EnableDebug()
	}

	pterm.Info.Println(fmt.Sprintf("Salvo — v%s", version))
	pterm.Println()

	if cfg.Role == "" {
		askRole(&cfg)
	}
	if cfg.Role == config.RoleClient && cfg.WSURL != "" {
		u, err := normalizeWSURL(cfg.WSURL, cfg.PIN)
		if err != nil {
			util.LogError("%v", err)
			return exitError
		}
		cfg.WSURL = u
	}
	if err := cfg.Validate(); err != nil {
		util.LogError("%v", err)
		return exitError
	}

	if cfg.Seed == 0 {
		s, err := util.NewSeed()
		if err != nil {
			util.LogError("%v", err)
			return exitError
		}
		cfg.Seed = s
	}
	util.LogDebug("peer id %s, seed %d", cfg.PeerID, cfg.Seed)

	var res game.Result
	switch cfg.Role {
	case config.RoleHost:
		res, err = app.RunHost(ctx, cfg)
	case config.RoleClient:
		res, err = app.RunClient(ctx, cfg)
	case config.RoleLocal:
		res, err = app.RunLocal(ctx, cfg)
	}

	return report(res, err)
}

// report prints the outcome banner and picks the exit code.
func report(res game.Result, err error) int {
	pterm.Println()
	switch {
	case errors.Is(err, context.Canceled):
		util.LogWarning("game aborted")
		return exitError
	case err != nil:
		util.LogError("game failed: %v", err)
		return exitError
	case res == game.ResultWon:
		pterm.DefaultHeader.WithFullWidth().
			WithBackgroundStyle(pterm.NewStyle(pterm.BgGreen)).
			Println("You won the game")
		return exitWon
	case res == game.ResultLost:
		pterm.DefaultHeader.WithFullWidth().
			WithBackgroundStyle(pterm.NewStyle(pterm.BgRed)).
			Println("You lost the game")
		return exitLost
	default:
		util.LogError("game ended without a result")
		return exitError
	}
}

// ---------------------------------------------------------------------------
// Interactive prompts
// ---------------------------------------------------------------------------

// askRole fills in the role, and for clients the host URL and PIN, when no
// -role flag or SALVO_ROLE is given.
func askRole(cfg *config.Config) {
	role, _ := pterm.DefaultInteractiveSelect.
		WithOptions([]string{
			"Host   — Wait for an opponent",
			"Client — Join a host",
			"Local  — Watch two bots play",
		}).
		WithDefaultText("Select your role").
		Show()

	pterm.Println()

	switch {
	case strings.HasPrefix(role, "Host"):
		cfg.Role = config.RoleHost
	case strings.HasPrefix(role, "Local"):
		cfg.Role = config.RoleLocal
	default:
		cfg.Role = config.RoleClient
		cfg.WSURL = askURL()
		if cfg.PIN == "" {
			cfg.PIN = askPIN()
		}
	}
}

// askURL prompts the user for a valid WebSocket URL until one is entered.
func askURL() string {
	for {
		raw, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultText("Host WebSocket URL (e.g. wss://***.devtunnels.ms/ws)").
			Show()

		if _, err := normalizeWSURL(raw, ""); err == nil {
			pterm.Println()
			return raw
		}

		pterm.Println()
		util.LogWarning("invalid input: please enter a valid host or URL")
	}
}

// askPIN prompts for the numeric PIN shown by the host.
func askPIN() string {
	for {
		raw, _ := pterm.DefaultInteractiveTextInput.
			WithDefaultText("PIN shown by the host").
			Show()

		pin := strings.TrimSpace(raw)
		if _, err := strconv.Atoi(pin); err == nil {
			pterm.Println()
			return pin
		}

		util.LogWarning("invalid PIN: digits only")
		pterm.Println()
	}
}

// ---------------------------------------------------------------------------
// Helper Functions
// ---------------------------------------------------------------------------

// normalizeWSURL validates a raw host URL and rewrites it to the signaling
// endpoint. The scheme defaults to wss. A non-empty pin replaces any pin in
// the query.
func normalizeWSURL(raw, pin string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "wss://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid WebSocket URL: %s", raw)
	}

	scheme := "wss"
	if u.Scheme == "ws" || u.Scheme == "wss" {
		scheme = u.Scheme
	}
	if pin == "" {
		pin = u.Query().Get("pin")
	}

	out := url.URL{Scheme: scheme, Host: u.Host, Path: "/ws"}
	if pin != "" {
		out.RawQuery = url.Values{"pin": {pin}}.Encode()
	}
	return out.String(), nil
}

// parseFleet parses a comma-separated list of ship lengths.
func parseFleet(raw string) ([]int, error) {
	var lengths []int
	for _, part := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid -fleet %q: %w", raw, err)
		}
		lengths = append(lengths, n)
	}
	return lengths, nil
}
