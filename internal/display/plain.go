package display

import (
	"fmt"
	"io"
	"sync"

	"github.com/1ureka/salvo/internal/game"
	"github.com/1ureka/salvo/internal/util"
)

// Plain writes boards to w and routes log entries to the process logger.
// It suits non-interactive terminals and piped output.
type Plain struct {
	mu     sync.Mutex
	w      io.Writer
	prefix string
}

// NewPlain creates a plain display. prefix tags every line, which keeps two
// local players apart in one output stream.
func NewPlain(w io.Writer, prefix string) *Plain {
	return &Plain{w: w, prefix: prefix}
}

func (p *Plain) Draw(grid string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.prefix != "" {
		fmt.Fprintf(p.w, "[%s]\n", p.prefix)
	}
	fmt.Fprintln(p.w, grid)
}

func (p *Plain) Log(text string, severity game.Severity) {
	if p.prefix != "" {
		text = "[" + p.prefix + "] " + text
	}

	switch severity {
	case game.SeverityDebug:
		util.LogDebug("%s", text)
	case game.SeverityWon:
		util.LogSuccess("%s", text)
	case game.SeverityLost, game.SeverityOpponentHit:
		util.LogWarning("%s", text)
	case game.SeverityError:
		util.LogError("%s", text)
	default:
		util.LogInfo("%s", text)
	}
}
