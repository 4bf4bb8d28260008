// Package display renders game output: a full-screen terminal view with a
// board panel and a log panel, and a plain line-oriented fallback.
package display

import (
	"strings"
	"sync"

	"github.com/pterm/pterm"

	"github.com/1ureka/salvo/internal/game"
)

const (
	maxLogEntries = 200 // log history kept by the terminal view
	mailboxSize   = 16
)

type entry struct {
	text     string
	severity game.Severity
}

// event is one mailbox message: a new grid or a new log entry.
type event struct {
	grid  *string
	entry *entry
}

// Terminal is a full-screen display. Draw and Log post to a mailbox that a
// single goroutine drains, so they are safe to call from any goroutine.
type Terminal struct {
	title   string
	debug   bool
	mailbox chan event
	done    chan struct{}
	stop    sync.Once
	stopped chan struct{}
}

// NewTerminal starts the display goroutine. Debug entries are only shown
// when debug is set. Call Close to restore the terminal.
func NewTerminal(title string, debug bool) (*Terminal, error) {
	area, err := pterm.DefaultArea.WithFullscreen().WithRemoveWhenDone().Start()
	if err != nil {
		return nil, err
	}

	t := &Terminal{
		title:   title,
		debug:   debug,
		mailbox: make(chan event, mailboxSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go t.run(area)

	return t, nil
}

// Draw replaces the board panel.
func (t *Terminal) Draw(grid string) {
	t.post(event{grid: &grid})
}

// Log appends an entry to the log panel.
func (t *Terminal) Log(text string, severity game.Severity) {
	if severity == game.SeverityDebug && !t.debug {
		return
	}
	t.post(event{entry: &entry{text: text, severity: severity}})
}

func (t *Terminal) post(ev event) {
	select {
	case t.mailbox <- ev:
	case <-t.done:
	}
}

// Close stops the display goroutine and waits for it to restore the screen.
func (t *Terminal) Close() {
	t.stop.Do(func() { close(t.done) })
	<-t.stopped
}

func (t *Terminal) run(area *pterm.AreaPrinter) {
	defer close(t.stopped)
	defer area.Stop()

	var v view
	area.Update(v.render(t.title))

	for {
		select {
		case ev := <-t.mailbox:
			v.apply(ev)
		case <-t.done:
			// Show what is still queued before leaving.
			for {
				select {
				case ev := <-t.mailbox:
					v.apply(ev)
				default:
					area.Update(v.render(t.title))
					return
				}
			}
		}
		area.Update(v.render(t.title))
	}
}

// view is the state of the terminal display.
type view struct {
	grid string
	logs []entry // oldest first, at most maxLogEntries
}

func (v *view) apply(ev event) {
	if ev.grid != nil {
		v.grid = *ev.grid
	}
	if ev.entry != nil {
		v.logs = append(v.logs, *ev.entry)
		if len(v.logs) > maxLogEntries {
			v.logs = v.logs[len(v.logs)-maxLogEntries:]
		}
	}
}

// render lays out the board box and the log box side by side. Logs are
// listed newest first.
func (v *view) render(title string) string {
	lines := make([]string, 0, len(v.logs))
	for i := len(v.logs) - 1; i >= 0; i-- {
		lines = append(lines, Style(v.logs[i].severity).Sprint(v.logs[i].text))
	}

	grid := v.grid
	if grid == "" {
		grid = pterm.Gray("waiting for the first draw...")
	}

	gridBox := pterm.DefaultBox.WithTitle(title).Sprint(grid)
	logBox := pterm.DefaultBox.WithTitle("Logs").Sprint(strings.Join(orNone(lines), "\n"))

	out, _ := pterm.DefaultPanel.WithPanels(pterm.Panels{
		{{Data: gridBox}, {Data: logBox}},
	}).Srender()
	return out
}

func orNone(lines []string) []string {
	if len(lines) == 0 {
		return []string{pterm.Gray("no events yet")}
	}
	return lines
}

// Style returns the pterm style used for a severity.
func Style(s game.Severity) *pterm.Style {
	switch s {
	case game.SeverityDebug:
		return pterm.NewStyle(pterm.FgGray)
	case game.SeverityHit:
		return pterm.NewStyle(pterm.FgGreen)
	case game.SeverityMiss:
		return pterm.NewStyle(pterm.FgLightBlue)
	case game.SeverityOpponentHit:
		return pterm.NewStyle(pterm.FgRed)
	case game.SeverityOpponentMiss:
		return pterm.NewStyle(pterm.FgCyan)
	case game.SeverityWon:
		return pterm.NewStyle(pterm.FgLightGreen, pterm.Bold)
	case game.SeverityLost:
		return pterm.NewStyle(pterm.FgLightRed, pterm.Bold)
	case game.SeverityError:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}
