package game

import (
	"context"
	"fmt"

	"github.com/1ureka/salvo/internal/board"
	gerr "github.com/1ureka/salvo/internal/errors"
	"github.com/1ureka/salvo/internal/protocol"
	"github.com/1ureka/salvo/internal/strategy"
)

// maxSuggestAttempts bounds how often the strategy is asked for a target
// before the first free cell is taken instead.
const maxSuggestAttempts = 10

// Phase is the lifecycle stage of a Session.
type Phase uint8

const (
	PhaseInit Phase = iota
	PhaseHandshaking
	PhaseReady
	PhaseTerminated
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseHandshaking:
		return "handshaking"
	case PhaseReady:
		return "ready"
	case PhaseTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Turn tells which side may attack next.
type Turn uint8

const (
	TurnNone Turn = iota
	TurnLocal
	TurnRemote
)

func (t Turn) String() string {
	switch t {
	case TurnLocal:
		return "local"
	case TurnRemote:
		return "remote"
	default:
		return "none"
	}
}

// Result is the outcome of a finished game from the local point of view.
type Result uint8

const (
	ResultNone Result = iota
	ResultWon
	ResultLost
)

func (r Result) String() string {
	switch r {
	case ResultWon:
		return "won"
	case ResultLost:
		return "lost"
	default:
		return "none"
	}
}

// Config holds the per-session settings. It is copied at construction.
type Config struct {
	// LocalID and RemoteID identify the two peers. RemoteID may be left
	// empty, in which case the identity announced in the peer's Ready is
	// used.
	LocalID  string
	RemoteID string
	// TieBreak resolves crossed Ready messages: the smaller identity keeps
	// the first turn. Without it both sides keep the first turn.
	TieBreak bool
}

// Session is the protocol state machine for one game against one peer. It
// is not safe for concurrent use; a single driver goroutine owns it.
type Session struct {
	cfg      Config
	own      *board.Board
	tracking *board.TrackingBoard
	ledger   *Ledger
	strategy strategy.Strategy

	phase       Phase
	turn        Turn
	result      Result
	localReady  bool
	remoteReady bool
}

// NewSession creates a session in PhaseInit for the given own board. strat
// picks attack targets and must not be nil.
func NewSession(cfg Config, own *board.Board, strat strategy.Strategy) *Session {
	return &Session{
		cfg:      cfg,
		own:      own,
		tracking: board.NewTrackingBoard(own.Size()),
		ledger:   NewLedger(own.Size()),
		strategy: strat,
	}
}

func (s *Session) Phase() Phase { return s.phase }
func (s *Session) Turn() Turn { return s.turn }
func (s *Session) Result() Result { return s.result }
func (s *Session) Own() *board.Board { return s.own }
func (s *Session) Tracking() *board.TrackingBoard { return s.tracking }
func (s *Session) Ledger() *Ledger { return s.ledger }
func (s *Session) Terminated() bool { return s.phase == PhaseTerminated }
func (s *Session) Ready() (local, remote bool) { return s.localReady, s.remoteReady }

// Start moves the session from Init to Handshaking and draws the boards.
func (s *Session) Start() []Effect {
	if s.phase != PhaseInit {
		return nil
	}
	s.phase = PhaseHandshaking
	return []Effect{
		s.draw(),
		Log{Entry: fmt.Sprintf("waiting for opponent on a %dx%d grid", s.own.Size(), s.own.Size()), Severity: SeverityInfo},
	}
}

// Tick advances the session on a timer: it announces readiness during the
// handshake and attacks when the session holds the turn.
func (s *Session) Tick(ctx context.Context) []Effect {
	switch s.phase {
	case PhaseHandshaking:
		if s.localReady {
			return nil
		}
		s.localReady = true
		s.turn = TurnLocal
		return []Effect{
			Log{Entry: "game not ready yet; sending ready message to other player", Severity: SeverityDebug},
			Send{Message: protocol.Ready(s.cfg.LocalID, false)},
		}
	case PhaseReady:
		if s.turn != TurnLocal {
			return nil
		}
		return s.attack(ctx)
	default:
		return nil
	}
}

// HandleMessage applies an inbound message. A message that violates the
// protocol leaves the session unchanged, yields an error log effect and is
// returned as the error. Messages after termination are ignored.
func (s *Session) HandleMessage(msg protocol.Message) ([]Effect, error) {
	if s.phase == PhaseTerminated {
		return nil, nil
	}
	if err := msg.Validate(); err != nil {
		return s.reject(msg, err)
	}

	if msg.Kind != protocol.KindReady && s.phase != PhaseReady {
		return s.reject(msg, gerr.Newf(gerr.CodePrematureMessage, "%s received before the game is ready", msg.Kind))
	}

	switch msg.Kind {
	case protocol.KindReady:
		return s.handleReady(msg)
	case protocol.KindAttack:
		return s.handleAttack(msg)
	case protocol.KindHit, protocol.KindMiss:
		return s.handleReply(msg)
	case protocol.KindEndGame:
		return s.win(), nil
	default:
		return s.reject(msg, gerr.Newf(gerr.CodeWrongMessageType, "unknown message type %q", msg.Kind))
	}
}

func (s *Session) handleReady(msg protocol.Message) ([]Effect, error) {
	if s.remoteReady {
		return s.reject(msg, gerr.New(gerr.CodeWrongMessageType, "opponent already reported ready"))
	}
	s.remoteReady = true

	effects := []Effect{Log{Entry: "received ready message", Severity: SeverityDebug}}
	switch {
	case !s.localReady:
		s.localReady = true
		s.turn = TurnRemote
		effects = append(effects,
			Log{Entry: "sending ready message back", Severity: SeverityDebug},
			Send{Message: protocol.Ready(s.cfg.LocalID, true)},
		)
	case !msg.Reply && s.cfg.TieBreak:
		s.turn = s.breakTie(msg.Peer)
		effects = append(effects, Log{Entry: fmt.Sprintf("ready messages crossed; %s side attacks first", s.turn), Severity: SeverityDebug})
	}

	s.phase = PhaseReady
	effects = append(effects, s.draw())
	if s.turn == TurnLocal {
		effects = append(effects, Log{Entry: "game started; your turn", Severity: SeverityInfo})
	} else {
		effects = append(effects, Log{Entry: "game started; opponent's turn", Severity: SeverityInfo})
	}
	return effects, nil
}

// breakTie decides the turn after both sides sent an initiating Ready. The
// lexicographically smaller identity attacks first. Missing or equal
// identities leave the turn as it is.
func (s *Session) breakTie(announced string) Turn {
	local, remote := s.cfg.LocalID, s.cfg.RemoteID
	if remote == "" {
		remote = announced
	}
	if local == "" || remote == "" || local == remote {
		return s.turn
	}
	if local < remote {
		return TurnLocal
	}
	return TurnRemote
}

func (s *Session) handleAttack(msg protocol.Message) ([]Effect, error) {
	move := *msg.Move
	if err := s.ledger.ValidateIncomingAttack(move); err != nil {
		return s.reject(msg, err)
	}

	isHit := s.own.ResolveIncomingAttack(move.Coordinate)
	s.ledger.ResolveIncoming(isHit)
	s.turn = TurnLocal

	effects := []Effect{s.draw()}
	if isHit {
		effects = append(effects, Log{Entry: fmt.Sprintf("💥 %s: opponent attack hit", move.Coordinate), Severity: SeverityOpponentHit})
	} else {
		effects = append(effects, Log{Entry: fmt.Sprintf("💦 %s: opponent attack missed", move.Coordinate), Severity: SeverityOpponentMiss})
	}
	effects = append(effects, Send{Message: protocol.Reply(move, isHit)})

	if s.own.IsDefeated() {
		s.phase = PhaseTerminated
		s.result = ResultLost
		effects = append(effects,
			Send{Message: protocol.EndGame()},
			Log{Entry: "💔 you lost the game", Severity: SeverityLost},
		)
	}
	return effects, nil
}

func (s *Session) handleReply(msg protocol.Message) ([]Effect, error) {
	move := *msg.Move
	if err := s.ledger.ConfirmOutgoing(move, move.Outcome); err != nil {
		return s.reject(msg, err)
	}

	isHit := move.Outcome == board.OutcomeHit
	s.tracking.RecordOutgoingResult(move.Coordinate, isHit)

	effects := []Effect{s.draw()}
	if isHit {
		effects = append(effects, Log{Entry: fmt.Sprintf("☄️ %s: attack hit", move.Coordinate), Severity: SeverityHit})
	} else {
		effects = append(effects, Log{Entry: fmt.Sprintf("💦 %s: attack missed", move.Coordinate), Severity: SeverityMiss})
	}
	return effects, nil
}

func (s *Session) win() []Effect {
	s.phase = PhaseTerminated
	s.result = ResultWon
	return []Effect{
		s.draw(),
		Log{Entry: "🏆 you won the game", Severity: SeverityWon},
	}
}

func (s *Session) attack(ctx context.Context) []Effect {
	var effects []Effect

	target, ok := s.pickTarget(ctx, &effects)
	if !ok {
		return append(effects, Log{Entry: "no free cell left to attack", Severity: SeverityError})
	}
	move, err := s.ledger.RecordOutgoingAttack(target)
	if err != nil {
		return append(effects, Log{Entry: fmt.Sprintf("failed to attack: %v", err), Severity: SeverityError})
	}
	s.turn = TurnRemote

	msg := protocol.Attack(move)
	return append(effects,
		Log{Entry: fmt.Sprintf("sending attack message: %s", msg), Severity: SeverityDebug},
		Send{Message: msg},
	)
}

// pickTarget asks the strategy for an unattacked cell. A failing strategy
// falls back to (1,1); when that or every suggestion is taken, the first
// free cell in row-major order is used.
func (s *Session) pickTarget(ctx context.Context, effects *[]Effect) (board.Coordinate, bool) {
	size := s.own.Size()

	for attempt := 0; attempt < maxSuggestAttempts; attempt++ {
		c, err := s.strategy.SuggestNextAttack(ctx, size, s.ledger.SentTokens())
		if err != nil {
			*effects = append(*effects, Log{Entry: fmt.Sprintf("strategy failed: %v", err), Severity: SeverityError})
			if !s.ledger.Attacked(strategy.Fallback) {
				return strategy.Fallback, true
			}
			break
		}
		if !c.In(size) {
			*effects = append(*effects, Log{Entry: fmt.Sprintf("suggested target %s is off the grid", c), Severity: SeverityDebug})
			c = strategy.Fallback
		}
		if !s.ledger.Attacked(c) {
			*effects = append(*effects, Log{Entry: fmt.Sprintf("generated new attack point: %s", c), Severity: SeverityDebug})
			return c, true
		}
	}

	for y := 1; y <= size; y++ {
		for x := 1; x <= size; x++ {
			if c := board.At(x, y); !s.ledger.Attacked(c) {
				return c, true
			}
		}
	}
	return board.Coordinate{}, false
}

func (s *Session) reject(msg protocol.Message, err error) ([]Effect, error) {
	return []Effect{Log{Entry: fmt.Sprintf("rejected %s: %v", msg, err), Severity: SeverityError}}, err
}

func (s *Session) draw() Draw {
	return Draw{Grid: "Opponent\n" + s.tracking.Render() + "\n\nYour fleet\n" + s.own.Render(true)}
}
