// Package game runs a chess game between two players on top of the board
// and engine packages: turn order, outcome detection and the move record.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"chessy/board"
)

var log = slog.Default().With("package", "game")

var (
	// ErrIllegalMove is returned for moves the current position does not allow.
	ErrIllegalMove = errors.New("game: illegal move")
	// ErrNotation is returned for move text that is not coordinate notation.
	ErrNotation = errors.New("game: bad move notation")
	// ErrForfeit is returned by a player who gives up the game.
	ErrForfeit = errors.New("game: forfeit")
	// ErrGameOver is returned when a move is requested after the game ended.
	ErrGameOver = errors.New("game: game is over")
	// ErrNoPlayer is returned by Step when nobody plays the side to move.
	ErrNoPlayer = errors.New("game: no player for side to move")
)

// Mode selects who plays.
type Mode uint8

const (
	// ModeHuman pits a human against the engine.
	ModeHuman Mode = iota
	// ModeMirror lets the engine play both sides.
	ModeMirror
)

func (m Mode) String() string {
	if m == ModeMirror {
		return "mirror"
	}
	return "human"
}

// ParseMode reads "human" or "mirror".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "human":
		return ModeHuman, nil
	case "mirror":
		return ModeMirror, nil
	}
	return ModeHuman, fmt.Errorf("game: unknown mode %q", s)
}

// State is where a session is in its life cycle.
type State uint8

const (
	StateNone State = iota
	StatePlaying
	StateOver
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateOver:
		return "over"
	}
	return "none"
}

// Outcome tells how a finished game ended.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Checkmate
	Stalemate
	Forfeit
)

func (o Outcome) String() string {
	switch o {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case Forfeit:
		return "forfeit"
	}
	return "ongoing"
}

// DefaultDepth is the search depth used when SessionConfig.Depth is unset.
const DefaultDepth = 3

// SessionConfig holds everything a session needs to start.
type SessionConfig struct {
	Mode       Mode
	Depth      int
	HumanColor board.Color
	Seed       int64
	FEN        string // empty for the standard start
	Logger     *slog.Logger
}

func (cfg SessionConfig) depth() int {
	if cfg.Depth < 1 {
		return DefaultDepth
	}
	return cfg.Depth
}

func (cfg SessionConfig) logger() *slog.Logger {
	if cfg.Logger != nil {
		return cfg.Logger.With("package", "game")
	}
	return log
}

// Turn is one played move.
type Turn struct {
	Number int
	Mover  board.Color
	Piece  board.Piece
	Move   board.Move
	Check  bool
}

// String describes the turn, e.g. "White Pawn e2->e4".
func (t Turn) String() string {
	return fmt.Sprintf("%v %v->%v", t.Piece, t.Move.From, t.Move.To)
}

// Session is one game. It is not safe for concurrent use.
type Session struct {
	cfg     SessionConfig
	log     *slog.Logger
	players [2]Player

	start   *board.Board
	board   *board.Board
	history []Turn

	state   State
	outcome Outcome
	winner  board.Color
}

// NewSession sets up a game from cfg. Either player may be nil when moves
// are fed in through Play instead of Step.
func NewSession(cfg SessionConfig, white, black Player) (*Session, error) {
	start := board.New()
	if cfg.FEN != "" {
		b, err := board.ParseFEN(cfg.FEN)
		if err != nil {
			return nil, err
		}
		start = b
	}
	s := &Session{
		cfg:     cfg,
		log:     cfg.logger(),
		players: [2]Player{white, black},
		start:   start,
		board:   start,
	}
	return s, nil
}

// Start moves a fresh session into play. A start position without legal
// moves ends the game at once.
func (s *Session) Start() {
	if s.state != StateNone {
		return
	}
	s.state = StatePlaying
	s.log.Info("game started", "mode", s.cfg.Mode, "fen", s.start.ToFEN(),
		"white", playerName(s.players[board.White]), "black", playerName(s.players[board.Black]))
	s.settle()
}

func (s *Session) Config() SessionConfig { return s.cfg }
func (s *Session) Board() *board.Board { return s.board }
func (s *Session) StartBoard() *board.Board { return s.start }
func (s *Session) State() State { return s.state }
func (s *Session) Outcome() Outcome { return s.outcome }

// Winner returns the winning color; ok is false while playing and after a
// stalemate.
func (s *Session) Winner() (c board.Color, ok bool) {
	if s.outcome == Checkmate || s.outcome == Forfeit {
		return s.winner, true
	}
	return board.White, false
}

// Player returns who plays color c, possibly nil.
func (s *Session) Player(c board.Color) Player { return s.players[c] }

// History returns the turns played so far.
func (s *Session) History() []Turn {
	return append([]Turn(nil), s.history...)
}

// Moves returns the moves played so far.
func (s *Session) Moves() []board.Move {
	moves := make([]board.Move, len(s.history))
	for i, t := range s.history {
		moves[i] = t.Move
	}
	return moves
}

// LastMove returns the most recent move, or board.InvalidMove.
func (s *Session) LastMove() board.Move {
	if len(s.history) == 0 {
		return board.InvalidMove
	}
	return s.history[len(s.history)-1].Move
}

// Play makes m for the side to move. Only From and To are looked at; the
// move is rebuilt and checked against the current position.
func (s *Session) Play(m board.Move) (Turn, error) {
	s.Start()
	if s.state == StateOver {
		return Turn{}, ErrGameOver
	}
	legal := s.board.ComposeMove(m.From, m.To)
	if !legal.IsValid() {
		return Turn{}, &MoveError{Input: m.String(), Err: ErrIllegalMove}
	}

	mover := s.board.SideToMove()
	turn := Turn{
		Number: len(s.history) + 1,
		Mover:  mover,
		Piece:  s.board.PieceAt(legal.From),
		Move:   legal,
	}
	s.board = s.board.Apply(legal)
	turn.Check = s.board.InCheck()
	s.history = append(s.history, turn)
	s.log.Debug("move played", "turn", turn.Number, "move", turn.String(), "check", turn.Check)
	s.settle()
	return turn, nil
}

// PlayText parses coordinate notation such as "e2e4" and plays it.
func (s *Session) PlayText(text string) (Turn, error) {
	s.Start()
	if s.state == StateOver {
		return Turn{}, ErrGameOver
	}
	m, err := ParseMove(s.board, text)
	if err != nil {
		return Turn{}, err
	}
	return s.Play(m)
}

// Forfeit ends the game with color c giving up.
func (s *Session) Forfeit(c board.Color) error {
	s.Start()
	if s.state == StateOver {
		return ErrGameOver
	}
	s.finish(Forfeit, c.Other())
	return nil
}

// Step asks the player on move for a move and plays it. A player that
// forfeits ends the game; Step then returns ErrForfeit.
func (s *Session) Step(ctx context.Context) (Turn, error) {
	s.Start()
	if s.state == StateOver {
		return Turn{}, ErrGameOver
	}
	side := s.board.SideToMove()
	p := s.players[side]
	if p == nil {
		return Turn{}, ErrNoPlayer
	}
	m, err := p.ChooseMove(ctx, s.board)
	if errors.Is(err, ErrForfeit) {
		s.finish(Forfeit, side.Other())
		return Turn{}, ErrForfeit
	}
	if err != nil {
		return Turn{}, fmt.Errorf("game: %s failed to move: %w", p.Name(), err)
	}
	return s.Play(m)
}

// Run steps the game until it ends or ctx is cancelled, calling onTurn
// after every move when it is not nil.
func (s *Session) Run(ctx context.Context, onTurn func(Turn)) error {
	s.Start()
	for s.state == StatePlaying {
		if err := ctx.Err(); err != nil {
			return err
		}
		turn, err := s.Step(ctx)
		if errors.Is(err, ErrForfeit) {
			return nil
		}
		if err != nil {
			return err
		}
		if onTurn != nil {
			onTurn(turn)
		}
	}
	return nil
}

// Record returns the game so far as a record for export.
func (s *Session) Record() *Record {
	r := &Record{
		White:    playerName(s.players[board.White]),
		Black:    playerName(s.players[board.Black]),
		StartFEN: s.start.ToFEN(),
		Moves:    s.Moves(),
		Outcome:  s.outcome,
	}
	r.Winner, _ = s.Winner()
	return r
}

// settle ends the game when the side to move has no legal move.
func (s *Session) settle() {
	if s.state != StatePlaying || s.board.HasMoves() {
		return
	}
	if s.board.InCheck() {
		s.finish(Checkmate, s.board.SideToMove().Other())
	} else {
		s.finish(Stalemate, board.White)
	}
}

func (s *Session) finish(o Outcome, winner board.Color) {
	s.state = StateOver
	s.outcome = o
	s.winner = winner
	s.log.Info("game over", "outcome", o, "winner", winner, "moves", len(s.history))
}

func playerName(p Player) string {
	if p == nil {
		return "?"
	}
	return p.Name()
}
