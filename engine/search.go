package engine

import (
	"context"
	"log/slog"
	"time"

	"chessy/board"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	// MaxScore lies beyond any material balance a position can reach.
	MaxScore = 1_000_000
	MinScore = -MaxScore
)

var log = slog.Default().With("package", "engine")

// Searcher runs depth-bounded NegaMax searches. A Searcher holds no state
// between searches other than its ordering policy; a seeded tie-break
// policy makes it unsafe for concurrent use.
type Searcher struct {
	log   *slog.Logger
	order Orderer
}

// NewSearcher returns a searcher with capture-first ordering and the
// package logger, adjusted by opts.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{log: log, order: CaptureOrder{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the outcome of a root search.
type Result struct {
	Move  board.Move
	Score int
	Depth int
	Stats SearchStats

	// Interrupted is set when the context was cancelled before every root
	// move had been searched. Move is then the best among those that were.
	Interrupted bool
}

var defaultSearcher = NewSearcher()

// NegaMax scores b to the given depth from the side to move's point of
// view, using the default searcher.
func NegaMax(b *board.Board, depth, alpha, beta int) int {
	return defaultSearcher.NegaMax(b, depth, alpha, beta, nil)
}

// BestMove searches b with the default searcher.
func BestMove(ctx context.Context, b *board.Board, depth int) Result {
	return defaultSearcher.BestMove(ctx, b, depth)
}

// NegaMax is a fail-hard alpha-beta search. It returns b.Score() at depth
// zero and for positions without legal moves. Counters are added to stats
// when it is not nil.
func (s *Searcher) NegaMax(b *board.Board, depth, alpha, beta int, stats *SearchStats) int {
	if stats == nil {
		stats = &SearchStats{}
	}
	return s.negamax(b, depth, alpha, beta, stats)
}

func (s *Searcher) negamax(b *board.Board, depth, alpha, beta int, stats *SearchStats) int {
	stats.Nodes++
	if depth <= 0 {
		stats.Leaves++
		return b.Score()
	}
	moves := b.PossibleMoves()
	if len(moves) == 0 {
		stats.Leaves++
		return b.Score()
	}
	s.order.Order(moves)

	for _, m := range moves {
		v := -s.negamax(b.Apply(m), depth-1, -beta, -alpha, stats)
		if v >= beta {
			stats.BetaCutoffs++
			return beta
		}
		if v > alpha {
			alpha = v
		}
	}
	return alpha
}

// BestMove picks the move for the side to move. Root moves are tried in
// scan order, each with a full window, and a later move replaces the
// current best only when it scores strictly higher. Depths below one are
// searched at depth one. The context is checked between root moves.
func (s *Searcher) BestMove(ctx context.Context, b *board.Board, depth int) Result {
	if depth < 1 {
		depth = 1
	}
	start := time.Now()
	res := Result{Move: board.InvalidMove, Score: MinScore, Depth: depth}

	moves := b.PossibleMoves()
	s.log.Debug("search started", "side", b.SideToMove(), "depth", depth, "moves", len(moves))
	if len(moves) == 0 {
		res.Score = b.Score()
	}

	for _, m := range moves {
		if ctx.Err() != nil {
			res.Interrupted = true
			break
		}
		v := -s.negamax(b.Apply(m), depth-1, MinScore, MaxScore, &res.Stats)
		res.Stats.RootMoves++
		if !res.Move.IsValid() || v > res.Score {
			res.Move, res.Score = m, v
			s.log.Debug("new best", "move", m.String(), "score", v)
		}
	}

	res.Stats.Elapsed = time.Since(start)
	s.log.Debug("search finished",
		"move", res.Move.String(),
		"score", res.Score,
		"depth", depth,
		"interrupted", res.Interrupted,
		"stats", res.Stats)
	return res
}
