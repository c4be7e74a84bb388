package engine

import (
	"context"
	"errors"
	"fmt"

	"chessy/board"
)

// ErrNoMove is returned by a bot asked to move in a position without legal moves.
var ErrNoMove = errors.New("engine: no legal move")

// Bot plays the moves its searcher finds at a fixed depth.
type Bot struct {
	Depth    int
	searcher *Searcher
}

func NewBot(depth int, opts ...Option) *Bot {
	return &Bot{Depth: depth, searcher: NewSearcher(opts...)}
}

func (b *Bot) Name() string {
	return fmt.Sprintf("Chessy (depth %d)", b.Depth)
}

// ChooseMove searches pos and returns the best move. A cancelled context
// still yields the best move found so far when at least one root move was
// searched.
func (b *Bot) ChooseMove(ctx context.Context, pos *board.Board) (board.Move, error) {
	res := b.searcher.BestMove(ctx, pos, b.Depth)
	if !res.Move.IsValid() {
		if res.Interrupted {
			return board.InvalidMove, ctx.Err()
		}
		return board.InvalidMove, ErrNoMove
	}
	return res.Move, nil
}

// Search exposes the full result of a root search at the bot's depth.
func (b *Bot) Search(ctx context.Context, pos *board.Board) Result {
	return b.searcher.BestMove(ctx, pos, b.Depth)
}
