package game

import (
	"context"
	"io"
	"math/rand"

	"golang.org/x/exp/slices"

	"chessy/board"
	"chessy/engine"
)

// Player supplies moves for one side.
type Player interface {
	Name() string
	ChooseMove(ctx context.Context, b *board.Board) (board.Move, error)
}

// Random plays a uniformly random legal move.
type Random struct {
	rng *rand.Rand
}

func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Name() string { return "Random" }

func (r *Random) ChooseMove(_ context.Context, b *board.Board) (board.Move, error) {
	return randomMove(b, r.rng)
}

func randomMove(b *board.Board, rng *rand.Rand) (board.Move, error) {
	moves := b.PossibleMoves()
	if len(moves) == 0 {
		return board.InvalidMove, engine.ErrNoMove
	}
	return moves[rng.Intn(len(moves))], nil
}

// Players builds the two players the mode calls for. In ModeHuman the human
// reads from in and writes prompts to out; the engine takes the other side.
// In ModeMirror two engines with different tie-break seeds play each other.
func (cfg SessionConfig) Players(in io.Reader, out io.Writer) (white, black Player) {
	logger := cfg.logger()
	bot := func(seed int64) Player {
		return engine.NewBot(cfg.depth(), engine.WithLogger(logger), engine.WithTieBreak(seed))
	}
	if cfg.Mode == ModeMirror {
		return bot(cfg.Seed), bot(cfg.Seed + 1)
	}
	human := NewHuman(in, out, cfg.Seed)
	if cfg.HumanColor == board.Black {
		return bot(cfg.Seed), human
	}
	return human, bot(cfg.Seed)
}

// LegalMoves lists the legal moves of b in coordinate notation, sorted.
func LegalMoves(b *board.Board) []string {
	moves := b.PossibleMoves()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.String()
	}
	slices.Sort(out)
	return out
}
