package engine

import (
	"math/rand"

	"golang.org/x/exp/slices"

	"chessy/board"
)

// Orderer arranges a move list in the order the search visits it.
type Orderer interface {
	Order(moves []board.Move)
}

// CaptureOrder puts captures first, most valuable victim first. Moves of
// equal value keep their generation order.
type CaptureOrder struct{}

func (CaptureOrder) Order(moves []board.Move) {
	slices.SortStableFunc(moves, byCapturedValue)
}

func byCapturedValue(a, b board.Move) int {
	return b.Captured.Value() - a.Captured.Value()
}

// ShuffledCaptureOrder orders like CaptureOrder but breaks ties between
// moves of equal value at random, from a fixed seed so runs repeat.
type ShuffledCaptureOrder struct {
	rng *rand.Rand
}

// NewShuffledCaptureOrder returns a tie-breaking policy seeded with seed.
func NewShuffledCaptureOrder(seed int64) *ShuffledCaptureOrder {
	return &ShuffledCaptureOrder{rng: rand.New(rand.NewSource(seed))}
}

func (o *ShuffledCaptureOrder) Order(moves []board.Move) {
	o.rng.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})
	slices.SortStableFunc(moves, byCapturedValue)
}

// OrderedMoves returns the legal moves of b in the order the default policy
// would search them.
func OrderedMoves(b *board.Board) []board.Move {
	moves := b.PossibleMoves()
	CaptureOrder{}.Order(moves)
	return moves
}
