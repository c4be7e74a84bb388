package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a set of squares, one bit per square (a1 = bit 0, h8 = bit 63).
type Bitboard uint64

// Has reports whether sq is in the set.
func (b Bitboard) Has(sq Square) bool { return b&sq.Bit() != 0 }

// Count returns the number of squares in the set.
func (b Bitboard) Count() int { return bits.OnesCount64(uint64(b)) }

// First returns the lowest-indexed member, or InvalidSquare for an empty set.
func (b Bitboard) First() Square {
	if b == 0 {
		return InvalidSquare
	}
	return SquareAt(bits.TrailingZeros64(uint64(b)))
}

// Squares lists the members in ascending index order.
func (b Bitboard) Squares() []Square {
	out := make([]Square, 0, b.Count())
	for b != 0 {
		idx := bits.TrailingZeros64(uint64(b))
		out = append(out, SquareAt(idx))
		b &= b - 1
	}
	return out
}

// String draws the set as an 8x8 grid, rank 8 on top.
func (b Bitboard) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			if b.Has(NewSquare(rank, file)) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
