package board

import (
	"errors"
	"fmt"
)

// ErrInvalidPosition is returned when a placement cannot form a playable board.
var ErrInvalidPosition = errors.New("board: invalid position")

// Board is one position. Boards are never changed after construction:
// Apply returns a new successor and leaves its receiver alone.
//
// mine and theirs are relative to the side to move, as are myLost and
// theirLost, so that Score is always from the mover's point of view.
type Board struct {
	squares [128]Piece // indexed by 0x88 square
	color   Color

	mine   Bitboard
	theirs Bitboard

	kings [2]Square

	myLost    int
	theirLost int
}

// Material each side starts with, kings excluded.
const startingMaterial = 8*100 + 2*300 + 2*300 + 2*500 + 900

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// New returns the standard starting position with White to move.
func New() *Board {
	placement := make(map[Square]Piece, 32)
	for file, k := range backRank {
		placement[NewSquare(0, file)] = NewPiece(White, k)
		placement[NewSquare(1, file)] = NewPiece(White, Pawn)
		placement[NewSquare(6, file)] = NewPiece(Black, Pawn)
		placement[NewSquare(7, file)] = NewPiece(Black, k)
	}
	b, err := FromPlacement(placement, White)
	if err != nil {
		panic(err)
	}
	return b
}

// FromPlacement builds a board from a square-to-piece mapping. Each color
// needs exactly one king, and the side not to move may not be in check. Material missing compared with the starting
// army is booked as already lost, so Score reflects the material balance.
func FromPlacement(placement map[Square]Piece, toMove Color) (*Board, error) {
	b := &Board{color: toMove, kings: [2]Square{InvalidSquare, InvalidSquare}}
	var occ [2]Bitboard
	var material [2]int
	for sq, p := range placement {
		if !sq.Valid() {
			return nil, fmt.Errorf("%w: piece on off-board square %v", ErrInvalidPosition, sq)
		}
		if p.IsEmpty() {
			continue
		}
		c := p.Color()
		b.squares[sq] = p
		occ[c] |= sq.Bit()
		if p.Kind() == King {
			if b.kings[c] != InvalidSquare {
				return nil, fmt.Errorf("%w: %v has more than one king", ErrInvalidPosition, c)
			}
			b.kings[c] = sq
			continue
		}
		material[c] += p.Value()
	}
	for _, c := range [...]Color{White, Black} {
		if b.kings[c] == InvalidSquare {
			return nil, fmt.Errorf("%w: %v has no king", ErrInvalidPosition, c)
		}
	}

	us, them := toMove, toMove.Other()
	b.mine, b.theirs = occ[us], occ[them]
	b.myLost = max(0, startingMaterial-material[us])
	b.theirLost = max(0, startingMaterial-material[them])
	if b.IsChecking() {
		return nil, fmt.Errorf("%w: %v is in check with %v to move", ErrInvalidPosition, them, us)
	}
	return b, nil
}

// PieceAt returns the piece on sq, or NoPiece for empty and invalid squares.
func (b *Board) PieceAt(sq Square) Piece {
	if !sq.Valid() {
		return NoPiece
	}
	return b.squares[sq]
}

// ColorAt returns the color of the piece on sq; ok is false on empty squares.
func (b *Board) ColorAt(sq Square) (c Color, ok bool) {
	p := b.PieceAt(sq)
	if p.IsEmpty() {
		return White, false
	}
	return p.Color(), true
}

// SideToMove is the color whose turn it is.
func (b *Board) SideToMove() Color { return b.color }

// KingSquare returns where the king of color c stands.
func (b *Board) KingSquare(c Color) Square { return b.kings[c] }

// Lost returns the material color c has lost so far, in centipawns.
func (b *Board) Lost(c Color) int {
	if c == b.color {
		return b.myLost
	}
	return b.theirLost
}

// Occupied returns the squares held by color c.
func (b *Board) Occupied(c Color) Bitboard {
	if c == b.color {
		return b.mine
	}
	return b.theirs
}

// Score is the material balance from the side to move's point of view.
func (b *Board) Score() int { return b.theirLost - b.myLost }

// Hash is a cheap position key built from the occupancy and side to move.
// Different positions may share a key.
func (b *Board) Hash() uint64 {
	h := uint64(b.mine) ^ uint64(b.theirs)*0x9E3779B97F4A7C15
	return h ^ uint64(b.color)
}

// Equal reports whether two boards describe the same position and tallies.
func (b *Board) Equal(o *Board) bool { return *b == *o }

// Validate checks the internal invariants: masks agree with the square
// array, never overlap, and both kings sit where they are recorded.
func (b *Board) Validate() error {
	if b.mine&b.theirs != 0 {
		return fmt.Errorf("%w: occupancy masks overlap on\n%v", ErrInvalidPosition, b.mine&b.theirs)
	}
	for i := 0; i < 64; i++ {
		sq := SquareAt(i)
		p := b.squares[sq]
		switch {
		case p.IsEmpty() && (b.mine|b.theirs).Has(sq):
			return fmt.Errorf("%w: %v is empty but marked occupied", ErrInvalidPosition, sq)
		case p.Is(b.color) && !b.mine.Has(sq):
			return fmt.Errorf("%w: %v missing from mover mask", ErrInvalidPosition, sq)
		case p.Is(b.color.Other()) && !b.theirs.Has(sq):
			return fmt.Errorf("%w: %v missing from opponent mask", ErrInvalidPosition, sq)
		}
	}
	for _, c := range [...]Color{White, Black} {
		if b.PieceAt(b.kings[c]) != NewPiece(c, King) {
			return fmt.Errorf("%w: %v king not on %v", ErrInvalidPosition, c, b.kings[c])
		}
	}
	return nil
}

// Describe names the piece on sq, e.g. "White Pawn".
func (b *Board) Describe(sq Square) string { return b.PieceAt(sq).String() }
