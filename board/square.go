package board

import "fmt"

// Square is a board coordinate in 0x88 layout: the rank lives in the high
// nibble and the file in the low three bits. Bits 0x88 are never set on a
// real square, so adding an Offset that walks off the board shows up there
// without an explicit bounds check.
type Square uint8

// Offset is a signed step between two squares.
type Offset int8

const (
	rankShift   = 4
	fileMask    = 0x07
	invalidMask = 0x88

	// InvalidSquare is the "no square" sentinel.
	InvalidSquare Square = 0x88
)

// Single steps. Composite steps are sums of these.
const (
	Up    Offset = 0x10
	Down  Offset = -Up
	Right Offset = 0x01
	Left  Offset = -Right

	UpRight   = Up + Right
	UpLeft    = Up + Left
	DownRight = Down + Right
	DownLeft  = Down + Left
)

var (
	orthogonal = [...]Offset{Up, Down, Right, Left}
	diagonal   = [...]Offset{UpRight, UpLeft, DownRight, DownLeft}
	omnigonal  = [...]Offset{Up, Down, Right, Left, UpRight, UpLeft, DownRight, DownLeft}

	knightJumps = [...]Offset{
		Up + UpLeft, Up + UpRight,
		Down + DownLeft, Down + DownRight,
		Left + UpLeft, Left + DownLeft,
		Right + UpRight, Right + DownRight,
	}
)

// NewSquare returns the square at the given zero-based rank and file.
// Out-of-range input yields an invalid square.
func NewSquare(rank, file int) Square {
	if rank < 0 || rank > 7 || file < 0 || file > 7 {
		return InvalidSquare
	}
	return Square(rank<<rankShift | file)
}

// SquareAt converts a 0..63 index (a1 = 0, h8 = 63) to a square.
func SquareAt(index int) Square {
	if index < 0 || index > 63 {
		return InvalidSquare
	}
	return NewSquare(index/8, index%8)
}

// ParseSquare reads algebraic text such as "e4". It returns InvalidSquare
// for anything that is not exactly a file letter a-h followed by a rank 1-8.
func ParseSquare(s string) Square {
	if len(s) != 2 {
		return InvalidSquare
	}
	file := int(s[0]|0x20) - 'a' // fold to lower case
	rank := int(s[1]) - '1'
	return NewSquare(rank, file)
}

// Add steps the square by o. The result may be invalid; check Valid before use.
func (sq Square) Add(o Offset) Square { return Square(uint8(int8(sq) + int8(o))) }

// Valid reports whether sq is one of the 64 board squares.
func (sq Square) Valid() bool { return sq&invalidMask == 0 }

func (sq Square) Rank() int { return int(sq >> rankShift) }
func (sq Square) File() int { return int(sq & fileMask) }

// Index is the dense 0..63 index of a valid square.
func (sq Square) Index() int { return sq.Rank()*8 + sq.File() }

// Bit returns the single-square bitboard for sq, or zero when sq is invalid.
func (sq Square) Bit() Bitboard {
	if !sq.Valid() {
		return 0
	}
	return Bitboard(1) << uint(sq.Index())
}

func (sq Square) String() string {
	if !sq.Valid() {
		return fmt.Sprintf("NA(%#x)", uint8(sq))
	}
	return string([]byte{'a' + byte(sq.File()), '1' + byte(sq.Rank())})
}
