package board

// Color is the side owning a piece.
type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing color.
func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

// Kind is a colorless piece type.
type Kind uint8

const (
	Empty  Kind = 0
	Pawn   Kind = 1
	Knight Kind = 2
	Bishop Kind = 3
	Rook   Kind = 4
	Queen  Kind = 5
	King   Kind = 6

	numKinds = 7
)

// Material values in centipawns.
var kindValues = [numKinds]int{
	Empty:  0,
	Pawn:   100,
	Knight: 300,
	Bishop: 300,
	Rook:   500,
	Queen:  900,
	King:   66600,
}

var kindNames = [numKinds]string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}

// Value is the material value of the kind in centipawns.
func (k Kind) Value() int {
	if k >= numKinds {
		return 0
	}
	return kindValues[k]
}

func (k Kind) String() string {
	if k >= numKinds {
		return "Unknown"
	}
	return kindNames[k]
}

// Piece packs a Kind in the low three bits and a Color in bit 3.
// The zero value is an empty square.
type Piece uint8

// NoPiece is the empty square.
const NoPiece Piece = 0

const colorShift = 3

// NewPiece combines a color and a kind. Empty kinds always yield NoPiece.
func NewPiece(c Color, k Kind) Piece {
	if k == Empty || k >= numKinds {
		return NoPiece
	}
	return Piece(k) | Piece(c)<<colorShift
}

func (p Piece) Kind() Kind { return Kind(p & 7) }
func (p Piece) Color() Color { return Color(p >> colorShift & 1) }
func (p Piece) IsEmpty() bool { return p.Kind() == Empty }
func (p Piece) Value() int { return p.Kind().Value() }
func (p Piece) index() int { return int(p.Color())*numKinds + int(p.Kind()) }
func (p Piece) Is(c Color) bool { return !p.IsEmpty() && p.Color() == c }

var (
	glyphs  = [2 * numKinds]string{" ", "P", "N", "B", "R", "Q", "K", " ", "p", "n", "b", "r", "q", "k"}
	symbols = [2 * numKinds]string{" ", "♙", "♘", "♗", "♖", "♕", "♔", " ", "♟", "♞", "♝", "♜", "♛", "♚"}
)

// Glyph is the ASCII letter for the piece, upper case for White.
func (p Piece) Glyph() string {
	if p.IsEmpty() {
		return " "
	}
	return glyphs[p.index()]
}

// Symbol is the unicode chess symbol for the piece.
func (p Piece) Symbol() string {
	if p.IsEmpty() {
		return " "
	}
	return symbols[p.index()]
}

// String describes the piece, e.g. "White Knight", or "Empty".
func (p Piece) String() string {
	if p.IsEmpty() {
		return Empty.String()
	}
	return p.Color().String() + " " + p.Kind().String()
}
