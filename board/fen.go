package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// FENStartPos is the FEN string for the standard initial chess position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is returned by ParseFEN for text that does not describe a
// playable position.
var ErrInvalidFEN = errors.New("board: invalid FEN")

// fenDefaults fill in the trailing fields a short FEN may leave out.
var fenDefaults = [...]string{"", "w", "-", "-", "0", "1"}

// ParseFEN reads the placement and side-to-move fields of a FEN string.
// Castling rights, en-passant target and move counters are accepted but
// ignored. Material missing from the board is booked as lost.
func ParseFEN(fen string) (b *Board, err error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 || len(fields) > len(fenDefaults) {
		return nil, fmt.Errorf("%w: want 2 to 6 fields, got %d", ErrInvalidFEN, len(fields))
	}
	if ranks := strings.Split(fields[0], "/"); len(ranks) != 8 {
		return nil, fmt.Errorf("%w: incorrect number of ranks", ErrInvalidFEN)
	}
	if fields[1] != "w" && fields[1] != "b" {
		return nil, fmt.Errorf("%w: side to move must be 'w' or 'b'", ErrInvalidFEN)
	}
	fields = append(fields, fenDefaults[len(fields):]...)

	defer func() {
		if r := recover(); r != nil {
			b, err = nil, fmt.Errorf("%w: %v", ErrInvalidFEN, r)
		}
	}()
	decoded := dragontoothmg.ParseFen(strings.Join(fields, " "))

	placement := make(map[Square]Piece, 32)
	collect(placement, White, &decoded.White)
	collect(placement, Black, &decoded.Black)
	if len(placement) != countPlacement(fields[0]) {
		return nil, fmt.Errorf("%w: unreadable placement %q", ErrInvalidFEN, fields[0])
	}

	toMove := White
	if !decoded.Wtomove {
		toMove = Black
	}
	b, err = FromPlacement(placement, toMove)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFEN, err)
	}
	return b, nil
}

// MustParseFEN is ParseFEN for positions known to be valid; it panics on error.
func MustParseFEN(fen string) *Board {
	b, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return b
}

func collect(placement map[Square]Piece, c Color, bbs *dragontoothmg.Bitboards) {
	sets := [...]struct {
		kind Kind
		bb   uint64
	}{
		{Pawn, bbs.Pawns},
		{Knight, bbs.Knights},
		{Bishop, bbs.Bishops},
		{Rook, bbs.Rooks},
		{Queen, bbs.Queens},
		{King, bbs.Kings},
	}
	for _, set := range sets {
		for _, sq := range Bitboard(set.bb).Squares() {
			placement[sq] = NewPiece(c, set.kind)
		}
	}
}

// countPlacement counts the piece letters in a FEN placement field and
// checks that every rank spans exactly eight files. It returns -1 when the
// field is malformed.
func countPlacement(field string) int {
	pieces := 0
	for _, rank := range strings.Split(field, "/") {
		files := 0
		for _, ch := range rank {
			switch {
			case ch >= '1' && ch <= '8':
				files += int(ch - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", ch):
				files++
				pieces++
			default:
				return -1
			}
		}
		if files != 8 {
			return -1
		}
	}
	return pieces
}

// ToFEN renders the position as FEN. The castling, en-passant and counter
// fields are always "- - 0 1".
func (b *Board) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[NewSquare(rank, file)]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteString(p.Glyph())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	if b.color == White {
		sb.WriteString(" w")
	} else {
		sb.WriteString(" b")
	}
	sb.WriteString(" - - 0 1")
	return sb.String()
}
