// Package render draws positions for people: ANSI text for terminals and
// SVG for browsers.
package render

import (
	"io"

	"chessy/board"
)

// View is the read-only part of a position a renderer needs.
type View interface {
	PieceAt(sq board.Square) board.Piece
	SideToMove() board.Color
}

// Renderer writes a picture of v to w, marking the squares of last when it
// is a valid move.
type Renderer interface {
	Render(w io.Writer, v View, last board.Move) error
}

// squares yields the board top rank first, a-file first, as a viewer sees it.
func squares(fn func(rank, file int, sq board.Square)) {
	for rank := 7; rank >= 0; rank-- {
		for file := 0; file < 8; file++ {
			fn(rank, file, board.NewSquare(rank, file))
		}
	}
}

func isLight(sq board.Square) bool { return (sq.Rank()+sq.File())%2 == 1 }

func isActive(last board.Move, sq board.Square) bool {
	return last.IsValid() && (sq == last.From || sq == last.To)
}
