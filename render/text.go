package render

import (
	"bufio"
	"fmt"
	"io"

	"chessy/board"
)

const (
	esc   = "\x1b["
	reset = esc + "0m"
	fg    = esc + "38;5;"
	bg    = esc + "48;5;"

	labelColor = fg + "241m"
	whitePiece = fg + "213m"
	blackPiece = fg + "14m"

	lightSquare       = bg + "238m"
	darkSquare        = bg + "234m"
	lightSquareActive = bg + "59m"
	darkSquareActive  = bg + "60m"

	// ClearScreen wipes the terminal and homes the cursor.
	ClearScreen = esc + "2J" + esc + "H"
)

// Text renders a checkerboard with rank numbers down the left and file
// letters along the bottom. Plain drops the escape codes and marks empty
// squares with '.'; Unicode uses chess symbols instead of letters.
type Text struct {
	Plain   bool
	Unicode bool
}

func (t Text) Render(w io.Writer, v View, last board.Move) error {
	bw := bufio.NewWriter(w)
	squares(func(rank, file int, sq board.Square) {
		if file == 0 {
			t.label(bw, fmt.Sprintf("%d ", rank+1))
		}
		t.square(bw, v.PieceAt(sq), sq, last)
		if file == 7 {
			if !t.Plain {
				bw.WriteString(reset)
			}
			bw.WriteByte('\n')
		}
	})
	t.label(bw, "  a b c d e f g h")
	bw.WriteByte('\n')
	if t.Plain {
		fmt.Fprintf(bw, "%v to move\n", v.SideToMove())
	}
	return bw.Flush()
}

func (t Text) label(bw *bufio.Writer, s string) {
	if t.Plain {
		bw.WriteString(s)
		return
	}
	bw.WriteString(labelColor + s + reset)
}

func (t Text) square(bw *bufio.Writer, p board.Piece, sq board.Square, last board.Move) {
	glyph := p.Glyph()
	if t.Unicode {
		glyph = p.Symbol()
	}
	if t.Plain {
		if p.IsEmpty() {
			glyph = "."
		}
		bw.WriteString(glyph + " ")
		return
	}

	active := isActive(last, sq)
	switch {
	case isLight(sq) && active:
		bw.WriteString(lightSquareActive)
	case isLight(sq):
		bw.WriteString(lightSquare)
	case active:
		bw.WriteString(darkSquareActive)
	default:
		bw.WriteString(darkSquare)
	}
	if p.Is(board.White) {
		bw.WriteString(whitePiece)
	} else {
		bw.WriteString(blackPiece)
	}
	bw.WriteString(glyph + " ")
}
