package render

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"chessy/board"
)

// SVG draws the board as a scalable image with unicode piece symbols.
type SVG struct {
	// Square is the side of one square in pixels; 0 means 48.
	Square int
}

const (
	svgLight       = "fill:#b0b0b0"
	svgDark        = "fill:#5a5a5a"
	svgLightActive = "fill:#c9c38a"
	svgDarkActive  = "fill:#8e8a55"
)

func (s SVG) size() int {
	if s.Square <= 0 {
		return 48
	}
	return s.Square
}

func (s SVG) Render(w io.Writer, v View, last board.Move) error {
	cw := &errWriter{w: w}
	sz := s.size()
	margin := sz / 2
	side := 8*sz + margin

	canvas := svg.New(cw)
	canvas.Start(side, side)
	canvas.Title(fmt.Sprintf("%v to move", v.SideToMove()))
	canvas.Rect(0, 0, side, side, "fill:#202020")

	label := fmt.Sprintf("font-family:monospace;font-size:%dpx;fill:#a0a0a0;text-anchor:middle", sz/3)
	pieceFont := fmt.Sprintf("font-family:serif;font-size:%dpx;text-anchor:middle;dominant-baseline:central", sz*3/4)

	squares(func(rank, file int, sq board.Square) {
		x, y := margin+file*sz, (7-rank)*sz
		canvas.Rect(x, y, sz, sz, squareStyle(sq, last))
		if p := v.PieceAt(sq); !p.IsEmpty() {
			fill := ";fill:#ffffff;stroke:#000000"
			if p.Is(board.Black) {
				fill = ";fill:#000000;stroke:#ffffff"
			}
			canvas.Text(x+sz/2, y+sz/2, p.Symbol(), pieceFont+fill)
		}
		if file == 0 {
			canvas.Text(margin/2, y+sz/2+sz/8, fmt.Sprint(rank+1), label)
		}
		if rank == 0 {
			canvas.Text(x+sz/2, 8*sz+margin*3/4, string(rune('a'+file)), label)
		}
	})
	canvas.End()
	return cw.err
}

func squareStyle(sq board.Square, last board.Move) string {
	active := isActive(last, sq)
	switch {
	case isLight(sq) && active:
		return svgLightActive
	case isLight(sq):
		return svgLight
	case active:
		return svgDarkActive
	default:
		return svgDark
	}
}

// errWriter keeps the first write error; svgo discards them.
type errWriter struct {
	w   io.Writer
	err error
}

func (c *errWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.err = err
	return n, err
}
