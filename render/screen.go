package render

import (
	"github.com/gdamore/tcell/v2"

	"chessy/board"
)

// Screen draws the board in the top-left corner of a tcell screen, with the
// same layout and palette as Text. Draw does not call Show, so callers can
// add their own lines below the board first.
type Screen struct {
	S       tcell.Screen
	Unicode bool
}

// Height is the number of rows Draw uses.
const Height = 9

var (
	screenLabel = tcell.StyleDefault.Foreground(tcell.Color241)

	screenWhitePiece = tcell.Color213
	screenBlackPiece = tcell.PaletteColor(14)

	screenLight       = tcell.Color238
	screenDark        = tcell.Color234
	screenLightActive = tcell.Color59
	screenDarkActive  = tcell.Color60
)

func (sc Screen) Draw(v View, last board.Move) {
	squares(func(rank, file int, sq board.Square) {
		y := 7 - rank
		if file == 0 {
			Puts(sc.S, 0, y, string(rune('1'+rank))+" ", screenLabel)
		}
		p := v.PieceAt(sq)
		glyph := p.Glyph()
		if sc.Unicode {
			glyph = p.Symbol()
		}
		st := tcell.StyleDefault.Background(screenSquare(sq, last)).Foreground(screenWhitePiece)
		if p.Is(board.Black) {
			st = st.Foreground(screenBlackPiece)
		}
		Puts(sc.S, 2+2*file, y, glyph+" ", st)
	})
	Puts(sc.S, 0, 8, "  a b c d e f g h", screenLabel)
}

func screenSquare(sq board.Square, last board.Move) tcell.Color {
	active := isActive(last, sq)
	switch {
	case isLight(sq) && active:
		return screenLightActive
	case isLight(sq):
		return screenLight
	case active:
		return screenDarkActive
	default:
		return screenDark
	}
}

// Puts writes s from column x on row y, one cell per rune.
func Puts(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
