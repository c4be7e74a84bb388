package board

import "fmt"

// Move is a template move bound to a position: the template's path plus the
// kind of piece it captures, if any.
type Move struct {
	From     Square
	To       Square
	Path     Bitboard
	Rule     Rule
	Captured Kind
}

// InvalidMove stands for "no move".
var InvalidMove = Move{From: InvalidSquare, To: InvalidSquare}

func newMove(from Square, tpl Template) Move {
	return Move{From: from, To: tpl.To, Path: tpl.Path, Rule: tpl.Rule}
}

// IsValid reports whether m names two real squares.
func (m Move) IsValid() bool { return m.From.Valid() && m.To.Valid() }

// IsCapture reports whether m takes a piece.
func (m Move) IsCapture() bool { return m.Captured != Empty }

// String renders the move in coordinate notation ("e2e4"), or "0000" for
// the invalid move.
func (m Move) String() string {
	if !m.IsValid() {
		return "0000"
	}
	return m.From.String() + m.To.String()
}

// Describe renders the move with arrows and a capture marker, e.g.
// "d1->d8 [Capture Rook]".
func (m Move) Describe() string {
	if !m.IsValid() {
		return fmt.Sprintf("%v->%v [Invalid]", m.From, m.To)
	}
	if m.IsCapture() {
		return fmt.Sprintf("%v->%v [Capture %v]", m.From, m.To, m.Captured)
	}
	return fmt.Sprintf("%v->%v [Regular]", m.From, m.To)
}
