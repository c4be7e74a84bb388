package board

// Apply returns the position after m. The receiver is not modified. Apply
// does not check legality; callers pass moves from PossibleMoves or
// ComposeMove. Moving from an empty or opposing square, or onto a friendly
// piece, is a programming error and panics.
func (b *Board) Apply(m Move) *Board {
	from, to := m.From, m.To
	mover := b.PieceAt(from)
	if mover.IsEmpty() {
		panic("board.Apply: no piece on " + from.String())
	}
	if mover.Color() != b.color {
		panic("board.Apply: " + mover.String() + " moved out of turn")
	}
	if b.mine.Has(to) {
		panic("board.Apply: " + m.String() + " lands on a friendly piece")
	}

	next := *b
	src, dst := from.Bit(), to.Bit()
	if victim := next.squares[to]; !victim.IsEmpty() {
		next.theirLost += victim.Value()
		next.theirs &^= dst
	}
	next.squares[from] = NoPiece
	next.squares[to] = mover
	next.mine = next.mine&^src | dst
	if mover.Kind() == King {
		next.kings[b.color] = to
	}
	next.flip()
	return &next
}

// flip hands the turn to the other side, swapping every perspective-relative
// field along with it.
func (b *Board) flip() {
	b.color = b.color.Other()
	b.mine, b.theirs = b.theirs, b.mine
	b.myLost, b.theirLost = b.theirLost, b.myLost
}
