package board

// PossibleMoves lists every legal move for the side to move, in board scan
// order (a1, b1, ... h8) and template order within a square.
func (b *Board) PossibleMoves() []Move {
	moves := make([]Move, 0, 48)
	return b.AppendMoves(moves)
}

// AppendMoves appends the legal moves to dst and returns the extended slice.
func (b *Board) AppendMoves(dst []Move) []Move {
	for own := b.mine; own != 0; own &= own - 1 {
		from := own.First()
		p := b.squares[from]
		for _, tpl := range Templates(p, from) {
			m := b.bind(from, tpl)
			if b.IsLegal(m, true) {
				dst = append(dst, m)
			}
		}
	}
	return dst
}

// HasMoves reports whether the side to move has at least one legal move.
func (b *Board) HasMoves() bool {
	for own := b.mine; own != 0; own &= own - 1 {
		from := own.First()
		p := b.squares[from]
		for _, tpl := range Templates(p, from) {
			if b.IsLegal(b.bind(from, tpl), true) {
				return true
			}
		}
	}
	return false
}

// bind turns a template into a move on this board, recording any capture.
func (b *Board) bind(from Square, tpl Template) Move {
	m := newMove(from, tpl)
	if b.theirs.Has(tpl.To) {
		m.Captured = b.squares[tpl.To].Kind()
	}
	return m
}

// IsLegal decides whether m may be played here. Blocking is judged from the
// move's path against the live occupancy. With checkSelfCheck set the move
// is also played out and rejected when the opponent could then take the
// mover's king.
func (b *Board) IsLegal(m Move, checkSelfCheck bool) bool {
	if !m.IsValid() || !b.mine.Has(m.From) {
		return false
	}
	dest := m.To.Bit()
	if m.Path&b.mine != 0 {
		return false // friend-blocked
	}
	if m.Path&^dest&b.theirs != 0 {
		return false // enemy en route
	}

	capture := b.theirs.Has(m.To)
	switch m.Rule {
	case RuleQuiet:
		if capture {
			return false
		}
	case RuleCapture:
		if !capture {
			return false
		}
	}
	if b.squares[m.From].Kind() == Pawn && m.From.File() != m.To.File() && !capture {
		return false
	}

	if checkSelfCheck && b.Apply(m).IsChecking() {
		return false
	}
	return true
}

// ComposeMove builds the move from one square to another for the side to
// move. It returns InvalidMove when there is no own piece on from, the
// piece cannot reach to, or the move is illegal.
func (b *Board) ComposeMove(from, to Square) Move {
	if !from.Valid() || !to.Valid() || !b.mine.Has(from) {
		return InvalidMove
	}
	tpl, ok := LookupTemplate(b.squares[from], from, to)
	if !ok {
		return InvalidMove
	}
	m := b.bind(from, tpl)
	if !b.IsLegal(m, true) {
		return InvalidMove
	}
	return m
}

// IsChecking reports whether the side to move attacks the opposing king,
// ignoring whether the attacking move would expose its own king.
func (b *Board) IsChecking() bool {
	target := b.kings[b.color.Other()]
	for own := b.mine; own != 0; own &= own - 1 {
		from := own.First()
		p := b.squares[from]
		if !Reach(p, from).Has(target) {
			continue
		}
		tpl, ok := LookupTemplate(p, from, target)
		if ok && b.IsLegal(b.bind(from, tpl), false) {
			return true
		}
	}
	return false
}

// InCheck reports whether the side to move has its king attacked.
func (b *Board) InCheck() bool {
	return b.pass().IsChecking()
}

// pass returns the position with the turn handed over and nothing moved.
func (b *Board) pass() *Board {
	next := *b
	next.flip()
	return &next
}
