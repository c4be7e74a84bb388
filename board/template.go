package board

// Rule restricts when a template move may be played.
type Rule uint8

const (
	// RuleAny allows a quiet move or a capture.
	RuleAny Rule = iota
	// RuleQuiet requires an empty destination (pawn pushes).
	RuleQuiet
	// RuleCapture requires an enemy on the destination (pawn diagonals).
	RuleCapture
)

// Template is a precomputed candidate move for a piece on a given square,
// independent of any position. Path holds every square the piece crosses,
// destination included and source excluded.
type Template struct {
	To   Square
	Path Bitboard
	Rule Rule
}

// templateTable holds the candidate moves of every (piece, square) pair.
// It is filled once by init and never written again.
type templateTable struct {
	moves [2 * numKinds][64][]Template
	reach [2 * numKinds][64]Bitboard
}

var templates templateTable

func init() {
	templates.build()
}

func (t *templateTable) build() {
	for _, c := range [...]Color{White, Black} {
		for sq := 0; sq < 64; sq++ {
			from := SquareAt(sq)
			t.pawn(c, from)
			t.steps(NewPiece(c, Knight), from, knightJumps[:])
			t.steps(NewPiece(c, King), from, omnigonal[:])
			t.rays(NewPiece(c, Bishop), from, diagonal[:])
			t.rays(NewPiece(c, Rook), from, orthogonal[:])
			t.rays(NewPiece(c, Queen), from, omnigonal[:])
		}
	}
}

func (t *templateTable) add(p Piece, from Square, tpl Template) {
	i, sq := p.index(), from.Index()
	t.moves[i][sq] = append(t.moves[i][sq], tpl)
	t.reach[i][sq] |= tpl.To.Bit()
}

func (t *templateTable) pawn(c Color, from Square) {
	p := NewPiece(c, Pawn)
	forward, startRank := Up, 1
	if c == Black {
		forward, startRank = Down, 6
	}

	front := from.Add(forward)
	if !front.Valid() {
		return
	}
	t.add(p, from, Template{To: front, Path: front.Bit(), Rule: RuleQuiet})
	if from.Rank() == startRank {
		advance := front.Add(forward)
		t.add(p, from, Template{To: advance, Path: front.Bit() | advance.Bit(), Rule: RuleQuiet})
	}
	for _, side := range [...]Offset{Left, Right} {
		if to := front.Add(side); to.Valid() {
			t.add(p, from, Template{To: to, Path: to.Bit(), Rule: RuleCapture})
		}
	}
}

func (t *templateTable) steps(p Piece, from Square, deltas []Offset) {
	for _, d := range deltas {
		if to := from.Add(d); to.Valid() {
			t.add(p, from, Template{To: to, Path: to.Bit()})
		}
	}
}

// rays walks each direction outward from the source until it leaves the
// board, growing the path as it goes.
func (t *templateTable) rays(p Piece, from Square, deltas []Offset) {
	for _, d := range deltas {
		var path Bitboard
		for to := from.Add(d); to.Valid(); to = to.Add(d) {
			path |= to.Bit()
			t.add(p, from, Template{To: to, Path: path})
		}
	}
}

// Templates returns the candidate moves for p standing on from. The slice
// is shared and must not be modified.
func Templates(p Piece, from Square) []Template {
	if p.IsEmpty() || !from.Valid() {
		return nil
	}
	return templates.moves[p.index()][from.Index()]
}

// Reach is the union of all template destinations for p on from.
func Reach(p Piece, from Square) Bitboard {
	if p.IsEmpty() || !from.Valid() {
		return 0
	}
	return templates.reach[p.index()][from.Index()]
}

// LookupTemplate finds the template taking p from one square to another.
func LookupTemplate(p Piece, from, to Square) (Template, bool) {
	if !Reach(p, from).Has(to) {
		return Template{}, false
	}
	for _, tpl := range Templates(p, from) {
		if tpl.To == to {
			return tpl, true
		}
	}
	return Template{}, false
}
