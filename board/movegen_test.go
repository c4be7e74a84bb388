package board_test

import (
	"sort"
	"testing"

	"chessy/board"
)

func mustFEN(t testing.TB, fen string) *board.Board {
	t.Helper()
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func sq(t testing.TB, s string) board.Square {
	t.Helper()
	v := board.ParseSquare(s)
	if !v.Valid() {
		t.Fatalf("bad square %q", s)
	}
	return v
}

// movesFrom returns the destinations of the legal moves leaving from.
func movesFrom(b *board.Board, from board.Square) []string {
	var out []string
	for _, m := range b.PossibleMoves() {
		if m.From == from {
			out = append(out, m.To.String())
		}
	}
	sort.Strings(out)
	return out
}

func moveStrings(moves []board.Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func TestStartPositionMoves(t *testing.T) {
	b := board.New()
	moves := b.PossibleMoves()
	if len(moves) != 20 {
		t.Fatalf("start position: got %d moves want 20: %v", len(moves), moveStrings(moves))
	}
	for _, m := range moves {
		if m.IsCapture() {
			t.Fatalf("start position move %v marked as capture", m)
		}
	}
	if !b.Equal(mustFEN(t, board.FENStartPos)) {
		t.Fatalf("New() differs from parsed start FEN")
	}
}

func TestPossibleMovesScanOrder(t *testing.T) {
	moves := board.New().PossibleMoves()
	for i := 1; i < len(moves); i++ {
		if moves[i].From.Index() < moves[i-1].From.Index() {
			t.Fatalf("move %v listed after %v", moves[i], moves[i-1])
		}
	}
	if moves[0].From != board.ParseSquare("b1") {
		t.Fatalf("first move %v, want one from b1", moves[0])
	}
}

func TestLoneRookMoves(t *testing.T) {
	b := mustFEN(t, "7k/8/8/8/3R4/8/8/K7 w - - 0 1")
	if got := movesFrom(b, sq(t, "d4")); len(got) != 14 {
		t.Fatalf("lone rook: got %d moves want 14: %v", len(got), got)
	}
}

func TestRookFriendlyBlocker(t *testing.T) {
	b := mustFEN(t, "7k/3P4/8/8/3R4/8/8/K7 w - - 0 1")
	got := movesFrom(b, sq(t, "d4"))
	if len(got) != 12 {
		t.Fatalf("rook with friendly blocker: got %d moves want 12: %v", len(got), got)
	}
	for _, to := range got {
		if to == "d7" || to == "d8" {
			t.Fatalf("rook moved onto or past friendly blocker: %s", to)
		}
	}
}

func TestRookEnemyBlocker(t *testing.T) {
	b := mustFEN(t, "7k/3p4/8/8/3R4/8/8/K7 w - - 0 1")
	got := movesFrom(b, sq(t, "d4"))
	if len(got) != 13 {
		t.Fatalf("rook with enemy blocker: got %d moves want 13: %v", len(got), got)
	}
	m := b.ComposeMove(sq(t, "d4"), sq(t, "d7"))
	if !m.IsValid() || m.Captured != board.Pawn {
		t.Fatalf("d4d7 should capture a pawn, got %s", m.Describe())
	}
	if b.ComposeMove(sq(t, "d4"), sq(t, "d8")).IsValid() {
		t.Fatalf("rook jumped over enemy blocker to d8")
	}
}

func TestPinnedPieces(t *testing.T) {
	b := mustFEN(t, "k3r3/8/8/8/8/8/4B3/4K3 w - - 0 1")
	if got := movesFrom(b, sq(t, "e2")); len(got) != 0 {
		t.Fatalf("pinned bishop should have no moves, got %v", got)
	}

	b = mustFEN(t, "k3r3/8/8/8/8/8/4R3/4K3 w - - 0 1")
	got := movesFrom(b, sq(t, "e2"))
	if len(got) != 6 {
		t.Fatalf("pinned rook: got %v want e3..e8", got)
	}
	for _, to := range got {
		if to[0] != 'e' {
			t.Fatalf("pinned rook left the file: %s", to)
		}
	}
}

func TestPawnRules(t *testing.T) {
	// e2 is blocked straight ahead; d2 can push or take on either side.
	b := mustFEN(t, "4k3/8/8/8/8/2n1p3/3PP3/4K3 w - - 0 1")
	if got := movesFrom(b, sq(t, "e2")); len(got) != 0 {
		t.Fatalf("blocked pawn moved: %v", got)
	}
	got := movesFrom(b, sq(t, "d2"))
	want := []string{"c3", "d3", "d4", "e3"}
	if len(got) != len(want) {
		t.Fatalf("d2 pawn: got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("d2 pawn: got %v want %v", got, want)
		}
	}

	// A piece on the skipped square stops the double step.
	b = mustFEN(t, "4k3/8/8/8/8/3b4/3P4/4K3 w - - 0 1")
	if b.ComposeMove(sq(t, "d2"), sq(t, "d4")).IsValid() {
		t.Fatalf("pawn jumped over d3")
	}
	if b.ComposeMove(sq(t, "d2"), sq(t, "d3")).IsValid() {
		t.Fatalf("pawn captured straight ahead")
	}

	// No diagonal step onto an empty square.
	b = board.New()
	if b.ComposeMove(sq(t, "e2"), sq(t, "d3")).IsValid() {
		t.Fatalf("pawn moved diagonally onto an empty square")
	}
}

func TestBlackPawnsMoveDown(t *testing.T) {
	b := board.New().Apply(board.New().ComposeMove(board.ParseSquare("e2"), board.ParseSquare("e4")))
	got := movesFrom(b, sq(t, "e7"))
	if len(got) != 2 || got[0] != "e5" || got[1] != "e6" {
		t.Fatalf("black e7 pawn: got %v want [e5 e6]", got)
	}
}

func TestComposeMove(t *testing.T) {
	b := board.New()
	cases := []struct {
		from, to string
		ok       bool
	}{
		{"e2", "e4", true},
		{"g1", "f3", true},
		{"e2", "e5", false},
		{"e7", "e5", false}, // not the side to move
		{"e3", "e4", false}, // empty source
		{"a1", "a2", false}, // friendly destination
		{"c1", "e3", false}, // blocked bishop
	}
	for _, c := range cases {
		m := b.ComposeMove(sq(t, c.from), sq(t, c.to))
		if m.IsValid() != c.ok {
			t.Errorf("ComposeMove(%s, %s) valid = %v, want %v", c.from, c.to, m.IsValid(), c.ok)
		}
	}
	if m := b.ComposeMove(board.InvalidSquare, sq(t, "e4")); m != board.InvalidMove {
		t.Fatalf("ComposeMove from invalid square = %v", m)
	}
}

func TestCheckDetection(t *testing.T) {
	// White walks into the rook's file; Black is then checking.
	b := mustFEN(t, "4k3/3r4/8/8/8/8/8/4K3 w - - 0 1")
	d1 := sq(t, "d1")
	next := b.Apply(board.Move{From: sq(t, "e1"), To: d1, Path: d1.Bit()})
	if !next.IsChecking() {
		t.Fatalf("rook on d7 should be checking d1")
	}
	if next.InCheck() {
		t.Fatalf("black is not in check")
	}
	if m := b.ComposeMove(sq(t, "e1"), d1); m.IsValid() {
		t.Fatalf("king step into check accepted: %v", m)
	}

	b = mustFEN(t, "4k3/8/8/8/8/8/8/4R2K b - - 0 1")
	if !b.InCheck() {
		t.Fatalf("black should be in check")
	}
	if b.IsChecking() {
		t.Fatalf("black is not checking")
	}
	for _, m := range b.PossibleMoves() {
		if b.Apply(m).IsChecking() {
			t.Fatalf("move %v leaves black in check", m)
		}
	}

	// Blocked line: no check.
	b = mustFEN(t, "4k3/8/8/8/4P3/8/8/4R2K w - - 0 1")
	if b.IsChecking() {
		t.Fatalf("rook check through own pawn")
	}
}

func TestCheckmateHasNoMoves(t *testing.T) {
	b := mustFEN(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	if !b.InCheck() {
		t.Fatalf("back rank: black should be in check")
	}
	if b.HasMoves() || len(b.PossibleMoves()) != 0 {
		t.Fatalf("back rank mate: black has moves %v", moveStrings(b.PossibleMoves()))
	}

	stalemate := mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	if stalemate.InCheck() || stalemate.HasMoves() {
		t.Fatalf("stalemate position misjudged")
	}
}

func TestTemplateTable(t *testing.T) {
	wp := board.NewPiece(board.White, board.Pawn)
	if n := len(board.Templates(wp, sq(t, "e2"))); n != 4 {
		t.Fatalf("white pawn e2 templates: got %d want 4", n)
	}
	if n := len(board.Templates(wp, sq(t, "a3"))); n != 2 {
		t.Fatalf("white pawn a3 templates: got %d want 2", n)
	}
	if n := len(board.Templates(board.NewPiece(board.Black, board.Knight), sq(t, "a1"))); n != 2 {
		t.Fatalf("knight a1 templates: got %d want 2", n)
	}
	if n := len(board.Templates(board.NewPiece(board.White, board.Queen), sq(t, "d4"))); n != 27 {
		t.Fatalf("queen d4 templates: got %d want 27", n)
	}
	if board.Templates(board.NoPiece, sq(t, "d4")) != nil {
		t.Fatalf("empty piece has templates")
	}

	tpl, ok := board.LookupTemplate(board.NewPiece(board.White, board.Rook), sq(t, "a1"), sq(t, "a5"))
	if !ok {
		t.Fatalf("rook a1a5 template missing")
	}
	want := sq(t, "a2").Bit() | sq(t, "a3").Bit() | sq(t, "a4").Bit() | sq(t, "a5").Bit()
	if tpl.Path != want {
		t.Fatalf("rook a1a5 path:\n%v\nwant\n%v", tpl.Path, want)
	}
	if board.Reach(board.NewPiece(board.White, board.Bishop), sq(t, "c1")).Has(sq(t, "c2")) {
		t.Fatalf("bishop reach includes an orthogonal square")
	}
}

func TestMoveDescribe(t *testing.T) {
	b := mustFEN(t, "3rk3/8/8/8/8/8/8/3QK3 w - - 0 1")
	m := b.ComposeMove(sq(t, "d1"), sq(t, "d8"))
	if got := m.Describe(); got != "d1->d8 [Capture Rook]" {
		t.Fatalf("Describe = %q", got)
	}
	if got := board.InvalidMove.String(); got != "0000" {
		t.Fatalf("InvalidMove.String() = %q", got)
	}
}
