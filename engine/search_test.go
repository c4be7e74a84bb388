package engine_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"chessy/board"
	"chessy/engine"
)

func mustFEN(t testing.TB, fen string) *board.Board {
	t.Helper()
	b, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

// minimax is the unpruned reference search.
func minimax(b *board.Board, depth int) int {
	if depth == 0 {
		return b.Score()
	}
	moves := b.PossibleMoves()
	if len(moves) == 0 {
		return b.Score()
	}
	best := engine.MinScore
	for _, m := range moves {
		if v := -minimax(b.Apply(m), depth-1); v > best {
			best = v
		}
	}
	return best
}

var smallPositions = []string{
	"4k3/8/8/3p4/4P3/2N5/8/4K3 w - - 0 1",
	"r3k3/8/8/8/8/8/8/R3K3 w - - 0 1",
	"4k3/8/2n5/3p4/8/3B4/8/4K3 b - - 0 1",
	"4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1",
}

func TestNegaMaxDepthZeroIsScore(t *testing.T) {
	windows := [][2]int{
		{engine.MinScore, engine.MaxScore},
		{-50, 50},
		{100, 200},
		{-200, -100},
	}
	for _, fen := range smallPositions {
		b := mustFEN(t, fen)
		for _, w := range windows {
			if got := engine.NegaMax(b, 0, w[0], w[1]); got != b.Score() {
				t.Fatalf("%s window %v: NegaMax depth 0 = %d, Score = %d", fen, w, got, b.Score())
			}
		}
	}
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	for _, fen := range smallPositions {
		b := mustFEN(t, fen)
		want := minimax(b, 3)
		if got := engine.NegaMax(b, 3, engine.MinScore, engine.MaxScore); got != want {
			t.Errorf("%s: alpha-beta %d, minimax %d", fen, got, want)
		}
		shuffled := engine.NewSearcher(engine.WithTieBreak(7))
		if got := shuffled.NegaMax(b, 3, engine.MinScore, engine.MaxScore, nil); got != want {
			t.Errorf("%s: shuffled alpha-beta %d, minimax %d", fen, got, want)
		}
		res := engine.BestMove(context.Background(), b, 3)
		if res.Score != want {
			t.Errorf("%s: root score %d, minimax %d", fen, res.Score, want)
		}
	}
}

func TestBestMoveWinsMaterial(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1")
	for depth := 1; depth <= 3; depth++ {
		res := engine.BestMove(context.Background(), b, depth)
		if got := res.Move.String(); got != "d2d5" {
			t.Fatalf("depth %d: best move %s (score %d), want d2d5", depth, got, res.Score)
		}
		if res.Score != b.Score()+900 {
			t.Fatalf("depth %d: score %d, want a queen above %d", depth, res.Score, b.Score())
		}
	}
}

func TestBestMoveTiesKeepScanOrder(t *testing.T) {
	b := board.New()
	res := engine.BestMove(context.Background(), b, 1)
	if first := b.PossibleMoves()[0]; res.Move != first {
		t.Fatalf("tied root moves: got %v want first scanned %v", res.Move, first)
	}
	if res.Score != 0 {
		t.Fatalf("start position depth 1 score %d", res.Score)
	}
	if res.Stats.RootMoves != 20 {
		t.Fatalf("root moves searched: %d", res.Stats.RootMoves)
	}
}

func TestBestMoveWithoutLegalMoves(t *testing.T) {
	b := mustFEN(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")
	res := engine.BestMove(context.Background(), b, 3)
	if res.Move != board.InvalidMove {
		t.Fatalf("mated side got move %v", res.Move)
	}
	if res.Score != b.Score() {
		t.Fatalf("score %d, want material %d", res.Score, b.Score())
	}
}

func TestBestMoveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := engine.BestMove(ctx, board.New(), 4)
	if !res.Interrupted {
		t.Fatalf("cancelled search not marked interrupted")
	}
	if res.Move.IsValid() || res.Stats.RootMoves != 0 {
		t.Fatalf("cancelled search produced %v after %d root moves", res.Move, res.Stats.RootMoves)
	}
}

func TestDepthClampedToOne(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1")
	res := engine.BestMove(context.Background(), b, 0)
	if res.Depth != 1 || res.Move.String() != "d2d5" {
		t.Fatalf("depth 0 search: depth %d move %v", res.Depth, res.Move)
	}
}

func TestBestMoveLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	b := mustFEN(t, "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1")

	quiet := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	engine.NewSearcher(engine.WithLogger(quiet)).BestMove(context.Background(), b, 2)
	if buf.Len() != 0 {
		t.Fatalf("search logged above debug: %s", buf.String())
	}

	loud := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	engine.NewSearcher(engine.WithLogger(loud)).BestMove(context.Background(), b, 2)
	if !strings.Contains(buf.String(), "search finished") {
		t.Fatalf("debug log missing search summary: %s", buf.String())
	}
}

func TestSearchStatsCounted(t *testing.T) {
	var stats engine.SearchStats
	s := engine.NewSearcher()
	s.NegaMax(board.New(), 3, engine.MinScore, engine.MaxScore, &stats)
	if stats.Nodes == 0 || stats.Leaves == 0 || stats.Leaves > stats.Nodes {
		t.Fatalf("stats: %+v", stats)
	}
	if stats.BetaCutoffs == 0 {
		t.Fatalf("no cutoffs at depth 3 from the start position: %+v", stats)
	}
	if stats.Leaves >= board.Perft(board.New(), 3) {
		t.Fatalf("alpha-beta visited %d leaves, no fewer than perft", stats.Leaves)
	}
}

func TestBotChooseMove(t *testing.T) {
	bot := engine.NewBot(2)
	m, err := bot.ChooseMove(context.Background(), mustFEN(t, "4k3/8/8/3q4/8/8/3R4/4K3 w - - 0 1"))
	if err != nil || m.String() != "d2d5" {
		t.Fatalf("ChooseMove = %v, %v", m, err)
	}
	if _, err := bot.ChooseMove(context.Background(), mustFEN(t, "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1")); err != engine.ErrNoMove {
		t.Fatalf("mated bot error = %v, want ErrNoMove", err)
	}
	if bot.Name() != "Chessy (depth 2)" {
		t.Fatalf("Name = %q", bot.Name())
	}
}

func BenchmarkBestMoveDepth3(b *testing.B) {
	pos := board.New()
	s := engine.NewSearcher()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.BestMove(context.Background(), pos, 3)
	}
}
