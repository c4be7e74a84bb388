package game_test

import (
	"strings"
	"testing"
	"time"

	"github.com/corentings/chess/v2"

	"chessy/board"
	"chessy/game"
)

func replay(t *testing.T, pgn string) *chess.Game {
	t.Helper()
	opt, err := chess.PGN(strings.NewReader(pgn))
	if err != nil {
		t.Fatalf("PGN did not parse: %v\n%s", err, pgn)
	}
	return chess.NewGame(opt)
}

func TestRecordPGNCheckmate(t *testing.T) {
	s := newSession(t, game.SessionConfig{}, nil, nil)
	play(t, s, "f2f3", "e7e5", "g2g4", "d8h4")
	rec := s.Record()
	rec.Date = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	pgn, err := rec.PGN()
	if err != nil {
		t.Fatalf("PGN: %v", err)
	}
	for _, want := range []string{`[Date "2024.03.01"]`, `[White "?"]`, "1. ", "0-1"} {
		if !strings.Contains(pgn, want) {
			t.Fatalf("PGN missing %q:\n%s", want, pgn)
		}
	}
	if strings.Contains(pgn, "[FEN") {
		t.Fatalf("standard start written with a FEN tag:\n%s", pgn)
	}

	g := replay(t, pgn)
	if n := len(g.Moves()); n != 4 {
		t.Fatalf("replayed %d moves, want 4", n)
	}
	if g.Outcome() != chess.BlackWon || g.Method() != chess.Checkmate {
		t.Fatalf("replayed outcome %v by %v", g.Outcome(), g.Method())
	}
}

func TestRecordPGNFromPositionWithForfeit(t *testing.T) {
	fen := "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1"
	s := newSession(t, game.SessionConfig{FEN: fen}, nil, nil)
	play(t, s, "e4d5", "e8d7")
	if err := s.Forfeit(board.White); err != nil {
		t.Fatal(err)
	}
	pgn, err := s.Record().PGN()
	if err != nil {
		t.Fatalf("PGN: %v", err)
	}
	if !strings.Contains(pgn, `[SetUp "1"]`) || !strings.Contains(pgn, `[FEN "`+fen+`"]`) {
		t.Fatalf("custom start tags missing:\n%s", pgn)
	}
	if !strings.HasSuffix(pgn, "0-1") {
		t.Fatalf("white forfeit should score 0-1:\n%s", pgn)
	}
}

// Knight takes the last pawn: the PGN library calls that a dead draw, but
// the game is still running until someone mates, stalemates or gives up.
func TestRecordPGNKeepsSessionResult(t *testing.T) {
	s := newSession(t, game.SessionConfig{FEN: "4k3/8/8/3p4/8/2N5/8/4K3 w - - 0 1"}, nil, nil)
	play(t, s, "c3d5")

	pgn, err := s.Record().PGN()
	if err != nil {
		t.Fatalf("PGN: %v", err)
	}
	if !strings.Contains(pgn, `[Result "*"]`) || !strings.HasSuffix(pgn, "*") || strings.Contains(pgn, "1/2-1/2") {
		t.Fatalf("running game not exported as unfinished:\n%s", pgn)
	}

	if err := s.Forfeit(board.Black); err != nil {
		t.Fatal(err)
	}
	pgn, err = s.Record().PGN()
	if err != nil {
		t.Fatalf("PGN: %v", err)
	}
	if !strings.Contains(pgn, `[Result "1-0"]`) || !strings.HasSuffix(pgn, "1-0") {
		t.Fatalf("forfeit by Black not exported as 1-0:\n%s", pgn)
	}
}
