package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/corentings/chess/v2"

	"chessy/board"
)

// Record is a finished or running game in exportable form.
type Record struct {
	Event    string
	White    string
	Black    string
	Date     time.Time
	StartFEN string
	Moves    []board.Move
	Outcome  Outcome
	Winner   board.Color
}

// PGN renders the record as PGN with moves in standard algebraic notation.
// A start other than the initial position is written with FEN and SetUp
// tags. Moves the wider rules would not accept, such as a pawn reaching the
// last rank without promoting, make the export fail.
func (r *Record) PGN() (string, error) {
	var opts []func(*chess.Game)
	custom := r.StartFEN != "" && r.StartFEN != board.New().ToFEN()
	if custom {
		fenOpt, err := chess.FEN(r.StartFEN)
		if err != nil {
			return "", fmt.Errorf("record: start position: %w", err)
		}
		opts = append(opts, fenOpt)
	}
	g := chess.NewGame(opts...)

	event := r.Event
	if event == "" {
		event = "Casual game"
	}
	date := r.Date
	if date.IsZero() {
		date = time.Now()
	}
	g.AddTagPair("Event", event)
	g.AddTagPair("Site", "chessy")
	g.AddTagPair("Date", date.Format("2006.01.02"))
	g.AddTagPair("White", r.White)
	g.AddTagPair("Black", r.Black)
	if custom {
		g.AddTagPair("SetUp", "1")
		g.AddTagPair("FEN", r.StartFEN)
	}

	for i, m := range r.Moves {
		pos := g.Position()
		cm, err := chess.UCINotation{}.Decode(pos, m.String())
		if err != nil {
			return "", fmt.Errorf("record: move %d %v: %w", i+1, m, err)
		}
		san := chess.AlgebraicNotation{}.Encode(pos, cm)
		if err := g.PushMove(san, &chess.PushMoveOptions{ForceMainline: true}); err != nil {
			return "", fmt.Errorf("record: move %d %v (%s): %w", i+1, m, san, err)
		}
	}
	if r.Outcome == Forfeit {
		loser := chess.White
		if r.Winner == board.White {
			loser = chess.Black
		}
		g.Resign(loser)
	}

	// The library declares automatic draws (insufficient material, fivefold
	// repetition) on its own; the session's outcome is the one recorded.
	result := r.result()
	g.AddTagPair("Result", result.String())
	return strings.TrimSuffix(g.String(), g.Outcome().String()) + result.String(), nil
}

func (r *Record) result() chess.Outcome {
	switch r.Outcome {
	case Checkmate, Forfeit:
		if r.Winner == board.White {
			return chess.WhiteWon
		}
		return chess.BlackWon
	case Stalemate:
		return chess.Draw
	}
	return chess.NoOutcome
}
