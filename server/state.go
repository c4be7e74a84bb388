package server

import (
	"fmt"

	"chessy/board"
	"chessy/game"
)

type newGameRequest struct {
	Mode  string `json:"mode"`
	Depth int    `json:"depth"`
	FEN   string `json:"fen"`
	Human string `json:"human"`
}

type moveRequest struct {
	Move string `json:"move"`
}

// GameState is the JSON view of a game sent to clients.
type GameState struct {
	ID       string   `json:"id"`
	Mode     string   `json:"mode"`
	FEN      string   `json:"fen"`
	Side     string   `json:"side"`
	Moves    []string `json:"moves"`
	Check    bool     `json:"check"`
	State    string   `json:"state"`
	Outcome  string   `json:"outcome"`
	Winner   string   `json:"winner,omitempty"`
	History  []string `json:"history"`
	LastMove string   `json:"last,omitempty"`
	Version  string   `json:"version"`
}

// Suggestion is an engine recommendation for the side to move.
type Suggestion struct {
	Move        string `json:"move"`
	Score       int    `json:"score"`
	Depth       int    `json:"depth"`
	Nodes       uint64 `json:"nodes"`
	Interrupted bool   `json:"interrupted,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

// snapshot must be called with rm.mu held.
func (rm *room) snapshot() GameState {
	s := rm.session
	b := s.Board()
	st := GameState{
		ID:      rm.id,
		Mode:    s.Config().Mode.String(),
		FEN:     b.ToFEN(),
		Side:    b.SideToMove().String(),
		Moves:   []string{},
		Check:   b.InCheck(),
		State:   s.State().String(),
		Outcome: s.Outcome().String(),
		History: []string{},
		Version: version(b, len(s.Moves())),
	}
	if s.State() != game.StateOver {
		st.Moves = game.LegalMoves(b)
	}
	if w, ok := s.Winner(); ok {
		st.Winner = w.String()
	}
	for _, m := range s.Moves() {
		st.History = append(st.History, m.String())
	}
	if last := s.LastMove(); last.IsValid() {
		st.LastMove = last.String()
	}
	return st
}

// version identifies a position within a game; it doubles as the ETag.
func version(b *board.Board, plies int) string {
	return fmt.Sprintf("%016x-%d", b.Hash(), plies)
}
