package game

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"chessy/board"
)

// MoveError reports move text that could not be played.
type MoveError struct {
	Input string
	Err   error // ErrNotation or ErrIllegalMove
}

func (e *MoveError) Error() string {
	if errors.Is(e.Err, ErrNotation) {
		return fmt.Sprintf("%q: Smith notation please. (Example: a1b2)", e.Input)
	}
	return e.Input + " is invalid for the current board position."
}

func (e *MoveError) Unwrap() error { return e.Err }

// ParseMove reads four-character coordinate notation ("e2e4") and returns
// the matching legal move of b.
func ParseMove(b *board.Board, text string) (board.Move, error) {
	text = strings.TrimSpace(text)
	if len(text) != 4 {
		return board.InvalidMove, &MoveError{Input: text, Err: ErrNotation}
	}
	from, to := board.ParseSquare(text[:2]), board.ParseSquare(text[2:])
	if !from.Valid() || !to.Valid() {
		return board.InvalidMove, &MoveError{Input: text, Err: ErrNotation}
	}
	m := b.ComposeMove(from, to)
	if !m.IsValid() {
		return board.InvalidMove, &MoveError{Input: strings.ToLower(text), Err: ErrIllegalMove}
	}
	return m, nil
}

// Human prompts for moves on out and reads them line by line from in.
// "quit" forfeits, "r" or "random" plays a random legal move, "moves"
// lists the legal moves. Bad input is reported and asked for again.
type Human struct {
	in  *bufio.Scanner
	out io.Writer
	rng *rand.Rand
}

func NewHuman(in io.Reader, out io.Writer, seed int64) *Human {
	return &Human{
		in:  bufio.NewScanner(in),
		out: out,
		rng: rand.New(rand.NewSource(seed)),
	}
}

func (h *Human) Name() string { return "Human" }

// ChooseMove blocks until a usable line arrives. End of input counts as
// a forfeit.
func (h *Human) ChooseMove(ctx context.Context, b *board.Board) (board.Move, error) {
	for {
		if err := ctx.Err(); err != nil {
			return board.InvalidMove, err
		}
		fmt.Fprintf(h.out, "%v to move: ", b.SideToMove())
		if !h.in.Scan() {
			if err := h.in.Err(); err != nil {
				return board.InvalidMove, err
			}
			return board.InvalidMove, ErrForfeit
		}
		text := strings.TrimSpace(h.in.Text())
		switch strings.ToLower(text) {
		case "":
			continue
		case "quit", "q":
			fmt.Fprintln(h.out, "You forfeited.")
			return board.InvalidMove, ErrForfeit
		case "r", "random":
			return randomMove(b, h.rng)
		case "moves", "?":
			fmt.Fprintln(h.out, strings.Join(LegalMoves(b), " "))
			continue
		}
		m, err := ParseMove(b, text)
		if err != nil {
			fmt.Fprintln(h.out, err)
			continue
		}
		return m, nil
	}
}
