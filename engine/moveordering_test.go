package engine_test

import (
	"testing"

	"chessy/board"
	"chessy/engine"
)

// Several captures of different value plus plenty of quiet moves.
const orderingFEN = "4k3/8/2r1q3/3P4/8/1p6/P7/7K w - - 0 1"

func TestCaptureOrderPutsValuableVictimsFirst(t *testing.T) {
	b := mustFEN(t, orderingFEN)
	generated := b.PossibleMoves()
	ordered := append([]board.Move(nil), generated...)
	engine.CaptureOrder{}.Order(ordered)

	if len(ordered) != len(generated) {
		t.Fatalf("ordering changed move count")
	}
	want := []string{"d5e6", "d5c6", "a2b3"}
	for i, w := range want {
		if got := ordered[i].String(); got != w {
			t.Fatalf("ordered[%d] = %s, want %s (all: %v)", i, got, w, ordered)
		}
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Captured.Value() > ordered[i-1].Captured.Value() {
			t.Fatalf("%v ordered after %v", ordered[i], ordered[i-1])
		}
	}

	// Quiet moves keep generation order.
	var quietGen, quietOrd []board.Move
	for _, m := range generated {
		if !m.IsCapture() {
			quietGen = append(quietGen, m)
		}
	}
	for _, m := range ordered {
		if !m.IsCapture() {
			quietOrd = append(quietOrd, m)
		}
	}
	for i := range quietGen {
		if quietGen[i] != quietOrd[i] {
			t.Fatalf("quiet move %d: got %v want %v", i, quietOrd[i], quietGen[i])
		}
	}
}

func TestShuffledOrderIsSeeded(t *testing.T) {
	b := mustFEN(t, orderingFEN)
	first := b.PossibleMoves()
	second := b.PossibleMoves()
	engine.NewShuffledCaptureOrder(42).Order(first)
	engine.NewShuffledCaptureOrder(42).Order(second)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("same seed, different order at %d: %v vs %v", i, first[i], second[i])
		}
	}
	if first[0].String() != "d5e6" || first[1].String() != "d5c6" || first[2].String() != "a2b3" {
		t.Fatalf("shuffled order lost capture priority: %v", first[:3])
	}
}

func TestOrderedMovesStartPosition(t *testing.T) {
	b := board.New()
	ordered := engine.OrderedMoves(b)
	generated := b.PossibleMoves()
	for i := range generated {
		if ordered[i] != generated[i] {
			t.Fatalf("no captures, yet order changed at %d", i)
		}
	}
}
