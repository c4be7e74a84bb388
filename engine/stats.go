package engine

import (
	"fmt"
	"log/slog"
	"time"
)

// SearchStats collects counters for one search. Callers own the value and
// pass it down by pointer; nothing is shared between searches.
type SearchStats struct {
	Nodes       uint64
	Leaves      uint64
	BetaCutoffs uint64
	RootMoves   int
	Elapsed     time.Duration
}

// NPS is the node rate over the elapsed time.
func (s SearchStats) NPS() uint64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return uint64(float64(s.Nodes) / s.Elapsed.Seconds())
}

// Add accumulates o into s.
func (s *SearchStats) Add(o SearchStats) {
	s.Nodes += o.Nodes
	s.Leaves += o.Leaves
	s.BetaCutoffs += o.BetaCutoffs
	s.RootMoves += o.RootMoves
	s.Elapsed += o.Elapsed
}

func (s SearchStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("nodes", s.Nodes),
		slog.Uint64("leaves", s.Leaves),
		slog.Uint64("cutoffs", s.BetaCutoffs),
		slog.Int("root_moves", s.RootMoves),
		slog.Duration("elapsed", s.Elapsed),
	)
}

// Dump writes the counters as UCI "info string" lines.
func (s SearchStats) Dump() string {
	return fmt.Sprintf("info string Search statistics:\n"+
		"info string   Nodes: %d\n"+
		"info string   Leaves: %d\n"+
		"info string   Beta cutoffs: %d\n"+
		"info string   Root moves: %d\n", s.Nodes, s.Leaves, s.BetaCutoffs, s.RootMoves)
}
