package board

// Perft counts leaf nodes (move sequences) from the position for a given depth.
// Move lists reuse one buffer per ply.
func Perft(b *Board, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(b, depth, &pc)
}

type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	buf := pc.bufs[depth]
	if buf == nil {
		buf = make([]Move, 0, 64)
	}
	return buf[:0]
}

func perftRec(b *Board, depth int, pc *perftCtx) uint64 {
	moves := b.AppendMoves(pc.bufFor(depth))
	pc.bufs[depth] = moves
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		nodes += perftRec(b.Apply(m), depth-1, pc)
	}
	return nodes
}

// PerftDivide returns a map from each legal root move to the number of leaf
// nodes reachable from that move at the given depth.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range b.PossibleMoves() {
		result[m] = Perft(b.Apply(m), depth-1)
	}
	return result
}
