// Command perft counts move-tree leaves from a position, for checking the
// move generator against known totals and for timing it.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/exp/slices"

	"chessy/board"
)

type options struct {
	fen    string
	depth  int
	divide bool
	runs   int
}

func main() {
	var opt options
	flag.StringVar(&opt.fen, "fen", board.FENStartPos, "position to count from")
	flag.IntVar(&opt.depth, "depth", 0, "plies to expand")
	flag.BoolVar(&opt.divide, "divide", false, "break the total down by root move")
	flag.IntVar(&opt.runs, "runs", 1, "count this many times and report the average speed")
	cpuProf := flag.String("cpuprofile", "", "write a CPU profile here")
	flag.Parse()

	if *cpuProf != "" {
		stop, err := startProfile(*cpuProf)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		defer stop()
	}
	if err := run(os.Stdout, opt); err != nil {
		fmt.Fprintln(os.Stderr, "perft:", err)
		os.Exit(2)
	}
}

func run(w io.Writer, opt options) error {
	if opt.depth < 1 {
		return fmt.Errorf("depth must be at least 1, got %d", opt.depth)
	}
	b, err := board.ParseFEN(opt.fen)
	if err != nil {
		return err
	}
	if opt.divide {
		return divide(w, b, opt.depth)
	}
	runs := max(opt.runs, 1)
	var nodes uint64
	start := time.Now()
	for range runs {
		nodes = board.Perft(b, opt.depth)
	}
	per := time.Since(start) / time.Duration(runs)
	_, err = fmt.Fprintf(w, "depth %d: %d nodes in %v (%.0f nodes/s)\n",
		opt.depth, nodes, per, float64(nodes)/per.Seconds())
	return err
}

// divide prints one line per root move in coordinate order, then the sum.
func divide(w io.Writer, b *board.Board, depth int) error {
	counts := board.PerftDivide(b, depth)
	moves := make([]board.Move, 0, len(counts))
	for m := range counts {
		moves = append(moves, m)
	}
	slices.SortFunc(moves, func(x, y board.Move) int { return strings.Compare(x.String(), y.String()) })

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	var total uint64
	for _, m := range moves {
		total += counts[m]
		fmt.Fprintf(tw, "%v\t%d\t\n", m, counts[m])
	}
	fmt.Fprintf(tw, "total\t%d\t\n", total)
	return tw.Flush()
}

func startProfile(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	return func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}
