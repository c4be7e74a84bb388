package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"chessy/board"
	"chessy/engine"
)

func main() {
	depthFlag := flag.Int("depth", 4, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	seedFlag := flag.Int64("seed", 0, "shuffle equal-valued moves with this seed (0 = scan order)")
	statsFlag := flag.Bool("stats", false, "print search counters after each run")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := board.FENStartPos
	if *fenFlag != "" {
		fen = *fenFlag
	}
	pos, err := board.ParseFEN(fen)
	if err != nil {
		log.Fatalf("bad fen: %v", err)
	}

	quiet := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	opts := []engine.Option{engine.WithLogger(quiet)}
	if *seedFlag != 0 {
		opts = append(opts, engine.WithTieBreak(*seedFlag))
	}

	depth, repeat := *depthFlag, *repeatFlag
	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d\n", fen, depth, repeat)

	var total engine.SearchStats
	startAll := time.Now()
	for i := 0; i < repeat; i++ {
		searcher := engine.NewSearcher(opts...)
		res := searcher.BestMove(context.Background(), pos, depth)
		total.Add(res.Stats)
		fmt.Printf("iteration %d: bestmove %v score %d  time=%v\n", i+1, res.Move, res.Score, res.Stats.Elapsed)
		if *statsFlag {
			fmt.Print(res.Stats.Dump())
		}
	}
	fmt.Printf("total time: %v  nodes: %d  nps: %d\n", time.Since(startAll), total.Nodes, total.NPS())

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
