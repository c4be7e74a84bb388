package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"chessy/board"
	"chessy/engine"
	"chessy/game"
	"chessy/render"
)

const defaultGoDepth = 4

func main() {
	verbose := flag.Bool("v", false, "log search details to stderr")
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	uciLoop(os.Stdin, os.Stdout, logger)
}

// uciState is one protocol session. A search runs in its own goroutine so
// that "stop" and "isready" are answered while it thinks.
type uciState struct {
	mu       sync.Mutex // guards out
	out      io.Writer
	logger   *slog.Logger
	board    *board.Board
	searcher *engine.Searcher

	cancel context.CancelFunc
	done   chan struct{}
}

func uciLoop(in io.Reader, out io.Writer, logger *slog.Logger) {
	u := &uciState{
		out:      out,
		logger:   logger,
		board:    board.New(),
		searcher: engine.NewSearcher(engine.WithLogger(logger)),
	}
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			u.println("id name Chessy")
			u.println("id author Chessy developers")
			u.println("uciok")
		case "isready":
			u.println("readyok")
		case "ucinewgame":
			u.wait()
			u.board = board.New()
			u.searcher = engine.NewSearcher(engine.WithLogger(logger))
		case "position":
			u.wait()
			u.position(tokens[1:])
		case "go":
			u.wait()
			u.goSearch(tokens[1:])
		case "stop":
			u.stop()
		case "d":
			u.wait()
			u.display()
		case "quit":
			u.stop()
			return
		default:
			u.println("info string Unknown command", tokens[0])
		}
	}
	u.wait()
}

func (u *uciState) println(a ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintln(u.out, a...)
}

func (u *uciState) position(args []string) {
	if len(args) == 0 {
		u.println("info string Malformed position command")
		return
	}
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		u.board = board.New()
	case "fen":
		var fields []string
		for len(rest) > 0 && strings.ToLower(rest[0]) != "moves" {
			fields = append(fields, rest[0])
			rest = rest[1:]
		}
		b, err := board.ParseFEN(strings.Join(fields, " "))
		if err != nil {
			u.println("info string Invalid fen position:", err)
			return
		}
		u.board = b
	default:
		u.println("info string Invalid position subcommand")
		return
	}
	if len(rest) == 0 || strings.ToLower(rest[0]) != "moves" {
		return
	}
	for _, text := range rest[1:] {
		m, err := game.ParseMove(u.board, text)
		if err != nil {
			u.println("info string Move", text, "not found for position", u.board.ToFEN())
			return
		}
		u.board = u.board.Apply(m)
	}
}

func (u *uciState) goSearch(args []string) {
	depth := defaultGoDepth
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "depth":
			if i+1 >= len(args) {
				u.println("info string Malformed go command option depth")
				continue
			}
			i++
			d, err := strconv.Atoi(args[i])
			if err != nil {
				u.println("info string Malformed go command option; could not convert depth")
				continue
			}
			depth = d
		case "wtime", "btime", "winc", "binc", "movestogo", "movetime", "nodes":
			i++ // no time control, fixed depth only
		case "infinite":
		default:
			u.println("info string Unknown go subcommand", args[i])
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	u.cancel, u.done = cancel, make(chan struct{})
	pos, searcher, done := u.board, u.searcher, u.done
	go func() {
		defer close(done)
		res := searcher.BestMove(ctx, pos, depth)
		st := res.Stats
		info := fmt.Sprintf("info depth %d score cp %d nodes %d time %d nps %d",
			res.Depth, res.Score, st.Nodes, st.Elapsed.Milliseconds(), st.NPS())
		best := res.Move.String()
		if res.Move.IsValid() {
			info += " pv " + best
		}
		u.println(info)
		u.println("bestmove", best)
	}()
}

func (u *uciState) stop() {
	if u.cancel != nil {
		u.cancel()
	}
	u.wait()
}

// wait blocks until a running search has printed its bestmove.
func (u *uciState) wait() {
	if u.done == nil {
		return
	}
	<-u.done
	u.cancel()
	u.cancel, u.done = nil, nil
}

func (u *uciState) display() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if err := (render.Text{Plain: true}).Render(u.out, u.board, board.InvalidMove); err != nil {
		u.logger.Warn("render failed", "err", err)
	}
	fmt.Fprintln(u.out, "Fen:", u.board.ToFEN())
	fmt.Fprintln(u.out, "In check:", u.board.InCheck())
}
