package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"chessy/board"
	"chessy/game"
	"chessy/render"
)

// frontend is where the game is shown and where a human types moves.
type frontend interface {
	io.Writer
	Input() io.Reader
	Show(b *board.Board, last board.Move)
	Close()
}

// textFrontend prints each position to stdout and reads stdin.
type textFrontend struct {
	view render.Text
}

func (f textFrontend) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (f textFrontend) Input() io.Reader             { return os.Stdin }
func (f textFrontend) Close()                       {}

func (f textFrontend) Show(b *board.Board, last board.Move) {
	f.view.Render(os.Stdout, b, last)
}

func main() {
	modeFlag := flag.String("mode", "human", "human (you against the engine) or mirror (engine against itself)")
	depth := flag.Int("depth", game.DefaultDepth, "engine search depth in plies")
	color := flag.String("color", "white", "color the human plays")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for random moves and tie-breaks")
	fen := flag.String("fen", "", "start from this FEN instead of the initial position")
	ui := flag.String("ui", "screen", "screen (full-screen terminal), ansi (colored text) or plain")
	unicode := flag.Bool("unicode", false, "draw pieces with unicode chess symbols")
	delay := flag.Duration("delay", 0, "pause between engine moves in mirror mode")
	pgnOut := flag.String("pgn", "", "write the finished game as PGN to this file")
	logFile := flag.String("log", "", "write logs to this file (default stderr, discarded in screen mode)")
	verbose := flag.Bool("v", false, "log engine details")
	flag.Parse()

	mode, err := game.ParseMode(*modeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	human := board.White
	switch *color {
	case "white", "w":
	case "black", "b":
		human = board.Black
	default:
		fmt.Fprintf(os.Stderr, "-color must be white or black, got %q\n", *color)
		os.Exit(2)
	}

	var logOut io.Writer = os.Stderr
	if *ui == "screen" {
		logOut = io.Discard
	}
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		defer f.Close()
		logOut = f
	}
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var fe frontend
	switch *ui {
	case "screen":
		t, err := newTUI(*unicode, stop)
		if err != nil {
			fmt.Fprintf(os.Stderr, "terminal: %v\n", err)
			os.Exit(2)
		}
		fe = t
	case "ansi":
		fe = textFrontend{view: render.Text{Unicode: *unicode}}
	case "plain":
		fe = textFrontend{view: render.Text{Unicode: *unicode, Plain: true}}
	default:
		fmt.Fprintf(os.Stderr, "-ui must be screen, ansi or plain, got %q\n", *ui)
		os.Exit(2)
	}

	cfg := game.SessionConfig{
		Mode:       mode,
		Depth:      *depth,
		HumanColor: human,
		Seed:       *seed,
		FEN:        *fen,
		Logger:     logger,
	}
	white, black := cfg.Players(fe.Input(), fe)
	session, err := game.NewSession(cfg, white, black)
	if err != nil {
		fe.Close()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	fmt.Fprintf(fe, "%s vs %s\n", white.Name(), black.Name())
	fe.Show(session.Board(), board.InvalidMove)
	runErr := session.Run(ctx, func(t game.Turn) {
		fe.Show(session.Board(), t.Move)
		fmt.Fprintf(fe, "%d. %v\n", (t.Number+1)/2, t)
		if t.Check && session.State() != game.StateOver {
			fmt.Fprintln(fe, "CHECK!")
		}
		if mode == game.ModeMirror && *delay > 0 {
			time.Sleep(*delay)
		}
	})
	if runErr != nil {
		fmt.Fprintln(fe, runErr)
	}

	switch session.Outcome() {
	case game.Checkmate:
		w, _ := session.Winner()
		fmt.Fprintf(fe, "CHECKMATE! %v wins.\n", w)
	case game.Stalemate:
		fmt.Fprintln(fe, "STALEMATE.")
	case game.Forfeit:
		w, _ := session.Winner()
		fmt.Fprintf(fe, "%v wins by forfeit.\n", w)
	}
	fe.Close()

	if *pgnOut != "" {
		if err := writePGN(*pgnOut, session.Record()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if runErr != nil {
		os.Exit(1)
	}
}

func writePGN(path string, rec *game.Record) error {
	text, err := rec.PGN()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text+"\n"), 0o644)
}
