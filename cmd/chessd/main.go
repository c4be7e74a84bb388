package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"chessy/server"
)

func main() {
	var port uint
	flag.UintVar(&port, "port", server.DefaultPort, "Port to listen on")
	depth := flag.Int("depth", 3, "default engine depth")
	maxDepth := flag.Int("max-depth", 5, "largest depth a client may ask for")
	seed := flag.Int64("seed", 1, "base tie-break seed")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()
	if port == 0 || port > 65535 {
		fmt.Println("Invalid port number")
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Addr:         fmt.Sprintf(":%d", port),
		DefaultDepth: *depth,
		MaxDepth:     *maxDepth,
		Seed:         *seed,
		Logger:       logger,
	})
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
