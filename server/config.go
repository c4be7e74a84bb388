package server

import (
	"io"
	"log/slog"
	"os"

	"chessy/game"
)

// DefaultPort is the port chessd listens on without -port.
const DefaultPort = 8080

// Config holds server settings. The zero value is usable.
type Config struct {
	Addr         string // listen address for ListenAndServe; ":8080" when empty
	DefaultDepth int    // search depth for games that do not ask for one
	MaxDepth     int    // upper bound on requested depths; 0 means 5
	Seed         int64  // base tie-break seed, offset per game
	AccessLog    io.Writer
	Logger       *slog.Logger
}

func (c Config) addr() string {
	if c.Addr == "" {
		return ":8080"
	}
	return c.Addr
}

func (c Config) depth(requested int) int {
	limit := c.MaxDepth
	if limit < 1 {
		limit = 5
	}
	d := requested
	if d < 1 {
		d = c.DefaultDepth
	}
	if d < 1 {
		d = game.DefaultDepth
	}
	if d > limit {
		d = limit
	}
	return d
}

func (c Config) accessLog() io.Writer {
	if c.AccessLog == nil {
		return os.Stdout
	}
	return c.AccessLog
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger.With("package", "server")
	}
	return log
}
