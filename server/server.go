// Package server serves chess games over HTTP. Clients create games, post
// moves, ask the engine for advice and watch a game live over a websocket.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"chessy/board"
	"chessy/engine"
	"chessy/game"
	"chessy/render"
)

var log = slog.Default().With("package", "server")

var errNotYourTurn = errors.New("server: the engine is on move")

type Server struct {
	cfg      Config
	base     *slog.Logger // handed to games and engines, which add their own package attr
	log      *slog.Logger
	router   *mux.Router
	games    *registry
	upgrader websocket.Upgrader
}

func New(cfg Config) *Server {
	s := &Server{
		cfg:    cfg,
		base:   cfg.Logger,
		log:    cfg.logger(),
		router: mux.NewRouter(),
		games:  newRegistry(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if s.base == nil {
		s.base = slog.Default()
	}
	accessLog := func(next http.Handler) http.Handler {
		return handlers.LoggingHandler(cfg.accessLog(), next)
	}
	s.router.NotFoundHandler = accessLog(http.HandlerFunc(notFound))
	s.router.Use(accessLog)

	s.router.HandleFunc("/games", s.createGame).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id}", s.getGame).Methods(http.MethodGet)
	s.router.HandleFunc("/games/{id}/moves", s.legalMoves).Methods(http.MethodGet)
	s.router.HandleFunc("/games/{id}/moves", s.postMove).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id}/step", s.step).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id}/bestmove", s.bestMove).Methods(http.MethodPost)
	s.router.HandleFunc("/games/{id}/board.svg", s.boardSVG).Methods(http.MethodGet)
	s.router.HandleFunc("/games/{id}/pgn", s.pgn).Methods(http.MethodGet)
	s.router.HandleFunc("/games/{id}/ws", s.watch).Methods(http.MethodGet)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on cfg.Addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.addr(),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.log.Info("listening", "addr", srv.Addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdown); err != nil {
		return err
	}
	s.log.Info("stopped", "games", s.games.count())
	return nil
}

func (s *Server) createGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, fmt.Errorf("server: bad request body: %w", err))
		return
	}
	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	human := board.White
	switch req.Human {
	case "", "white", "w":
	case "black", "b":
		human = board.Black
	default:
		writeError(w, http.StatusBadRequest, fmt.Errorf("server: unknown color %q", req.Human))
		return
	}

	seed := s.cfg.Seed + int64(s.games.count())
	cfg := game.SessionConfig{
		Mode:       mode,
		Depth:      s.cfg.depth(req.Depth),
		HumanColor: human,
		Seed:       seed,
		FEN:        req.FEN,
		Logger:     s.base,
	}
	var white, black game.Player
	if mode == game.ModeMirror {
		white, black = cfg.Players(nil, nil)
	} else {
		bot := engine.NewBot(cfg.Depth, engine.WithLogger(s.base), engine.WithTieBreak(seed))
		if human == board.White {
			black = bot
		} else {
			white = bot
		}
	}
	session, err := game.NewSession(cfg, white, black)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	advisor := engine.NewBot(cfg.Depth, engine.WithLogger(s.base))
	rm := s.games.add(session, advisor)

	rm.mu.Lock()
	defer rm.mu.Unlock()
	session.Start()
	if mode == game.ModeHuman {
		s.engineReply(r.Context(), rm)
	}
	s.log.Info("game created", "id", rm.id, "mode", mode, "depth", cfg.Depth)
	w.Header().Set("Location", "/games/"+rm.id)
	writeJSON(w, http.StatusCreated, rm.snapshot())
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*room, bool) {
	rm, err := s.games.get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	return rm, true
}

func (s *Server) getGame(w http.ResponseWriter, r *http.Request) {
	rm, ok := s.lookup(w, r)
	if !ok {
		return
	}
	rm.mu.Lock()
	st := rm.snapshot()
	rm.mu.Unlock()

	etag := strconv.Quote(st.Version)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) legalMoves(w http.ResponseWriter, r *http.Request) {
	rm, ok := s.lookup(w, r)
	if !ok {
		return
	}
	rm.mu.Lock()
	moves := rm.snapshot().Moves
	rm.mu.Unlock()
	writeJSON(w, http.StatusOK, moves)
}

func (s *Server) postMove(w http.ResponseWriter, r *http.Request) {
	rm, ok := s.lookup(w, r)
	if !ok {
		return
	}
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("server: bad request body: %w", err))
		return
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if err := s.playHuman(r.Context(), rm, req.Move); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, rm.snapshot())
}

func (s *Server) step(w http.ResponseWriter, r *http.Request) {
	rm, ok := s.lookup(w, r)
	if !ok {
		return
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if _, err := rm.session.Step(r.Context()); err != nil && !errors.Is(err, game.ErrForfeit) {
		writeError(w, statusFor(err), err)
		return
	}
	s.broadcast(rm)
	writeJSON(w, http.StatusOK, rm.snapshot())
}

func (s *Server) bestMove(w http.ResponseWriter, r *http.Request) {
	rm, ok := s.lookup(w, r)
	if !ok {
		return
	}
	// Boards are never modified in place, so the search can run unlocked.
	rm.mu.Lock()
	pos, over := rm.session.Board(), rm.session.State() == game.StateOver
	rm.mu.Unlock()
	if over {
		writeError(w, http.StatusConflict, game.ErrGameOver)
		return
	}

	bot := rm.advisor
	if d, err := strconv.Atoi(r.URL.Query().Get("depth")); err == nil {
		bot = engine.NewBot(s.cfg.depth(d), engine.WithLogger(s.base))
	}
	res := bot.Search(r.Context(), pos)
	if !res.Move.IsValid() {
		writeError(w, http.StatusConflict, engine.ErrNoMove)
		return
	}
	writeJSON(w, http.StatusOK, Suggestion{
		Move:        res.Move.String(),
		Score:       res.Score,
		Depth:       res.Depth,
		Nodes:       res.Stats.Nodes,
		Interrupted: res.Interrupted,
	})
}

func (s *Server) boardSVG(w http.ResponseWriter, r *http.Request) {
	rm, ok := s.lookup(w, r)
	if !ok {
		return
	}
	rm.mu.Lock()
	pos, last := rm.session.Board(), rm.session.LastMove()
	rm.mu.Unlock()

	size := 48
	if n, err := strconv.Atoi(r.URL.Query().Get("size")); err == nil && n >= 16 && n <= 256 {
		size = n
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	if err := (render.SVG{Square: size}).Render(w, pos, last); err != nil {
		s.log.Warn("svg write failed", "id", rm.id, "err", err)
	}
}

func (s *Server) pgn(w http.ResponseWriter, r *http.Request) {
	rm, ok := s.lookup(w, r)
	if !ok {
		return
	}
	rm.mu.Lock()
	rec := rm.session.Record()
	rm.mu.Unlock()

	rec.Event = "chessd game " + rm.id
	text, err := rec.PGN()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/x-chess-pgn")
	fmt.Fprintln(w, text)
}

// playHuman plays text for the side to move and lets the engine answer.
// rm.mu must be held.
func (s *Server) playHuman(ctx context.Context, rm *room, text string) error {
	if rm.session.State() != game.StateOver && rm.session.Player(rm.session.Board().SideToMove()) != nil {
		return errNotYourTurn
	}
	if _, err := rm.session.PlayText(text); err != nil {
		return err
	}
	s.broadcast(rm)
	s.engineReply(ctx, rm)
	return nil
}

// engineReply lets the engine move when it is on move. rm.mu must be held.
func (s *Server) engineReply(ctx context.Context, rm *room) {
	sess := rm.session
	if sess.State() != game.StatePlaying || sess.Player(sess.Board().SideToMove()) == nil {
		return
	}
	if _, err := sess.Step(ctx); err != nil && !errors.Is(err, game.ErrForfeit) {
		s.log.Warn("engine reply failed", "id", rm.id, "err", err)
		return
	}
	s.broadcast(rm)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrNoSuchGame):
		return http.StatusNotFound
	case errors.Is(err, game.ErrIllegalMove), errors.Is(err, game.ErrNotation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, game.ErrGameOver), errors.Is(err, game.ErrNoPlayer), errors.Is(err, errNotYourTurn):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn("response write failed", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, fmt.Errorf("server: no route for %s %s", r.Method, r.URL.Path))
}
