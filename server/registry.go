package server

import (
	"errors"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"chessy/engine"
	"chessy/game"
)

// ErrNoSuchGame is returned for an unknown game id.
var ErrNoSuchGame = errors.New("server: no such game")

// room is one game and the websocket clients watching it. mu guards the
// session and the client set; websocket writes happen under it too.
type room struct {
	mu      sync.Mutex
	id      string
	session *game.Session
	advisor *engine.Bot
	clients map[*websocket.Conn]struct{}
}

type registry struct {
	mu    sync.RWMutex
	rooms map[string]*room
	next  uint64
}

func newRegistry() *registry {
	return &registry{rooms: make(map[string]*room)}
}

func (r *registry) add(s *game.Session, advisor *engine.Bot) *room {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	rm := &room{
		id:      strconv.FormatUint(r.next, 10),
		session: s,
		advisor: advisor,
		clients: make(map[*websocket.Conn]struct{}),
	}
	r.rooms[rm.id] = rm
	return rm
}

func (r *registry) get(id string) (*room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rm, ok := r.rooms[id]
	if !ok {
		return nil, ErrNoSuchGame
	}
	return rm, nil
}

func (r *registry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}
