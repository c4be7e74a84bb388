package server

import (
	"net/http"

	"github.com/gorilla/websocket"
)

// watch upgrades the request and keeps the client subscribed to the
// game until it disconnects. Inbound messages are moves; every change to the
// game is pushed to all of its clients as a GameState.
func (s *Server) watch(w http.ResponseWriter, r *http.Request) {
	rm, ok := s.lookup(w, r)
	if !ok {
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", "id", rm.id, "err", err)
		return
	}
	s.log.Info("websocket connected", "id", rm.id, "remote", conn.RemoteAddr())

	rm.mu.Lock()
	rm.clients[conn] = struct{}{}
	err = conn.WriteJSON(rm.snapshot())
	rm.mu.Unlock()
	if err != nil {
		s.drop(rm, conn)
		return
	}

	for {
		var msg moveRequest
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("websocket read failed", "id", rm.id, "err", err)
			}
			s.drop(rm, conn)
			return
		}
		rm.mu.Lock()
		if err := s.playHuman(r.Context(), rm, msg.Move); err != nil {
			err = conn.WriteJSON(errorBody{Error: err.Error()})
			if err != nil {
				delete(rm.clients, conn)
				conn.Close()
				rm.mu.Unlock()
				return
			}
		}
		rm.mu.Unlock()
	}
}

func (s *Server) drop(rm *room, conn *websocket.Conn) {
	rm.mu.Lock()
	delete(rm.clients, conn)
	rm.mu.Unlock()
	conn.Close()
	s.log.Info("websocket closed", "id", rm.id)
}

// broadcast pushes the current state to every client of rm. rm.mu must be
// held; it also serializes writes per connection.
func (s *Server) broadcast(rm *room) {
	if len(rm.clients) == 0 {
		return
	}
	st := rm.snapshot()
	for conn := range rm.clients {
		if err := conn.WriteJSON(st); err != nil {
			s.log.Warn("websocket write failed", "id", rm.id, "err", err)
			delete(rm.clients, conn)
			conn.Close()
		}
	}
}
