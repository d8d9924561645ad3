// Package server exposes the movement engine over HTTP: JSON command
// endpoints for issuing move/stop/seek-enemies orders, and a websocket
// stream of motion-lifecycle events for a telemetry or spectator client.
// It generalizes the original engine's debug-overlay event feed from a
// single in-process consumer into a network-reachable one.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	jsoniter "github.com/json-iterator/go"

	"github.com/mwanga/skirmish-engine/model"
	"github.com/mwanga/skirmish-engine/movement"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Server wires an *movement.Engine to an HTTP mux. Construct with New,
// then call Handler() and pass it to http.ListenAndServe (or an
// errgroup-managed http.Server, as cmd/skirmishd does).
type Server struct {
	engine *movement.Engine

	upgrader websocket.Upgrader

	mu      sync.Mutex
	streams map[string]chan []byte
}

// New constructs a Server backed by engine. engine may be nil if the
// caller needs the Server as an events.Bus before the engine exists (the
// Server/Engine pair have a construction cycle: the engine needs a bus at
// construction time, and this Server's command handlers need the engine)
// — set it afterward with SetEngine before serving any command requests.
func New(engine *movement.Engine) *Server {
	return &Server{
		engine:  engine,
		streams: make(map[string]chan []byte),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// SetEngine binds the Server's command handlers to engine, resolving the
// construction cycle described in New.
func (s *Server) SetEngine(engine *movement.Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine = engine
}

// Handler returns the Server's full route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/agents/dest", s.handleSetDest)
	mux.HandleFunc("/v1/agents/stop", s.handleStop)
	mux.HandleFunc("/v1/agents/seek-enemies", s.handleSeekEnemies)
	mux.HandleFunc("/v1/stream", s.handleStream)
	return mux
}

type setDestRequest struct {
	Agents []model.AgentID `json:"agents"`
	X      float64         `json:"x"`
	Z      float64         `json:"z"`
}

func (s *Server) handleSetDest(w http.ResponseWriter, r *http.Request) {
	var req setDestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	target := model.Vec2{X: req.X, Z: req.Z}
	engine := s.engineRef()
	if len(req.Agents) == 1 {
		engine.SetDest(req.Agents[0], target)
	} else {
		engine.SetDestSelection(req.Agents, target)
	}
	w.WriteHeader(http.StatusAccepted)
}

// engineRef returns the currently bound engine under lock, so a handler
// never observes a partially-set SetEngine call from another goroutine.
func (s *Server) engineRef() *movement.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine
}

type agentsRequest struct {
	Agents []model.AgentID `json:"agents"`
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	var req agentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	engine := s.engineRef()
	for _, a := range req.Agents {
		engine.Stop(a)
	}
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleSeekEnemies(w http.ResponseWriter, r *http.Request) {
	var req agentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	engine := s.engineRef()
	for _, a := range req.Agents {
		engine.SetSeekEnemies(a)
	}
	w.WriteHeader(http.StatusAccepted)
}

// handleStream upgrades to a websocket and pushes every Broadcast'd event
// to this one connection until it disconnects.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	ch := make(chan []byte, 64)

	s.mu.Lock()
	s.streams[id] = ch
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.streams, id)
		s.mu.Unlock()
	}()

	done := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(time.Hour))
	go func() {
		// Drain and discard client frames; this stream is write-only
		// from the server's perspective but must read to notice a close.
		// Signals via done rather than closing ch itself: ch stays
		// registered in s.streams until the outer defer removes it, and a
		// concurrent Broadcast may still be holding s.mu and sending to it.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				close(done)
				return
			}
		}
	}()

	for {
		select {
		case msg := <-ch:
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// Broadcast fans payload out (as JSON) to every currently-connected
// stream client. Intended to be wired as the events.Bus a caller passes
// to movement.New, via Publish below.
func (s *Server) Broadcast(name string, payload interface{}) {
	b, err := json.Marshal(struct {
		Event string      `json:"event"`
		Data  interface{} `json:"data"`
	}{Event: name, Data: payload})
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.streams {
		select {
		case ch <- b:
		default:
			// Slow consumer: drop rather than block the tick driver.
		}
	}
}

// Publish implements events.Bus so a Server can be passed directly as the
// movement engine's event sink.
func (s *Server) Publish(name string, payload interface{}) {
	s.Broadcast(name, payload)
}
