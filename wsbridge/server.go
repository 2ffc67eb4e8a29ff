// Package wsbridge carries the collide message protocol over WebSockets.
//
// A Server hosts one collide.Worker per connection, so a browser canvas (or
// any other remote render loop) can post bounds and bodies and receive frames
// as JSON. A Client dials such a server and satisfies collide.Simulation, so a
// local Coordinator can drive a remote worker exactly like a local one.
package wsbridge

import (
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/phanxgames/collide"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 1 << 20
)

// Server is an http.Handler that upgrades each request to a WebSocket and
// runs a dedicated worker for it. The worker stops when the connection ends.
type Server struct {
	// Config is used for every worker. Its Logger also receives connection
	// lines.
	Config collide.Config

	// MaxBodies rejects init messages with more bodies than this. Zero means
	// no limit.
	MaxBodies int

	upgrader websocket.Upgrader
	log      *log.Logger
	active   atomic.Int64

	mu      sync.Mutex
	workers map[*collide.Worker]struct{}
	closed  bool
}

// NewServer creates a server whose workers use cfg.
func NewServer(cfg collide.Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = collide.DefaultConfig().Logger
		cfg.Logger = logger
	}
	return &Server{
		Config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log:     logger,
		workers: make(map[*collide.Worker]struct{}),
	}
}

// Active returns the number of open connections.
func (s *Server) Active() int {
	return int(s.active.Load())
}

// Close stops every running worker, which ends their connections. Later
// connections are refused.
func (s *Server) Close() {
	s.mu.Lock()
	s.closed = true
	workers := make([]*collide.Worker, 0, len(s.workers))
	for w := range s.workers {
		workers = append(workers, w)
	}
	s.mu.Unlock()

	for _, w := range workers {
		w.Stop()
	}
}

// ServeHTTP upgrades the request and serves the protocol until either side
// closes.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	worker := collide.NewWorker(s.Config)
	if !s.track(worker) {
		http.Error(w, "server closed", http.StatusServiceUnavailable)
		return
	}
	defer s.untrack(worker)

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Printf("upgrade %s: %v", r.RemoteAddr, err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	s.active.Add(1)
	defer s.active.Add(-1)
	s.log.Printf("connection from %s", r.RemoteAddr)

	worker.Start()
	rejections := make(chan collide.Message, 4)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeLoop(conn, worker, rejections)
	}()

	s.readLoop(conn, worker, rejections)

	worker.Stop()
	<-writerDone
	conn.Close()
	s.log.Printf("connection from %s closed after %d ticks", r.RemoteAddr, worker.Ticks())
}

func (s *Server) readLoop(conn *websocket.Conn, worker *collide.Worker, rejections chan<- collide.Message) {
	for {
		var msg collide.Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Printf("read: %v", err)
			}
			return
		}
		if err := s.post(worker, msg); err != nil {
			select {
			case rejections <- collide.Message{Kind: collide.KindError, Error: err.Error()}:
			default:
				s.log.Printf("rejection dropped: %v", err)
			}
		}
		if msg.Kind == collide.KindStop {
			return
		}
	}
}

func (s *Server) post(worker *collide.Worker, msg collide.Message) error {
	if s.MaxBodies > 0 && msg.Kind == collide.KindInit && len(msg.Bodies) > s.MaxBodies {
		return fmt.Errorf("init: %d bodies exceeds limit %d", len(msg.Bodies), s.MaxBodies)
	}
	return worker.Post(msg)
}

// writeLoop is the connection's only writer.
func (s *Server) writeLoop(conn *websocket.Conn, worker *collide.Worker, rejections <-chan collide.Message) {
	out := worker.Messages()
	for {
		var msg collide.Message
		select {
		case m, ok := <-out:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "stopped"),
					time.Now().Add(writeWait))
				return
			}
			msg = m
		case msg = <-rejections:
		}

		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(msg); err != nil {
			s.log.Printf("write: %v", err)
			// Unblocks the reader, which then stops the worker.
			conn.Close()
			for range out {
			}
			return
		}
	}
}

func (s *Server) track(w *collide.Worker) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.workers[w] = struct{}{}
	return true
}

func (s *Server) untrack(w *collide.Worker) {
	s.mu.Lock()
	delete(s.workers, w)
	s.mu.Unlock()
}
