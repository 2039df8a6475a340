// Package bridge exposes an island session to browser shells over a websocket: frames and events go
// out, navigation commands and held keys come in.
package bridge

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/skyfolio/engine/catalog"
	"github.com/Carmen-Shannon/skyfolio/engine/event"
	"github.com/Carmen-Shannon/skyfolio/engine/input"
	"github.com/Carmen-Shannon/skyfolio/engine/island"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Target receives the commands clients send.
type Target interface {
	Submit(cmd island.Command)
	Catalog() *catalog.Catalog
}

// Server is a websocket endpoint for shells.
type Server interface {
	input.Source

	// Handler returns the HTTP handler that upgrades shell connections.
	Handler() http.HandlerFunc

	// Broadcast sends a frame to every client. Frames arriving faster than the frame interval are
	// dropped. Encoding and fan-out run on the worker pool.
	//
	// Parameters:
	//   - snap: the island state after a tick
	Broadcast(snap island.Snapshot)

	// BroadcastEvent mirrors a bus event to every client.
	//
	// Parameters:
	//   - e: the event to send
	BroadcastEvent(e event.Event)

	// Sessions returns the ids of the connected clients, sorted.
	Sessions() []string
}

type client struct {
	id  string
	out chan []byte

	mu     sync.Mutex
	intent input.Intent
}

func (c *client) send(b []byte) bool {
	select {
	case c.out <- b:
		return true
	default:
		return false
	}
}

type serverImpl struct {
	target Target
	logger *log.Logger

	upgrader      websocket.Upgrader
	pool          worker.DynamicWorkerPool
	workers       int
	queueSize     int
	frameInterval time.Duration

	mu      sync.RWMutex
	clients map[string]*client

	taskID    atomic.Int64
	lastFrame atomic.Int64
}

var _ Server = &serverImpl{}

// NewServer creates a websocket server bound to target.
//
// Parameters:
//   - target: the island commands are submitted to
//   - options: functional options to configure the server
//
// Returns:
//   - Server: the server; mount Handler on an HTTP mux to accept clients
func NewServer(target Target, options ...ServerBuilderOption) Server {
	s := &serverImpl{
		target:        target,
		logger:        log.Default(),
		workers:       2,
		queueSize:     16,
		frameInterval: time.Second / 30,
		clients:       make(map[string]*client),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	for _, option := range options {
		option(s)
	}
	s.pool = worker.NewDynamicWorkerPool(s.workers, 256, time.Second)
	return s
}

func (s *serverImpl) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.logger.Printf("[Bridge] Upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		c := &client{id: uuid.NewString(), out: make(chan []byte, s.queueSize)}
		welcome, err := json.Marshal(s.welcome(c.id))
		if err != nil {
			s.logger.Printf("[Bridge] Encoding welcome failed: %v", err)
			return
		}
		c.out <- welcome
		s.add(c)
		defer s.remove(c)

		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case b := <-c.out:
					_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
					if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
						cancel()
						return
					}
				}
			}
		}()

		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := s.handle(c, raw); err != nil {
				s.reject(c, err)
			}
		}
	}
}

func (s *serverImpl) welcome(id string) WelcomeMessage {
	msg := WelcomeMessage{Type: TypeWelcome, SessionID: id, Destinations: []DestinationInfo{}}
	if cat := s.target.Catalog(); cat != nil {
		for _, d := range cat.Destinations {
			msg.Destinations = append(msg.Destinations, DestinationInfo{ID: d.ID, Title: d.Title})
		}
		msg.Total = len(cat.Collectibles)
	}
	return msg
}

// handle applies one client message.
func (s *serverImpl) handle(c *client, raw []byte) error {
	m, err := Decode(raw)
	if err != nil {
		return err
	}
	switch m.Type {
	case TypeInput:
		a, err := m.ToAction()
		if err != nil {
			return err
		}
		c.mu.Lock()
		c.intent = c.intent.Set(a, m.Held)
		c.mu.Unlock()
	case TypeCommand:
		cmd, err := m.ToCommand(s.target.Catalog())
		if err != nil {
			return err
		}
		s.target.Submit(cmd)
	}
	return nil
}

func (s *serverImpl) reject(c *client, err error) {
	b, mErr := json.Marshal(ErrorMessage{Type: TypeError, Error: err.Error()})
	if mErr != nil {
		return
	}
	c.send(b)
}

func (s *serverImpl) add(c *client) {
	s.mu.Lock()
	s.clients[c.id] = c
	n := len(s.clients)
	s.mu.Unlock()
	s.logger.Printf("[Bridge] Session %s connected (%d open)", c.id, n)
}

func (s *serverImpl) remove(c *client) {
	s.mu.Lock()
	delete(s.clients, c.id)
	n := len(s.clients)
	s.mu.Unlock()
	s.logger.Printf("[Bridge] Session %s closed (%d open)", c.id, n)
}

func (s *serverImpl) snapshotClients() []*client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		out = append(out, c)
	}
	return out
}

func (s *serverImpl) Broadcast(snap island.Snapshot) {
	now := time.Now().UnixNano()
	last := s.lastFrame.Load()
	if last != 0 && time.Duration(now-last) < s.frameInterval {
		return
	}
	if !s.lastFrame.CompareAndSwap(last, now) {
		return
	}
	s.fanOut(NewFrameMessage(snap))
}

func (s *serverImpl) BroadcastEvent(e event.Event) {
	s.fanOut(NewEventMessage(e))
}

// fanOut encodes v on the worker pool and queues it for every client. Clients whose queue is full
// miss the message.
func (s *serverImpl) fanOut(v any) {
	clients := s.snapshotClients()
	if len(clients) == 0 {
		return
	}
	s.pool.SubmitTask(worker.Task{
		ID: int(s.taskID.Add(1)),
		Do: func() (any, error) {
			b, err := json.Marshal(v)
			if err != nil {
				s.logger.Printf("[Bridge] Encoding failed: %v", err)
				return nil, err
			}
			dropped := 0
			for _, c := range clients {
				if !c.send(b) {
					dropped++
				}
			}
			return dropped, nil
		},
	})
}

func (s *serverImpl) Sessions() []string {
	s.mu.RLock()
	ids := make([]string, 0, len(s.clients))
	for id := range s.clients {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Intent merges the keys held by every connected client.
func (s *serverImpl) Intent() input.Intent {
	var in input.Intent
	for _, c := range s.snapshotClients() {
		c.mu.Lock()
		in = in.Or(c.intent)
		c.mu.Unlock()
	}
	return in
}
