// Package server keeps the lobby of connected sessions. Every client plays
// its own independent game; the server only tracks who is connected and
// delivers lifecycle events such as shutdown.
package server

import (
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// GameServer is the interface clients use to communicate with the lobby.
// Decouples the Client from the concrete Server implementation, enabling
// testing with fakes.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	Lobby() *Lobby
}

// Server tracks connected clients and publishes lobby snapshots.
type Server struct {
	clients      map[int]*ClientHandle
	nextClientID int
	shuttingDown bool
	lobby        atomic.Pointer[Lobby]
	logger       *log.Logger
	mu           sync.RWMutex
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	Joined   time.Time        // Registration time
	EventsCh chan ClientEvent // Events sent to the client; closed on unregister
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// Lobby is an immutable snapshot of who is connected.
type Lobby struct {
	Players   int
	Usernames []string // Sorted
}

// NewServer creates an empty lobby. A nil logger discards log output.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		logger:       logger,
	}
	s.lobby.Store(&Lobby{})
	return s
}

// RegisterClient registers a new client with the given username and returns its handle.
// Clients that join during shutdown get the shutdown event immediately.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle := &ClientHandle{
		ID:       s.nextClientID,
		Username: username,
		Joined:   time.Now(),
		EventsCh: make(chan ClientEvent, 16),
	}
	s.nextClientID++
	s.clients[handle.ID] = handle

	if s.shuttingDown {
		handle.EventsCh <- ClientEvent{Type: EventServerShutdown}
	}

	s.publishLocked()
	s.logger.Info("client joined", "id", handle.ID, "user", username, "players", len(s.clients))
	return handle
}

// UnregisterClient removes a client from the server and closes its event channel.
// Unknown IDs are ignored.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	close(handle.EventsCh)
	delete(s.clients, clientID)

	s.publishLocked()
	s.logger.Info("client left", "id", clientID, "user", handle.Username,
		"played", time.Since(handle.Joined).Round(time.Second), "players", len(s.clients))
}

// Lobby returns the current lobby snapshot.
func (s *Server) Lobby() *Lobby {
	return s.lobby.Load()
}

// publishLocked stores a fresh lobby snapshot. Must be called with lock held.
func (s *Server) publishLocked() {
	names := make([]string, 0, len(s.clients))
	for _, handle := range s.clients {
		names = append(names, handle.Username)
	}
	slices.Sort(names)
	s.lobby.Store(&Lobby{Players: len(names), Usernames: names})
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.Lock()
	s.shuttingDown = true
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.Unlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.logger.Warn("shutdown timeout reached", "remaining", s.Lobby().Players)
			return
		case <-ticker.C:
			if s.Lobby().Players == 0 {
				return
			}
		}
	}
}
