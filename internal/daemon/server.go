// Package daemon implements the dodo reminder daemon: a unix-socket
// server that watches the task file for due reminders and broadcasts
// notifications to connected clients.
package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yuchhuang/dodo/internal/events"
	"github.com/yuchhuang/dodo/internal/reminder"
	"github.com/yuchhuang/dodo/internal/store"
)

// client represents a connected client
type client struct {
	conn      net.Conn
	send      chan events.Message
	lastPong  time.Time
	mu        sync.Mutex // Protects lastPong
	closeOnce sync.Once  // Ensures send channel is closed only once
}

// Server is the dodo reminder daemon
type Server struct {
	socketPath       string
	listener         net.Listener
	clients          map[*client]bool
	mu               sync.RWMutex
	ctx              context.Context
	cancel           context.CancelFunc
	broadcast        chan events.Event
	metrics          *Metrics
	sequenceCounter  atomic.Int64
	clientBufferSize int
	shutdownOnce     sync.Once

	taskStore store.Store
	watcher   *reminder.Watcher
}

// getEnvInt reads an integer from an environment variable, returning
// defaultVal if not set or invalid
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

// NewServer creates a daemon server listening on the given unix socket,
// watching the given task store for due reminders.
func NewServer(socketPath string, taskStore store.Store, checkInterval time.Duration) (*Server, error) {
	dir := filepath.Dir(socketPath)
	if dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create socket directory: %w", err)
		}
	}

	// Remove stale socket file if it exists
	if _, err := os.Stat(socketPath); err == nil {
		if err := os.Remove(socketPath); err != nil {
			return nil, fmt.Errorf("remove stale socket: %w", err)
		}
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("create socket listener: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	broadcastBuffer := getEnvInt("DODO_DAEMON_BROADCAST_BUFFER", 100)
	clientBuffer := getEnvInt("DODO_DAEMON_CLIENT_BUFFER", 10)

	s := &Server{
		socketPath:       socketPath,
		listener:         listener,
		clients:          make(map[*client]bool),
		ctx:              ctx,
		cancel:           cancel,
		broadcast:        make(chan events.Event, broadcastBuffer),
		metrics:          NewMetrics(),
		clientBufferSize: clientBuffer,
		taskStore:        taskStore,
	}
	s.watcher = reminder.NewWatcher(checkInterval, s.onReminderDue)

	return s, nil
}

// Metrics returns the daemon metrics
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start runs the daemon until the context is cancelled
func (s *Server) Start(ctx context.Context) error {
	slog.Info("daemon starting", "socket", s.socketPath)

	combinedCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-s.ctx.Done()
		cancel()
	}()

	// Prime the reminder schedule from the task file
	if err := s.reloadTasks(); err != nil {
		slog.Warn("initial task load failed", "error", err)
	}
	s.watcher.Start(combinedCtx)
	defer s.watcher.Stop()

	acceptErr := make(chan error, 1)
	go func() {
		acceptErr <- s.acceptLoop(combinedCtx)
	}()

	go s.broadcastLoop(combinedCtx)
	go s.monitorHealth(combinedCtx)

	select {
	case <-combinedCtx.Done():
		slog.Info("daemon context cancelled, shutting down")
	case err := <-acceptErr:
		if err != nil {
			slog.Error("accept loop error", "error", err)
		}
	}

	return s.Shutdown()
}

// reloadTasks re-reads the task file and rebuilds the reminder schedule
func (s *Server) reloadTasks() error {
	tasks, err := s.taskStore.Load()
	if err != nil {
		return err
	}
	s.watcher.UpdateTasks(tasks)
	s.metrics.IncTaskReloads()
	return nil
}

// onReminderDue broadcasts a due reminder to all connected clients
func (s *Server) onReminderDue(n reminder.Notification) {
	s.metrics.IncRemindersFired()
	event := events.Event{
		Type:      events.EventReminderDue,
		TaskID:    n.TaskID,
		TaskTitle: n.TaskTitle,
		RemindAt:  n.RemindAt,
		Timestamp: time.Now(),
	}
	if err := s.Broadcast(event); err != nil {
		slog.Warn("dropped reminder event", "task_id", n.TaskID, "error", err)
	}
}

// acceptLoop accepts incoming client connections
func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// Deadline lets us poll for context cancellation
		if err := s.listener.(*net.UnixListener).SetDeadline(time.Now().Add(1 * time.Second)); err != nil {
			slog.Error("error setting listener deadline", "error", err)
		}

		conn, err := s.listener.Accept()
		if err != nil {
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				continue
			}
			return fmt.Errorf("accept error: %w", err)
		}

		c := &client{
			conn:     conn,
			send:     make(chan events.Message, s.clientBufferSize),
			lastPong: time.Now(),
		}

		s.mu.Lock()
		s.clients[c] = true
		s.mu.Unlock()
		s.updateClientCount()

		slog.Info("client connected", "total_clients", s.getClientCount())

		go s.handleClient(c)
		go s.clientWriter(c)
	}
}

// broadcastLoop distributes events to all connected clients
func (s *Server) broadcastLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case event := <-s.broadcast:
			event.SequenceID = s.sequenceCounter.Add(1)
			s.metrics.IncEventsBroadcast()

			msg := events.Message{Type: "event", Event: &event}

			s.mu.RLock()
			for c := range s.clients {
				// Non-blocking send: a slow client misses the event
				if !s.sendToClient(c, msg) {
					slog.Warn("client send queue full, event dropped")
				}
			}
			s.mu.RUnlock()
		}
	}
}

// handleClient reads messages from a connected client
func (s *Server) handleClient(c *client) {
	defer func() {
		s.removeClient(c)
		slog.Info("client disconnected", "total_clients", s.getClientCount())
	}()

	decoder := json.NewDecoder(c.conn)

	for {
		var msg events.Message
		if err := decoder.Decode(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "event":
			if msg.Event == nil {
				continue
			}
			s.metrics.IncEventsReceived()

			// A task file mutation means the reminder schedule is stale
			if msg.Event.Type == events.EventTasksChanged {
				if err := s.reloadTasks(); err != nil {
					slog.Warn("task reload failed", "error", err)
				}
			}

			// Rebroadcast to the other clients
			select {
			case s.broadcast <- *msg.Event:
			default:
				slog.Warn("broadcast channel full")
			}

		case "pong":
			c.mu.Lock()
			c.lastPong = time.Now()
			c.mu.Unlock()
		}
	}
}

// clientWriter sends queued messages to a client
func (s *Server) clientWriter(c *client) {
	encoder := json.NewEncoder(c.conn)

	for msg := range c.send {
		if err := encoder.Encode(msg); err != nil {
			return
		}
	}
}

// monitorHealth sends ping messages and removes stale clients
func (s *Server) monitorHealth(ctx context.Context) {
	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	healthTicker := time.NewTicker(60 * time.Second)
	defer healthTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-pingTicker.C:
			s.mu.RLock()
			clients := make([]*client, 0, len(s.clients))
			for c := range s.clients {
				clients = append(clients, c)
			}
			s.mu.RUnlock()

			pingMsg := events.Message{
				Type:  "ping",
				Event: &events.Event{Type: events.EventPing},
			}

			for _, c := range clients {
				if !s.sendToClient(c, pingMsg) {
					slog.Warn("failed to send ping to client (queue full)")
				}
			}

		case <-healthTicker.C:
			// Two-phase: collect stale clients under RLock, remove after
			s.mu.RLock()
			staleClients := make([]*client, 0)
			now := time.Now()
			for c := range s.clients {
				c.mu.Lock()
				lastPong := c.lastPong
				c.mu.Unlock()

				if now.Sub(lastPong) > 90*time.Second {
					staleClients = append(staleClients, c)
				}
			}
			s.mu.RUnlock()

			for _, c := range staleClients {
				slog.Info("removing stale client", "last_pong_ago", now.Sub(c.lastPong).String())
				s.removeClient(c)
			}
		}
	}
}

// Broadcast queues an event for delivery to all clients (non-blocking)
func (s *Server) Broadcast(event events.Event) error {
	select {
	case s.broadcast <- event:
		return nil
	default:
		return fmt.Errorf("broadcast channel full")
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	s.shutdownOnce.Do(func() {
		slog.Info("shutting down daemon")

		s.cancel()

		if s.listener != nil {
			if closeErr := s.listener.Close(); closeErr != nil {
				slog.Error("error closing listener", "error", closeErr)
			}
		}

		s.mu.Lock()
		for c := range s.clients {
			if closeErr := c.conn.Close(); closeErr != nil {
				slog.Error("error closing client connection", "error", closeErr)
			}
			c.closeOnce.Do(func() {
				close(c.send)
			})
		}
		s.clients = make(map[*client]bool)
		s.mu.Unlock()

		if removeErr := os.Remove(s.socketPath); removeErr != nil && !os.IsNotExist(removeErr) {
			slog.Warn("failed to remove socket file", "error", removeErr)
		}
	})

	return nil
}

// sendToClient queues a message for a client; returns false if full
func (s *Server) sendToClient(c *client, msg events.Message) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// removeClient unregisters a client and closes its resources
func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.clients, c)
	s.mu.Unlock()

	_ = c.conn.Close()
	c.closeOnce.Do(func() {
		close(c.send)
	})
	s.updateClientCount()
}

func (s *Server) getClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) updateClientCount() {
	s.metrics.SetConnectedClients(int32(s.getClientCount()))
}
