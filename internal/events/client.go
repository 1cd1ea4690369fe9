package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"sync"
	"time"
)

// Client is a connection to the dodo daemon for publishing mutations and
// receiving reminder notifications. Sends are queued and debounced so a
// burst of mutations collapses into a single tasks_changed event.
type Client struct {
	socketPath string
	conn       net.Conn
	encoder    *json.Encoder
	decoder    *json.Decoder
	mu         sync.Mutex

	eventQueue     chan Event
	debounce       time.Duration
	closed         bool
	batcherStarted bool

	maxRetries int
	baseDelay  time.Duration

	ctx         context.Context
	cancel      context.CancelFunc
	batcherDone chan struct{}
}

// NewClient creates a new event client but does not connect.
// The debounce window defaults to 100ms; override with DODO_EVENT_DEBOUNCE_MS.
func NewClient(socketPath string) (*Client, error) {
	debounceMs := 100
	if envVal := os.Getenv("DODO_EVENT_DEBOUNCE_MS"); envVal != "" {
		if parsed, err := strconv.Atoi(envVal); err == nil && parsed > 0 {
			debounceMs = parsed
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		socketPath:  socketPath,
		eventQueue:  make(chan Event, 100),
		debounce:    time.Duration(debounceMs) * time.Millisecond,
		maxRetries:  5,
		baseDelay:   1 * time.Second,
		ctx:         ctx,
		cancel:      cancel,
		batcherDone: make(chan struct{}),
	}, nil
}

// Connect establishes a connection to the daemon socket and starts the
// batching goroutine.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("dial daemon socket: %w", err)
	}

	c.conn = conn
	c.encoder = json.NewEncoder(conn)
	c.decoder = json.NewDecoder(conn)

	if !c.batcherStarted {
		c.batcherStarted = true
		go c.startBatcher()
	}

	return nil
}

// SendEvent queues an event to be sent to the daemon. Non-blocking:
// returns an error if the queue is full.
func (c *Client) SendEvent(event Event) error {
	select {
	case c.eventQueue <- event:
		return nil
	default:
		return fmt.Errorf("event queue full")
	}
}

// startBatcher drains the queue and flushes at most one tasks_changed
// event per debounce window. Reminder events pass through immediately.
func (c *Client) startBatcher() {
	defer close(c.batcherDone)

	ticker := time.NewTicker(c.debounce)
	defer ticker.Stop()

	var pending bool

	flushPending := func() {
		if !pending {
			return
		}
		if err := c.sendToSocket(Event{
			Type:      EventTasksChanged,
			Timestamp: time.Now(),
		}); err != nil {
			slog.Debug("failed to send batched event", "error", err)
		}
		pending = false
	}

	for {
		select {
		case <-c.ctx.Done():
			flushPending()
			return

		case event, ok := <-c.eventQueue:
			if !ok {
				flushPending()
				return
			}
			if event.Type == EventTasksChanged {
				pending = true
				continue
			}
			// Non-batchable events go straight through
			if err := c.sendToSocket(event); err != nil {
				slog.Debug("failed to send event", "type", event.Type, "error", err)
			}

		case <-ticker.C:
			flushPending()
		}
	}
}

// sendToSocket writes a single event to the daemon socket
func (c *Client) sendToSocket(event Event) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return fmt.Errorf("not connected to daemon")
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}

	return c.encoder.Encode(Message{Type: "event", Event: &event})
}

// Listen returns a channel of events from the daemon. Reconnects
// automatically with exponential backoff; the channel closes when the
// context is done or reconnection gives up.
func (c *Client) Listen(ctx context.Context) (<-chan Event, error) {
	eventChan := make(chan Event, 10)
	go c.listenLoop(ctx, eventChan)
	return eventChan, nil
}

func (c *Client) listenLoop(ctx context.Context, eventChan chan Event) {
	defer close(eventChan)

	for {
		select {
		case <-ctx.Done():
			return
		default:
			if err := c.readEvents(ctx, eventChan); err != nil {
				slog.Debug("daemon connection lost", "error", err)
				if c.reconnect(ctx) {
					slog.Debug("reconnected to daemon")
					continue
				}
				slog.Warn("giving up reconnecting to daemon", "attempts", c.maxRetries)
				return
			}
		}
	}
}

// readEvents decodes messages until the connection fails
func (c *Client) readEvents(ctx context.Context, eventChan chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		c.mu.Lock()
		decoder := c.decoder
		c.mu.Unlock()
		if decoder == nil {
			return fmt.Errorf("not connected to daemon")
		}

		var msg Message
		if err := decoder.Decode(&msg); err != nil {
			return fmt.Errorf("decode message: %w", err)
		}

		switch msg.Type {
		case "ping":
			c.mu.Lock()
			if c.encoder != nil {
				_ = c.encoder.Encode(Message{Type: "pong"})
			}
			c.mu.Unlock()
		case "event":
			if msg.Event == nil {
				continue
			}
			select {
			case eventChan <- *msg.Event:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

// reconnect attempts to re-establish the daemon connection with
// exponential backoff. Returns true on success.
func (c *Client) reconnect(ctx context.Context) bool {
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		delay := c.baseDelay * (1 << attempt)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(delay):
		}

		c.mu.Lock()
		if c.conn != nil {
			_ = c.conn.Close()
		}
		dialer := net.Dialer{}
		conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
		if err == nil {
			c.conn = conn
			c.encoder = json.NewEncoder(conn)
			c.decoder = json.NewDecoder(conn)
			c.mu.Unlock()
			return true
		}
		c.mu.Unlock()
	}
	return false
}

// Close shuts down the client and its goroutines
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	batcherStarted := c.batcherStarted
	c.mu.Unlock()

	c.cancel()
	close(c.eventQueue)
	if batcherStarted {
		<-c.batcherDone
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
