package events

import "context"

// Publisher defines the interface for sending and receiving daemon events.
// Depending on behavior rather than the concrete client keeps the service
// layer testable without a running daemon.
type Publisher interface {
	// Connect establishes a connection to the daemon socket
	Connect(ctx context.Context) error

	// SendEvent queues an event to be sent to the daemon
	SendEvent(event Event) error

	// Listen starts listening for events from the daemon
	Listen(ctx context.Context) (<-chan Event, error)

	// Close closes the connection and stops all goroutines
	Close() error
}

// Compile-time verification that *Client implements Publisher
var _ Publisher = (*Client)(nil)
