package events

import "time"

// EventType indicates what kind of notification occurred
type EventType string

const (
	// EventTasksChanged is broadcast after any mutation of the task file
	EventTasksChanged EventType = "tasks_changed"

	// EventReminderDue is broadcast by the daemon when a reminder fires
	EventReminderDue EventType = "reminder_due"

	EventPing EventType = "ping"
	EventPong EventType = "pong"
)

// Event is a single notification on the daemon socket
type Event struct {
	Type       EventType
	TaskID     string    // Set for reminder_due events
	TaskTitle  string    // Set for reminder_due events
	RemindAt   time.Time // Set for reminder_due events
	Timestamp  time.Time // When the event occurred
	SequenceID int64     // Monotonically increasing, for ordering
}

// Message wraps events and control messages for the wire protocol
type Message struct {
	Type  string // "event", "ping", "pong"
	Event *Event `json:",omitempty"`
}
