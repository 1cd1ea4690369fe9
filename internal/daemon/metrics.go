package daemon

import (
	"sync/atomic"
	"time"
)

// Metrics tracks daemon statistics using atomic operations for thread-safety
type Metrics struct {
	EventsReceived   atomic.Int64
	EventsBroadcast  atomic.Int64
	RemindersFired   atomic.Int64
	TaskReloads      atomic.Int64
	ConnectedClients atomic.Int32
	StartTime        time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncEventsReceived increments the events received counter
func (m *Metrics) IncEventsReceived() {
	m.EventsReceived.Add(1)
}

// IncEventsBroadcast increments the events broadcast counter
func (m *Metrics) IncEventsBroadcast() {
	m.EventsBroadcast.Add(1)
}

// IncRemindersFired increments the reminders fired counter
func (m *Metrics) IncRemindersFired() {
	m.RemindersFired.Add(1)
}

// IncTaskReloads increments the task file reload counter
func (m *Metrics) IncTaskReloads() {
	m.TaskReloads.Add(1)
}

// SetConnectedClients sets the current connected clients count
func (m *Metrics) SetConnectedClients(count int32) {
	m.ConnectedClients.Store(count)
}

// MetricsSnapshot represents a point-in-time snapshot of metrics
type MetricsSnapshot struct {
	EventsReceived   int64     `json:"events_received"`
	EventsBroadcast  int64     `json:"events_broadcast"`
	RemindersFired   int64     `json:"reminders_fired"`
	TaskReloads      int64     `json:"task_reloads"`
	ConnectedClients int32     `json:"connected_clients"`
	StartTime        time.Time `json:"start_time"`
	Uptime           string    `json:"uptime"`
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() MetricsSnapshot {
	return MetricsSnapshot{
		EventsReceived:   m.EventsReceived.Load(),
		EventsBroadcast:  m.EventsBroadcast.Load(),
		RemindersFired:   m.RemindersFired.Load(),
		TaskReloads:      m.TaskReloads.Load(),
		ConnectedClients: m.ConnectedClients.Load(),
		StartTime:        m.StartTime,
		Uptime:           time.Since(m.StartTime).String(),
	}
}
