// Package reminder watches task reminders and fires notifications when
// they come due.
package reminder

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/yuchhuang/dodo/internal/models"
)

// DefaultCheckInterval is how often the watcher scans for due reminders
const DefaultCheckInterval = 1 * time.Second

// Notification describes a reminder that came due
type Notification struct {
	TaskID    string    `json:"task_id"`
	TaskTitle string    `json:"task_title"`
	RemindAt  time.Time `json:"remind_at"`
}

// Callback is invoked once for each reminder when it fires
type Callback func(Notification)

// Status is a snapshot of the watcher state
type Status struct {
	Running       bool          `json:"running"`
	Total         int           `json:"total"`
	Active        int           `json:"active"`
	Overdue       int           `json:"overdue"`
	CheckInterval time.Duration `json:"check_interval"`
}

// entry tracks a single scheduled reminder
type entry struct {
	taskID   string
	title    string
	remindAt time.Time
	notified bool
}

// Watcher checks scheduled reminders on a fixed interval and fires each
// one exactly once. It holds its own copy of the schedule; call
// UpdateTasks after any mutation to keep it in sync with the task list.
type Watcher struct {
	mu       sync.Mutex
	entries  map[string]*entry
	callback Callback
	interval time.Duration
	running  bool
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewWatcher creates a watcher. A zero interval uses DefaultCheckInterval.
func NewWatcher(interval time.Duration, callback Callback) *Watcher {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &Watcher{
		entries:  make(map[string]*entry),
		callback: callback,
		interval: interval,
	}
}

// UpdateTasks rebuilds the schedule from the task list. Only uncompleted
// tasks with a reminder are scheduled. A reminder that already fired
// stays fired across rebuilds unless its time changed, so a reschedule
// notifies again but a plain reload cannot re-notify.
func (w *Watcher) UpdateTasks(tasks []*models.Task) {
	w.mu.Lock()
	defer w.mu.Unlock()

	fired := make(map[string]time.Time, len(w.entries))
	for id, e := range w.entries {
		if e.notified {
			fired[id] = e.remindAt
		}
	}

	w.entries = make(map[string]*entry)
	for _, t := range tasks {
		if !t.HasPendingReminder() {
			continue
		}
		firedAt, wasFired := fired[t.ID]
		w.entries[t.ID] = &entry{
			taskID:   t.ID,
			title:    t.Title,
			remindAt: *t.RemindAt,
			notified: wasFired && firedAt.Equal(*t.RemindAt),
		}
	}
}

// Remove drops a task's reminder from the schedule
func (w *Watcher) Remove(taskID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.entries, taskID)
}

// Start begins monitoring. Calling Start on a running watcher is a no-op.
func (w *Watcher) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	ctx, w.cancel = context.WithCancel(ctx)
	w.done = make(chan struct{})
	w.mu.Unlock()

	go w.run(ctx)
	slog.Debug("reminder watcher started", "interval", w.interval)
}

// Stop halts monitoring and waits for the loop to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	cancel := w.cancel
	done := w.done
	w.mu.Unlock()

	cancel()
	<-done
	slog.Debug("reminder watcher stopped")
}

// run is the monitoring loop
func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			w.check(now)
		}
	}
}

// check fires every due, unfired reminder. Fired entries stay in the
// schedule so a task-list rebuild keeps their fired state.
func (w *Watcher) check(now time.Time) {
	w.mu.Lock()
	var due []Notification
	for _, e := range w.entries {
		if e.notified || e.remindAt.After(now) {
			continue
		}
		e.notified = true
		due = append(due, Notification{
			TaskID:    e.taskID,
			TaskTitle: e.title,
			RemindAt:  e.remindAt,
		})
	}
	callback := w.callback
	w.mu.Unlock()

	// Fire outside the lock so a slow callback cannot stall the schedule
	for _, n := range due {
		slog.Info("reminder due", "task_id", n.TaskID, "title", n.TaskTitle)
		if callback != nil {
			callback(n)
		}
	}
}

// Upcoming returns unfired reminders due within the window, soonest first
func (w *Watcher) Upcoming(within time.Duration) []Notification {
	now := time.Now()
	cutoff := now.Add(within)

	w.mu.Lock()
	var upcoming []Notification
	for _, e := range w.entries {
		if e.notified || e.remindAt.Before(now) || e.remindAt.After(cutoff) {
			continue
		}
		upcoming = append(upcoming, Notification{
			TaskID:    e.taskID,
			TaskTitle: e.title,
			RemindAt:  e.remindAt,
		})
	}
	w.mu.Unlock()

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].RemindAt.Before(upcoming[j].RemindAt)
	})
	return upcoming
}

// Status reports the watcher state
func (w *Watcher) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	s := Status{
		Running:       w.running,
		Total:         len(w.entries),
		CheckInterval: w.interval,
	}
	for _, e := range w.entries {
		if e.notified {
			continue
		}
		s.Active++
		if e.remindAt.Before(now) {
			s.Overdue++
		}
	}
	return s
}
