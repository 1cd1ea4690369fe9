package models

import (
	"time"

	"github.com/google/uuid"
)

// Task represents a single to-do entry
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Notes       string     `json:"notes,omitempty"`
	Category    string     `json:"category"`
	Completed   bool       `json:"completed"`
	RemindAt    *time.Time `json:"remind_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// NewTask creates a task with a fresh ID and creation timestamp.
// An empty category falls back to CategoryGeneral.
func NewTask(title, category string) *Task {
	if category == "" {
		category = CategoryGeneral
	}
	return &Task{
		ID:        uuid.NewString(),
		Title:     title,
		Category:  category,
		CreatedAt: time.Now(),
	}
}

// MarkCompleted marks the task done and records when.
// Identity and title are never touched.
func (t *Task) MarkCompleted() {
	now := time.Now()
	t.Completed = true
	t.CompletedAt = &now
}

// MarkUncompleted clears the completion state and timestamp
func (t *Task) MarkUncompleted() {
	t.Completed = false
	t.CompletedAt = nil
}

// Toggle flips the completion state. Toggling twice returns the task
// to its original state.
func (t *Task) Toggle() {
	if t.Completed {
		t.MarkUncompleted()
	} else {
		t.MarkCompleted()
	}
}

// SetReminder sets the reminder time
func (t *Task) SetReminder(at time.Time) {
	t.RemindAt = &at
}

// ClearReminder removes the reminder
func (t *Task) ClearReminder() {
	t.RemindAt = nil
}

// HasPendingReminder reports whether the task still has a reminder that
// should fire: uncompleted and with a reminder set.
func (t *Task) HasPendingReminder() bool {
	return !t.Completed && t.RemindAt != nil
}

// Clone returns a deep copy of the task. Time pointers are duplicated so
// callers can mutate the copy without touching the original.
func (t *Task) Clone() *Task {
	c := *t
	if t.RemindAt != nil {
		at := *t.RemindAt
		c.RemindAt = &at
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}
