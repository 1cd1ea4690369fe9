// Package converters provides conversion between domain models and the
// display rows used by CLI output and the TUI.
package converters

import (
	"time"

	"github.com/yuchhuang/dodo/internal/models"
)

// Row is a flat, display-ready representation of a task
type Row struct {
	ID        string `json:"id"`
	ShortID   string `json:"short_id"`
	Status    string `json:"status"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Reminder  string `json:"reminder,omitempty"`
	CreatedAt string `json:"created_at"`
	Completed bool   `json:"completed"`
}

// GetID lets the quiet output mode print just the task ID
func (r Row) GetID() string {
	return r.ID
}

// StatusGlyphDone and StatusGlyphPending mark completion state in lists
const (
	StatusGlyphDone    = "✓"
	StatusGlyphPending = "○"
)

// TaskToRow converts a task to its display row
func TaskToRow(t *models.Task) Row {
	r := Row{
		ID:        t.ID,
		ShortID:   ShortID(t.ID),
		Title:     t.Title,
		Category:  t.Category,
		CreatedAt: t.CreatedAt.Format("2006-01-02 15:04"),
		Completed: t.Completed,
		Status:    StatusGlyphPending,
	}
	if t.Completed {
		r.Status = StatusGlyphDone
	}
	if t.RemindAt != nil {
		r.Reminder = FormatReminder(*t.RemindAt)
	}
	return r
}

// TasksToRows converts a task list to display rows
func TasksToRows(tasks []*models.Task) []Row {
	rows := make([]Row, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, TaskToRow(t))
	}
	return rows
}

// ShortID returns the first uuid segment, enough to identify a task in
// a personal list
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// FormatReminder renders a reminder time compactly: clock only for
// today, date and clock otherwise.
func FormatReminder(at time.Time) string {
	now := time.Now()
	if at.Year() == now.Year() && at.YearDay() == now.YearDay() {
		return at.Format("15:04")
	}
	return at.Format("2006-01-02 15:04")
}
