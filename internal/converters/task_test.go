package converters

import (
	"testing"
	"time"

	"github.com/yuchhuang/dodo/internal/models"
)

func TestTaskToRow(t *testing.T) {
	task := models.NewTask("Write report", "work")
	row := TaskToRow(task)

	if row.ID != task.ID {
		t.Errorf("Expected ID %s, got %s", task.ID, row.ID)
	}
	if row.ShortID != task.ID[:8] {
		t.Errorf("Expected short ID %s, got %s", task.ID[:8], row.ShortID)
	}
	if row.Status != StatusGlyphPending {
		t.Errorf("Expected pending glyph, got %s", row.Status)
	}
	if row.Completed {
		t.Error("Expected Completed=false")
	}
	if row.Reminder != "" {
		t.Errorf("Expected empty reminder, got %s", row.Reminder)
	}

	task.MarkCompleted()
	row = TaskToRow(task)
	if row.Status != StatusGlyphDone {
		t.Errorf("Expected done glyph, got %s", row.Status)
	}
}

func TestRow_GetID(t *testing.T) {
	row := Row{ID: "abc-123"}
	if row.GetID() != "abc-123" {
		t.Errorf("GetID() = %s", row.GetID())
	}
}

func TestShortID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"3f2a91cc-0000-0000-0000-000000000000", "3f2a91cc"},
		{"short", "short"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ShortID(tt.in); got != tt.want {
			t.Errorf("ShortID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatReminder(t *testing.T) {
	today := time.Now().Add(time.Minute)
	if got := FormatReminder(today); got != today.Format("15:04") {
		t.Errorf("Today's reminder should be clock-only, got %q", got)
	}

	nextWeek := time.Now().AddDate(0, 0, 7)
	if got := FormatReminder(nextWeek); got != nextWeek.Format("2006-01-02 15:04") {
		t.Errorf("Future reminder should carry the date, got %q", got)
	}
}

func TestTasksToRows(t *testing.T) {
	rows := TasksToRows([]*models.Task{
		models.NewTask("a", ""),
		models.NewTask("b", ""),
	})
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[0].Title != "a" || rows[1].Title != "b" {
		t.Error("Row order should follow input order")
	}

	if got := TasksToRows(nil); len(got) != 0 {
		t.Errorf("Expected empty rows for nil input, got %d", len(got))
	}
}
