package task

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yuchhuang/dodo/internal/models"
	"github.com/yuchhuang/dodo/internal/store"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	fs, err := store.NewFileStore(filepath.Join(t.TempDir(), "tasks.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	svc := NewService(fs)
	if err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	return svc
}

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func mustCreate(t *testing.T, svc Service, title, category string) *models.Task {
	t.Helper()
	created, err := svc.CreateTask(context.Background(), CreateTaskRequest{
		Title:    title,
		Category: category,
	})
	if err != nil {
		t.Fatalf("CreateTask(%q): %v", title, err)
	}
	return created
}

func TestCreateTask_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	past := time.Now().Add(-time.Hour)

	tests := []struct {
		name    string
		req     CreateTaskRequest
		wantErr error
	}{
		{"empty title", CreateTaskRequest{Title: "   "}, ErrEmptyTitle},
		{"title too long", CreateTaskRequest{Title: strings.Repeat("x", models.MaxTitleLength+1)}, ErrTitleTooLong},
		{"notes too long", CreateTaskRequest{Title: "ok", Notes: strings.Repeat("n", models.MaxNotesLength+1)}, ErrNotesTooLong},
		{"reminder in past", CreateTaskRequest{Title: "ok", RemindAt: &past}, ErrReminderInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateTask(ctx, tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateTask() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateTask_DefaultsCategory(t *testing.T) {
	svc := newTestService(t)
	created := mustCreate(t, svc, "no category", "")
	if created.Category != models.CategoryGeneral {
		t.Errorf("Expected default category, got '%s'", created.Category)
	}
}

func TestCreateTask_PersistsImmediately(t *testing.T) {
	ctx := context.Background()
	fs, err := store.NewFileStore(filepath.Join(t.TempDir(), "tasks.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	svc := NewService(fs)
	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	created := mustCreate(t, svc, "persisted", "work")

	// A second service over the same file must see the task
	other := NewService(fs)
	if err := other.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if _, err := other.GetTask(ctx, created.ID); err != nil {
		t.Errorf("Expected task on disk after create: %v", err)
	}
}

func TestToggleTask_TwiceIsIdentity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	created := mustCreate(t, svc, "toggle me", "work")

	once, err := svc.ToggleTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	if !once.Completed || once.CompletedAt == nil {
		t.Error("Expected completed with timestamp after first toggle")
	}

	twice, err := svc.ToggleTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	if twice.Completed || twice.CompletedAt != nil {
		t.Error("Expected pending without timestamp after second toggle")
	}
	if twice.ID != created.ID || twice.Title != created.Title {
		t.Error("Toggle must not change ID or title")
	}
}

func TestUpdateTask_PartialUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	created := mustCreate(t, svc, "original", "work")

	newTitle := "renamed"
	updated, err := svc.UpdateTask(ctx, UpdateTaskRequest{TaskID: created.ID, Title: &newTitle})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if updated.Title != "renamed" {
		t.Errorf("Expected renamed title, got '%s'", updated.Title)
	}
	if updated.Category != "work" {
		t.Errorf("Omitted field must stay unchanged, got category '%s'", updated.Category)
	}

	empty := "  "
	if _, err := svc.UpdateTask(ctx, UpdateTaskRequest{TaskID: created.ID, Title: &empty}); !errors.Is(err, ErrEmptyTitle) {
		t.Errorf("Expected ErrEmptyTitle, got %v", err)
	}
	if _, err := svc.UpdateTask(ctx, UpdateTaskRequest{TaskID: created.ID, Category: &empty}); !errors.Is(err, ErrEmptyCategory) {
		t.Errorf("Expected ErrEmptyCategory, got %v", err)
	}
}

func TestDeleteTask(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	created := mustCreate(t, svc, "delete me", "")

	if err := svc.DeleteTask(ctx, created.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if _, err := svc.GetTask(ctx, created.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound after delete, got %v", err)
	}
	if err := svc.DeleteTask(ctx, created.ID); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("Expected ErrTaskNotFound on double delete, got %v", err)
	}
}

func TestListTasks_Filters(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	mustCreate(t, svc, "Write report", "work")
	mustCreate(t, svc, "Buy groceries", "life")
	done := mustCreate(t, svc, "Mow lawn", "life")
	if _, err := svc.ToggleTask(ctx, done.ID); err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}

	tests := []struct {
		name   string
		filter ListFilter
		want   int
	}{
		{"all", ListFilter{}, 3},
		{"pending", ListFilter{Status: StatusPending}, 2},
		{"completed", ListFilter{Status: StatusCompleted}, 1},
		{"by category", ListFilter{Category: "life"}, 2},
		{"category is case-insensitive", ListFilter{Category: "LIFE"}, 2},
		{"search title", ListFilter{Search: "report"}, 1},
		{"search no match", ListFilter{Search: "zzz"}, 0},
		{"combined", ListFilter{Status: StatusPending, Category: "life"}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListTasks(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListTasks: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Expected %d tasks, got %d", tt.want, len(got))
			}
		})
	}

	// Pending tasks sort before completed ones
	all, err := svc.ListTasks(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if all[len(all)-1].ID != done.ID {
		t.Error("Expected completed task sorted last")
	}
}

func TestReminders(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	created := mustCreate(t, svc, "remind me", "")

	if _, err := svc.SetReminder(ctx, created.ID, time.Now().Add(-time.Minute)); !errors.Is(err, ErrReminderInPast) {
		t.Errorf("Expected ErrReminderInPast, got %v", err)
	}

	at := time.Now().Add(time.Hour)
	withReminder, err := svc.SetReminder(ctx, created.ID, at)
	if err != nil {
		t.Fatalf("SetReminder: %v", err)
	}
	if withReminder.RemindAt == nil || !withReminder.RemindAt.Equal(at) {
		t.Errorf("Expected reminder at %v, got %v", at, withReminder.RemindAt)
	}

	cleared, err := svc.ClearReminder(ctx, created.ID)
	if err != nil {
		t.Fatalf("ClearReminder: %v", err)
	}
	if cleared.RemindAt != nil {
		t.Error("Expected reminder cleared")
	}

	if _, err := svc.ClearReminder(ctx, created.ID); !errors.Is(err, ErrNoReminderSet) {
		t.Errorf("Expected ErrNoReminderSet, got %v", err)
	}
}

func TestClearCompleted(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	keep := mustCreate(t, svc, "keep", "")
	for _, title := range []string{"done1", "done2"} {
		created := mustCreate(t, svc, title, "")
		if _, err := svc.ToggleTask(ctx, created.ID); err != nil {
			t.Fatalf("ToggleTask: %v", err)
		}
	}

	removed, err := svc.ClearCompleted(ctx)
	if err != nil {
		t.Fatalf("ClearCompleted: %v", err)
	}
	if removed != 2 {
		t.Errorf("Expected 2 removed, got %d", removed)
	}

	remaining, err := svc.ListTasks(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != keep.ID {
		t.Errorf("Expected only the pending task to remain, got %d", len(remaining))
	}

	// Nothing left to clear
	removed, err = svc.ClearCompleted(ctx)
	if err != nil {
		t.Fatalf("ClearCompleted: %v", err)
	}
	if removed != 0 {
		t.Errorf("Expected 0 removed on second clear, got %d", removed)
	}
}

func TestClearCompleted_Archives(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fs, err := store.NewFileStore(filepath.Join(dir, "tasks.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	archive, err := store.OpenArchive(ctx, filepath.Join(dir, "archive.db"))
	if err != nil {
		t.Fatalf("OpenArchive: %v", err)
	}
	defer archive.Close()

	svc := NewService(fs, WithArchive(archive))
	if err := svc.Reload(ctx); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	created := mustCreate(t, svc, "archived", "work")
	if _, err := svc.ToggleTask(ctx, created.ID); err != nil {
		t.Fatalf("ToggleTask: %v", err)
	}
	if _, err := svc.ClearCompleted(ctx); err != nil {
		t.Fatalf("ClearCompleted: %v", err)
	}

	stats, err := archive.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 1 || stats.ByCategory["work"] != 1 {
		t.Errorf("Expected cleared task in archive, got %+v", stats)
	}
}

func TestReload_SurvivesCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.json")

	fs, err := store.NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	svc := NewService(fs)
	mustWrite(t, path, "[{bad")

	err = svc.Reload(ctx)
	var corrupt *store.CorruptError
	if !errors.As(err, &corrupt) {
		t.Fatalf("Expected CorruptError, got %v", err)
	}

	// The service keeps working on an empty list
	tasks, err := svc.ListTasks(ctx, ListFilter{})
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("Expected empty list, got %d", len(tasks))
	}
	mustCreate(t, svc, "fresh start", "")
}
