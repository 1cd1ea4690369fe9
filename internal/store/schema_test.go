package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yuchhuang/dodo/internal/models"
)

func TestValidateFile_MissingFileIsValid(t *testing.T) {
	result, err := ValidateFile(filepath.Join(t.TempDir(), "tasks.json"))
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !result.Valid {
		t.Error("Missing file should validate as an empty list")
	}
}

func TestValidateFile_SavedFileIsValid(t *testing.T) {
	fs := newTestStore(t)

	task := models.NewTask("Buy groceries", "life")
	task.SetReminder(time.Now().Add(time.Hour))
	done := models.NewTask("Mow lawn", "life")
	done.MarkCompleted()

	if err := fs.Save([]*models.Task{task, done}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	result, err := ValidateFile(fs.Path())
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !result.Valid {
		t.Errorf("Saved file should validate, got violations: %v", result.Errors)
	}
}

func TestValidateFile_Violations(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not json", `{broken`},
		{"not an array", `{"id": "x"}`},
		{"missing required fields", `[{"title": "no id"}]`},
		{"wrong type", `[{"id": 5, "title": "x", "category": "general", "completed": false, "created_at": "2026-08-23T10:00:00Z"}]`},
		{"unknown field", `[{"id": "a", "title": "x", "category": "general", "completed": false, "created_at": "2026-08-23T10:00:00Z", "priority": 3}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("WriteFile: %v", err)
			}

			result, err := ValidateFile(path)
			if err != nil {
				t.Fatalf("ValidateFile: %v", err)
			}
			if result.Valid {
				t.Error("Expected validation to fail")
			}
			if len(result.Errors) == 0 {
				t.Error("Expected at least one violation")
			}
		})
	}
}
