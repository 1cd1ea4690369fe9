package cli

import (
	"strings"
	"testing"

	"github.com/yuchhuang/dodo/internal/testutil"
)

type idRow struct {
	ID string `json:"id"`
}

func (r idRow) GetID() string { return r.ID }

func TestOutputFormatter_SuccessJSON(t *testing.T) {
	f := &OutputFormatter{JSON: true}

	output := testutil.CaptureOutput(t, func() {
		if err := f.Success(idRow{ID: "abc"}); err != nil {
			t.Errorf("Success: %v", err)
		}
	})

	result := testutil.ParseJSON(t, output)
	if result["success"] != true {
		t.Error("Expected success=true")
	}
	data, ok := result["data"].(map[string]interface{})
	if !ok || data["id"] != "abc" {
		t.Errorf("Unexpected data payload: %v", result["data"])
	}
}

func TestOutputFormatter_QuietPrintsID(t *testing.T) {
	f := &OutputFormatter{Quiet: true}

	output := testutil.CaptureOutput(t, func() {
		if err := f.Success(idRow{ID: "abc-123"}); err != nil {
			t.Errorf("Success: %v", err)
		}
	})

	if strings.TrimSpace(output) != "abc-123" {
		t.Errorf("Expected bare ID, got %q", output)
	}
}

func TestOutputFormatter_ErrorJSON(t *testing.T) {
	f := &OutputFormatter{JSON: true}

	output := testutil.CaptureOutput(t, func() {
		if err := f.ErrorWithSuggestion("TASK_NOT_FOUND", "no such task", "check the ID"); err != nil {
			t.Errorf("ErrorWithSuggestion: %v", err)
		}
	})

	result := testutil.ParseJSON(t, output)
	if result["success"] != false {
		t.Error("Expected success=false")
	}
	errData, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("Expected error object, got %v", result["error"])
	}
	if errData["code"] != "TASK_NOT_FOUND" || errData["message"] != "no such task" {
		t.Errorf("Unexpected error payload: %v", errData)
	}
	if errData["suggestion"] != "check the ID" {
		t.Errorf("Expected suggestion, got %v", errData["suggestion"])
	}
}

func TestOutputFormatter_ErrorHumanGoesToStderr(t *testing.T) {
	f := &OutputFormatter{}

	// Human-mode errors write to stderr, so stdout stays empty
	output := testutil.CaptureOutput(t, func() {
		if err := f.Error("SOME_ERROR", "boom"); err != nil {
			t.Errorf("Error: %v", err)
		}
	})

	if output != "" {
		t.Errorf("Expected empty stdout, got %q", output)
	}
}
