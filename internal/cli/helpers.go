package cli

import (
	"fmt"
	"strings"

	taskservice "github.com/yuchhuang/dodo/internal/services/task"
)

// NormalizeCategory lowercases and trims a category name
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}

// ParseStatusFilter maps a status string to a service filter
func ParseStatusFilter(status string) (taskservice.StatusFilter, error) {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "", "all":
		return taskservice.StatusAll, nil
	case "pending", "open", "todo":
		return taskservice.StatusPending, nil
	case "completed", "done":
		return taskservice.StatusCompleted, nil
	default:
		return "", fmt.Errorf("invalid status '%s' (must be: all, pending, completed)", status)
	}
}

// TruncateTitle shortens a title for single-line display
func TruncateTitle(title string, max int) string {
	if max <= 3 || len(title) <= max {
		return title
	}
	return title[:max-3] + "..."
}
