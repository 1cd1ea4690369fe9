package task

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuchhuang/dodo/internal/models"
	taskservice "github.com/yuchhuang/dodo/internal/services/task"
)

// resolveTaskID matches a full or prefix task ID against the task list.
// A prefix must match exactly one task.
func resolveTaskID(ctx context.Context, svc taskservice.Service, arg string) (*models.Task, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return nil, fmt.Errorf("task ID is required")
	}

	tasks, err := svc.ListTasks(ctx, taskservice.ListFilter{})
	if err != nil {
		return nil, err
	}

	var matched []*models.Task
	for _, t := range tasks {
		if t.ID == arg {
			return t, nil
		}
		if strings.HasPrefix(t.ID, arg) {
			matched = append(matched, t)
		}
	}

	switch len(matched) {
	case 0:
		return nil, fmt.Errorf("no task matches ID '%s'", arg)
	case 1:
		return matched[0], nil
	default:
		return nil, fmt.Errorf("ID '%s' is ambiguous (%d matches); use more characters", arg, len(matched))
	}
}
