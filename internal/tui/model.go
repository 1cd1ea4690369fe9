// Package tui implements the interactive terminal view: a single task
// list with inline add, search, reminder, and clear operations.
package tui

import (
	"context"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/yuchhuang/dodo/internal/app"
	"github.com/yuchhuang/dodo/internal/models"
	"github.com/yuchhuang/dodo/internal/reminder"
	taskservice "github.com/yuchhuang/dodo/internal/services/task"
)

// Mode is the current interaction mode of the TUI
type Mode int

const (
	NormalMode Mode = iota
	AddMode
	SearchMode
	RemindMode
	ConfirmDeleteMode
	HelpMode
)

// Model is the application state for the TUI
type Model struct {
	ctx context.Context
	app *app.App

	tasks  []*models.Task
	cursor int
	mode   Mode

	input        textinput.Model
	searchQuery  string
	statusFilter taskservice.StatusFilter

	quickOptions []reminder.QuickOption
	quickCursor  int

	stats models.Stats

	statusMsg string
	errorMsg  string

	width  int
	height int
}

// InitialModel creates the TUI model and loads the task list
func InitialModel(ctx context.Context, application *app.App) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = models.MaxTitleLength

	m := Model{
		ctx:          ctx,
		app:          application,
		mode:         NormalMode,
		input:        ti,
		statusFilter: taskservice.StatusAll,
	}

	if application.LoadWarning != nil {
		m.errorMsg = "Task file was corrupt and has been moved aside; starting fresh"
	}

	m.refresh()
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// refresh reloads the visible task list and stats from the service
func (m *Model) refresh() {
	tasks, err := m.app.TaskService.ListTasks(m.ctx, taskservice.ListFilter{
		Status: m.statusFilter,
		Search: m.searchQuery,
	})
	if err != nil {
		slog.Error("failed to list tasks", "error", err)
		m.errorMsg = err.Error()
		return
	}
	m.tasks = tasks

	stats, err := m.app.TaskService.Stats(m.ctx)
	if err != nil {
		slog.Error("failed to compute stats", "error", err)
	} else {
		m.stats = stats
	}

	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// currentTask returns the task under the cursor, or nil
func (m Model) currentTask() *models.Task {
	if len(m.tasks) == 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return m.tasks[m.cursor]
}

// setStatus replaces the one-line status message shown in the footer
func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.errorMsg = ""
}

// setError replaces the status line with an error
func (m *Model) setError(err error) {
	m.errorMsg = err.Error()
	m.statusMsg = ""
}

// openRemindMode builds the quick-option list for the current task
func (m *Model) openRemindMode() {
	m.quickOptions = reminder.QuickOptions(time.Now())
	m.quickCursor = 0
	m.mode = RemindMode
}
