package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	taskservice "github.com/yuchhuang/dodo/internal/services/task"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case AddMode:
			return m.updateAddMode(msg)
		case SearchMode:
			return m.updateSearchMode(msg)
		case RemindMode:
			return m.updateRemindMode(msg)
		case ConfirmDeleteMode:
			return m.updateConfirmDeleteMode(msg)
		case HelpMode:
			m.mode = NormalMode
			return m, nil
		default:
			return m.updateNormalMode(msg)
		}
	}

	return m, nil
}

// updateNormalMode handles keys in the task list view
func (m Model) updateNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		if len(m.tasks) > 0 {
			m.cursor = len(m.tasks) - 1
		}

	case " ", "space", "enter":
		if t := m.currentTask(); t != nil {
			toggled, err := m.app.TaskService.ToggleTask(m.ctx, t.ID)
			if err != nil {
				m.setError(err)
				break
			}
			if toggled.Completed {
				m.setStatus(fmt.Sprintf("Completed '%s'", toggled.Title))
			} else {
				m.setStatus(fmt.Sprintf("Reopened '%s'", toggled.Title))
			}
			m.refresh()
		}

	case "a":
		m.input.Reset()
		m.input.Placeholder = "Task title"
		m.mode = AddMode
		return m, m.input.Focus()

	case "/":
		m.input.Reset()
		m.input.SetValue(m.searchQuery)
		m.input.Placeholder = "Search"
		m.mode = SearchMode
		return m, m.input.Focus()

	case "d":
		if m.currentTask() != nil {
			m.mode = ConfirmDeleteMode
		}

	case "r":
		if t := m.currentTask(); t != nil {
			if t.Completed {
				m.setStatus("Completed tasks do not take reminders")
				break
			}
			m.openRemindMode()
		}

	case "R":
		if t := m.currentTask(); t != nil && t.RemindAt != nil {
			if _, err := m.app.TaskService.ClearReminder(m.ctx, t.ID); err != nil {
				m.setError(err)
				break
			}
			m.setStatus(fmt.Sprintf("Reminder cleared for '%s'", t.Title))
			m.refresh()
		}

	case "c":
		removed, err := m.app.TaskService.ClearCompleted(m.ctx)
		if err != nil {
			m.setError(err)
			break
		}
		if removed == 0 {
			m.setStatus("No completed tasks to clear")
		} else {
			m.setStatus(fmt.Sprintf("Cleared %d completed tasks", removed))
		}
		m.refresh()

	case "p":
		m.cycleStatusFilter()
		m.refresh()

	case "x":
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.setStatus("Search cleared")
			m.refresh()
		}

	case "?":
		m.mode = HelpMode
	}

	return m, nil
}

// cycleStatusFilter rotates all -> pending -> completed -> all
func (m *Model) cycleStatusFilter() {
	switch m.statusFilter {
	case taskservice.StatusAll:
		m.statusFilter = taskservice.StatusPending
	case taskservice.StatusPending:
		m.statusFilter = taskservice.StatusCompleted
	default:
		m.statusFilter = taskservice.StatusAll
	}
}

// updateAddMode handles the inline add-task input
func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = NormalMode
		m.input.Blur()
		return m, nil

	case "enter":
		title := m.input.Value()
		m.mode = NormalMode
		m.input.Blur()

		created, err := m.app.TaskService.CreateTask(m.ctx, taskservice.CreateTaskRequest{
			Title:    title,
			Category: m.app.Config.DefaultCategory,
		})
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Added '%s'", created.Title))
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// updateSearchMode handles the search input; the list filters live
func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = NormalMode
		m.input.Blur()
		m.searchQuery = ""
		m.refresh()
		return m, nil

	case "enter":
		m.mode = NormalMode
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.searchQuery = m.input.Value()
	m.refresh()
	return m, cmd
}

// updateRemindMode handles the quick-option reminder picker
func (m Model) updateRemindMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = NormalMode

	case "j", "down":
		if m.quickCursor < len(m.quickOptions)-1 {
			m.quickCursor++
		}
	case "k", "up":
		if m.quickCursor > 0 {
			m.quickCursor--
		}

	case "enter":
		t := m.currentTask()
		if t == nil || len(m.quickOptions) == 0 {
			m.mode = NormalMode
			break
		}
		opt := m.quickOptions[m.quickCursor]
		if _, err := m.app.TaskService.SetReminder(m.ctx, t.ID, opt.At); err != nil {
			m.setError(err)
		} else {
			m.setStatus(fmt.Sprintf("Reminder for '%s' set %s", t.Title, opt.Label))
		}
		m.mode = NormalMode
		m.refresh()
	}

	return m, nil
}

// updateConfirmDeleteMode handles the delete confirmation prompt
func (m Model) updateConfirmDeleteMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "enter":
		t := m.currentTask()
		m.mode = NormalMode
		if t == nil {
			break
		}
		if err := m.app.TaskService.DeleteTask(m.ctx, t.ID); err != nil {
			m.setError(err)
			break
		}
		m.setStatus(fmt.Sprintf("Deleted '%s'", t.Title))
		m.refresh()

	case "n", "esc":
		m.mode = NormalMode
	}

	return m, nil
}
