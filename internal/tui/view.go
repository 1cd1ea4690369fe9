package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/yuchhuang/dodo/internal/converters"
	taskservice "github.com/yuchhuang/dodo/internal/services/task"
)

// View renders the current state of the application
func (m Model) View() tea.View {
	var view tea.View
	view.AltScreen = true

	if m.width == 0 {
		view.Content = "Loading..."
		return view
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("dodo"))
	if m.statusFilter != taskservice.StatusAll {
		b.WriteString(helpStyle.Render(fmt.Sprintf("  [%s]", m.statusFilter)))
	}
	if m.searchQuery != "" {
		b.WriteString(helpStyle.Render(fmt.Sprintf("  /%s", m.searchQuery)))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderTasks())
	b.WriteString("\n")
	b.WriteString(m.renderPrompt())
	b.WriteString(m.renderFooter())

	view.Content = b.String()
	return view
}

// renderTasks renders the task list with the cursor highlight
func (m Model) renderTasks() string {
	if len(m.tasks) == 0 {
		if m.searchQuery != "" {
			return helpStyle.Render("  No tasks match the search")
		}
		return helpStyle.Render("  No tasks yet. Press 'a' to add one.")
	}

	var b strings.Builder
	for i, t := range m.tasks {
		glyph := converters.StatusGlyphPending
		if t.Completed {
			glyph = converters.StatusGlyphDone
		}

		line := fmt.Sprintf("%s %s", glyph, t.Title)
		if t.Completed {
			line = completedStyle.Render(line)
		}
		line += categoryStyle.Render(fmt.Sprintf("  (%s)", t.Category))
		if t.RemindAt != nil && !t.Completed {
			line += reminderStyle.Render(fmt.Sprintf("  ⏰ %s", converters.FormatReminder(*t.RemindAt)))
		}

		cursor := "  "
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
		}
		b.WriteString(cursor + line + "\n")
	}
	return b.String()
}

// renderPrompt renders the active input or picker, if any
func (m Model) renderPrompt() string {
	switch m.mode {
	case AddMode:
		return promptStyle.Render("New task\n"+m.input.View()) + "\n"

	case SearchMode:
		return promptStyle.Render("Search\n"+m.input.View()) + "\n"

	case RemindMode:
		var b strings.Builder
		b.WriteString("Remind me:\n")
		for i, opt := range m.quickOptions {
			cursor := "  "
			label := opt.Label
			if i == m.quickCursor {
				cursor = "> "
				label = selectedStyle.Render(label)
			}
			b.WriteString(cursor + label + "\n")
		}
		return promptStyle.Render(strings.TrimRight(b.String(), "\n")) + "\n"

	case ConfirmDeleteMode:
		t := m.currentTask()
		if t == nil {
			return ""
		}
		return promptStyle.Render(fmt.Sprintf("Delete '%s'? (y/n)", t.Title)) + "\n"

	case HelpMode:
		help := strings.Join([]string{
			"j/k    move        space  toggle done",
			"a      add task    d      delete",
			"r      reminder    R      clear reminder",
			"/      search      x      clear search",
			"p      filter      c      clear completed",
			"?      help        q      quit",
		}, "\n")
		return promptStyle.Render(help) + "\n"
	}
	return ""
}

// renderFooter renders the stats line and any status or error message
func (m Model) renderFooter() string {
	var b strings.Builder

	b.WriteString(helpStyle.Render(fmt.Sprintf(
		"%d tasks · %d pending · %d done (%.0f%%)",
		m.stats.Total, m.stats.Pending, m.stats.Completed, m.stats.CompletionRate*100)))
	b.WriteString("\n")

	switch {
	case m.errorMsg != "":
		b.WriteString(errorStyle.Render(m.errorMsg))
		b.WriteString("\n")
	case m.statusMsg != "":
		b.WriteString(statusStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}

	if m.mode == NormalMode {
		b.WriteString(helpStyle.Render("a add · space toggle · d delete · r remind · / search · ? help · q quit"))
	}
	return b.String()
}
