package models

// Stats is a DTO summarizing the task list for the stats command and the
// TUI footer.
type Stats struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	Pending        int            `json:"pending"`
	CompletionRate float64        `json:"completion_rate"`
	ByCategory     map[string]int `json:"by_category"`
	WithReminder   int            `json:"with_reminder"`
}

// ComputeStats derives stats from a task list
func ComputeStats(tasks []*Task) Stats {
	s := Stats{ByCategory: make(map[string]int)}
	for _, t := range tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		} else {
			s.Pending++
		}
		if t.RemindAt != nil {
			s.WithReminder++
		}
		s.ByCategory[t.Category]++
	}
	if s.Total > 0 {
		s.CompletionRate = float64(s.Completed) / float64(s.Total)
	}
	return s
}
