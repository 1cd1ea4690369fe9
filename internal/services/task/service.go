// Package task implements the business operations over the task list.
//
// The service keeps the authoritative in-memory copy of the task list and
// writes it through the store on every mutation, so the task file on disk
// always reflects the last operation.
package task

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yuchhuang/dodo/internal/events"
	"github.com/yuchhuang/dodo/internal/models"
	"github.com/yuchhuang/dodo/internal/store"
)

// StatusFilter selects tasks by completion state
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

// ListFilter narrows ListTasks results. Zero value lists everything.
type ListFilter struct {
	Status   StatusFilter
	Category string
	Search   string // case-insensitive substring match on title and notes
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	Title    string
	Notes    string
	Category string
	RemindAt *time.Time
}

// UpdateTaskRequest encapsulates a partial task update.
// Nil pointer fields are left unchanged.
type UpdateTaskRequest struct {
	TaskID   string
	Title    *string
	Notes    *string
	Category *string
}

// Service defines all task-related business operations
type Service interface {
	// Read operations
	GetTask(ctx context.Context, taskID string) (*models.Task, error)
	ListTasks(ctx context.Context, filter ListFilter) ([]*models.Task, error)
	Stats(ctx context.Context) (models.Stats, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID string) error
	ToggleTask(ctx context.Context, taskID string) (*models.Task, error)

	// Reminders
	SetReminder(ctx context.Context, taskID string, at time.Time) (*models.Task, error)
	ClearReminder(ctx context.Context, taskID string) (*models.Task, error)

	// Housekeeping
	ClearCompleted(ctx context.Context) (int, error)
	Reload(ctx context.Context) error
}

// service implements Service
type service struct {
	mu          sync.RWMutex
	tasks       []*models.Task
	store       store.Store
	archive     *store.Archive
	eventClient events.Publisher
}

// Option configures the service
type Option func(*service)

// WithArchive routes cleared tasks into the completed-task archive
func WithArchive(a *store.Archive) Option {
	return func(s *service) {
		s.archive = a
	}
}

// WithPublisher publishes change events after every mutation
func WithPublisher(p events.Publisher) Option {
	return func(s *service) {
		s.eventClient = p
	}
}

// NewService creates a task service over the given store. Call Reload
// before use to populate the in-memory list from disk.
func NewService(st store.Store, opts ...Option) Service {
	s := &service{
		tasks: []*models.Task{},
		store: st,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reload replaces the in-memory list with the task file contents.
// A corrupt file surfaces as store.CorruptError while the service keeps
// running on the (empty) list the store returned.
func (s *service) Reload(ctx context.Context) error {
	tasks, err := s.store.Load()
	s.mu.Lock()
	s.tasks = tasks
	s.mu.Unlock()
	return err
}

// GetTask returns the task with the given ID
func (s *service) GetTask(ctx context.Context, taskID string) (*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t := s.find(taskID)
	if t == nil {
		return nil, ErrTaskNotFound
	}
	return t.Clone(), nil
}

// ListTasks returns tasks matching the filter, pending before completed,
// newest first within each group.
func (s *service) ListTasks(ctx context.Context, filter ListFilter) ([]*models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !matches(t, filter) {
			continue
		}
		result = append(result, t.Clone())
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Completed != result[j].Completed {
			return !result[i].Completed
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Stats summarizes the current task list
func (s *service) Stats(ctx context.Context) (models.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.ComputeStats(s.tasks), nil
}

// CreateTask validates the request, appends the task, and saves
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > models.MaxTitleLength {
		return nil, ErrTitleTooLong
	}
	if len(req.Notes) > models.MaxNotesLength {
		return nil, ErrNotesTooLong
	}
	if req.RemindAt != nil && !req.RemindAt.After(time.Now()) {
		return nil, ErrReminderInPast
	}

	t := models.NewTask(title, strings.TrimSpace(req.Category))
	t.Notes = req.Notes
	if req.RemindAt != nil {
		t.SetReminder(*req.RemindAt)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, t)
	if err := s.save(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return nil, err
	}

	s.publishChange()
	return t.Clone(), nil
}

// UpdateTask applies a partial update and saves, returning the new state
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	if req.TaskID == "" {
		return nil, ErrInvalidTaskID
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrEmptyTitle
		}
		if len(title) > models.MaxTitleLength {
			return nil, ErrTitleTooLong
		}
		req.Title = &title
	}
	if req.Notes != nil && len(*req.Notes) > models.MaxNotesLength {
		return nil, ErrNotesTooLong
	}
	if req.Category != nil && strings.TrimSpace(*req.Category) == "" {
		return nil, ErrEmptyCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.find(req.TaskID)
	if t == nil {
		return nil, ErrTaskNotFound
	}

	before := t.Clone()
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}
	if req.Category != nil {
		t.Category = strings.TrimSpace(*req.Category)
	}

	if err := s.save(); err != nil {
		*t = *before
		return nil, err
	}

	s.publishChange()
	return t.Clone(), nil
}

// DeleteTask removes a task and saves
func (s *service) DeleteTask(ctx context.Context, taskID string) error {
	if taskID == "" {
		return ErrInvalidTaskID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	idx := -1
	for i, t := range s.tasks {
		if t.ID == taskID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrTaskNotFound
	}

	removed := s.tasks[idx]
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	if err := s.save(); err != nil {
		s.tasks = append(s.tasks[:idx], append([]*models.Task{removed}, s.tasks[idx:]...)...)
		return err
	}

	s.publishChange()
	return nil
}

// ToggleTask flips completion state and saves, returning the new state
func (s *service) ToggleTask(ctx context.Context, taskID string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.find(taskID)
	if t == nil {
		return nil, ErrTaskNotFound
	}

	t.Toggle()
	if err := s.save(); err != nil {
		t.Toggle()
		return nil, err
	}

	s.publishChange()
	return t.Clone(), nil
}

// SetReminder sets a future reminder on a task and saves
func (s *service) SetReminder(ctx context.Context, taskID string, at time.Time) (*models.Task, error) {
	if !at.After(time.Now()) {
		return nil, ErrReminderInPast
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.find(taskID)
	if t == nil {
		return nil, ErrTaskNotFound
	}

	before := t.RemindAt
	t.SetReminder(at)
	if err := s.save(); err != nil {
		t.RemindAt = before
		return nil, err
	}

	s.publishChange()
	return t.Clone(), nil
}

// ClearReminder removes a task's reminder and saves
func (s *service) ClearReminder(ctx context.Context, taskID string) (*models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.find(taskID)
	if t == nil {
		return nil, ErrTaskNotFound
	}
	if t.RemindAt == nil {
		return nil, ErrNoReminderSet
	}

	before := t.RemindAt
	t.ClearReminder()
	if err := s.save(); err != nil {
		t.RemindAt = before
		return nil, err
	}

	s.publishChange()
	return t.Clone(), nil
}

// ClearCompleted removes all completed tasks, archiving them when an
// archive is configured, and returns the number removed.
func (s *service) ClearCompleted(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept, cleared []*models.Task
	for _, t := range s.tasks {
		if t.Completed {
			cleared = append(cleared, t)
		} else {
			kept = append(kept, t)
		}
	}
	if len(cleared) == 0 {
		return 0, nil
	}

	// Archive before dropping from the live list: if archiving fails the
	// task file is untouched and nothing is lost.
	if s.archive != nil {
		if err := s.archive.Append(ctx, cleared); err != nil {
			return 0, fmt.Errorf("archive completed tasks: %w", err)
		}
	}

	before := s.tasks
	if kept == nil {
		kept = []*models.Task{}
	}
	s.tasks = kept
	if err := s.save(); err != nil {
		s.tasks = before
		return 0, err
	}

	s.publishChange()
	return len(cleared), nil
}

// find returns the task with the given ID, or nil. Callers hold the lock.
func (s *service) find(taskID string) *models.Task {
	for _, t := range s.tasks {
		if t.ID == taskID {
			return t
		}
	}
	return nil
}

// save writes the current list through the store. Callers hold the lock.
func (s *service) save() error {
	if err := s.store.Save(s.tasks); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// matches reports whether a task passes the list filter
func matches(t *models.Task, filter ListFilter) bool {
	switch filter.Status {
	case StatusPending:
		if t.Completed {
			return false
		}
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	}
	if filter.Category != "" && !strings.EqualFold(t.Category, filter.Category) {
		return false
	}
	if filter.Search != "" {
		q := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Notes), q) {
			return false
		}
	}
	return true
}

// publishChange notifies the daemon that the task file changed.
// A nil publisher is a silent no-op (daemon not running).
func (s *service) publishChange() {
	// Retried because the only send failure mode is a full client queue,
	// which drains within the debounce window
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:      events.EventTasksChanged,
		Timestamp: time.Now(),
	}, 3)
}
