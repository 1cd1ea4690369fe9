package task

import (
	"errors"

	"github.com/yuchhuang/dodo/internal/models"
)

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle     = errors.New("task title cannot be empty")
	ErrTitleTooLong   = errors.New("task title cannot exceed 255 characters")
	ErrNotesTooLong   = errors.New("task notes cannot exceed 4000 characters")
	ErrInvalidTaskID  = errors.New("invalid task ID")
	ErrEmptyCategory  = errors.New("task category cannot be empty")
	ErrReminderInPast = errors.New("reminder time must be in the future")
	ErrNoReminderSet  = errors.New("task has no reminder set")

	// ErrTaskNotFound is the domain sentinel, re-exported so callers can
	// match at either level
	ErrTaskNotFound = models.ErrTaskNotFound
)
