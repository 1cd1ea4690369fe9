// Package store is the persistence boundary for the task list.
//
// The task file is a single JSON array of task records. The file is the
// source of truth: it is read once at startup and overwritten as a whole
// on every mutation. Writes go through a temp file and rename so a crash
// mid-write never leaves a half-written task file behind.
package store

import (
	"time"

	"github.com/yuchhuang/dodo/internal/models"
)

// Store defines the persistence operations for the task list
type Store interface {
	// Load reads the task list from disk. A missing file yields an empty
	// list. A malformed file is quarantined and reported via CorruptError;
	// the returned list is empty so callers can keep running.
	Load() ([]*models.Task, error)

	// Save overwrites the task file with the given list
	Save(tasks []*models.Task) error

	// Path returns the task file path
	Path() string

	// Backup copies the task file to a timestamped sibling and returns
	// the backup path
	Backup() (string, error)

	// Info describes the task file on disk
	Info() (FileInfo, error)
}

// FileInfo describes the task file on disk
type FileInfo struct {
	Exists    bool      `json:"exists"`
	Path      string    `json:"path"`
	Size      int64     `json:"size,omitempty"`
	Modified  time.Time `json:"modified,omitzero"`
	TaskCount int       `json:"task_count"`
}

// CorruptError reports a task file that could not be decoded. The bad
// file has been moved aside to QuarantinePath so no data is destroyed.
type CorruptError struct {
	Path           string
	QuarantinePath string
	Err            error
}

func (e *CorruptError) Error() string {
	return "task file " + e.Path + " is corrupt (moved to " + e.QuarantinePath + "): " + e.Err.Error()
}

// Unwrap returns the underlying decode error
func (e *CorruptError) Unwrap() error {
	return e.Err
}
