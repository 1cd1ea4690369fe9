package models

import "errors"

// ErrTaskNotFound indicates that no task with the given ID exists. It is
// the shared not-found sentinel; the service layer re-exports it so
// callers can match with errors.Is at either level.
var ErrTaskNotFound = errors.New("task not found")
