package events

import (
	"errors"
	"os"
	"syscall"
)

// ErrorCode represents daemon-related error types
type ErrorCode int

const (
	ErrSocketNotFound ErrorCode = iota
	ErrSocketPermission
	ErrDaemonNotRunning
	ErrConnectionRefused
)

// DaemonError is a structured daemon error with a user-facing hint
type DaemonError struct {
	Code    ErrorCode
	Message string
	Hint    string
}

func (e *DaemonError) Error() string {
	if e.Hint != "" {
		return e.Message + ". " + e.Hint
	}
	return e.Message
}

// ClassifyDaemonError maps common socket errors to structured DaemonErrors
func ClassifyDaemonError(err error) *DaemonError {
	if err == nil {
		return nil
	}

	if os.IsNotExist(err) {
		return &DaemonError{
			Code:    ErrSocketNotFound,
			Message: "socket file not found",
			Hint:    "Start the daemon: dodo-daemon &",
		}
	}

	if os.IsPermission(err) {
		return &DaemonError{
			Code:    ErrSocketPermission,
			Message: "permission denied",
			Hint:    "Check ~/.dodo/ permissions: chmod 700 ~/.dodo/",
		}
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && errno == syscall.ECONNREFUSED {
		return &DaemonError{
			Code:    ErrConnectionRefused,
			Message: "connection refused",
			Hint:    "The daemon may have crashed. Restart it: dodo-daemon &",
		}
	}

	return &DaemonError{
		Code:    ErrDaemonNotRunning,
		Message: "daemon not running",
		Hint:    "Start the daemon: dodo-daemon &",
	}
}
