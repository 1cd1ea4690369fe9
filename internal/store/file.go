package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/yuchhuang/dodo/internal/models"
)

// DefaultPath is the task file location relative to the working directory
const DefaultPath = "data/tasks.json"

// FileStore persists the task list to a single JSON file
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file store and ensures the data directory exists
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

// Path returns the task file path
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and decodes the task file
func (s *FileStore) Load() ([]*models.Task, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []*models.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}

	var tasks []*models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return []*models.Task{}, s.quarantine(err)
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}
	return tasks, nil
}

// Save writes the task list atomically with 2-space indentation
func (s *FileStore) Save(tasks []*models.Task) error {
	if tasks == nil {
		tasks = []*models.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}
	data = append(data, '\n')

	// Write to a temp file in the same directory, then rename over the
	// task file so readers never observe a partial write.
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".tasks-*.json")
	if err != nil {
		return fmt.Errorf("create temp task file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp task file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}

// Backup copies the task file to tasks.json.backup-<timestamp>
func (s *FileStore) Backup() (string, error) {
	src, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("nothing to back up: %w", err)
	}
	if err != nil {
		return "", fmt.Errorf("open task file: %w", err)
	}
	defer src.Close()

	backupPath := fmt.Sprintf("%s.backup-%s", s.path, time.Now().Format("20060102_150405"))
	dst, err := os.OpenFile(backupPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(backupPath)
		return "", fmt.Errorf("copy task file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("close backup file: %w", err)
	}
	return backupPath, nil
}

// Info describes the task file on disk
func (s *FileStore) Info() (FileInfo, error) {
	st, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return FileInfo{Exists: false, Path: s.path}, nil
	}
	if err != nil {
		return FileInfo{}, fmt.Errorf("stat task file: %w", err)
	}

	info := FileInfo{
		Exists:   true,
		Path:     s.path,
		Size:     st.Size(),
		Modified: st.ModTime(),
	}

	// Task count is best-effort: a corrupt file still has size and mtime
	if data, err := os.ReadFile(s.path); err == nil {
		var tasks []*models.Task
		if err := json.Unmarshal(data, &tasks); err == nil {
			info.TaskCount = len(tasks)
		}
	}
	return info, nil
}

// quarantine moves a corrupt task file aside so the application can start
// with an empty list without destroying whatever the user had on disk.
func (s *FileStore) quarantine(decodeErr error) error {
	qpath := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().Format("20060102_150405"))
	if err := os.Rename(s.path, qpath); err != nil {
		slog.Error("failed to quarantine corrupt task file", "path", s.path, "error", err)
		qpath = s.path
	}
	return &CorruptError{Path: s.path, QuarantinePath: qpath, Err: decodeErr}
}
