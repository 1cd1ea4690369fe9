// Package app wires the store, archive, and services into a single
// application container.
package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/yuchhuang/dodo/internal/config"
	"github.com/yuchhuang/dodo/internal/events"
	taskservice "github.com/yuchhuang/dodo/internal/services/task"
	"github.com/yuchhuang/dodo/internal/store"
)

// App holds all application services and provides dependency injection
type App struct {
	Config  *config.Config
	Store   store.Store
	Archive *store.Archive

	eventClient events.Publisher

	// Service layer (business logic)
	TaskService taskservice.Service

	// LoadWarning is set when the task file was corrupt at startup.
	// The application keeps running on an empty list; the bad file has
	// been quarantined by the store.
	LoadWarning error
}

// New creates the application container: opens the store and archive,
// builds the task service, and loads the task list from disk.
func New(ctx context.Context, cfg *config.Config, eventClient events.Publisher) (*App, error) {
	fileStore, err := store.NewFileStore(cfg.DataFile)
	if err != nil {
		return nil, err
	}

	archive, err := store.OpenArchive(ctx, cfg.ArchiveFile)
	if err != nil {
		return nil, err
	}

	svc := taskservice.NewService(fileStore,
		taskservice.WithArchive(archive),
		taskservice.WithPublisher(eventClient),
	)

	a := &App{
		Config:      cfg,
		Store:       fileStore,
		Archive:     archive,
		eventClient: eventClient,
		TaskService: svc,
	}

	if err := svc.Reload(ctx); err != nil {
		var corrupt *store.CorruptError
		if errors.As(err, &corrupt) {
			slog.Warn("task file was corrupt, starting with empty list",
				"path", corrupt.Path,
				"quarantined", corrupt.QuarantinePath)
			a.LoadWarning = corrupt
		} else {
			if closeErr := archive.Close(); closeErr != nil {
				slog.Error("error closing archive", "error", closeErr)
			}
			return nil, err
		}
	}

	return a, nil
}

// Close releases application resources
func (a *App) Close() error {
	if a.Archive != nil {
		return a.Archive.Close()
	}
	return nil
}
