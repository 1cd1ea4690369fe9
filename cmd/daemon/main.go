package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/yuchhuang/dodo/internal/config"
	"github.com/yuchhuang/dodo/internal/daemon"
	"github.com/yuchhuang/dodo/internal/logging"
	"github.com/yuchhuang/dodo/internal/store"
)

func main() {
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	socketPath, err := config.SocketPath()
	if err != nil {
		slog.Error("failed to resolve socket path", "error", err)
		os.Exit(1)
	}

	taskStore, err := store.NewFileStore(cfg.DataFile)
	if err != nil {
		slog.Error("failed to open task store", "error", err)
		os.Exit(1)
	}

	server, err := daemon.NewServer(socketPath, taskStore, cfg.ReminderInterval())
	if err != nil {
		slog.Error("failed to create daemon", "error", err)
		os.Exit(1)
	}

	slog.Info("dodo daemon starting", "socket_path", socketPath, "pid", os.Getpid())

	// Start blocks until shutdown
	if err := server.Start(ctx); err != nil {
		slog.Error("daemon error", "error", err)
		os.Exit(1)
	}

	slog.Info("dodo daemon shutting down gracefully")
}
