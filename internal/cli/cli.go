// Package cli holds the shared CLI context, output formatting, and exit
// code discipline used by every subcommand.
package cli

import (
	"context"
	"fmt"

	"github.com/yuchhuang/dodo/internal/app"
	"github.com/yuchhuang/dodo/internal/config"
	"github.com/yuchhuang/dodo/internal/events"
)

// CLI represents the CLI application context
type CLI struct {
	App         *app.App
	eventClient events.Publisher
	ctx         context.Context
}

// NewCLI initializes the CLI with config, store, and an optional daemon
// connection. A missing daemon is not an error; the CLI just runs
// without live notifications.
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var eventClient events.Publisher
	if socketPath, err := config.SocketPath(); err == nil {
		client, err := events.NewClient(socketPath)
		if err == nil {
			// Silent fallback when the daemon isn't running
			if err := client.Connect(ctx); err == nil {
				eventClient = client
			}
		}
	}

	application, err := app.New(ctx, cfg, eventClient)
	if err != nil {
		if eventClient != nil {
			_ = eventClient.Close()
		}
		return nil, err
	}

	return &CLI{
		App:         application,
		eventClient: eventClient,
		ctx:         ctx,
	}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if c.eventClient != nil {
		_ = c.eventClient.Close()
	}
	return c.App.Close()
}
