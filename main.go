package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/yuchhuang/dodo/cmd"
	"github.com/yuchhuang/dodo/internal/cli"
	"github.com/yuchhuang/dodo/internal/logging"
	"github.com/yuchhuang/dodo/internal/tui"
)

func main() {
	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	// Subcommands go through cobra; a bare invocation opens the TUI
	if len(os.Args) > 1 {
		if err := cmd.Execute(); err != nil {
			os.Exit(cli.ExitError)
		}
		return
	}

	ctx := context.Background()
	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(cli.ExitError)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("error closing application", "error", err)
		}
	}()

	model := tui.InitialModel(ctx, cliInstance.App)

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(cli.ExitError)
	}
}
