package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuchhuang/dodo/internal/cli"
	"github.com/yuchhuang/dodo/internal/converters"
	taskservice "github.com/yuchhuang/dodo/internal/services/task"
)

// DoneCmd returns the task done subcommand
func DoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <task_id>",
		Short: "Toggle a task's completion state",
		Long: `Toggle a task between pending and completed.

Completing a task records the completion time; toggling again clears it.
Task IDs may be abbreviated to any unique prefix.

Examples:
  dodo task done 3f2a
  dodo task done 3f2a91cc-... --json
`,
		RunE: runDone,
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runDone(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	cliInstance, err := cli.NewCLI(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("error closing CLI", "error", err)
		}
	}()

	target, err := resolveTaskID(ctx, cliInstance.App.TaskService, args[0])
	if err != nil {
		if fmtErr := formatter.Error("TASK_NOT_FOUND", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitNotFound)
	}

	toggled, err := cliInstance.App.TaskService.ToggleTask(ctx, target.ID)
	if err != nil {
		if errors.Is(err, taskservice.ErrTaskNotFound) {
			if fmtErr := formatter.Error("TASK_NOT_FOUND", err.Error()); fmtErr != nil {
				slog.Error("error formatting error message", "error", fmtErr)
			}
			os.Exit(cli.ExitNotFound)
		}
		if fmtErr := formatter.Error("TOGGLE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		fmt.Printf("%s\n", toggled.ID)
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":   true,
			"task_id":   toggled.ID,
			"completed": toggled.Completed,
		})
	}

	if toggled.Completed {
		fmt.Printf("%s Task '%s' completed\n", converters.StatusGlyphDone, toggled.Title)
	} else {
		fmt.Printf("%s Task '%s' reopened\n", converters.StatusGlyphPending, toggled.Title)
	}
	return nil
}
