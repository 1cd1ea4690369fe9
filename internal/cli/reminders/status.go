package reminders

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuchhuang/dodo/internal/cli"
	"github.com/yuchhuang/dodo/internal/reminder"
	taskservice "github.com/yuchhuang/dodo/internal/services/task"
)

// StatusCmd returns the reminders status subcommand
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Summarize the reminder schedule",
		Long: `Summarize reminders on pending tasks: how many are scheduled and how
many are already overdue.

Examples:
  dodo reminders status
  dodo reminders status --json
`,
		RunE: runStatus,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	formatter := &cli.OutputFormatter{JSON: jsonOutput}

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

	tasks, err := cliInstance.App.TaskService.ListTasks(ctx, taskservice.ListFilter{
		Status: taskservice.StatusPending,
	})
	if err != nil {
		if fmtErr := formatter.Error("TASK_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	// Same schedule the daemon runs, inspected without starting the loop
	watcher := reminder.NewWatcher(0, nil)
	watcher.UpdateTasks(tasks)
	status := watcher.Status()

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"status":  status,
		})
	}

	if status.Total == 0 {
		fmt.Println("No reminders scheduled")
		return nil
	}

	fmt.Println("Reminder schedule:")
	fmt.Printf("  Scheduled: %d\n", status.Total)
	if status.Overdue > 0 {
		fmt.Printf("  Overdue:   %d\n", status.Overdue)
	}
	return nil
}
