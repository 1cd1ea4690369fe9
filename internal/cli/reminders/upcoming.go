package reminders

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/yuchhuang/dodo/internal/cli"
	"github.com/yuchhuang/dodo/internal/converters"
	"github.com/yuchhuang/dodo/internal/reminder"
	taskservice "github.com/yuchhuang/dodo/internal/services/task"
)

// UpcomingCmd returns the reminders upcoming subcommand
func UpcomingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List reminders due within a window",
		Long: `List reminders on pending tasks that are due within the window,
soonest first. The default window comes from config upcoming_window_hours.

Examples:
  dodo reminders upcoming
  dodo reminders upcoming --within=30m --json
`,
		RunE: runUpcoming,
	}

	cmd.Flags().Duration("within", 0, "Window to look ahead, e.g. 30m, 2h (default from config)")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (task IDs only)")

	return cmd
}

func runUpcoming(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	within, _ := cmd.Flags().GetDuration("within")
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

	if within <= 0 {
		within = cliInstance.App.Config.UpcomingWindow()
	}

	tasks, err := cliInstance.App.TaskService.ListTasks(ctx, taskservice.ListFilter{
		Status: taskservice.StatusPending,
	})
	if err != nil {
		if fmtErr := formatter.Error("TASK_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	// The watcher owns the schedule logic; build one without starting its
	// loop to reuse the same windowing and ordering the daemon applies.
	watcher := reminder.NewWatcher(0, nil)
	watcher.UpdateTasks(tasks)
	upcoming := watcher.Upcoming(within)

	if quietMode {
		for _, n := range upcoming {
			fmt.Printf("%s\n", n.TaskID)
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":   true,
			"within":    within.String(),
			"reminders": upcoming,
		})
	}

	if len(upcoming) == 0 {
		fmt.Printf("No reminders due within %s\n", within)
		return nil
	}

	fmt.Printf("Reminders due within %s:\n\n", within)
	now := time.Now()
	for _, n := range upcoming {
		fmt.Printf("  ⏰ %s  %s [%s] (in %s)\n",
			converters.FormatReminder(n.RemindAt),
			cli.TruncateTitle(n.TaskTitle, 50),
			converters.ShortID(n.TaskID),
			n.RemindAt.Sub(now).Round(time.Minute))
	}
	return nil
}
