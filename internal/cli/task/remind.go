package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuchhuang/dodo/internal/cli"
	"github.com/yuchhuang/dodo/internal/converters"
	"github.com/yuchhuang/dodo/internal/reminder"
)

// RemindCmd returns the task remind subcommand
func RemindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remind <task_id>",
		Short: "Set or clear a task's reminder",
		Long: `Set a reminder on a task, or clear one with --clear.

A bare clock time is scheduled for today, or tomorrow if that time has
already passed. Pass --date for an explicit day.

Examples:
  dodo task remind 3f2a --time=17:00
  dodo task remind 3f2a --time="9:00 AM" --date=2026-09-01
  dodo task remind 3f2a --clear
`,
		RunE: runRemind,
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().String("time", "", "Reminder clock time, e.g. 17:00 or '5:00 PM'")
	cmd.Flags().String("date", "", "Reminder date, YYYY-MM-DD (defaults to today/tomorrow)")
	cmd.Flags().Bool("clear", false, "Clear the task's reminder")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runRemind(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	clock, _ := cmd.Flags().GetString("time")
	date, _ := cmd.Flags().GetString("date")
	clear, _ := cmd.Flags().GetBool("clear")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	if clear == (clock != "") {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_REMINDER",
			"pass either --time or --clear",
			"dodo task remind <task_id> --time=17:00, or --clear to remove"); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitUsage)
	}

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

	if clear {
		cleared, err := cliInstance.App.TaskService.ClearReminder(ctx, target.ID)
		if err != nil {
			if fmtErr := formatter.Error("REMINDER_ERROR", err.Error()); fmtErr != nil {
				slog.Error("error formatting error message", "error", fmtErr)
			}
			os.Exit(cli.ExitValidation)
		}

		if quietMode {
			fmt.Printf("%s\n", cleared.ID)
			return nil
		}
		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
				"success": true,
				"task_id": cleared.ID,
			})
		}
		fmt.Printf("Reminder cleared for '%s'\n", cleared.Title)
		return nil
	}

	at, err := reminder.ParseTime(clock, date)
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_REMINDER", err.Error(),
			"Use a clock time like 17:00 or '5:00 PM', optionally with --date=YYYY-MM-DD"); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitValidation)
	}

	updated, err := cliInstance.App.TaskService.SetReminder(ctx, target.ID, at)
	if err != nil {
		if fmtErr := formatter.Error("REMINDER_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitValidation)
	}

	if quietMode {
		fmt.Printf("%s\n", updated.ID)
		return nil
	}

	if jsonOutput {
		return formatter.Success(converters.TaskToRow(updated))
	}

	fmt.Printf("⏰ Reminder for '%s' set to %s\n", updated.Title, converters.FormatReminder(at))
	return nil
}
