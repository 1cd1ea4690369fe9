package task

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/yuchhuang/dodo/internal/cli"
	"github.com/yuchhuang/dodo/internal/converters"
	"github.com/yuchhuang/dodo/internal/models"
	"github.com/yuchhuang/dodo/internal/reminder"
	taskservice "github.com/yuchhuang/dodo/internal/services/task"
)

// AddCmd returns the task add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a new task",
		Long: `Add a new task with an optional category, notes, and reminder.

Examples:
  # Simple task
  dodo task add "Buy groceries"

  # With category and notes
  dodo task add "Write report" --category=work --notes="Q3 numbers"

  # With a reminder at 5pm today (or tomorrow if 5pm already passed)
  dodo task add "Call dentist" --remind-time=17:00

  # Quiet mode for scripting
  TASK_ID=$(dodo task add "Buy groceries" --quiet)
`,
		RunE: runAdd,
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().String("category", "",
		fmt.Sprintf("Task category, built-in or free-form (built-in: %s)", strings.Join(models.BuiltinCategories(), ", ")))
	cmd.Flags().String("notes", "", "Task notes in markdown (use - for stdin)")
	cmd.Flags().String("remind-time", "", "Reminder clock time, e.g. 17:00 or '5:00 PM'")
	cmd.Flags().String("remind-date", "", "Reminder date, YYYY-MM-DD (defaults to today/tomorrow)")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	category, _ := cmd.Flags().GetString("category")
	notes, _ := cmd.Flags().GetString("notes")
	remindTime, _ := cmd.Flags().GetString("remind-time")
	remindDate, _ := cmd.Flags().GetString("remind-date")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	// Parse reminder before touching the store
	var remindAt *time.Time
	if remindTime != "" {
		at, err := reminder.ParseTime(remindTime, remindDate)
		if err != nil {
			if fmtErr := formatter.ErrorWithSuggestion("INVALID_REMINDER", err.Error(),
				"Use a clock time like 17:00 or '5:00 PM', optionally with --remind-date=YYYY-MM-DD"); fmtErr != nil {
				slog.Error("error formatting error message", "error", fmtErr)
			}
			os.Exit(cli.ExitValidation)
		}
		remindAt = &at
	} else if remindDate != "" {
		if fmtErr := formatter.Error("INVALID_REMINDER", "--remind-date requires --remind-time"); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitUsage)
	}

	// Notes from stdin
	if notes == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			if fmtErr := formatter.Error("STDIN_READ_ERROR", err.Error()); fmtErr != nil {
				slog.Error("error formatting error message", "error", fmtErr)
			}
			return err
		}
		notes = string(data)
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

	if category == "" {
		category = cliInstance.App.Config.DefaultCategory
	}

	created, err := cliInstance.App.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		Title:    args[0],
		Notes:    notes,
		Category: cli.NormalizeCategory(category),
		RemindAt: remindAt,
	})
	if err != nil {
		if fmtErr := formatter.Error("TASK_CREATE_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitValidation)
	}

	if quietMode {
		fmt.Printf("%s\n", created.ID)
		return nil
	}

	if jsonOutput {
		return formatter.Success(converters.TaskToRow(created))
	}

	fmt.Printf("%s Task '%s' added (ID: %s)\n", converters.StatusGlyphPending, created.Title, converters.ShortID(created.ID))
	fmt.Printf("  Category: %s\n", created.Category)
	if created.RemindAt != nil {
		fmt.Printf("  Reminder: %s\n", converters.FormatReminder(*created.RemindAt))
	}
	return nil
}
