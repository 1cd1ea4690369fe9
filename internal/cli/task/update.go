package task

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuchhuang/dodo/internal/cli"
	"github.com/yuchhuang/dodo/internal/converters"
	taskservice "github.com/yuchhuang/dodo/internal/services/task"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <task_id>",
		Short: "Update a task's title, notes, or category",
		Long: `Update a task. Only the flags you pass are changed; omitted fields
keep their current values.

Examples:
  dodo task update 3f2a --title="Write Q3 report"
  dodo task update 3f2a --category=work
  cat notes.md | dodo task update 3f2a --notes=-
`,
		RunE: runUpdate,
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("notes", "", "New notes in markdown (use - for stdin)")
	cmd.Flags().String("category", "", "New category")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	req := taskservice.UpdateTaskRequest{}
	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		req.Title = &title
	}
	if cmd.Flags().Changed("notes") {
		notes, _ := cmd.Flags().GetString("notes")
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
		req.Notes = &notes
	}
	if cmd.Flags().Changed("category") {
		category, _ := cmd.Flags().GetString("category")
		category = cli.NormalizeCategory(category)
		req.Category = &category
	}

	if req.Title == nil && req.Notes == nil && req.Category == nil {
		if fmtErr := formatter.ErrorWithSuggestion("NO_CHANGES", "nothing to update",
			"Pass at least one of --title, --notes, --category"); fmtErr != nil {
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
	req.TaskID = target.ID

	updated, err := cliInstance.App.TaskService.UpdateTask(ctx, req)
	if err != nil {
		if fmtErr := formatter.Error("TASK_UPDATE_ERROR", err.Error()); fmtErr != nil {
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

	fmt.Printf("Task '%s' updated\n", updated.Title)
	return nil
}
