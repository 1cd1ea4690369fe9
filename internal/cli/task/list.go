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
	taskservice "github.com/yuchhuang/dodo/internal/services/task"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks, optionally filtered by status, category, or search text.

Examples:
  dodo task list
  dodo task list --status=pending --category=work
  dodo task list --search=report --json
`,
		RunE: runList,
	}

	cmd.Flags().String("status", "all", "Filter by status: all, pending, completed")
	cmd.Flags().String("category", "", "Filter by category")
	cmd.Flags().String("search", "", "Filter by substring match on title and notes")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	status, _ := cmd.Flags().GetString("status")
	category, _ := cmd.Flags().GetString("category")
	search, _ := cmd.Flags().GetString("search")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	statusFilter, err := cli.ParseStatusFilter(status)
	if err != nil {
		if fmtErr := formatter.Error("INVALID_STATUS", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitValidation)
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

	tasks, err := cliInstance.App.TaskService.ListTasks(ctx, taskservice.ListFilter{
		Status:   statusFilter,
		Category: cli.NormalizeCategory(category),
		Search:   search,
	})
	if err != nil {
		if fmtErr := formatter.Error("TASK_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		for _, t := range tasks {
			fmt.Printf("%s\n", t.ID)
		}
		return nil
	}

	rows := converters.TasksToRows(tasks)

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"tasks":   rows,
		})
	}

	if len(rows) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Printf("Found %d tasks:\n\n", len(rows))
	for _, r := range rows {
		line := fmt.Sprintf("  %s [%s] %s (%s)", r.Status, r.ShortID, cli.TruncateTitle(r.Title, 60), r.Category)
		if r.Reminder != "" {
			line += fmt.Sprintf("  ⏰ %s", r.Reminder)
		}
		fmt.Println(line)
	}

	return nil
}
