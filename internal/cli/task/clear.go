package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuchhuang/dodo/internal/cli"
)

// ClearCmd returns the task clear subcommand
func ClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all completed tasks",
		Long: `Remove all completed tasks from the list. Cleared tasks are written
to the archive database before removal, so stats over past work survive.

Examples:
  dodo task clear
  dodo task clear --json
`,
		RunE: runClear,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (count only)")

	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
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

	removed, err := cliInstance.App.TaskService.ClearCompleted(ctx)
	if err != nil {
		if fmtErr := formatter.Error("CLEAR_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		fmt.Printf("%d\n", removed)
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"removed": removed,
		})
	}

	if removed == 0 {
		fmt.Println("No completed tasks to clear")
		return nil
	}
	fmt.Printf("Cleared %d completed tasks\n", removed)
	return nil
}
