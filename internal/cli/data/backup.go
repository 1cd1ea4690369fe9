package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuchhuang/dodo/internal/cli"
)

// BackupCmd returns the data backup subcommand
func BackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Copy the task file to a timestamped backup",
		Long: `Copy the task file to a timestamped sibling, e.g.
data/tasks.json.backup-20260823_140502.

Examples:
  dodo data backup
  BACKUP=$(dodo data backup --quiet)
`,
		RunE: runBackup,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (backup path only)")

	return cmd
}

func runBackup(cmd *cobra.Command, args []string) error {
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

	backupPath, err := cliInstance.App.Store.Backup()
	if err != nil {
		if fmtErr := formatter.Error("BACKUP_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if quietMode {
		fmt.Printf("%s\n", backupPath)
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":     true,
			"backup_path": backupPath,
		})
	}

	fmt.Printf("Backup written to %s\n", backupPath)
	return nil
}
