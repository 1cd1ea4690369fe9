// Package data implements CLI commands for inspecting and maintaining the
// task file on disk.
package data

import (
	"github.com/spf13/cobra"
)

// DataCmd returns the data command with all subcommands registered
func DataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Inspect and maintain the task file",
		Long: `Inspect and maintain the task file on disk.

Examples:
  dodo data info
  dodo data backup
  dodo data validate
`,
	}

	cmd.AddCommand(InfoCmd())
	cmd.AddCommand(BackupCmd())
	cmd.AddCommand(ValidateCmd())

	return cmd
}
