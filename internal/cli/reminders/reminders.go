// Package reminders implements CLI commands for inspecting scheduled
// reminders.
package reminders

import (
	"github.com/spf13/cobra"
)

// RemindersCmd returns the reminders command with all subcommands registered
func RemindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Inspect scheduled reminders",
		Long: `Inspect reminders scheduled on pending tasks.

Examples:
  dodo reminders upcoming
  dodo reminders upcoming --within=2h
  dodo reminders status
  dodo reminders watch
`,
	}

	cmd.AddCommand(UpcomingCmd())
	cmd.AddCommand(StatusCmd())
	cmd.AddCommand(WatchCmd())

	return cmd
}
