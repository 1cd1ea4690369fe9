package cmd

import (
	"github.com/spf13/cobra"
	"github.com/yuchhuang/dodo/internal/cli/data"
	"github.com/yuchhuang/dodo/internal/cli/reminders"
	"github.com/yuchhuang/dodo/internal/cli/stats"
	"github.com/yuchhuang/dodo/internal/cli/task"
)

var rootCmd = &cobra.Command{
	Use:   "dodo",
	Short: "Dodo - a terminal to-do list with reminders",
	Long: `Dodo is a terminal to-do list manager with categories, reminders,
and statistics. Run without arguments to open the interactive view.`,
}

func init() {
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(stats.StatsCmd())
	rootCmd.AddCommand(data.DataCmd())
	rootCmd.AddCommand(reminders.RemindersCmd())

	// Shortcuts for the most common maintenance operations
	rootCmd.AddCommand(data.BackupCmd())
	rootCmd.AddCommand(data.ValidateCmd())
}

func Execute() error {
	return rootCmd.Execute()
}
