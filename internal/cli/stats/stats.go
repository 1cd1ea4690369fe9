// Package stats implements the stats CLI command
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/yuchhuang/dodo/internal/cli"
	"github.com/yuchhuang/dodo/internal/store"
)

// StatsCmd returns the stats command
func StatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Long: `Show counts and completion rate for the current task list.

With --archive, also shows all-time completions that were cleared into
the archive database.

Examples:
  dodo stats
  dodo stats --archive --json
`,
		RunE: runStats,
	}

	cmd.Flags().Bool("archive", false, "Include archived (cleared) completions")
	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	includeArchive, _ := cmd.Flags().GetBool("archive")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	formatter := &cli.OutputFormatter{JSON: jsonOutput}

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

	stats, err := cliInstance.App.TaskService.Stats(ctx)
	if err != nil {
		if fmtErr := formatter.Error("STATS_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	var archiveStats *store.ArchiveStats
	if includeArchive && cliInstance.App.Archive != nil {
		as, err := cliInstance.App.Archive.Stats(ctx)
		if err != nil {
			if fmtErr := formatter.Error("ARCHIVE_STATS_ERROR", err.Error()); fmtErr != nil {
				slog.Error("error formatting error message", "error", fmtErr)
			}
			return err
		}
		archiveStats = &as
	}

	if jsonOutput {
		payload := map[string]interface{}{
			"success": true,
			"stats":   stats,
		}
		if archiveStats != nil {
			payload["archive"] = archiveStats
		}
		return json.NewEncoder(os.Stdout).Encode(payload)
	}

	fmt.Println("Task statistics:")
	fmt.Printf("  Total:     %d\n", stats.Total)
	fmt.Printf("  Pending:   %d\n", stats.Pending)
	fmt.Printf("  Completed: %d (%.0f%%)\n", stats.Completed, stats.CompletionRate*100)
	if stats.WithReminder > 0 {
		fmt.Printf("  Reminders: %d\n", stats.WithReminder)
	}

	if len(stats.ByCategory) > 0 {
		fmt.Println("\nBy category:")
		for _, category := range sortedKeys(stats.ByCategory) {
			fmt.Printf("  %-10s %d\n", category, stats.ByCategory[category])
		}
	}

	if archiveStats != nil {
		fmt.Println("\nArchived completions:")
		fmt.Printf("  Total: %d\n", archiveStats.Total)
		for _, category := range sortedKeys(archiveStats.ByCategory) {
			fmt.Printf("  %-10s %d\n", category, archiveStats.ByCategory[category])
		}
		if archiveStats.Oldest != nil && archiveStats.Newest != nil {
			fmt.Printf("  Range: %s to %s\n",
				archiveStats.Oldest.Format("2006-01-02"),
				archiveStats.Newest.Format("2006-01-02"))
		}
	}
	return nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
