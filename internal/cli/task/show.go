package task

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"github.com/yuchhuang/dodo/internal/cli"
	"github.com/yuchhuang/dodo/internal/converters"
	"github.com/yuchhuang/dodo/internal/models"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task_id>",
		Short: "Show full details of a task",
		Long: `Show a task's full details, including notes rendered as markdown.

Examples:
  dodo task show 3f2a
  dodo task show 3f2a --plain
`,
		RunE: runShow,
		Args: cobra.ExactArgs(1),
	}

	cmd.Flags().Bool("plain", false, "Print notes as raw markdown instead of rendering")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	plain, _ := cmd.Flags().GetBool("plain")
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

	target, err := resolveTaskID(ctx, cliInstance.App.TaskService, args[0])
	if err != nil {
		if fmtErr := formatter.Error("TASK_NOT_FOUND", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitNotFound)
	}

	if quietMode {
		fmt.Printf("%s\n", target.ID)
		return nil
	}

	if jsonOutput {
		return formatter.Success(target)
	}

	printTaskDetails(target, plain)
	return nil
}

func printTaskDetails(t *models.Task, plain bool) {
	status := converters.StatusGlyphPending
	if t.Completed {
		status = converters.StatusGlyphDone
	}

	fmt.Printf("%s %s\n", status, t.Title)
	fmt.Printf("  ID:       %s\n", t.ID)
	fmt.Printf("  Category: %s\n", t.Category)
	fmt.Printf("  Created:  %s\n", t.CreatedAt.Format("2006-01-02 15:04"))
	if t.CompletedAt != nil {
		fmt.Printf("  Done at:  %s\n", t.CompletedAt.Format("2006-01-02 15:04"))
	}
	if t.RemindAt != nil {
		fmt.Printf("  Reminder: %s\n", converters.FormatReminder(*t.RemindAt))
	}

	if t.Notes == "" {
		return
	}

	fmt.Println()
	if plain {
		fmt.Println(t.Notes)
		return
	}

	rendered, err := renderMarkdown(t.Notes)
	if err != nil {
		slog.Warn("markdown rendering failed, printing raw notes", "error", err)
		fmt.Println(t.Notes)
		return
	}
	fmt.Print(rendered)
}

func renderMarkdown(notes string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	out, err := renderer.Render(strings.TrimSpace(notes))
	if err != nil {
		return "", err
	}
	return out, nil
}
