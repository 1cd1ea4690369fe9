package data

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/yuchhuang/dodo/internal/cli"
)

// InfoCmd returns the data info subcommand
func InfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show task file location, size, and last modification",
		RunE:  runInfo,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

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

	info, err := cliInstance.App.Store.Info()
	if err != nil {
		if fmtErr := formatter.Error("FILE_INFO_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if jsonOutput {
		return formatter.Success(info)
	}

	fmt.Printf("Task file: %s\n", info.Path)
	if !info.Exists {
		fmt.Println("  Does not exist yet (created on first save)")
		return nil
	}
	fmt.Printf("  Tasks:    %d\n", info.TaskCount)
	fmt.Printf("  Size:     %d bytes\n", info.Size)
	fmt.Printf("  Modified: %s\n", info.Modified.Format("2006-01-02 15:04:05"))
	return nil
}
