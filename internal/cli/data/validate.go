package data

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuchhuang/dodo/internal/cli"
	"github.com/yuchhuang/dodo/internal/store"
)

// ValidateCmd returns the data validate subcommand
func ValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the task file against its schema",
		Long: `Validate the task file against the task schema. Exits non-zero if
the file is malformed, reporting each violation with its JSON path.

Examples:
  dodo data validate
  dodo data validate --json
`,
		RunE: runValidate,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
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
	path := cliInstance.App.Store.Path()
	if err := cliInstance.Close(); err != nil {
		slog.Error("error closing CLI", "error", err)
	}

	result, err := store.ValidateFile(path)
	if err != nil {
		if fmtErr := formatter.Error("VALIDATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if jsonOutput {
		violations := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			violations = append(violations, e.Error())
		}
		if err := json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":    result.Valid,
			"path":       path,
			"violations": violations,
		}); err != nil {
			return err
		}
		if !result.Valid {
			os.Exit(cli.ExitDataErr)
		}
		return nil
	}

	if result.Valid {
		fmt.Printf("%s is valid\n", path)
		return nil
	}

	fmt.Fprintf(os.Stderr, "%s has %d violations:\n", path, len(result.Errors))
	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "  - %s\n", e.Error())
	}
	os.Exit(cli.ExitDataErr)
	return nil
}
