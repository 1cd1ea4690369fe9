package reminders

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yuchhuang/dodo/internal/cli"
	"github.com/yuchhuang/dodo/internal/config"
	"github.com/yuchhuang/dodo/internal/converters"
	"github.com/yuchhuang/dodo/internal/events"
)

// WatchCmd returns the reminders watch subcommand
func WatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream reminder notifications from the daemon",
		Long: `Connect to the running daemon and print each reminder as it fires,
until interrupted. Requires dodo-daemon to be running.

Examples:
  dodo reminders watch
  dodo reminders watch --json | jq .task_id
`,
		RunE: runWatch,
	}

	cmd.Flags().Bool("json", false, "Output one JSON object per event")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	formatter := &cli.OutputFormatter{JSON: jsonOutput}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	socketPath, err := config.SocketPath()
	if err != nil {
		if fmtErr := formatter.Error("SOCKET_PATH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	client, err := events.NewClient(socketPath)
	if err != nil {
		if fmtErr := formatter.Error("CLIENT_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			slog.Error("error closing event client", "error", err)
		}
	}()

	if err := client.Connect(ctx); err != nil {
		derr := events.ClassifyDaemonError(err)
		if fmtErr := formatter.ErrorWithSuggestion("DAEMON_UNAVAILABLE", derr.Message, derr.Hint); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		os.Exit(cli.ExitError)
	}

	eventChan, err := client.Listen(ctx)
	if err != nil {
		if fmtErr := formatter.Error("LISTEN_ERROR", err.Error()); fmtErr != nil {
			slog.Error("error formatting error message", "error", fmtErr)
		}
		return err
	}

	if !jsonOutput {
		fmt.Println("Watching for reminders (ctrl-c to stop)")
	}

	encoder := json.NewEncoder(os.Stdout)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-eventChan:
			if !ok {
				// The client gave up reconnecting
				return nil
			}
			if err := printEvent(encoder, event, jsonOutput); err != nil {
				return err
			}
		}
	}
}

func printEvent(encoder *json.Encoder, event events.Event, jsonOutput bool) error {
	if jsonOutput {
		return encoder.Encode(event)
	}

	switch event.Type {
	case events.EventReminderDue:
		fmt.Printf("⏰ %s  %s [%s]\n",
			converters.FormatReminder(event.RemindAt),
			event.TaskTitle,
			converters.ShortID(event.TaskID))
	case events.EventTasksChanged:
		fmt.Println("· task list changed")
	}
	return nil
}
