package events

import (
	"log/slog"
	"time"
)

// PublishWithRetry publishes an event with exponential backoff, for
// non-critical notifications where immediate failure should not block
// the calling operation.
func PublishWithRetry(client Publisher, event Event, maxRetries int) error {
	if client == nil {
		return nil // No daemon connection, nothing to do
	}

	var lastErr error
	baseDelay := 50 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := client.SendEvent(event)
		if err == nil {
			if attempt > 0 {
				slog.Debug("event published after retry",
					"attempt", attempt+1,
					"event_type", event.Type)
			}
			return nil
		}

		lastErr = err

		if attempt < maxRetries-1 {
			delay := baseDelay * (1 << attempt)
			slog.Debug("event publish failed, retrying",
				"attempt", attempt+1,
				"max_retries", maxRetries,
				"retry_delay", delay,
				"error", err)
			time.Sleep(delay)
		}
	}

	slog.Warn("event publish failed after all retries",
		"attempts", maxRetries,
		"event_type", event.Type,
		"error", lastErr)

	return lastErr
}
