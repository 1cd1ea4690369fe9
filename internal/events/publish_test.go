package events

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockRetryPublisher fails SendEvent until a configured attempt number
type mockRetryPublisher struct {
	sendAttempts int
	failUntil    int
	lastEvent    Event
}

func (m *mockRetryPublisher) SendEvent(event Event) error {
	m.lastEvent = event
	currentAttempt := m.sendAttempts
	m.sendAttempts++

	if currentAttempt < m.failUntil {
		return errors.New("simulated send failure")
	}
	return nil
}

func (m *mockRetryPublisher) Connect(ctx context.Context) error                { return nil }
func (m *mockRetryPublisher) Listen(ctx context.Context) (<-chan Event, error) { return nil, nil }
func (m *mockRetryPublisher) Close() error                                     { return nil }

func TestPublishWithRetry_Success(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 0}
	event := Event{Type: EventTasksChanged, TaskID: "abc"}

	if err := PublishWithRetry(mock, event, 3); err != nil {
		t.Errorf("Expected success, got error: %v", err)
	}
	if mock.sendAttempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", mock.sendAttempts)
	}
	if mock.lastEvent.TaskID != "abc" {
		t.Errorf("Expected event task ID abc, got %q", mock.lastEvent.TaskID)
	}
}

func TestPublishWithRetry_SuccessAfterRetries(t *testing.T) {
	// Fail first 2 attempts, succeed on 3rd
	mock := &mockRetryPublisher{failUntil: 2}

	if err := PublishWithRetry(mock, Event{Type: EventTasksChanged}, 3); err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}
	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
}

func TestPublishWithRetry_FailureAfterAllRetries(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999}

	err := PublishWithRetry(mock, Event{Type: EventTasksChanged}, 3)
	if err == nil {
		t.Error("Expected error after all retries failed, got nil")
	}
	if mock.sendAttempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", mock.sendAttempts)
	}
	if err.Error() != "simulated send failure" {
		t.Errorf("Expected the last send error, got %v", err)
	}
}

func TestPublishWithRetry_NilClient(t *testing.T) {
	// Should not panic and return nil
	if err := PublishWithRetry(nil, Event{Type: EventTasksChanged}, 3); err != nil {
		t.Errorf("Expected nil error for nil client, got: %v", err)
	}
}

func TestPublishWithRetry_ExponentialBackoff(t *testing.T) {
	// Fail first 2 attempts to trigger backoff: 50ms + 100ms
	mock := &mockRetryPublisher{failUntil: 2}

	start := time.Now()
	if err := PublishWithRetry(mock, Event{Type: EventTasksChanged}, 3); err != nil {
		t.Fatalf("Expected success after retries, got error: %v", err)
	}
	elapsed := time.Since(start)

	if elapsed < 150*time.Millisecond {
		t.Errorf("Expected at least 150ms of backoff, got %v", elapsed)
	}
}
