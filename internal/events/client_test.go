package events

import (
	"context"
	"encoding/json"
	"net"
	"path/filepath"
	"testing"
	"time"
)

// startFakeDaemon listens on a temp unix socket and decodes everything a
// connected client sends into the returned channel.
func startFakeDaemon(t *testing.T) (string, <-chan Message) {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "dodo-test.sock")
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatalf("Failed to listen on test socket: %v", err)
	}
	t.Cleanup(func() {
		_ = listener.Close()
	})

	received := make(chan Message, 100)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		decoder := json.NewDecoder(conn)
		for {
			var msg Message
			if err := decoder.Decode(&msg); err != nil {
				return
			}
			received <- msg
		}
	}()

	return socketPath, received
}

func connectTestClient(t *testing.T, socketPath string) *Client {
	t.Helper()

	client, err := NewClient(socketPath)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return client
}

func waitForMessage(t *testing.T, ch <-chan Message, timeout time.Duration) Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatal("Timeout waiting for message")
		return Message{}
	}
}

func TestClient_DebounceCollapsesBurst(t *testing.T) {
	t.Setenv("DODO_EVENT_DEBOUNCE_MS", "30")

	socketPath, received := startFakeDaemon(t)
	client := connectTestClient(t, socketPath)

	// A burst of mutations within one debounce window
	for i := 0; i < 5; i++ {
		if err := client.SendEvent(Event{Type: EventTasksChanged, Timestamp: time.Now()}); err != nil {
			t.Fatalf("SendEvent: %v", err)
		}
	}

	msg := waitForMessage(t, received, 2*time.Second)
	if msg.Event == nil || msg.Event.Type != EventTasksChanged {
		t.Fatalf("Expected tasks_changed event, got %+v", msg)
	}

	// The burst must collapse to a single event
	select {
	case extra := <-received:
		t.Fatalf("Expected burst to collapse to one event, got extra %+v", extra)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestClient_ReminderEventsPassThrough(t *testing.T) {
	t.Setenv("DODO_EVENT_DEBOUNCE_MS", "500")

	socketPath, received := startFakeDaemon(t)
	client := connectTestClient(t, socketPath)

	// Reminder events are not batchable; all three arrive well inside
	// the long debounce window
	for i := 0; i < 3; i++ {
		if err := client.SendEvent(Event{Type: EventReminderDue, TaskID: "task", Timestamp: time.Now()}); err != nil {
			t.Fatalf("SendEvent: %v", err)
		}
	}

	for i := 0; i < 3; i++ {
		msg := waitForMessage(t, received, 2*time.Second)
		if msg.Event == nil || msg.Event.Type != EventReminderDue {
			t.Fatalf("Expected reminder_due event, got %+v", msg)
		}
	}
}

func TestClient_SendEventQueueFull(t *testing.T) {
	// Never connected: nothing drains the queue
	client, err := NewClient(filepath.Join(t.TempDir(), "nowhere.sock"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})

	var sendErr error
	for i := 0; i < 200; i++ {
		if err := client.SendEvent(Event{Type: EventTasksChanged}); err != nil {
			sendErr = err
			break
		}
	}
	if sendErr == nil {
		t.Fatal("Expected queue-full error, got none")
	}
}

func TestClient_CloseWithoutConnect(t *testing.T) {
	client, err := NewClient(filepath.Join(t.TempDir(), "nowhere.sock"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close without connect: %v", err)
	}
	// Idempotent
	if err := client.Close(); err != nil {
		t.Errorf("Second close: %v", err)
	}
}

func TestClient_ListenRespondsToPing(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "dodo-test.sock")
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatalf("Failed to listen on test socket: %v", err)
	}
	t.Cleanup(func() {
		_ = listener.Close()
	})

	serverConn := make(chan net.Conn, 1)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		serverConn <- conn
	}()

	client := connectTestClient(t, socketPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventChan, err := client.Listen(ctx)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}

	conn := <-serverConn
	defer conn.Close()
	encoder := json.NewEncoder(conn)
	decoder := json.NewDecoder(conn)

	if err := encoder.Encode(Message{Type: "ping"}); err != nil {
		t.Fatalf("Failed to send ping: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var pong Message
	if err := decoder.Decode(&pong); err != nil {
		t.Fatalf("Expected pong, got decode error: %v", err)
	}
	if pong.Type != "pong" {
		t.Errorf("Expected pong, got %q", pong.Type)
	}

	// A real event lands on the listen channel
	due := Event{Type: EventReminderDue, TaskID: "task-1", Timestamp: time.Now()}
	if err := encoder.Encode(Message{Type: "event", Event: &due}); err != nil {
		t.Fatalf("Failed to send event: %v", err)
	}

	select {
	case event := <-eventChan:
		if event.Type != EventReminderDue || event.TaskID != "task-1" {
			t.Errorf("Unexpected event: %+v", event)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timeout waiting for event on listen channel")
	}
}
