package reminder

import (
	"sync"
	"testing"
	"time"

	"github.com/yuchhuang/dodo/internal/models"
)

func taskWithReminder(title string, at time.Time) *models.Task {
	task := models.NewTask(title, "")
	task.SetReminder(at)
	return task
}

// collector records notifications safely across goroutines
type collector struct {
	mu    sync.Mutex
	fired []Notification
}

func (c *collector) callback(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fired = append(c.fired, n)
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.fired)
}

func TestWatcher_FiresDueReminderOnce(t *testing.T) {
	c := &collector{}
	w := NewWatcher(time.Minute, c.callback)

	due := taskWithReminder("due", time.Now().Add(-time.Second))
	w.UpdateTasks([]*models.Task{due})

	w.check(time.Now())
	if c.count() != 1 {
		t.Fatalf("Expected 1 notification, got %d", c.count())
	}

	// A second scan must not re-fire
	w.check(time.Now())
	if c.count() != 1 {
		t.Errorf("Expected reminder to fire exactly once, got %d", c.count())
	}
}

func TestWatcher_FutureReminderDoesNotFire(t *testing.T) {
	c := &collector{}
	w := NewWatcher(time.Minute, c.callback)

	w.UpdateTasks([]*models.Task{taskWithReminder("later", time.Now().Add(time.Hour))})
	w.check(time.Now())

	if c.count() != 0 {
		t.Errorf("Expected no notifications, got %d", c.count())
	}
}

func TestWatcher_CompletedTaskIsNotScheduled(t *testing.T) {
	c := &collector{}
	w := NewWatcher(time.Minute, c.callback)

	done := taskWithReminder("done", time.Now().Add(-time.Second))
	done.MarkCompleted()
	w.UpdateTasks([]*models.Task{done})
	w.check(time.Now())

	if c.count() != 0 {
		t.Errorf("Completed task must not fire, got %d notifications", c.count())
	}
}

func TestWatcher_UpdatePreservesFiredState(t *testing.T) {
	c := &collector{}
	w := NewWatcher(time.Minute, c.callback)

	due := taskWithReminder("due", time.Now().Add(time.Minute))
	w.UpdateTasks([]*models.Task{due})
	w.check(time.Now().Add(2 * time.Minute))
	if c.count() != 1 {
		t.Fatalf("Expected 1 notification, got %d", c.count())
	}

	// Rebuilding the schedule from the same task list must not re-notify
	w.UpdateTasks([]*models.Task{due})
	w.check(time.Now().Add(3 * time.Minute))
	if c.count() != 1 {
		t.Errorf("Rebuild re-fired a reminder: %d notifications", c.count())
	}
}

func TestWatcher_RescheduleFiresAgain(t *testing.T) {
	c := &collector{}
	w := NewWatcher(time.Minute, c.callback)
	now := time.Now()

	task := taskWithReminder("meeting", now.Add(time.Minute))
	w.UpdateTasks([]*models.Task{task})
	w.check(now.Add(2 * time.Minute))
	if c.count() != 1 {
		t.Fatalf("Expected 1 notification, got %d", c.count())
	}

	// Moving the reminder resets the fired state
	task.SetReminder(now.Add(3 * time.Minute))
	w.UpdateTasks([]*models.Task{task})
	w.check(now.Add(4 * time.Minute))
	if c.count() != 2 {
		t.Errorf("Expected rescheduled reminder to fire again, got %d", c.count())
	}
}

func TestWatcher_Upcoming(t *testing.T) {
	w := NewWatcher(time.Minute, nil)
	now := time.Now()

	w.UpdateTasks([]*models.Task{
		taskWithReminder("soon", now.Add(10*time.Minute)),
		taskWithReminder("sooner", now.Add(5*time.Minute)),
		taskWithReminder("beyond window", now.Add(48*time.Hour)),
	})

	upcoming := w.Upcoming(time.Hour)
	if len(upcoming) != 2 {
		t.Fatalf("Expected 2 upcoming, got %d", len(upcoming))
	}
	if upcoming[0].TaskTitle != "sooner" || upcoming[1].TaskTitle != "soon" {
		t.Errorf("Expected soonest-first ordering, got %s then %s",
			upcoming[0].TaskTitle, upcoming[1].TaskTitle)
	}
}

func TestWatcher_Status(t *testing.T) {
	w := NewWatcher(time.Minute, nil)
	now := time.Now()

	w.UpdateTasks([]*models.Task{
		taskWithReminder("future", now.Add(time.Hour)),
		taskWithReminder("overdue", now.Add(-time.Hour)),
	})

	status := w.Status()
	if status.Running {
		t.Error("Watcher was never started")
	}
	if status.Total != 2 || status.Active != 2 {
		t.Errorf("Expected 2 total/active, got %+v", status)
	}
	if status.Overdue != 1 {
		t.Errorf("Expected 1 overdue, got %d", status.Overdue)
	}
	if status.CheckInterval != time.Minute {
		t.Errorf("Expected interval 1m, got %v", status.CheckInterval)
	}
}

func TestWatcher_StartStop(t *testing.T) {
	c := &collector{}
	w := NewWatcher(10*time.Millisecond, c.callback)
	w.UpdateTasks([]*models.Task{taskWithReminder("due", time.Now().Add(20*time.Millisecond))})

	w.Start(t.Context())
	defer w.Stop()

	deadline := time.After(2 * time.Second)
	for c.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("Reminder never fired")
		case <-time.After(10 * time.Millisecond):
		}
	}

	w.Stop()
	if w.Status().Running {
		t.Error("Expected watcher stopped")
	}
}
