package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

type testSchedulerConfig struct {
	redisURL string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c testSchedulerConfig) GetQueueName() string      { return "nexus" }
func (c testSchedulerConfig) GetWorkerConcurrency() int { return 2 }

func TestRedisClientOptParsesURL(t *testing.T) {
	opt, err := redisClientOpt("redis://:secret@localhost:6380/2", false)
	if err != nil {
		t.Fatalf("redisClientOpt returned error: %v", err)
	}
	if opt.Addr != "localhost:6380" {
		t.Fatalf("expected addr localhost:6380, got %q", opt.Addr)
	}
	if opt.Password != "secret" {
		t.Fatalf("expected password to be kept, got %q", opt.Password)
	}
	if opt.DB != 2 {
		t.Fatalf("expected db 2, got %d", opt.DB)
	}
}

func TestRedisClientOptRejectsGarbage(t *testing.T) {
	if _, err := redisClientOpt("not-a-url", false); err == nil {
		t.Fatal("expected error for invalid redis url")
	}
}

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatal("expected error without redis url")
	}
}

func TestScheduleCallReminderEnqueues(t *testing.T) {
	srv := miniredis.RunT(t)

	cfg := testSchedulerConfig{redisURL: "redis://" + srv.Addr()}
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	defer client.Close()

	runAt := time.Now().Add(24 * time.Hour)
	err = client.ScheduleCallReminder(context.Background(), CallBookingReminderPayload{
		BookingID: "3f0b8dd2-4a43-4f2f-9f16-0cbb8f6a2ad1",
	}, runAt)
	if err != nil {
		t.Fatalf("ScheduleCallReminder returned error: %v", err)
	}

	opt, err := redisClientOpt(cfg.redisURL, false)
	if err != nil {
		t.Fatalf("redisClientOpt returned error: %v", err)
	}
	inspector := asynq.NewInspector(opt)
	defer inspector.Close()

	tasks, err := inspector.ListScheduledTasks("nexus")
	if err != nil {
		t.Fatalf("ListScheduledTasks returned error: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 scheduled task, got %d", len(tasks))
	}
	if tasks[0].Type != TaskCallBookingReminder {
		t.Fatalf("expected task type %s, got %s", TaskCallBookingReminder, tasks[0].Type)
	}
}

func TestNilClientIsNoop(t *testing.T) {
	var client *Client
	err := client.ScheduleCallReminder(context.Background(), CallBookingReminderPayload{BookingID: "x"}, time.Now())
	if err != nil {
		t.Fatalf("nil client should be a no-op, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("nil client Close should be a no-op, got %v", err)
	}
}
