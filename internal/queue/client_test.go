package queue

import (
	"testing"
	"time"

	"github.com/gearmart-next/internal/config"
)

func TestClientDisabledEnqueueIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueWarrantySweep(WarrantySweepPayload{Before: time.Now()}); err != nil {
		t.Fatalf("disabled enqueue should be a no-op, got %v", err)
	}
}

func TestClientNilConfig(t *testing.T) {
	client, err := NewClient(nil)
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("nil config should disable the client")
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatalf("nil client should report disabled")
	}
	if err := nilClient.EnqueueWarrantySweep(WarrantySweepPayload{}); err != nil {
		t.Fatalf("nil client enqueue should be a no-op, got %v", err)
	}
}

func TestNewWarrantySweepTask(t *testing.T) {
	task, err := NewWarrantySweepTask(WarrantySweepPayload{Before: time.Now()})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskWarrantySweep {
		t.Fatalf("task type want %s got %s", TaskWarrantySweep, task.Type())
	}
}
