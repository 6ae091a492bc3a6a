package queue

import (
	"encoding/json"
	"testing"

	"github.com/complaint-desk/internal/config"
)

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("expected disabled client")
	}
	if err := client.EnqueueComplaintCreatedEmail(ComplaintCreatedEmailPayload{ComplaintID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be noop, got %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}

func TestComplaintStatusEmailTaskPayload(t *testing.T) {
	task, err := NewComplaintStatusEmailTask(ComplaintStatusEmailPayload{ComplaintID: 42, Status: "Resolved"})
	if err != nil {
		t.Fatalf("build task failed: %v", err)
	}
	if task.Type() != TaskComplaintStatusEmail {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	var payload ComplaintStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.ComplaintID != 42 || payload.Status != "Resolved" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestBuildServerConfigDefaults(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 10 {
		t.Fatalf("expected default concurrency 10, got %d", cfg.Concurrency)
	}
	if cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("expected default queue weight, got %v", cfg.Queues)
	}
}
