package scheduler

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewConversationRescoreTask(t *testing.T) {
	task, err := NewConversationRescoreTask(45*time.Minute, 150)
	if err != nil {
		t.Fatalf("NewConversationRescoreTask() error = %v", err)
	}
	if task.Type() != TypeConversationRescore {
		t.Fatalf("Type() = %q, want %q", task.Type(), TypeConversationRescore)
	}

	var payload ConversationRescorePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload.StaleAfter != 45*time.Minute {
		t.Errorf("StaleAfter = %v, want %v", payload.StaleAfter, 45*time.Minute)
	}
	if payload.Limit != 150 {
		t.Errorf("Limit = %d, want 150", payload.Limit)
	}
}

func TestNewMarketSnapshotTask(t *testing.T) {
	task, err := NewMarketSnapshotTask()
	if err != nil {
		t.Fatalf("NewMarketSnapshotTask() error = %v", err)
	}
	if task.Type() != TypeMarketSnapshotRefresh {
		t.Fatalf("Type() = %q, want %q", task.Type(), TypeMarketSnapshotRefresh)
	}
}
