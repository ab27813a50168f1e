// Package scheduler defines the background task types and the asynq worker
// that processes them.
package scheduler

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type identifiers.
const (
	TypeMarketSnapshotRefresh = "market:snapshot:refresh"
	TypeConversationRescore   = "assistant:conversation:rescore"
)

// MarketSnapshotPayload carries no fields today; the refresh always recomputes
// every cached dimension.
type MarketSnapshotPayload struct{}

// ConversationRescorePayload bounds one rescore pass.
type ConversationRescorePayload struct {
	StaleAfter time.Duration `json:"staleAfter"`
	Limit      int           `json:"limit"`
}

// NewMarketSnapshotTask builds the periodic market snapshot refresh task.
func NewMarketSnapshotTask() (*asynq.Task, error) {
	payload, err := json.Marshal(MarketSnapshotPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeMarketSnapshotRefresh, payload), nil
}

// NewConversationRescoreTask builds a rescore task for conversations idle
// longer than staleAfter, capped at limit per run.
func NewConversationRescoreTask(staleAfter time.Duration, limit int) (*asynq.Task, error) {
	payload, err := json.Marshal(ConversationRescorePayload{StaleAfter: staleAfter, Limit: limit})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeConversationRescore, payload), nil
}
