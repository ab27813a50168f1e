package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"broker_portal_backend/platform/config"
	"broker_portal_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// MarketRefresher recomputes and caches market snapshots.
type MarketRefresher interface {
	Refresh(ctx context.Context) error
}

// ConversationRescorer recomputes lead temperature for stale conversations.
type ConversationRescorer interface {
	Rescore(ctx context.Context, staleAfter time.Duration, limit int) (int, error)
}

// Worker is the asynq server processing background tasks.
type Worker struct {
	server  *asynq.Server
	mux     *asynq.ServeMux
	market  MarketRefresher
	rescore ConversationRescorer
	log     *logger.Logger
}

// NewWorker builds the asynq server and registers handlers for all task
// types.
func NewWorker(cfg config.SchedulerConfig, market MarketRefresher, rescore ConversationRescorer, log *logger.Logger) (*Worker, error) {
	opt, err := redisOpt(cfg)
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency <= 0 {
		concurrency = 10
	}
	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{cfg.GetAsynqQueueName(): 1},
	})

	w := &Worker{server: server, mux: asynq.NewServeMux(), market: market, rescore: rescore, log: log}
	w.mux.HandleFunc(TypeMarketSnapshotRefresh, w.handleMarketSnapshot)
	w.mux.HandleFunc(TypeConversationRescore, w.handleConversationRescore)
	return w, nil
}

// Run starts processing tasks and blocks until the server stops.
func (w *Worker) Run() error {
	return w.server.Run(w.mux)
}

// Shutdown stops the server gracefully.
func (w *Worker) Shutdown() {
	w.server.Shutdown()
}

func (w *Worker) handleMarketSnapshot(ctx context.Context, _ *asynq.Task) error {
	if err := w.market.Refresh(ctx); err != nil {
		return fmt.Errorf("market snapshot refresh: %w", err)
	}
	w.log.Info("market snapshot refreshed")
	return nil
}

func (w *Worker) handleConversationRescore(ctx context.Context, t *asynq.Task) error {
	var payload ConversationRescorePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode rescore payload: %w", err)
	}
	if payload.StaleAfter <= 0 {
		payload.StaleAfter = 30 * time.Minute
	}
	if payload.Limit <= 0 {
		payload.Limit = 200
	}

	updated, err := w.rescore.Rescore(ctx, payload.StaleAfter, payload.Limit)
	if err != nil {
		return fmt.Errorf("conversation rescore: %w", err)
	}
	w.log.Info("conversations rescored", "updated", updated)
	return nil
}
