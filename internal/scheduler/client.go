package scheduler

import (
	"fmt"
	"time"

	"broker_portal_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

// redisOpt parses the configured Redis URL into asynq connection options.
func redisOpt(cfg config.SchedulerConfig) (asynq.RedisClientOpt, error) {
	parsed, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("scheduler: parse redis url: %w", err)
	}
	return asynq.RedisClientOpt{
		Addr:     parsed.Addr,
		Username: parsed.Username,
		Password: parsed.Password,
		DB:       parsed.DB,
	}, nil
}

// NewClient builds an asynq client for enqueueing tasks.
func NewClient(cfg config.SchedulerConfig) (*asynq.Client, error) {
	opt, err := redisOpt(cfg)
	if err != nil {
		return nil, err
	}
	return asynq.NewClient(opt), nil
}

// NewPeriodicManager registers the recurring tasks: market snapshot refreshes
// on the configured interval and conversation rescoring every hour.
func NewPeriodicManager(cfg config.SchedulerConfig) (*asynq.PeriodicTaskManager, error) {
	opt, err := redisOpt(cfg)
	if err != nil {
		return nil, err
	}

	provider := &staticTaskProvider{
		snapshotInterval: cfg.GetMarketSnapshotInterval(),
		queue:            cfg.GetAsynqQueueName(),
	}
	return asynq.NewPeriodicTaskManager(asynq.PeriodicTaskManagerOpts{
		RedisConnOpt:               opt,
		PeriodicTaskConfigProvider: provider,
		SyncInterval:               time.Minute,
	})
}

type staticTaskProvider struct {
	snapshotInterval time.Duration
	queue            string
}

func (p *staticTaskProvider) GetConfigs() ([]*asynq.PeriodicTaskConfig, error) {
	snapshot, err := NewMarketSnapshotTask()
	if err != nil {
		return nil, err
	}
	rescore, err := NewConversationRescoreTask(30*time.Minute, 200)
	if err != nil {
		return nil, err
	}

	snapshotSpec := "@every 6h"
	if p.snapshotInterval > 0 {
		snapshotSpec = "@every " + p.snapshotInterval.String()
	}
	return []*asynq.PeriodicTaskConfig{
		{Cronspec: snapshotSpec, Task: snapshot, Opts: []asynq.Option{asynq.Queue(p.queue)}},
		{Cronspec: "@every 1h", Task: rescore, Opts: []asynq.Option{asynq.Queue(p.queue)}},
	}, nil
}
