// Command worker runs the background task processor: market snapshot
// refreshes and conversation rescoring.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"broker_portal_backend/internal/assistant"
	appevents "broker_portal_backend/internal/events"
	"broker_portal_backend/internal/leads"
	"broker_portal_backend/internal/listings"
	"broker_portal_backend/internal/market"
	"broker_portal_backend/internal/plans"
	"broker_portal_backend/internal/scheduler"
	"broker_portal_backend/platform/config"
	"broker_portal_backend/platform/db"
	"broker_portal_backend/platform/logger"
	"broker_portal_backend/platform/validator"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if cfg.RedisURL == "" {
		os.Stderr.WriteString("REDIS_URL is required for the worker\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Error("invalid redis url", "error", err)
		os.Exit(1)
	}
	cache := redis.NewClient(opt)
	defer cache.Close()

	bus := appevents.NewInMemoryBus(log)
	val := validator.New()

	listingsMod := listings.NewModule(pool, bus, val, log)
	leadsMod := leads.NewModule(pool, listingsMod.Repository(), bus, val, log)
	plansRepo := plans.NewRepository(pool)
	assistantMod := assistant.NewModule(
		pool, listingsMod.Repository(), leadsMod.Service(), plansRepo,
		nil, bus, val, log, cfg.PublicBaseURL,
	)
	marketMod := market.NewModule(pool, cache, cfg.MarketSnapshotTTL, log)

	worker, err := scheduler.NewWorker(cfg, marketMod.Service(), assistantMod.Service(), log)
	if err != nil {
		log.Error("worker setup failed", "error", err)
		os.Exit(1)
	}
	periodic, err := scheduler.NewPeriodicManager(cfg)
	if err != nil {
		log.Error("periodic task setup failed", "error", err)
		os.Exit(1)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("worker starting", "queue", cfg.AsynqQueueName, "concurrency", cfg.AsynqConcurrency)
		return worker.Run()
	})
	g.Go(func() error {
		return periodic.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		periodic.Shutdown()
		worker.Shutdown()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("worker exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("worker stopped")
}
