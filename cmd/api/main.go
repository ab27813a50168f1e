// Command api runs the broker portal HTTP server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"broker_portal_backend/internal/assistant"
	appevents "broker_portal_backend/internal/events"
	apphttp "broker_portal_backend/internal/http"
	"broker_portal_backend/internal/http/router"
	"broker_portal_backend/internal/leads"
	"broker_portal_backend/internal/listings"
	"broker_portal_backend/internal/market"
	"broker_portal_backend/internal/notification"
	"broker_portal_backend/internal/partners"
	"broker_portal_backend/internal/plans"
	"broker_portal_backend/internal/share"
	"broker_portal_backend/platform/ai"
	"broker_portal_backend/platform/config"
	"broker_portal_backend/platform/db"
	"broker_portal_backend/platform/logger"
	"broker_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

const migrationsDir = "migrations"

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.Env)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := connectWithRetry(ctx, cfg, log)
	if err != nil {
		log.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, cfg, migrationsDir); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	var cache *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Error("invalid redis url", "error", err)
			os.Exit(1)
		}
		cache = redis.NewClient(opt)
		defer cache.Close()
	}

	bus := appevents.NewInMemoryBus(log)
	val := validator.New()
	aiClient := ai.NewClient(ai.Config{
		APIKey:  cfg.AIAPIKey,
		BaseURL: cfg.AIBaseURL,
		Model:   cfg.AIModel,
	})
	if aiClient == nil {
		log.Warn("AI collaborator disabled, assistant will use canned replies")
	}

	listingsMod := listings.NewModule(pool, bus, val, log)
	leadsMod := leads.NewModule(pool, listingsMod.Repository(), bus, val, log)
	plansRepo := plans.NewRepository(pool)
	assistantMod := assistant.NewModule(
		pool, listingsMod.Repository(), leadsMod.Service(), plansRepo,
		aiClient, bus, val, log, cfg.PublicBaseURL,
	)
	marketMod := market.NewModule(pool, cache, cfg.MarketSnapshotTTL, log)
	partnersMod := partners.NewModule(pool, listingsMod.Repository(), leadsMod.Service(), bus, val, log)
	shareMod := share.NewModule(listingsMod.Service(), cfg.PublicBaseURL)

	notifier := notification.NewNotifier(cfg, log)
	notification.NewModule(notifier, partnersMod.Repository(), bus, log)

	engine := router.New(&apphttp.App{
		Config:            cfg,
		Logger:            log,
		Health:            pool,
		EventBus:          bus,
		ChatRatePerMinute: cfg.ChatRatePerMinute,
		ChatRateBurst:     cfg.ChatRateBurst,
		Modules: []apphttp.Module{
			listingsMod, leadsMod, assistantMod, marketMod, partnersMod, shareMod,
		},
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server starting", "addr", cfg.HTTPAddr, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// connectWithRetry pings the database a few times before giving up; in
// container setups the database often comes up seconds after the app.
func connectWithRetry(ctx context.Context, cfg *config.Config, log *logger.Logger) (*pgxpool.Pool, error) {
	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		pool, err := db.NewPool(ctx, cfg)
		if err == nil {
			return pool, nil
		}
		lastErr = err
		log.Warn("database not ready, retrying", "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	return nil, lastErr
}
