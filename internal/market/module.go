// Package market provides the market analytics bounded context module.
package market

import (
	"time"

	apphttp "broker_portal_backend/internal/http"
	"broker_portal_backend/internal/market/handler"
	"broker_portal_backend/internal/market/repository"
	"broker_portal_backend/internal/market/service"
	"broker_portal_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Module is the market bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates the market module. The Redis client may be nil.
func NewModule(pool *pgxpool.Pool, cache *redis.Client, snapshotTTL time.Duration, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cache, snapshotTTL, log)
	h := handler.New(svc)
	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "market"
}

// Service returns the market service for the background worker.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts market routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/market"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
