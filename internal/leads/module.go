// Package leads provides the lead pipeline bounded context module.
package leads

import (
	"broker_portal_backend/internal/events"
	apphttp "broker_portal_backend/internal/http"
	"broker_portal_backend/internal/leads/handler"
	"broker_portal_backend/internal/leads/repository"
	"broker_portal_backend/internal/leads/service"
	"broker_portal_backend/platform/logger"
	"broker_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the leads module with all its dependencies.
// The listings searcher is injected so matches run against live inventory.
func NewModule(pool *pgxpool.Pool, listings service.ListingSearcher, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, listings, eventBus, log)
	h := handler.New(svc, val)
	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the leads service for cross-module use (the assistant
// creates leads from qualified conversations).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts leads routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/leads"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
