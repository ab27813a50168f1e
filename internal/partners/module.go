// Package partners provides the broker partnership bounded context module.
package partners

import (
	"broker_portal_backend/internal/events"
	apphttp "broker_portal_backend/internal/http"
	"broker_portal_backend/internal/partners/handler"
	"broker_portal_backend/internal/partners/repository"
	"broker_portal_backend/internal/partners/service"
	"broker_portal_backend/platform/logger"
	"broker_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the partners bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates the partners module. The listings searcher and lead
// reader are injected so partner matching runs against live inventory and
// the caller's own leads.
func NewModule(pool *pgxpool.Pool, listings service.ListingSearcher, leads service.LeadReader, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, listings, leads, eventBus, log)
	h := handler.New(svc, val)
	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "partners"
}

// Repository returns the partners repository for cross-module use (the
// notification module resolves broker contact details through it).
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts partnership routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/partners"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
