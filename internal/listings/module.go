// Package listings provides the property listings bounded context module.
// This file defines the module that encapsulates all listings setup and route registration.
package listings

import (
	"broker_portal_backend/internal/events"
	apphttp "broker_portal_backend/internal/http"
	"broker_portal_backend/internal/listings/handler"
	"broker_portal_backend/internal/listings/repository"
	"broker_portal_backend/internal/listings/service"
	"broker_portal_backend/platform/logger"
	"broker_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the listings bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the listings module with all its dependencies.
func NewModule(pool *pgxpool.Pool, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, eventBus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc, repo: repo}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "listings"
}

// Service returns the listings service for cross-module use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the listings repository for cross-module use
// (lead matching and the assistant funnel search against live inventory).
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts listings routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/listings"))
	m.handler.RegisterBrokerRoutes(ctx.V1.Group("/brokers"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
