// Package assistant provides the conversational qualification bounded
// context module.
package assistant

import (
	"broker_portal_backend/internal/assistant/handler"
	"broker_portal_backend/internal/assistant/repository"
	"broker_portal_backend/internal/assistant/service"
	"broker_portal_backend/internal/events"
	apphttp "broker_portal_backend/internal/http"
	"broker_portal_backend/platform/ai"
	"broker_portal_backend/platform/logger"
	"broker_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the assistant bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule wires the assistant. The inventory, lead recorder and plan
// reader come from their own modules; the AI client may be nil, in which
// case canned replies are used.
func NewModule(
	pool *pgxpool.Pool,
	inventory service.Inventory,
	leads service.LeadRecorder,
	planReader service.PlanReader,
	aiClient *ai.Client,
	eventBus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
	publicBaseURL string,
) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, inventory, leads, planReader, aiClient, eventBus, log, publicBaseURL)
	h := handler.New(svc, val)
	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "assistant"
}

// Service returns the assistant service for the background worker.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts assistant routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.V1.Group("/assistant"), ctx.ChatRateLimiter.RateLimit())
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
