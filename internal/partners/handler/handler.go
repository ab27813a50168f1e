package handler

import (
	"net/http"

	leadtransport "broker_portal_backend/internal/leads/transport"
	"broker_portal_backend/internal/partners/service"
	"broker_portal_backend/internal/partners/transport"
	"broker_portal_backend/platform/httpkit"
	"broker_portal_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc      *service.Service
	validate *validator.Validator
}

func New(svc *service.Service, validate *validator.Validator) *Handler {
	return &Handler{svc: svc, validate: validate}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/brokers", h.Discover)
	rg.GET("", h.List)
	rg.POST("", h.Propose)
	rg.POST("/:id/respond", h.Respond)
	rg.POST("/:id/end", h.End)
	rg.GET("/leads/:leadId/matches", h.MatchForLead)
}

func brokerIDFrom(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetHeader("X-Broker-ID"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "missing or invalid X-Broker-ID header", nil)
		return uuid.Nil, false
	}
	return id, true
}

// Discover lists brokers open to partnerships, optionally filtered by ?city.
func (h *Handler) Discover(c *gin.Context) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}

	profiles, err := h.svc.Discover(c.Request.Context(), brokerID, c.Query("city"))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToProfileResponses(profiles))
}

func (h *Handler) List(c *gin.Context) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}

	items, err := h.svc.List(c.Request.Context(), brokerID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToPartnershipResponses(items))
}

func (h *Handler) Propose(c *gin.Context) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}

	var req transport.ProposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	partnerID, err := uuid.Parse(req.PartnerID)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	p, err := h.svc.Propose(c.Request.Context(), brokerID, partnerID, req.Message)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.ToPartnershipResponse(p))
}

func (h *Handler) Respond(c *gin.Context) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	p, err := h.svc.Respond(c.Request.Context(), id, brokerID, req.Action == "accept")
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToPartnershipResponse(p))
}

func (h *Handler) End(c *gin.Context) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	p, err := h.svc.End(c.Request.Context(), id, brokerID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToPartnershipResponse(p))
}

// MatchForLead ranks accepted partners' inventory against one of the
// broker's leads.
func (h *Handler) MatchForLead(c *gin.Context) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}
	leadID, err := uuid.Parse(c.Param("leadId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	matches, err := h.svc.MatchForLead(c.Request.Context(), leadID, brokerID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, leadtransport.ToMatchResponses(matches))
}
