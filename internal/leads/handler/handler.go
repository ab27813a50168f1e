package handler

import (
	"net/http"

	"broker_portal_backend/internal/leads/repository"
	"broker_portal_backend/internal/leads/service"
	"broker_portal_backend/internal/leads/transport"
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
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/board", h.Board)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.PATCH("/:id/stage", h.MoveStage)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/archive", h.Archive)
	rg.POST("/:id/unarchive", h.Unarchive)
	rg.GET("/:id/matches", h.Matches)
}

func brokerIDFrom(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetHeader("X-Broker-ID"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "missing or invalid X-Broker-ID header", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}

	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Create(c.Request.Context(), repository.CreateLeadParams{
		BrokerID:       brokerID,
		ContactName:    req.ContactName,
		ContactPhone:   req.ContactPhone,
		ContactEmail:   req.ContactEmail,
		Operation:      req.Operation,
		PropertyType:   req.PropertyType,
		City:           req.City,
		Neighborhoods:  req.Neighborhoods,
		MinBudgetCents: req.MinBudgetCents,
		MaxBudgetCents: req.MaxBudgetCents,
		Bedrooms:       req.Bedrooms,
		Source:         "manual",
		Notes:          req.Notes,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.ToLeadResponse(lead))
}

func (h *Handler) List(c *gin.Context) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}

	params := repository.ListParams{
		BrokerID:        brokerID,
		IncludeArchived: c.Query("archived") == "true",
	}
	if stage := c.Query("stage"); stage != "" {
		params.Stage = &stage
	}

	items, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToLeadResponses(items))
}

func (h *Handler) Board(c *gin.Context) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}

	board, err := h.svc.Board(c.Request.Context(), brokerID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	counts := make([]transport.StageCountResponse, len(board.Counts))
	for i, sc := range board.Counts {
		counts[i] = transport.StageCountResponse{Stage: sc.Stage, Count: sc.Count}
	}
	httpkit.OK(c, transport.BoardResponse{
		Counts: counts,
		Leads:  transport.ToLeadResponses(board.Leads),
	})
}

func (h *Handler) GetByID(c *gin.Context) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	lead, err := h.svc.Get(c.Request.Context(), id, brokerID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToLeadResponse(lead))
}

func (h *Handler) Update(c *gin.Context) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.Update(c.Request.Context(), id, brokerID, repository.UpdateLeadParams{
		ContactName:    req.ContactName,
		ContactPhone:   req.ContactPhone,
		ContactEmail:   req.ContactEmail,
		Operation:      req.Operation,
		PropertyType:   req.PropertyType,
		City:           req.City,
		Neighborhoods:  req.Neighborhoods,
		MinBudgetCents: req.MinBudgetCents,
		MaxBudgetCents: req.MaxBudgetCents,
		Bedrooms:       req.Bedrooms,
		Temperature:    req.Temperature,
		Score:          req.Score,
		Notes:          req.Notes,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToLeadResponse(lead))
}

func (h *Handler) MoveStage(c *gin.Context) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var req transport.MoveStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.MoveStage(c.Request.Context(), id, brokerID, req.Stage)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToLeadResponse(lead))
}

func (h *Handler) Delete(c *gin.Context) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id, brokerID); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Archive(c *gin.Context) {
	h.setArchived(c, true)
}

func (h *Handler) Unarchive(c *gin.Context) {
	h.setArchived(c, false)
}

func (h *Handler) setArchived(c *gin.Context, archived bool) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.SetArchived(c.Request.Context(), id, brokerID, archived); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) Matches(c *gin.Context) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	matches, err := h.svc.Matches(c.Request.Context(), id, brokerID)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToMatchResponses(matches))
}
