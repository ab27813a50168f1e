package handler

import (
	"net/http"

	"broker_portal_backend/internal/assistant/service"
	"broker_portal_backend/internal/assistant/transport"
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

// RegisterRoutes mounts the chat endpoints. Chat is public and rate limited;
// there is no account behind a visitor session.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, rateLimit gin.HandlerFunc) {
	rg.POST("/chat", rateLimit, h.Chat)
	rg.GET("/sessions/:sessionId", h.GetState)
}

func (h *Handler) Chat(c *gin.Context) {
	var req transport.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	var brokerID *uuid.UUID
	if req.BrokerID != nil {
		id, err := uuid.Parse(*req.BrokerID)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
		brokerID = &id
	}

	reply, err := h.svc.ProcessTurn(c.Request.Context(), req.SessionID, brokerID, req.Message)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, reply)
}

func (h *Handler) GetState(c *gin.Context) {
	conv, err := h.svc.GetState(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToStateResponse(conv))
}
