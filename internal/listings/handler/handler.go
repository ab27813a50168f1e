package handler

import (
	"net/http"
	"strconv"

	"broker_portal_backend/internal/listings/domain"
	"broker_portal_backend/internal/listings/repository"
	"broker_portal_backend/internal/listings/service"
	"broker_portal_backend/internal/listings/transport"
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
	rg.GET("", h.Search)
	rg.POST("", h.Create)
	rg.POST("/import", h.Import)
	rg.GET("/slug/:slug", h.GetBySlug)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Deactivate)
}

// RegisterBrokerRoutes mounts the broker-scoped listing collection.
func (h *Handler) RegisterBrokerRoutes(rg *gin.RouterGroup) {
	rg.GET("/:brokerId/listings", h.ListByBroker)
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

	var req transport.CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	created, err := h.svc.Create(c.Request.Context(), service.CreateInput{
		BrokerID: brokerID,
		Publish:  req.Publish,
		Listing: domain.Listing{
			Title:             req.Title,
			Description:       req.Description,
			State:             req.State,
			City:              req.City,
			Neighborhood:      req.Neighborhood,
			Operation:         domain.Operation(req.Operation),
			PropertyType:      domain.PropertyType(req.PropertyType),
			SalePriceCents:    req.SalePriceCents,
			RentalPriceCents:  req.RentalPriceCents,
			DailyPriceCents:   req.DailyPriceCents,
			MonthlyPriceCents: req.MonthlyPriceCents,
			AreaM2:            req.AreaM2,
			Bedrooms:          req.Bedrooms,
			Suites:            req.Suites,
			Bathrooms:         req.Bathrooms,
			ParkingSpots:      req.ParkingSpots,
			Photos:            req.Photos,
			Features:          req.Features,
		},
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.ToListingResponse(created))
}

func (h *Handler) Import(c *gin.Context) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}

	var req transport.ImportListingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Import(c.Request.Context(), brokerID, req.Listings)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ImportListingsResponse{
		Imported: result.Imported,
		Skipped:  result.Skipped,
		Errors:   result.Errors,
	})
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	listing, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToListingResponse(listing))
}

// GetBySlug resolves a public SEO slug. A stale slug still resolves through
// its codigo suffix; the canonical slug comes back so clients can redirect.
func (h *Handler) GetBySlug(c *gin.Context) {
	listing, canonical, err := h.svc.ResolveSlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, gin.H{
		"listing":       transport.ToListingResponse(listing),
		"canonicalSlug": canonical,
	})
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

	var req transport.UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	params := repository.UpdateParams{
		Title:             req.Title,
		Description:       req.Description,
		State:             req.State,
		City:              req.City,
		Neighborhood:      req.Neighborhood,
		SalePriceCents:    req.SalePriceCents,
		RentalPriceCents:  req.RentalPriceCents,
		DailyPriceCents:   req.DailyPriceCents,
		MonthlyPriceCents: req.MonthlyPriceCents,
		AreaM2:            req.AreaM2,
		Bedrooms:          req.Bedrooms,
		Suites:            req.Suites,
		Bathrooms:         req.Bathrooms,
		ParkingSpots:      req.ParkingSpots,
		Photos:            req.Photos,
		Features:          req.Features,
	}
	if req.Operation != nil {
		op := domain.Operation(*req.Operation)
		params.Operation = &op
	}
	if req.PropertyType != nil {
		pt := domain.PropertyType(*req.PropertyType)
		params.PropertyType = &pt
	}
	if req.Status != nil {
		st := domain.Status(*req.Status)
		params.Status = &st
	}

	updated, err := h.svc.Update(c.Request.Context(), id, brokerID, params)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToListingResponse(updated))
}

func (h *Handler) Deactivate(c *gin.Context) {
	brokerID, ok := brokerIDFrom(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.Deactivate(c.Request.Context(), id, brokerID); err != nil {
		httpkit.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) ListByBroker(c *gin.Context) {
	brokerID, err := uuid.Parse(c.Param("brokerId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	var status *domain.Status
	if raw := c.Query("status"); raw != "" {
		st := domain.Status(raw)
		status = &st
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)

	items, err := h.svc.ListByBroker(c.Request.Context(), brokerID, status, limit, offset)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToListingResponses(items))
}

func (h *Handler) Search(c *gin.Context) {
	var req transport.SearchListingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	items, err := h.svc.Search(c.Request.Context(), repository.SearchParams{
		Operation:     domain.Operation(req.Operation),
		PropertyType:  domain.PropertyType(req.PropertyType),
		City:          req.City,
		Neighborhoods: req.Neighborhoods,
		MinPriceCents: req.MinPriceCents,
		MaxPriceCents: req.MaxPriceCents,
		MinBedrooms:   req.MinBedrooms,
		Limit:         req.Limit,
	})
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, transport.ToListingResponses(items))
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
