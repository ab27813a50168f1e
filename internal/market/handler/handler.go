package handler

import (
	"broker_portal_backend/internal/market/aggregate"
	"broker_portal_backend/internal/market/service"
	"broker_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
}

func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.Stats)
}

// Stats serves grouped R$/m² metrics. ?groupBy defaults to city; ?city
// scopes the rows, which is how the neighborhood view is used.
func (h *Handler) Stats(c *gin.Context) {
	dim := aggregate.Dimension(c.DefaultQuery("groupBy", string(aggregate.ByCity)))
	groups, err := h.svc.Stats(c.Request.Context(), dim, c.Query("city"))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	httpkit.OK(c, gin.H{"groupBy": dim, "groups": groups})
}
