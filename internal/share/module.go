package share

import (
	"context"
	"net/http"

	apphttp "broker_portal_backend/internal/http"
	listingdomain "broker_portal_backend/internal/listings/domain"
	"broker_portal_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListingGetter loads a listing so its share artifacts can be rendered.
type ListingGetter interface {
	Get(ctx context.Context, id uuid.UUID) (listingdomain.Listing, error)
}

// Module exposes the share tooling over HTTP: QR codes and WhatsApp deep
// links for listings.
type Module struct {
	listings ListingGetter
	baseURL  string
}

// NewModule creates the share module on top of the listings service.
func NewModule(listings ListingGetter, baseURL string) *Module {
	return &Module{listings: listings, baseURL: baseURL}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "share"
}

// RegisterRoutes mounts share routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	rg := ctx.V1.Group("/share")
	rg.GET("/listings/:id/qr", m.qrCode)
	rg.GET("/listings/:id/whatsapp", m.whatsApp)
}

// qrCode renders a PNG QR code pointing at the listing's public page, for
// print material and window displays. ?broker prefixes the broker's own slug.
func (m *Module) qrCode(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid listing id", nil)
		return
	}

	l, err := m.listings.Get(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	png, err := QRCodePNG(ListingURL(m.baseURL, c.Query("broker"), l))
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// whatsApp returns a wa.me deep link prefilled with the listing's public URL.
// ?phone sets the destination number; without it the link opens a recipient
// picker.
func (m *Module) whatsApp(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid listing id", nil)
		return
	}

	l, err := m.listings.Get(c.Request.Context(), id)
	if err != nil {
		httpkit.HandleError(c, err)
		return
	}

	url := ListingURL(m.baseURL, c.Query("broker"), l)
	message := c.DefaultQuery("text", "Olha esse imóvel que encontrei: ") + url

	var link string
	if phone := c.Query("phone"); phone != "" {
		link, err = WhatsAppLink(phone, message)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, "invalid phone number", nil)
			return
		}
	} else {
		link = WhatsAppPickerLink(message)
	}
	httpkit.OK(c, gin.H{"link": link, "url": url})
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
