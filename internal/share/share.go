// Package share builds the outbound share artifacts: WhatsApp deep links,
// canonical listing URLs and QR codes.
package share

import (
	"fmt"
	"net/url"
	"strings"

	listingdomain "broker_portal_backend/internal/listings/domain"
	"broker_portal_backend/platform/phone"
)

// WhatsAppLink builds a wa.me deep link for a Brazilian number with a
// prefilled message. The number is normalized to E.164 first; digits only go
// into the URL.
func WhatsAppLink(rawPhone, message string) (string, error) {
	digits := phone.Digits(rawPhone)
	if digits == "" {
		return "", fmt.Errorf("share: empty phone number")
	}
	link := "https://wa.me/" + digits
	if message != "" {
		link += "?text=" + url.QueryEscape(message)
	}
	return link, nil
}

// WhatsAppPickerLink builds a wa.me link without a destination; WhatsApp
// opens its recipient picker with the message prefilled.
func WhatsAppPickerLink(message string) string {
	return "https://wa.me/?text=" + url.QueryEscape(message)
}

// ListingPath builds the canonical site path for a listing, optionally under
// a broker's own slug.
func ListingPath(brokerSlug string, l listingdomain.Listing) string {
	slug := listingdomain.Slug(l)
	if brokerSlug != "" {
		return "/" + listingdomain.Slugify(brokerSlug) + "/imovel/" + slug
	}
	return "/imovel/" + slug
}

// ListingURL is ListingPath resolved against the public site base URL.
func ListingURL(baseURL, brokerSlug string, l listingdomain.Listing) string {
	return strings.TrimSuffix(baseURL, "/") + ListingPath(brokerSlug, l)
}
