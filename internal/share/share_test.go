package share

import (
	"strings"
	"testing"

	listingdomain "broker_portal_backend/internal/listings/domain"
)

func TestWhatsAppLink(t *testing.T) {
	link, err := WhatsAppLink("(84) 99876-5432", "Olá! Vi seu imóvel no portal.")
	if err != nil {
		t.Fatalf("WhatsAppLink: %v", err)
	}
	if !strings.HasPrefix(link, "https://wa.me/5584998765432?text=") {
		t.Fatalf("link = %q", link)
	}
	if strings.ContainsAny(link, " á") {
		t.Fatalf("message not url-encoded: %q", link)
	}
}

func TestWhatsAppLinkWithoutMessage(t *testing.T) {
	link, err := WhatsAppLink("+5584998765432", "")
	if err != nil {
		t.Fatalf("WhatsAppLink: %v", err)
	}
	if link != "https://wa.me/5584998765432" {
		t.Fatalf("link = %q", link)
	}
}

func TestListingPath(t *testing.T) {
	l := listingdomain.Listing{
		Codigo:       99,
		City:         "Natal",
		Neighborhood: "Tirol",
		Operation:    listingdomain.OperationSale,
		PropertyType: listingdomain.PropertyHouse,
	}
	if got := ListingPath("", l); got != "/imovel/casa-tirol-natal-venda-cod99" {
		t.Fatalf("ListingPath = %q", got)
	}
	if got := ListingPath("Imóveis João", l); got != "/imoveis-joao/imovel/casa-tirol-natal-venda-cod99" {
		t.Fatalf("ListingPath with broker = %q", got)
	}
}

func TestListingURLTrimsBase(t *testing.T) {
	l := listingdomain.Listing{Codigo: 5}
	got := ListingURL("https://portal.example.com/", "", l)
	if got != "https://portal.example.com/imovel/cod5" {
		t.Fatalf("ListingURL = %q", got)
	}
}

func TestQRCodePNG(t *testing.T) {
	png, err := QRCodePNG("https://portal.example.com/imovel/cod5")
	if err != nil {
		t.Fatalf("QRCodePNG: %v", err)
	}
	if len(png) == 0 || png[0] != 0x89 {
		t.Fatalf("not a PNG: % x", png[:min(8, len(png))])
	}
	if _, err := QRCodePNG(""); err == nil {
		t.Fatal("empty url should error")
	}
}
