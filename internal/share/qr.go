package share

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// qrSize is the PNG edge length in pixels.
const qrSize = 256

// QRCodePNG renders a URL as a PNG QR code for print material.
func QRCodePNG(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("share: empty url")
	}
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("share: qr encode: %w", err)
	}
	return png, nil
}
