package invoiceprint

import (
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/skip2/go-qrcode"
)

// qrSize is the rendered QR code edge in pixels.
const qrSize = 80

// qrDataURI renders payload as a PNG QR code embedded in a data URI.
// The payload is a fixed literal per brand and carries no order data.
func qrDataURI(payload string) (template.URL, error) {
	png, err := qrcode.Encode(payload, qrcode.Medium, qrSize)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrQRCode, err)
	}
	return pngDataURI(png), nil
}

func pngDataURI(png []byte) template.URL {
	// #nosec G203 -- base64 payload generated here
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}

func svgDataURI(svg []byte) template.URL {
	// #nosec G203 -- logo comes from validated asset loaders
	return template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg))
}
