package export

import (
	"errors"
	"fmt"
	"image/color"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// QRFilename is the download name of the generated QR image
const QRFilename = "menu-qr-code.png"

const (
	// QRSize is the width and height of the generated PNG in pixels
	QRSize = 512
)

var (
	// QRDark is the module color (charcoal)
	QRDark = color.RGBA{R: 0x1F, G: 0x29, B: 0x37, A: 0xFF}
	// QRLight is the background color (cream)
	QRLight = color.RGBA{R: 0xFE, G: 0xFC, B: 0xF8, A: 0xFF}
)

// QRGenerator encodes the public menu link of a user into a PNG QR code
type QRGenerator struct {
	origin string
}

// NewQRGenerator creates a generator for links rooted at origin, e.g. https://menus.example.com
func NewQRGenerator(origin string) *QRGenerator {
	return &QRGenerator{origin: origin}
}

// MenuURL builds the public menu URL of userID
func (g *QRGenerator) MenuURL(userID string) (string, error) {
	origin, err := url.Parse(g.origin)
	if err != nil {
		return "", err
	}
	if origin.Scheme != "http" && origin.Scheme != "https" {
		return "", fmt.Errorf("origin %q must use http or https", g.origin)
	}
	if origin.Host == "" {
		return "", fmt.Errorf("origin %q has no host", g.origin)
	}
	if origin.RawQuery != "" || origin.Fragment != "" {
		return "", fmt.Errorf("origin %q must not carry a query or fragment", g.origin)
	}
	return strings.TrimRight(origin.String(), "/") + "/menu/" + url.PathEscape(userID), nil
}

// Generate returns a PNG QR code pointing at the public menu of userID.
// An empty userID fails with ErrNotAuthenticated and no image is produced.
func (g *QRGenerator) Generate(userID string) ([]byte, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	menuURL, err := g.MenuURL(userID)
	if err != nil {
		return nil, &QREncodingError{Content: g.origin, Err: err}
	}

	code, err := qrcode.New(menuURL, qrcode.Medium)
	if err != nil {
		return nil, &QREncodingError{Content: menuURL, Err: err}
	}
	code.ForegroundColor = QRDark
	code.BackgroundColor = QRLight

	png, err := code.PNG(QRSize)
	if err != nil {
		return nil, &QREncodingError{Content: menuURL, Err: err}
	}
	if len(png) == 0 {
		return nil, &QREncodingError{Content: menuURL, Err: errors.New("encoder produced no image")}
	}
	return png, nil
}
