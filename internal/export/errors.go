package export

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when a QR code is requested without a user
	ErrNotAuthenticated = errors.New("no authenticated user")
	// ErrEmptyMenu is returned when a PDF export is requested for a menu with no items
	ErrEmptyMenu = errors.New("menu has no items to export")
	// ErrRenderFailed wraps fpdf layout and output failures
	ErrRenderFailed = errors.New("render menu pdf")
)

// QREncodingError wraps a failure to build or encode the public menu QR code
type QREncodingError struct {
	Content string
	Err     error
}

func (e *QREncodingError) Error() string {
	return fmt.Sprintf("encode qr code for %q: %v", e.Content, e.Err)
}

func (e *QREncodingError) Unwrap() error {
	return e.Err
}
