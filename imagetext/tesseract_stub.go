//go:build !ocr

package imagetext

import "errors"

// ErrOCRNotEnabled is returned when the Tesseract parser is used but
// OCR support was not compiled in. Rebuild with -tags ocr to enable
// it (requires Tesseract to be installed).
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Tesseract is the stub parser used when the "ocr" build tag is not
// set. All operations return ErrOCRNotEnabled.
type Tesseract struct{}

// NewTesseract returns an error indicating OCR support is not
// enabled. Rebuild with: go build -tags ocr
func NewTesseract() (*Tesseract, error) {
	return nil, ErrOCRNotEnabled
}

// Close is a no-op for the stub parser. Safe to call on nil.
func (t *Tesseract) Close() error { return nil }

// SetLanguage returns ErrOCRNotEnabled.
func (t *Tesseract) SetLanguage(lang string) error { return ErrOCRNotEnabled }

// ParseImage returns ErrOCRNotEnabled.
func (t *Tesseract) ParseImage(path string) (string, error) {
	return "", ErrOCRNotEnabled
}
