//go:build ocr

package imagetext

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract recognizes image text using the Tesseract OCR engine via
// gosseract. It requires Tesseract to be installed on the system and
// the "ocr" build tag.
//
// On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
type Tesseract struct {
	client *gosseract.Client
}

// NewTesseract creates a Tesseract parser. The parser should be
// closed when no longer needed to release engine resources.
func NewTesseract() (*Tesseract, error) {
	return &Tesseract{client: gosseract.NewClient()}, nil
}

// Close releases the underlying engine.
func (t *Tesseract) Close() error {
	if t.client != nil {
		return t.client.Close()
	}
	return nil
}

// SetLanguage sets the recognition language(s). Multiple languages
// are "+" separated (e.g. "eng+fra"). Default is "eng".
func (t *Tesseract) SetLanguage(lang string) error {
	return t.client.SetLanguage(lang)
}

// ParseImage recognizes text in the image at path, with surrounding
// whitespace trimmed. An image with no text returns "".
func (t *Tesseract) ParseImage(path string) (string, error) {
	if err := t.client.SetImage(path); err != nil {
		return "", fmt.Errorf("setting image %s: %w", path, err)
	}
	text, err := t.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing %s: %w", path, err)
	}
	return strings.TrimSpace(text), nil
}
