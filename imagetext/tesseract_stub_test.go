//go:build !ocr

package imagetext

import (
	"errors"
	"testing"
)

func TestTesseractStub(t *testing.T) {
	_, err := NewTesseract()
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("NewTesseract() error = %v, want ErrOCRNotEnabled", err)
	}

	var stub *Tesseract
	if err := stub.Close(); err != nil {
		t.Errorf("Close() on nil stub = %v, want nil", err)
	}
	if err := stub.SetLanguage("eng"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetLanguage() error = %v, want ErrOCRNotEnabled", err)
	}
	if _, err := stub.ParseImage("fig.png"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("ParseImage() error = %v, want ErrOCRNotEnabled", err)
	}
}
