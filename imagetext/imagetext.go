// Package imagetext turns rendered image artifacts into inline text
// for assembled documents. An image-to-text engine (OCR) recognizes
// the text; the result is then formatted for inline inclusion as
// plain text, a Markdown image, or an HTML <img> element.
package imagetext

import (
	"fmt"
	"image"
	"os"
	"strings"

	// Register decoders so Dimensions can probe the formats a
	// partitioning engine renders page images in.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"golang.org/x/net/html"
)

// Parser recognizes text in a rendered image artifact. Implementations
// wrap an image-to-text engine; Tesseract is provided behind the "ocr"
// build tag.
type Parser interface {
	// ParseImage returns the text recognized in the image at path.
	// An image with no recognizable text returns "" and no error.
	ParseImage(path string) (string, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(path string) (string, error)

// ParseImage calls f.
func (f ParserFunc) ParseImage(path string) (string, error) { return f(path) }

// Format selects how recognized image text is embedded in the
// assembled document.
type Format string

const (
	// FormatText appends the recognized text as-is.
	FormatText Format = "text"
	// FormatMarkdownImg embeds a Markdown image with the recognized
	// text as alt text.
	FormatMarkdownImg Format = "markdown-img"
	// FormatHTMLImg embeds an HTML <img> element with the recognized
	// text as alt text.
	FormatHTMLImg Format = "html-img"
)

// Valid reports whether f is one of the supported inline formats.
// The zero value is not valid; callers default it explicitly.
func (f Format) Valid() bool {
	switch f {
	case FormatText, FormatMarkdownImg, FormatHTMLImg:
		return true
	}
	return false
}

// Inline formats recognized image text for inclusion in assembled
// output. Empty text yields "" for every format: an image with no
// recognized text contributes nothing, not even a placeholder.
func Inline(path, text string, format Format) (string, error) {
	if text == "" {
		return "", nil
	}
	switch format {
	case "", FormatText:
		return text, nil
	case FormatMarkdownImg:
		// A literal "]" would close the alt text early.
		alt := strings.ReplaceAll(text, "]", `\]`)
		return fmt.Sprintf("![%s](%s)", alt, path), nil
	case FormatHTMLImg:
		alt := html.EscapeString(text)
		src := html.EscapeString(path)
		if w, h, err := Dimensions(path); err == nil {
			return fmt.Sprintf(`<img alt="%s" src="%s" width="%d" height="%d" />`, alt, src, w, h), nil
		}
		return fmt.Sprintf(`<img alt="%s" src="%s" />`, alt, src), nil
	default:
		return "", fmt.Errorf("image format must be text, markdown-img or html-img, got %q", format)
	}
}

// Dimensions probes the pixel width and height of the image at path
// without decoding the full image.
func Dimensions(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening image %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("probing image %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}
