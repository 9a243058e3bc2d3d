// Package format detects the file type of input documents. The
// detected format supplies the filetype document metadata and the
// content type sent with remote partition requests.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a recognized document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
	// ODT indicates an OpenDocument Text (.odt) document.
	ODT
	// XLSX indicates a Microsoft Excel (.xlsx) document.
	XLSX
	// PPTX indicates a Microsoft PowerPoint (.pptx) document.
	PPTX
	// EPUB indicates an EPUB e-book.
	EPUB
	// HTML indicates an HTML document.
	HTML
	// XML indicates a generic XML document.
	XML
	// Markdown indicates a Markdown document.
	Markdown
	// CSV indicates comma-separated values.
	CSV
	// TSV indicates tab-separated values.
	TSV
	// Text indicates plain text.
	Text
	// Email indicates an RFC 822 message (.eml).
	Email
	// PNG indicates a PNG image.
	PNG
	// JPEG indicates a JPEG image.
	JPEG
	// TIFF indicates a TIFF image.
	TIFF
)

// String returns a short name for the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case DOCX:
		return "DOCX"
	case ODT:
		return "ODT"
	case XLSX:
		return "XLSX"
	case PPTX:
		return "PPTX"
	case EPUB:
		return "EPUB"
	case HTML:
		return "HTML"
	case XML:
		return "XML"
	case Markdown:
		return "Markdown"
	case CSV:
		return "CSV"
	case TSV:
		return "TSV"
	case Text:
		return "Text"
	case Email:
		return "Email"
	case PNG:
		return "PNG"
	case JPEG:
		return "JPEG"
	case TIFF:
		return "TIFF"
	default:
		return "Unknown"
	}
}

// MIME returns the MIME type for the format, or "" for Unknown.
func (f Format) MIME() string {
	switch f {
	case PDF:
		return "application/pdf"
	case DOCX:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ODT:
		return "application/vnd.oasis.opendocument.text"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case PPTX:
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case EPUB:
		return "application/epub+zip"
	case HTML:
		return "text/html"
	case XML:
		return "application/xml"
	case Markdown:
		return "text/markdown"
	case CSV:
		return "text/csv"
	case TSV:
		return "text/tab-separated-values"
	case Text:
		return "text/plain"
	case Email:
		return "message/rfc822"
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	case TIFF:
		return "image/tiff"
	default:
		return ""
	}
}

// Detect determines the format from the filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".docx":
		return DOCX
	case ".odt":
		return ODT
	case ".xlsx":
		return XLSX
	case ".pptx":
		return PPTX
	case ".epub":
		return EPUB
	case ".html", ".htm":
		return HTML
	case ".xml":
		return XML
	case ".md", ".markdown":
		return Markdown
	case ".csv":
		return CSV
	case ".tsv":
		return TSV
	case ".txt", ".text":
		return Text
	case ".eml":
		return Email
	case ".png":
		return PNG
	case ".jpg", ".jpeg":
		return JPEG
	case ".tif", ".tiff":
		return TIFF
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine the format.
// ZIP-based container formats (DOCX, XLSX, PPTX, ODT, EPUB) cannot be
// distinguished from magic bytes alone; use DetectFromReader for
// those. Returns Unknown when undetermined.
func DetectFromMagic(data []byte) Format {
	if len(data) < 4 {
		return Unknown
	}
	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return PDF
	case bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}):
		return PNG
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return JPEG
	case bytes.HasPrefix(data, []byte("II*\x00")) || bytes.HasPrefix(data, []byte("MM\x00*")):
		return TIFF
	case detectHTMLMagic(data):
		return HTML
	}
	return Unknown
}

// detectHTMLMagic checks whether the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return false
	}
	upper := strings.ToUpper(string(trimmed[:min(512, len(trimmed))]))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// An XML declaration followed by html-like content is XHTML.
	return strings.HasPrefix(upper, "<?XML") && strings.Contains(upper, "<HTML")
}

// DetectFromReader inspects content to determine the format. It is
// more reliable than extension-based detection and distinguishes the
// ZIP-based container formats.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if len(magic) >= 4 && magic[0] == 0x50 && magic[1] == 0x4B && magic[2] == 0x03 && magic[3] == 0x04 {
		return detectZIPFormat(r, size)
	}
	return DetectFromMagic(magic), nil
}

// detectZIPFormat inspects a ZIP archive to determine which container
// format it carries.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	// OpenDocument and EPUB declare themselves in a mimetype entry.
	for _, f := range zr.File {
		if f.Name != "mimetype" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			continue
		}
		data := make([]byte, 256)
		n, _ := rc.Read(data)
		rc.Close()
		mimeType := string(data[:n])
		switch {
		case strings.Contains(mimeType, "application/vnd.oasis.opendocument.text"):
			return ODT, nil
		case strings.Contains(mimeType, "application/epub+zip"):
			return EPUB, nil
		}
	}

	// Office Open XML formats carry a payload directory.
	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return DOCX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return XLSX, nil
		case strings.HasPrefix(f.Name, "ppt/"):
			return PPTX, nil
		}
	}
	return Unknown, nil
}
