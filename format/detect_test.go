package format

import (
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, "PDF"},
		{DOCX, "DOCX"},
		{ODT, "ODT"},
		{XLSX, "XLSX"},
		{PPTX, "PPTX"},
		{EPUB, "EPUB"},
		{HTML, "HTML"},
		{CSV, "CSV"},
		{Email, "Email"},
		{PNG, "PNG"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_MIME(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{PDF, "application/pdf"},
		{DOCX, "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{ODT, "application/vnd.oasis.opendocument.text"},
		{XLSX, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{PPTX, "application/vnd.openxmlformats-officedocument.presentationml.presentation"},
		{EPUB, "application/epub+zip"},
		{HTML, "text/html"},
		{CSV, "text/csv"},
		{TSV, "text/tab-separated-values"},
		{Text, "text/plain"},
		{Email, "message/rfc822"},
		{PNG, "image/png"},
		{JPEG, "image/jpeg"},
		{TIFF, "image/tiff"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.MIME(); got != tt.want {
			t.Errorf("Format(%d).MIME() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"document.pdf", PDF},
		{"document.PDF", PDF},
		{"document.docx", DOCX},
		{"document.odt", ODT},
		{"document.xlsx", XLSX},
		{"document.pptx", PPTX},
		{"document.epub", EPUB},
		{"document.html", HTML},
		{"document.htm", HTML},
		{"document.xml", XML},
		{"document.md", Markdown},
		{"document.markdown", Markdown},
		{"document.csv", CSV},
		{"document.tsv", TSV},
		{"document.txt", Text},
		{"message.eml", Email},
		{"figure.png", PNG},
		{"figure.jpg", JPEG},
		{"figure.jpeg", JPEG},
		{"scan.tiff", TIFF},
		{"document", Unknown},
		{"", Unknown},
		{"/path/to/file.pdf", PDF},
		{"/path/to/file.docx", DOCX},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{
			name: "PDF magic bytes",
			data: []byte("%PDF-1.4"),
			want: PDF,
		},
		{
			name: "ZIP magic bytes need container inspection",
			data: []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00, 0x00, 0x00},
			want: Unknown,
		},
		{
			name: "PNG magic bytes",
			data: []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A},
			want: PNG,
		},
		{
			name: "JPEG magic bytes",
			data: []byte{0xFF, 0xD8, 0xFF, 0xE0},
			want: JPEG,
		},
		{
			name: "TIFF little-endian",
			data: []byte("II*\x00rest"),
			want: TIFF,
		},
		{
			name: "TIFF big-endian",
			data: []byte("MM\x00*rest"),
			want: TIFF,
		},
		{
			name: "HTML with DOCTYPE",
			data: []byte("<!DOCTYPE html>\n<html>"),
			want: HTML,
		},
		{
			name: "HTML with html tag",
			data: []byte("<html><head>"),
			want: HTML,
		},
		{
			name: "HTML with leading whitespace",
			data: []byte("  \n  <!DOCTYPE HTML PUBLIC"),
			want: HTML,
		},
		{
			name: "empty data",
			data: []byte{},
			want: Unknown,
		},
		{
			name: "plain text",
			data: []byte("Hello, World!"),
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_PDF(t *testing.T) {
	data := []byte("%PDF-1.4\n%%EOF")
	r := bytes.NewReader(data)

	got, err := DetectFromReader(r, int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if got != PDF {
		t.Errorf("DetectFromReader() = %v, want PDF", got)
	}
}

func TestDetectFromReader_HTML(t *testing.T) {
	data := []byte("<!DOCTYPE html>\n<html><head><title>Test</title></head><body></body></html>")
	r := bytes.NewReader(data)

	got, err := DetectFromReader(r, int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if got != HTML {
		t.Errorf("DetectFromReader() = %v, want HTML", got)
	}
}

func TestDetectFromReader_Unknown(t *testing.T) {
	data := []byte("Hello, World! This is plain text.")
	r := bytes.NewReader(data)

	got, err := DetectFromReader(r, int64(len(data)))
	if err != nil {
		t.Fatalf("DetectFromReader() error = %v", err)
	}
	if got != Unknown {
		t.Errorf("DetectFromReader() = %v, want Unknown", got)
	}
}
