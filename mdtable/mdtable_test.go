package mdtable

import (
	"errors"
	"strings"
	"testing"
)

const simpleTable = `<table><tr><th>Name</th><th>Age</th></tr><tr><td>Alice</td><td>30</td></tr><tr><td>Bob</td><td>25</td></tr></table>`

func TestToMarkdownWithHeader(t *testing.T) {
	got, err := ToMarkdown(simpleTable, Options{})
	if err != nil {
		t.Fatalf("ToMarkdown: %v", err)
	}
	want := "| Name | Age |\n| :--- | :--- |\n| Alice | 30 |\n| Bob | 25 |\n"
	if got != want {
		t.Errorf("ToMarkdown() = %q, want %q", got, want)
	}
}

func TestToMarkdownWithoutHeader(t *testing.T) {
	markup := `<table><tr><td>a</td><td>b</td></tr></table>`
	got, err := ToMarkdown(markup, Options{})
	if err != nil {
		t.Fatalf("ToMarkdown: %v", err)
	}
	want := "| | |\n| :--- | :--- |\n| a | b |\n"
	if got != want {
		t.Errorf("ToMarkdown() = %q, want %q", got, want)
	}
}

func TestToMarkdownAlignments(t *testing.T) {
	tests := []struct {
		alignment Alignment
		marker    string
	}{
		{AlignLeft, " :--- "},
		{AlignCenter, " :---: "},
		{AlignRight, " ---: "},
		{"", " :--- "},
	}

	for _, tt := range tests {
		got, err := ToMarkdown(simpleTable, Options{Alignment: tt.alignment})
		if err != nil {
			t.Fatalf("ToMarkdown(%q): %v", tt.alignment, err)
		}
		wantLine := "|" + tt.marker + "|" + tt.marker + "|"
		if !strings.Contains(got, wantLine) {
			t.Errorf("ToMarkdown(%q) missing alignment line %q in %q", tt.alignment, wantLine, got)
		}
	}
}

func TestToMarkdownInvalidAlignment(t *testing.T) {
	_, err := ToMarkdown(simpleTable, Options{Alignment: "center-ish"})
	if err == nil {
		t.Fatal("expected error for invalid alignment")
	}
	if !strings.Contains(err.Error(), "center-ish") {
		t.Errorf("error should name the bad alignment, got %v", err)
	}
}

func TestToMarkdownEscapesCells(t *testing.T) {
	markup := "<table><tr><td>a|b\nc</td></tr></table>"
	got, err := ToMarkdown(markup, Options{})
	if err != nil {
		t.Fatalf("ToMarkdown: %v", err)
	}
	if !strings.Contains(got, "a&#124;b<br>c") {
		t.Errorf("cell not escaped: %q", got)
	}
	// The escaped cell must not introduce extra grid characters.
	for _, line := range strings.Split(strings.TrimSuffix(got, "\n"), "\n") {
		if strings.Count(line, "|") != 2 {
			t.Errorf("line %q has %d pipes, want 2", line, strings.Count(line, "|"))
		}
	}
}

func TestToMarkdownNoRows(t *testing.T) {
	_, err := ToMarkdown("<table><div>no rows here</div></table>", Options{})
	if !errors.Is(err, ErrNoRows) {
		t.Errorf("expected ErrNoRows, got %v", err)
	}
}

func TestToMarkdownPlainTextPassthrough(t *testing.T) {
	in := "just some text, no markup"
	got, err := ToMarkdown(in, Options{})
	if err != nil {
		t.Fatalf("ToMarkdown: %v", err)
	}
	if got != in {
		t.Errorf("plain text should pass through unchanged, got %q", got)
	}
}

func TestConvertHTMLUnchanged(t *testing.T) {
	got, err := Convert(simpleTable, TargetHTML, Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if got != simpleTable {
		t.Errorf("html target should return markup unchanged")
	}

	// Idempotence: converting the result again yields the same output.
	again, err := Convert(got, TargetHTML, Options{})
	if err != nil {
		t.Fatalf("Convert (second pass): %v", err)
	}
	if again != got {
		t.Errorf("html target not idempotent")
	}
}

func TestConvertHTMLSanitized(t *testing.T) {
	dirty := `<table><tr><td onclick="evil()">x</td></tr></table><script>evil()</script>`
	got, err := Convert(dirty, TargetHTML, Options{Sanitize: true})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if strings.Contains(got, "script") || strings.Contains(got, "onclick") {
		t.Errorf("sanitized output still contains unsafe markup: %q", got)
	}
	if !strings.Contains(got, "x") {
		t.Errorf("sanitized output lost cell content: %q", got)
	}
}

func TestConvertDisabled(t *testing.T) {
	got, err := Convert(simpleTable, "", Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if got != "" {
		t.Errorf("disabled target should yield empty string, got %q", got)
	}
}

func TestConvertEmptyMarkup(t *testing.T) {
	got, err := Convert("", TargetMarkdown, Options{})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if got != "" {
		t.Errorf("empty markup should yield empty string, got %q", got)
	}
}

func TestConvertUnknownTarget(t *testing.T) {
	_, err := Convert(simpleTable, "latex", Options{})
	if err == nil {
		t.Fatal("expected error for unknown target")
	}
}

func TestToCSV(t *testing.T) {
	got, err := ToCSV(simpleTable)
	if err != nil {
		t.Fatalf("ToCSV: %v", err)
	}
	want := "Name,Age\nAlice,30\nBob,25\n"
	if got != want {
		t.Errorf("ToCSV() = %q, want %q", got, want)
	}
}

func TestToCSVQuoting(t *testing.T) {
	markup := `<table><tr><td>a,b</td><td>plain</td></tr></table>`
	got, err := ToCSV(markup)
	if err != nil {
		t.Fatalf("ToCSV: %v", err)
	}
	want := "\"a,b\",plain\n"
	if got != want {
		t.Errorf("ToCSV() = %q, want %q", got, want)
	}
}

func TestToCSVNoRows(t *testing.T) {
	_, err := ToCSV("<table></table>")
	if !errors.Is(err, ErrNoRows) {
		t.Errorf("expected ErrNoRows, got %v", err)
	}
}

func TestToMarkdownConvertCells(t *testing.T) {
	markup := `<table><tr><td><b>bold</b> text</td></tr></table>`
	got, err := ToMarkdown(markup, Options{ConvertCells: true})
	if err != nil {
		t.Fatalf("ToMarkdown: %v", err)
	}
	if strings.Contains(got, "<b>") {
		t.Errorf("converted cell still contains HTML: %q", got)
	}
	if !strings.Contains(got, "bold") {
		t.Errorf("converted cell lost content: %q", got)
	}
}

func TestToMarkdownHeaderOnlyFirstRow(t *testing.T) {
	// A th in a later row is body, not header; only the first row's
	// th cells form the heading.
	markup := `<table><tr><td>r1</td></tr><tr><th>r2</th></tr></table>`
	got, err := ToMarkdown(markup, Options{})
	if err != nil {
		t.Fatalf("ToMarkdown: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines (blank header, markers, 2 body rows), got %d: %q", len(lines), got)
	}
	if lines[0] != "| |" {
		t.Errorf("header line = %q, want blank header", lines[0])
	}
}
