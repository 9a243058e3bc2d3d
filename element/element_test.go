package element

import (
	"encoding/json"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		tag  string
		want Category
		ok   bool
	}{
		{"Title", Title, true},
		{"NarrativeText", NarrativeText, true},
		{"UncategorizedText", UncategorizedText, true},
		{"Table", Table, true},
		{"Image", Image, true},
		{"Header", Header, true},
		{"Footer", Footer, true},
		{"PageBreak", PageBreak, true},
		{"Formula", Formula, true},
		{"FigureCaption", FigureCaption, true},
		{"ListItem", ListItem, true},
		{"Address", Address, true},
		{"EmailAddress", EmailAddress, true},
		{"CompositeElement", Unknown, false},
		{"", Unknown, false},
	}

	for _, tt := range tests {
		got, ok := ParseCategory(tt.tag)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCategory(%q) = %v, %v; want %v, %v", tt.tag, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCategoryStringRoundTrip(t *testing.T) {
	for c := Title; c <= EmailAddress; c++ {
		got, ok := ParseCategory(c.String())
		if !ok || got != c {
			t.Errorf("ParseCategory(%q) = %v, %v; want %v, true", c.String(), got, ok, c)
		}
	}
}

func TestUnmarshalCategoryKey(t *testing.T) {
	var e Element
	data := []byte(`{"element_id":"abc","text":"hello","category":"Title","metadata":{"page_number":1}}`)
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.ID != "abc" || e.Text != "hello" || e.Tag != "Title" {
		t.Errorf("unexpected element: %+v", e)
	}
	if e.Category() != Title {
		t.Errorf("Category() = %v; want Title", e.Category())
	}
	if got, want := e.Metadata["page_number"], float64(1); got != want {
		t.Errorf("page_number = %v; want %v", got, want)
	}
}

func TestUnmarshalTypeKeyFallback(t *testing.T) {
	var e Element
	data := []byte(`{"element_id":"x","text":"t","type":"NarrativeText"}`)
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Tag != "NarrativeText" {
		t.Errorf("Tag = %q; want NarrativeText", e.Tag)
	}
}

func TestUnmarshalCategoryWinsOverType(t *testing.T) {
	var e Element
	data := []byte(`{"element_id":"x","text":"t","category":"Title","type":"NarrativeText"}`)
	if err := json.Unmarshal(data, &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if e.Tag != "Title" {
		t.Errorf("Tag = %q; want Title", e.Tag)
	}
}

func TestMetadataAccessors(t *testing.T) {
	e := Element{
		Tag: "Table",
		Metadata: map[string]any{
			"text_as_html": "<table><tr><td>1</td></tr></table>",
			"image_path":   "/tmp/fig.png",
		},
	}
	if e.HTMLTable() == "" {
		t.Error("expected table markup")
	}
	if e.ImagePath() != "/tmp/fig.png" {
		t.Errorf("ImagePath = %q", e.ImagePath())
	}

	var empty Element
	if empty.HTMLTable() != "" || empty.ImagePath() != "" {
		t.Error("expected empty accessors for element without metadata")
	}
}
