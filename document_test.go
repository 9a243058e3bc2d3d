package unstructured

import (
	"reflect"
	"testing"
)

func TestMergeMetadataFreshMaps(t *testing.T) {
	base := Metadata{"a": 1, "b": 2}
	overlay := Metadata{"b": 3, "c": 4}

	got := mergeMetadata(base, overlay)

	want := Metadata{"a": 1, "b": 3, "c": 4}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mergeMetadata() = %v, want %v", got, want)
	}
	if base["b"] != 2 || len(base) != 2 {
		t.Errorf("base mutated: %v", base)
	}

	// The merged map is independent of its inputs.
	got["a"] = 99
	if base["a"] != 1 {
		t.Errorf("merged map shares storage with base")
	}
}

func TestPurgeMetadataDropsEmpties(t *testing.T) {
	in := Metadata{
		"keep_string": "value",
		"keep_zero":   0,
		"keep_false":  false,
		"nil":         nil,
		"empty_str":   "",
		"empty_list":  []any{},
		"empty_map":   map[string]any{},
	}

	got := purgeMetadata(in, quietLogger())

	want := Metadata{"keep_string": "value", "keep_zero": 0, "keep_false": false}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("purgeMetadata() = %v, want %v", got, want)
	}
}

func TestPurgeMetadataSecondaryDecode(t *testing.T) {
	in := Metadata{
		"links":  `[{"url": "https://example.com"}]`,
		"coords": `{"x": 1, "y": 2}`,
		"plain":  "not json",
	}

	got := purgeMetadata(in, quietLogger())

	if _, ok := got["links"].([]any); !ok {
		t.Errorf("links not decoded: %T", got["links"])
	}
	coords, ok := got["coords"].(map[string]any)
	if !ok {
		t.Fatalf("coords not decoded: %T", got["coords"])
	}
	if coords["x"] != float64(1) {
		t.Errorf("coords[x] = %v", coords["x"])
	}
	if got["plain"] != "not json" {
		t.Errorf("plain string changed: %v", got["plain"])
	}
}

func TestPurgeMetadataKeepsMalformedJSON(t *testing.T) {
	in := Metadata{"broken": `{"unterminated": `}

	got := purgeMetadata(in, quietLogger())

	// A value that fails secondary decoding stays as the raw string.
	if got["broken"] != `{"unterminated": ` {
		t.Errorf("malformed value dropped or changed: %v", got["broken"])
	}
}

func TestFormatWarnings(t *testing.T) {
	warnings := []Warning{
		{Source: "a.pdf", Message: "first"},
		{Source: "", Message: "second"},
	}
	got := FormatWarnings(warnings)
	if got != "a.pdf: first; second" {
		t.Errorf("FormatWarnings() = %q", got)
	}
	if FormatWarnings(nil) != "" {
		t.Errorf("FormatWarnings(nil) = %q, want empty", FormatWarnings(nil))
	}
}
