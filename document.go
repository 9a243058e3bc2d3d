package unstructured

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Metadata is the open attribute mapping attached to a Document. Keys
// are unique; values come from the document-level base merged with
// per-element attributes.
type Metadata map[string]any

// Clone returns a shallow copy of the metadata map.
func (m Metadata) Clone() Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Document is one output unit of assembled text plus metadata. A
// Document is emitted once and never mutated afterward.
type Document struct {
	// PageContent is the assembled text.
	PageContent string `json:"page_content"`

	// Metadata is the merged attribute mapping for this Document.
	// Every Document carries its own map; emitted Documents never
	// share one.
	Metadata Metadata `json:"metadata"`
}

// mergeMetadata builds one fresh metadata map from the base overlaid
// with each overlay in order. Neither the base nor the overlays are
// mutated; every emitted Document gets its own map.
func mergeMetadata(base Metadata, overlays ...Metadata) Metadata {
	out := base.Clone()
	for _, o := range overlays {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

// purgeMetadata removes null and empty values from the mapping and
// best-effort decodes string values that look like embedded JSON. A
// value that fails that secondary decoding is kept as-is with a
// diagnostic, never dropped.
func purgeMetadata(m Metadata, logger *slog.Logger) Metadata {
	out := make(Metadata, len(m))
	for k, v := range m {
		if emptyValue(v) {
			continue
		}
		if s, ok := v.(string); ok && looksLikeJSON(s) {
			var decoded any
			if err := json.Unmarshal([]byte(s), &decoded); err != nil {
				logger.Warn("metadata value failed secondary decoding, keeping raw string",
					"key", k, "error", err)
			} else {
				out[k] = decoded
				continue
			}
		}
		out[k] = v
	}
	return out
}

// emptyValue reports whether a metadata value carries no information.
func emptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	case Metadata:
		return len(t) == 0
	}
	return false
}

// looksLikeJSON reports whether a string value appears to carry an
// embedded JSON object or array.
func looksLikeJSON(s string) bool {
	s = strings.TrimSpace(s)
	return len(s) > 1 && (s[0] == '{' || s[0] == '[')
}
