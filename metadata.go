package unstructured

import (
	"log/slog"
	"path/filepath"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/langchain-ai/langchain-unstructured/format"
)

// documentMetadata derives the document-level metadata for one input
// file: source identity, directory, filename, file type, and total
// page count when determinable. It is computed once per file and
// shared read-only across every Document emitted for that file.
func documentMetadata(path, streamName string, logger *slog.Logger) Metadata {
	meta := Metadata{}

	name := streamName
	if path != "" {
		name = filepath.Base(path)
		meta["source"] = path
		meta["file_directory"] = filepath.Dir(path)
	} else {
		meta["source"] = streamName
	}
	meta["filename"] = name

	f := format.Detect(name)
	meta["filetype"] = f.MIME()

	// Page count is probed, not trusted from the element stream; it
	// is only determinable for path-based PDF input.
	if f == format.PDF && path != "" {
		if n, err := pdfapi.PageCountFile(path); err == nil && n > 0 {
			meta["total_pages"] = n
		} else if err != nil {
			logger.Warn("could not determine page count", "path", path, "error", err)
		}
	}

	return purgeMetadata(meta, logger)
}

// elementOverlay builds the per-element metadata overlay for
// elements-mode Documents: the element's own attributes (minus the
// document-level filename), its category tag, and its identifier.
func elementOverlay(meta map[string]any, tag, id string) Metadata {
	overlay := make(Metadata, len(meta)+2)
	for k, v := range meta {
		if k == "filename" {
			// Filename belongs at document level.
			continue
		}
		overlay[k] = v
	}
	overlay["category"] = tag
	overlay["element_id"] = id
	return overlay
}
