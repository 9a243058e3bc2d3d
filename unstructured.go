// Package unstructured loads documents through a partitioning engine
// and reassembles the returned elements into text Documents suitable
// for indexing or retrieval pipelines. Partitioning — layout
// analysis, OCR, format parsing — happens outside this module, either
// in-process through a configured engine or remotely through the
// hosted partition API; this package owns the element-to-document
// assembly: output granularity (single / page / elements), table
// rendering, inline image text, page-break handling, and metadata
// merging.
//
// Basic usage:
//
//	docs, warnings, err := unstructured.Open("report.pdf").
//	    ViaAPI().
//	    Load()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", unstructured.FormatWarnings(warnings))
//	}
//
// With options:
//
//	docs, _, err := unstructured.Open("report.pdf").
//	    Mode(unstructured.ModePage).
//	    ExtractTables(mdtable.TargetMarkdown).
//	    PartitionOption("strategy", "hi_res").
//	    ViaAPI().
//	    Load()
//
// For streaming consumption, LazyLoad returns an iterator that
// assembles Documents on demand.
package unstructured

import "io"

// Open prepares a Loader for a single file path.
//
// Example:
//
//	docs, warnings, err := unstructured.Open("document.pdf").ViaAPI().Load()
func Open(path string) *Loader {
	return OpenFiles(path)
}

// OpenFiles prepares a Loader for several file paths. Each file is
// partitioned and assembled independently, in order.
//
// Example:
//
//	docs, _, err := unstructured.OpenFiles("a.pdf", "b.html").ViaAPI().Load()
func OpenFiles(paths ...string) *Loader {
	return &Loader{paths: paths}
}

// FromReader prepares a Loader for a byte stream. The filename is
// required: it identifies the stream in document metadata and is sent
// with remote partition requests.
//
// Example:
//
//	docs, _, err := unstructured.FromReader(f, "report.pdf").ViaAPI().Load()
func FromReader(r io.Reader, filename string) *Loader {
	return &Loader{streams: []stream{{reader: r, name: filename}}}
}

// Must is a helper that wraps a call returning (T, error) and panics
// if the error is non-nil. Intended for scripts and tests.
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustLoad wraps a call to Load and panics on error, discarding
// warnings. Intended for scripts and tests.
func MustLoad[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
