// Package partition produces the ordered element sequence for one
// input document. Two sources implement the same contract: Local
// invokes an in-process partitioning engine, and Client sends the
// document to a remote partition API. From the consumer's point of
// view the two behave identically.
package partition

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/langchain-ai/langchain-unstructured/element"
)

// Request describes one document to partition.
type Request struct {
	// Path is the file path of the document. Leave empty for
	// byte-stream input via Reader.
	Path string

	// Reader supplies the document bytes when Path is empty. Stream
	// inputs must also set Filename; it is required for downstream
	// metadata.
	Reader io.Reader

	// Filename identifies a byte-stream input. Ignored when Path is
	// set.
	Filename string

	// Password unlocks encrypted inputs. Empty means none.
	Password string

	// ContentType is the MIME type of the document, when known.
	ContentType string

	// Options are engine options forwarded verbatim (strategy,
	// include_page_breaks, languages, ...). Neither source mutates
	// the map.
	Options map[string]any
}

// ErrMissingFilename is returned for a byte-stream request without an
// identifying filename.
var ErrMissingFilename = errors.New(
	"partitioning a byte stream requires an identifying filename for metadata")

// validate checks the request shape shared by both sources.
func (r Request) validate() error {
	if r.Path == "" && r.Reader == nil {
		return errors.New("partition request needs a path or a reader")
	}
	if r.Path == "" && r.Filename == "" {
		return ErrMissingFilename
	}
	return nil
}

// name returns the identifying filename for the request.
func (r Request) name() string {
	if r.Path != "" {
		return filepath.Base(r.Path)
	}
	return r.Filename
}

// content returns the document bytes.
func (r Request) content() ([]byte, error) {
	if r.Reader != nil {
		data, err := io.ReadAll(r.Reader)
		if err != nil {
			return nil, fmt.Errorf("reading document stream: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.Path, err)
	}
	return data, nil
}

// Source produces the element sequence for one document, in document
// order. Implementations do not mutate the input document.
type Source interface {
	Partition(ctx context.Context, req Request) ([]element.Element, error)
}
