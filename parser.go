package unstructured

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/langchain-ai/langchain-unstructured/element"
	"github.com/langchain-ai/langchain-unstructured/format"
	"github.com/langchain-ai/langchain-unstructured/imagetext"
	"github.com/langchain-ai/langchain-unstructured/mdtable"
	"github.com/langchain-ai/langchain-unstructured/partition"
)

// fileInput is one pending input: a path, or a stream with its name.
type fileInput struct {
	path   string
	reader io.Reader
	name   string
}

// DocumentIterator assembles Documents lazily, advancing the element
// stream only as far as the next output boundary. Use it like a
// scanner:
//
//	for it.Next() {
//	    doc := it.Document()
//	}
//	if err := it.Err(); err != nil { ... }
//
// A failure while assembling one file stops the iteration; Documents
// already returned remain valid.
type DocumentIterator struct {
	rc     *runConfig
	inputs []fileInput
	next   int

	cur *fileAssembly
	doc Document
	err error
}

// Next advances to the next Document. It returns false when the
// inputs are exhausted or a failure occurred; Err distinguishes the
// two.
func (it *DocumentIterator) Next() bool {
	if it.err != nil {
		return false
	}
	for {
		if it.cur == nil {
			if it.next >= len(it.inputs) {
				return false
			}
			fa, err := it.startFile(it.inputs[it.next])
			it.next++
			if err != nil {
				it.err = err
				return false
			}
			it.cur = fa
		}
		doc, ok, err := it.cur.nextDocument()
		if err != nil {
			it.err = err
			return false
		}
		if ok {
			it.doc = doc
			return true
		}
		it.cur = nil
	}
}

// Document returns the Document produced by the last successful call
// to Next.
func (it *DocumentIterator) Document() Document { return it.doc }

// Err returns the first failure encountered, or nil.
func (it *DocumentIterator) Err() error { return it.err }

// Warnings returns the non-fatal issues recorded so far.
func (it *DocumentIterator) Warnings() []Warning {
	if it.rc == nil {
		return nil
	}
	return it.rc.warnings
}

// Close releases resources owned by the iteration, in particular the
// temporary directory holding extracted image artifacts. Safe to call
// more than once.
func (it *DocumentIterator) Close() error {
	if it.rc == nil {
		return nil
	}
	return it.rc.close()
}

// startFile partitions one input and prepares its assembly state. The
// element retrieval is a single call; laziness lives in the
// per-boundary assembly that follows.
func (it *DocumentIterator) startFile(in fileInput) (*fileAssembly, error) {
	rc := it.rc

	name := in.name
	if in.path != "" {
		name = filepath.Base(in.path)
	}

	req := partition.Request{
		Path:        in.path,
		Reader:      in.reader,
		Filename:    in.name,
		Password:    rc.opts.Password,
		ContentType: format.Detect(name).MIME(),
		Options:     rc.partitionOpts,
	}
	elems, err := rc.source.Partition(rc.ctx, req)
	if err != nil {
		return nil, err
	}

	for _, post := range rc.post {
		for i := range elems {
			elems[i].Text = post(elems[i].Text)
		}
	}

	return &fileAssembly{
		rc:     rc,
		source: name,
		meta:   documentMetadata(in.path, in.name, rc.logger),
		elems:  elems,
	}, nil
}

// fileAssembly is the per-file assembler state machine: it consumes
// the element sequence in order and folds elements into output
// Documents according to the configured mode.
type fileAssembly struct {
	rc     *runConfig
	source string
	meta   Metadata // document-level, shared read-only
	elems  []element.Element

	idx          int
	page         int
	fragments    []string
	pendingBreak bool
	flushed      bool // single-mode Document already emitted
}

// nextDocument produces the next Document for this file, or ok=false
// when the file is exhausted.
func (fa *fileAssembly) nextDocument() (Document, bool, error) {
	if fa.rc.opts.Mode == ModeElements {
		return fa.nextElementDocument()
	}

	for fa.idx < len(fa.elems) {
		el := fa.elems[fa.idx]
		fa.idx++

		switch el.Category() {
		case element.Title:
			fa.appendFragment("# " + el.Text)

		case element.Header, element.Footer:
			// Running headers and footers never reach the output.

		case element.Image:
			inline, err := fa.imageText(el)
			if err != nil {
				return Document{}, false, err
			}
			if inline != "" {
				fa.appendFragment(inline)
			}

		case element.Table:
			rendered, err := mdtable.Convert(el.HTMLTable(), fa.rc.opts.ExtractTables, mdtable.Options{
				Alignment:    fa.rc.opts.TableAlignment,
				ConvertCells: fa.rc.opts.ConvertTableCells,
				Sanitize:     fa.rc.opts.SanitizeTableHTML,
			})
			if err != nil {
				return Document{}, false, fmt.Errorf("rendering table in %s: %w", fa.source, err)
			}
			fa.appendFragment(rendered)

		case element.PageBreak:
			if fa.rc.opts.Mode == ModePage {
				doc := fa.flushPage()
				return doc, true, nil
			}
			// Single mode keeps one Document; remember the break so a
			// delimiter lands before the next content.
			fa.pendingBreak = true

		case element.Unknown:
			fa.rc.logger.Warn("unknown element category", "category", el.Tag, "source", fa.source)
			fa.rc.warn(fa.source, fmt.Sprintf("unknown element category %q", el.Tag))
			fa.appendFragment(el.Text)

		default:
			// NarrativeText, UncategorizedText, Formula, FigureCaption,
			// ListItem, Address, EmailAddress.
			fa.appendFragment(el.Text)
		}
	}

	switch fa.rc.opts.Mode {
	case ModeSingle:
		if fa.flushed {
			return Document{}, false, nil
		}
		fa.flushed = true
		// An empty collection still yields one (empty) Document.
		return Document{
			PageContent: joinFragments(fa.fragments),
			Metadata:    mergeMetadata(fa.meta),
		}, true, nil
	case ModePage:
		// A trailing PageBreak must not produce an empty page.
		if len(fa.fragments) == 0 {
			return Document{}, false, nil
		}
		doc := fa.flushPage()
		return doc, true, nil
	}
	return Document{}, false, nil
}

// nextElementDocument emits one Document per element, PageBreak
// included, each with a fresh metadata map merged over the shared
// document-level base.
func (fa *fileAssembly) nextElementDocument() (Document, bool, error) {
	if fa.idx >= len(fa.elems) {
		return Document{}, false, nil
	}
	el := fa.elems[fa.idx]
	fa.idx++

	if _, known := element.ParseCategory(el.Tag); !known {
		fa.rc.logger.Warn("unknown element category", "category", el.Tag, "source", fa.source)
		fa.rc.warn(fa.source, fmt.Sprintf("unknown element category %q", el.Tag))
	}

	meta := purgeMetadata(
		mergeMetadata(fa.meta, elementOverlay(el.Metadata, el.Tag, el.ID)),
		fa.rc.logger,
	)
	return Document{PageContent: el.Text, Metadata: meta}, true, nil
}

// imageText resolves an image element to its inline text: locate the
// rendered artifact, recognize its text, and format it. An image with
// no artifact or no recognized text contributes nothing.
func (fa *fileAssembly) imageText(el element.Element) (string, error) {
	path := el.ImagePath()
	if path == "" || fa.rc.imageParser == nil {
		return "", nil
	}
	text, err := fa.rc.imageParser.ParseImage(path)
	if err != nil {
		return "", fmt.Errorf("recognizing image text in %s: %w", fa.source, err)
	}
	inline, err := imagetext.Inline(path, text, fa.rc.opts.ImageFormat)
	if err != nil {
		return "", fmt.Errorf("formatting image text in %s: %w", fa.source, err)
	}
	return inline, nil
}

// appendFragment adds content to the current collection. A pending
// page break folds the page delimiter into the join exactly once,
// ahead of the new content.
func (fa *fileAssembly) appendFragment(s string) {
	if fa.pendingBreak {
		fa.pendingBreak = false
		if n := len(fa.fragments); n > 0 {
			fa.fragments[n-1] += fa.rc.opts.PageDelimiter + s
			return
		}
		s = fa.rc.opts.PageDelimiter + s
	}
	fa.fragments = append(fa.fragments, s)
}

// flushPage emits the current collection as one page Document and
// resets the collection for the next page.
func (fa *fileAssembly) flushPage() Document {
	doc := Document{
		PageContent: joinFragments(fa.fragments),
		Metadata:    mergeMetadata(fa.meta, Metadata{"page": fa.page}),
	}
	fa.fragments = nil
	fa.page++
	return doc
}

// joinFragments joins collected fragments with newline separators.
func joinFragments(fragments []string) string {
	return strings.Join(fragments, "\n")
}
