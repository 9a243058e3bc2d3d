package unstructured

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/langchain-ai/langchain-unstructured/imagetext"
	"github.com/langchain-ai/langchain-unstructured/mdtable"
	"github.com/langchain-ai/langchain-unstructured/partition"
)

// stream is a byte-stream input with its identifying filename.
type stream struct {
	reader io.Reader
	name   string
}

// Loader provides a fluent interface for partitioning files and
// assembling the resulting elements into Documents. Each
// configuration method returns a new Loader instance, so a configured
// Loader can be shared and further specialized safely.
type Loader struct {
	// Inputs (paths or streams, never both populated by the
	// constructors).
	paths   []string
	streams []stream

	// Configuration
	opts   Options
	logger *slog.Logger
	ctx    context.Context

	// Collaborators
	client         *partition.Client
	clientProvided bool
	engine         partition.Engine
	imageParser    imagetext.Parser
	postProcessors []PostProcessor

	// Accumulated error (fail-fast)
	err error
}

// clone creates a copy of the Loader with deep-copied options.
func (l *Loader) clone() *Loader {
	out := *l
	out.opts = l.opts.clone()
	out.paths = append([]string(nil), l.paths...)
	out.streams = append([]stream(nil), l.streams...)
	out.postProcessors = append([]PostProcessor(nil), l.postProcessors...)
	return &out
}

// WithOptions replaces the Loader's serializable configuration, e.g.
// with options loaded from a YAML file via LoadOptions.
func (l *Loader) WithOptions(o Options) *Loader {
	out := l.clone()
	out.opts = o.clone()
	return out
}

// Mode sets the output granularity: single, page, or elements.
func (l *Loader) Mode(m Mode) *Loader {
	out := l.clone()
	out.opts.Mode = m
	return out
}

// PageDelimiter sets the separator inserted between pages in
// single-mode output. Default is "\n\n".
func (l *Loader) PageDelimiter(delim string) *Loader {
	out := l.clone()
	out.opts.PageDelimiter = delim
	return out
}

// ExtractTables renders table elements into the assembled text using
// the given target encoding (csv, markdown, or html). Requires the
// hi_res partition strategy; with any other strategy the setting is
// dropped with a warning.
func (l *Loader) ExtractTables(target mdtable.Target) *Loader {
	out := l.clone()
	out.opts.ExtractTables = target
	return out
}

// TableAlignment sets the column alignment used for markdown tables.
func (l *Loader) TableAlignment(a mdtable.Alignment) *Loader {
	out := l.clone()
	out.opts.TableAlignment = a
	return out
}

// ConvertTableCells converts table cell markup to Markdown before
// escaping, instead of embedding the raw inner HTML.
func (l *Loader) ConvertTableCells() *Loader {
	out := l.clone()
	out.opts.ConvertTableCells = true
	return out
}

// SanitizeTableHTML strips unsafe markup from html-target table
// output.
func (l *Loader) SanitizeTableHTML() *Loader {
	out := l.clone()
	out.opts.SanitizeTableHTML = true
	return out
}

// ExtractImages asks the partitioning engine to render image
// artifacts and substitutes text recognized by the given parser
// inline. Not supported together with ViaAPI.
func (l *Loader) ExtractImages(parser imagetext.Parser) *Loader {
	out := l.clone()
	out.opts.ExtractImages = true
	out.imageParser = parser
	return out
}

// ImageFormat sets the inline encoding for recognized image text:
// text, markdown-img, or html-img.
func (l *Loader) ImageFormat(f imagetext.Format) *Loader {
	out := l.clone()
	out.opts.ImageFormat = f
	return out
}

// ViaAPI partitions through the remote API instead of a local engine.
func (l *Loader) ViaAPI() *Loader {
	out := l.clone()
	out.opts.PartitionViaAPI = true
	return out
}

// APIKey sets the remote API credential, overriding the
// UNSTRUCTURED_API_KEY environment default. Cannot be combined with
// WithClient.
func (l *Loader) APIKey(key string) *Loader {
	out := l.clone()
	out.opts.APIKey = key
	return out
}

// Endpoint sets the remote API URL, overriding the UNSTRUCTURED_URL
// environment default. Cannot be combined with WithClient.
func (l *Loader) Endpoint(url string) *Loader {
	out := l.clone()
	out.opts.URL = url
	return out
}

// WithClient supplies a preconfigured remote client, e.g. one shared
// across loaders. Implies ViaAPI.
func (l *Loader) WithClient(c *partition.Client) *Loader {
	out := l.clone()
	out.client = c
	out.clientProvided = true
	out.opts.PartitionViaAPI = true
	return out
}

// WithEngine supplies the in-process partitioning engine used when
// not partitioning via the API.
func (l *Loader) WithEngine(e partition.Engine) *Loader {
	out := l.clone()
	out.engine = e
	return out
}

// Password unlocks encrypted inputs.
func (l *Loader) Password(p string) *Loader {
	out := l.clone()
	out.opts.Password = p
	return out
}

// PartitionOption forwards one engine option verbatim to the
// partition call (strategy, languages, chunking_strategy, ...).
func (l *Loader) PartitionOption(key string, value any) *Loader {
	out := l.clone()
	if out.opts.Partition == nil {
		out.opts.Partition = make(map[string]any)
	}
	out.opts.Partition[key] = value
	return out
}

// PostProcess appends text transforms applied to every element's text
// before assembly, in order.
func (l *Loader) PostProcess(fns ...PostProcessor) *Loader {
	out := l.clone()
	out.postProcessors = append(out.postProcessors, fns...)
	return out
}

// Logger sets the logger used for diagnostics. Default is
// slog.Default().
func (l *Loader) Logger(logger *slog.Logger) *Loader {
	out := l.clone()
	out.logger = logger
	return out
}

// Context sets the context for partition calls. Default is
// context.Background().
func (l *Loader) Context(ctx context.Context) *Loader {
	out := l.clone()
	out.ctx = ctx
	return out
}

// runConfig is the resolved, validated configuration for one load.
type runConfig struct {
	opts        Options
	logger      *slog.Logger
	ctx         context.Context
	source      partition.Source
	imageParser imagetext.Parser
	post        []PostProcessor
	partitionOpts map[string]any
	tmpDir      string
	warnings    []Warning
}

// warnExtractTablesOnce limits the strategy/extract-tables warning to
// one emission per process.
var warnExtractTablesOnce sync.Once

// resolve validates the configuration and prepares the element
// source. Configuration errors surface here, before any partition
// call and before any output is produced.
func (l *Loader) resolve() (*runConfig, error) {
	if l.err != nil {
		return nil, l.err
	}
	if len(l.paths) == 0 && len(l.streams) == 0 {
		return nil, errors.New("no input files")
	}

	rc := &runConfig{
		opts:        l.opts.clone(),
		logger:      l.logger,
		ctx:         l.ctx,
		imageParser: l.imageParser,
		post:        l.postProcessors,
	}
	if rc.logger == nil {
		rc.logger = slog.Default()
	}
	if rc.ctx == nil {
		rc.ctx = context.Background()
	}

	if rc.opts.Mode == "" {
		rc.opts.Mode = ModeSingle
	}
	mode, deprecated, err := ParseMode(string(rc.opts.Mode))
	if err != nil {
		return nil, err
	}
	if deprecated {
		rc.logger.Warn("paged mode is deprecated, use page mode")
		rc.warn("", "paged mode is deprecated, use page mode")
	}
	rc.opts.Mode = mode

	if rc.opts.PageDelimiter == "" {
		rc.opts.PageDelimiter = DefaultPageDelimiter
	}
	if rc.opts.ImageFormat == "" {
		rc.opts.ImageFormat = imagetext.FormatText
	}
	if !rc.opts.ImageFormat.Valid() {
		return nil, fmt.Errorf("image format must be text, markdown-img or html-img, got %q", rc.opts.ImageFormat)
	}

	if l.clientProvided && (rc.opts.APIKey != "" || rc.opts.URL != "") {
		return nil, errors.New("a custom partition client cannot be combined with api_key or url options")
	}

	// Engine options assembled for the partition call.
	rc.partitionOpts = make(map[string]any, len(rc.opts.Partition)+4)
	for k, v := range rc.opts.Partition {
		rc.partitionOpts[k] = v
	}
	strategy, _ := rc.partitionOpts["strategy"].(string)

	if mode == ModePage {
		if cs, _ := rc.partitionOpts["chunking_strategy"].(string); cs == "by_page" {
			return nil, errors.New("only one of chunking_strategy=by_page or page mode may be set")
		}
	}

	if rc.opts.ExtractImages && strategy == "ocr_only" {
		rc.logger.Warn("extract_images is not supported with strategy=ocr_only")
		rc.warn("", "extract_images is not supported with strategy=ocr_only")
		rc.opts.ExtractImages = false
	}
	if rc.opts.ExtractTables != "" && strategy != "hi_res" {
		warnExtractTablesOnce.Do(func() {
			rc.logger.Warn("extract_tables is not supported with strategy != hi_res")
		})
		rc.warn("", "extract_tables is not supported with strategy != hi_res")
		rc.opts.ExtractTables = ""
	}
	if rc.opts.ExtractImages && strategy == "fast" {
		rc.logger.Warn("changing strategy to auto to extract images")
		rc.partitionOpts["strategy"] = "auto"
	}

	if rc.opts.ExtractImages {
		if rc.opts.PartitionViaAPI {
			rc.logger.Warn("extract_images is not supported with partition_via_api")
			rc.warn("", "extract_images is not supported with partition_via_api")
			rc.opts.ExtractImages = false
		} else {
			rc.partitionOpts["extract_images_in_pdf"] = true
			if _, ok := rc.partitionOpts["extract_image_block_output_dir"]; !ok {
				dir, err := os.MkdirTemp("", "unstructured-images-")
				if err != nil {
					return nil, fmt.Errorf("creating image artifact directory: %w", err)
				}
				rc.tmpDir = dir
				rc.partitionOpts["extract_image_block_output_dir"] = dir
			}
		}
	}

	// The assembler needs explicit page boundaries in every mode but
	// elements; table rendering needs the table structure inferred.
	if mode != ModeElements {
		rc.partitionOpts["include_page_breaks"] = true
	}
	if rc.opts.ExtractTables != "" {
		rc.partitionOpts["infer_table_structure"] = true
	}

	if rc.opts.PartitionViaAPI {
		if l.clientProvided {
			rc.source = l.client
		} else {
			var copts []partition.ClientOption
			if rc.opts.APIKey != "" {
				copts = append(copts, partition.WithAPIKey(rc.opts.APIKey))
			}
			if rc.opts.URL != "" {
				copts = append(copts, partition.WithURL(rc.opts.URL))
			}
			rc.source = partition.NewClient(copts...)
		}
	} else {
		rc.source = partition.NewLocal(l.engine)
	}

	return rc, nil
}

// warn records a non-fatal issue.
func (rc *runConfig) warn(source, message string) {
	rc.warnings = append(rc.warnings, Warning{Source: source, Message: message})
}

// close releases the temporary image artifact directory, if one was
// created for this run.
func (rc *runConfig) close() error {
	if rc.tmpDir == "" {
		return nil
	}
	dir := rc.tmpDir
	rc.tmpDir = ""
	return os.RemoveAll(dir)
}

// LazyLoad returns an iterator that assembles Documents on demand,
// one input file at a time. The iterator must be closed when done to
// release any temporary image artifacts; Close is implied when the
// iterator is fully drained via Load.
//
// Example:
//
//	it := unstructured.Open("doc.pdf").ViaAPI().LazyLoad()
//	defer it.Close()
//	for it.Next() {
//	    doc := it.Document()
//	    // use doc
//	}
//	if err := it.Err(); err != nil {
//	    // handle error
//	}
func (l *Loader) LazyLoad() *DocumentIterator {
	rc, err := l.resolve()
	if err != nil {
		return &DocumentIterator{err: err}
	}
	it := &DocumentIterator{rc: rc}
	for _, p := range l.paths {
		it.inputs = append(it.inputs, fileInput{path: p})
	}
	for _, s := range l.streams {
		it.inputs = append(it.inputs, fileInput{reader: s.reader, name: s.name})
	}
	return it
}

// Load partitions every input and returns the assembled Documents
// together with any non-fatal warnings.
func (l *Loader) Load() ([]Document, []Warning, error) {
	it := l.LazyLoad()
	defer it.Close()

	var docs []Document
	for it.Next() {
		docs = append(docs, it.Document())
	}
	if err := it.Err(); err != nil {
		return nil, it.Warnings(), err
	}
	return docs, it.Warnings(), nil
}
