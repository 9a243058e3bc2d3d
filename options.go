package unstructured

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/langchain-ai/langchain-unstructured/imagetext"
	"github.com/langchain-ai/langchain-unstructured/mdtable"
)

// Mode is the assembler's output granularity. It is fixed per run:
// one Loader assembles every file with the same mode.
type Mode string

const (
	// ModeSingle emits one Document per input file.
	ModeSingle Mode = "single"
	// ModePage emits one Document per page, split on PageBreak
	// elements.
	ModePage Mode = "page"
	// ModeElements emits one Document per partitioned element.
	ModeElements Mode = "elements"
)

// modePagedDeprecated is accepted for compatibility and mapped to
// ModePage with a warning.
const modePagedDeprecated Mode = "paged"

// ParseMode validates a mode string. The deprecated "paged" spelling
// maps to ModePage; the second return value reports that a
// deprecation warning is due.
func ParseMode(s string) (Mode, bool, error) {
	switch Mode(s) {
	case ModeSingle, ModePage, ModeElements:
		return Mode(s), false, nil
	case modePagedDeprecated:
		return ModePage, true, nil
	default:
		return "", false, fmt.Errorf("got %q for mode, but should be one of single, page, elements", s)
	}
}

// DefaultPageDelimiter separates page content inside a single-mode
// Document when the source signals a page break.
const DefaultPageDelimiter = "\n\n"

// Options holds the serializable configuration of a Loader. The
// fluent methods on Loader cover the same surface; Options exists so
// a configuration can be loaded from a YAML file and applied in one
// call.
type Options struct {
	// Mode is the output granularity: single, page, or elements.
	Mode Mode `yaml:"mode"`

	// PageDelimiter is inserted between pages in single mode.
	// Empty means DefaultPageDelimiter.
	PageDelimiter string `yaml:"page_delimiter"`

	// ExtractTables selects the table encoding: csv, markdown, or
	// html. Empty leaves tables out of the assembled text.
	ExtractTables mdtable.Target `yaml:"extract_tables"`

	// TableAlignment is the column alignment for markdown tables:
	// left, center, or right. Empty means left.
	TableAlignment mdtable.Alignment `yaml:"table_alignment"`

	// ConvertTableCells runs table cell markup through an
	// HTML-to-Markdown conversion before escaping.
	ConvertTableCells bool `yaml:"convert_table_cells"`

	// SanitizeTableHTML strips unsafe markup from html-target table
	// output.
	SanitizeTableHTML bool `yaml:"sanitize_table_html"`

	// ExtractImages asks the partitioning engine to render image
	// artifacts and substitutes their recognized text inline.
	ExtractImages bool `yaml:"extract_images"`

	// ImageFormat is the inline encoding for recognized image text:
	// text, markdown-img, or html-img. Empty means text.
	ImageFormat imagetext.Format `yaml:"image_format"`

	// PartitionViaAPI partitions through the remote API instead of a
	// local engine.
	PartitionViaAPI bool `yaml:"partition_via_api"`

	// APIKey is the remote API credential. Defaults from
	// UNSTRUCTURED_API_KEY.
	APIKey string `yaml:"api_key"`

	// URL is the remote API endpoint. Defaults from UNSTRUCTURED_URL,
	// then the hosted endpoint.
	URL string `yaml:"url"`

	// Password unlocks encrypted inputs.
	Password string `yaml:"password"`

	// Partition carries engine options forwarded verbatim to the
	// partition call (strategy, languages, chunking_strategy, ...).
	Partition map[string]any `yaml:"partition"`
}

// clone deep-copies the options so fluent methods never share state.
func (o Options) clone() Options {
	out := o
	if o.Partition != nil {
		out.Partition = make(map[string]any, len(o.Partition))
		for k, v := range o.Partition {
			out.Partition[k] = v
		}
	}
	return out
}

// LoadOptions reads Options from a YAML file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading options file: %w", err)
	}
	var o Options
	if err := yaml.Unmarshal(data, &o); err != nil {
		return Options{}, fmt.Errorf("parsing options file %s: %w", path, err)
	}
	return o, nil
}
