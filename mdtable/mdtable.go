// Package mdtable converts HTML table markup into the textual
// encodings used when folding table elements into output documents:
// the markup itself, a Markdown pipe table, or CSV rows.
package mdtable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// Target selects the output encoding for table markup.
type Target string

const (
	// TargetHTML keeps the markup as-is.
	TargetHTML Target = "html"
	// TargetMarkdown produces a Markdown pipe table.
	TargetMarkdown Target = "markdown"
	// TargetCSV produces RFC 4180 rows of cell text.
	TargetCSV Target = "csv"
)

// Alignment selects the column alignment marker emitted in the
// Markdown alignment row. It applies to every column.
type Alignment string

const (
	// AlignLeft emits " :--- " markers.
	AlignLeft Alignment = "left"
	// AlignCenter emits " :---: " markers.
	AlignCenter Alignment = "center"
	// AlignRight emits " ---: " markers.
	AlignRight Alignment = "right"
)

// ErrNoRows is returned when table markup contains elements but no
// <tr> row container.
var ErrNoRows = errors.New(`no "tr" tag found in table markup`)

// Options configures a conversion.
type Options struct {
	// Alignment is the column alignment for the Markdown target.
	// The zero value means AlignLeft.
	Alignment Alignment

	// ConvertCells runs each cell's inner markup through an
	// HTML-to-Markdown conversion before escaping. Only meaningful
	// for the Markdown target.
	ConvertCells bool

	// Sanitize strips unsafe markup from the HTML target output
	// using a UGC policy. Off by default so the html target returns
	// the original markup byte-for-byte.
	Sanitize bool
}

var ugcPolicy = bluemonday.UGCPolicy()

// Convert renders table markup for the given target. An empty target
// yields "" so callers can leave table handling disabled without
// special-casing. Empty markup also yields "".
func Convert(markup string, target Target, opts Options) (string, error) {
	if target == "" || markup == "" {
		return "", nil
	}
	switch target {
	case TargetHTML:
		if opts.Sanitize {
			return ugcPolicy.Sanitize(markup), nil
		}
		return markup, nil
	case TargetMarkdown:
		return ToMarkdown(markup, opts)
	case TargetCSV:
		return ToCSV(markup)
	default:
		return "", fmt.Errorf("table target must be csv, markdown or html, got %q", target)
	}
}

// alignmentMarker returns the Markdown alignment-row marker for a,
// treating the zero value as left.
func alignmentMarker(a Alignment) (string, error) {
	switch a {
	case "", AlignLeft:
		return " :--- ", nil
	case AlignCenter:
		return " :---: ", nil
	case AlignRight:
		return " ---: ", nil
	default:
		return "", fmt.Errorf("invalid alignment %q: expected one of left, center, right", a)
	}
}

// ToMarkdown converts table markup to a Markdown pipe table: one
// header line (blank header cells when the table has no <th> row),
// one alignment line, then one line per body row. Literal pipes and
// newlines inside cells are escaped so they cannot break the table
// grid. Markup with no elements at all is returned unchanged; markup
// with elements but no <tr> fails with ErrNoRows.
func ToMarkdown(markup string, opts Options) (string, error) {
	// Validate the alignment before touching any row.
	marker, err := alignmentMarker(opts.Alignment)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("parsing table markup: %w", err)
	}
	if !hasContentElement(doc) {
		return markup, nil
	}

	rows := findAll(doc, "tr")
	if len(rows) == 0 {
		return "", ErrNoRows
	}

	headings, err := cellContents(rows[0], "th", opts.ConvertCells)
	if err != nil {
		return "", err
	}
	if len(headings) > 0 {
		rows = rows[1:]
	}

	var body [][]string
	for _, tr := range rows {
		cells, err := cellContents(tr, "td", opts.ConvertCells)
		if err != nil {
			return "", err
		}
		body = append(body, cells)
	}

	width := len(headings)
	if width == 0 {
		if len(body) == 0 {
			// Rows exist but carry no cells; nothing renderable.
			return markup, nil
		}
		width = len(body[0])
		headings = make([]string, width)
		for i := range headings {
			headings[i] = " "
		}
	}

	var sb strings.Builder
	writeRow(&sb, headings)
	markers := make([]string, width)
	for i := range markers {
		markers[i] = marker
	}
	writeRow(&sb, markers)
	for _, row := range body {
		writeRow(&sb, row)
	}
	return sb.String(), nil
}

// writeRow emits one pipe-delimited table line: "|a|b|\n".
func writeRow(sb *strings.Builder, cells []string) {
	sb.WriteByte('|')
	for _, c := range cells {
		sb.WriteString(c)
		sb.WriteByte('|')
	}
	sb.WriteByte('\n')
}

// ToCSV converts table markup to CSV rows, header row (if any)
// first. Cell values are the plain text content of each <th>/<td>.
func ToCSV(markup string) (string, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return "", fmt.Errorf("parsing table markup: %w", err)
	}
	if !hasContentElement(doc) {
		return markup, nil
	}

	rows := findAll(doc, "tr")
	if len(rows) == 0 {
		return "", ErrNoRows
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, tr := range rows {
		var record []string
		for _, cell := range findAll(tr, "th", "td") {
			record = append(record, strings.TrimSpace(textContent(cell)))
		}
		if len(record) == 0 {
			continue
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("writing csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("writing csv: %w", err)
	}
	return buf.String(), nil
}

// cellContents extracts, converts, and escapes the inner markup of
// every child cell with the given tag, in order. Each value is
// padded with one space on each side, matching common pipe-table
// formatting.
func cellContents(tr *html.Node, tag string, convert bool) ([]string, error) {
	var cells []string
	for _, cell := range findAll(tr, tag) {
		inner, err := innerHTML(cell)
		if err != nil {
			return nil, err
		}
		v, err := transformCell(inner, convert)
		if err != nil {
			return nil, err
		}
		cells = append(cells, " "+v+" ")
	}
	return cells, nil
}

// transformCell optionally converts cell markup to Markdown, then
// escapes the characters that would break the table grid: a literal
// pipe becomes its HTML entity and a newline becomes an inline
// break.
func transformCell(value string, convert bool) (string, error) {
	if value != "" && convert {
		md, err := htmltomarkdown.ConvertString(value)
		if err != nil {
			return "", fmt.Errorf("converting cell markup: %w", err)
		}
		value = strings.TrimSpace(md)
	}
	value = strings.ReplaceAll(value, "|", "&#124;")
	value = strings.ReplaceAll(value, "\n", "<br>")
	return value, nil
}

// innerHTML renders the markup inside a node.
func innerHTML(n *html.Node) (string, error) {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("rendering cell contents: %w", err)
		}
	}
	return buf.String(), nil
}

// textContent returns the concatenated text nodes under n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// findAll returns every descendant element of n whose tag is in
// tags, in document order.
func findAll(n *html.Node, tags ...string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, t := range tags {
				if n.Data == t {
					out = append(out, n)
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return out
}

// hasContentElement reports whether the parsed document contains any
// element beyond the html/head/body skeleton the parser fabricates
// around bare text. Markup with no real elements is passed through
// unchanged rather than treated as a table.
func hasContentElement(doc *html.Node) bool {
	var found bool
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found {
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "html", "head", "body":
			default:
				found = true
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}
