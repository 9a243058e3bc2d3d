// Package element defines the typed content units produced by a
// partitioning engine. Every partitioned document becomes an ordered
// sequence of Elements; order is significant and determines prose
// reading order and page grouping downstream.
package element

import (
	"encoding/json"
	"fmt"
)

// Category identifies the structural role of an Element.
type Category int

const (
	// Unknown indicates a category string not in the recognized set.
	Unknown Category = iota
	// Title is a document or section heading.
	Title
	// NarrativeText is body prose.
	NarrativeText
	// UncategorizedText is text the engine could not classify further.
	UncategorizedText
	// Table is tabular content; its markup lives in the text_as_html
	// metadata key.
	Table
	// Image is a figure or picture; a rendered artifact path may live
	// in the image_path metadata key.
	Image
	// Header is a running page header.
	Header
	// Footer is a running page footer.
	Footer
	// PageBreak marks a page boundary.
	PageBreak
	// Formula is a mathematical expression.
	Formula
	// FigureCaption is the caption attached to a figure.
	FigureCaption
	// ListItem is one item of a bulleted or numbered list.
	ListItem
	// Address is a postal address.
	Address
	// EmailAddress is an e-mail address.
	EmailAddress
)

// String returns the category tag as emitted by the partitioning engine.
func (c Category) String() string {
	switch c {
	case Title:
		return "Title"
	case NarrativeText:
		return "NarrativeText"
	case UncategorizedText:
		return "UncategorizedText"
	case Table:
		return "Table"
	case Image:
		return "Image"
	case Header:
		return "Header"
	case Footer:
		return "Footer"
	case PageBreak:
		return "PageBreak"
	case Formula:
		return "Formula"
	case FigureCaption:
		return "FigureCaption"
	case ListItem:
		return "ListItem"
	case Address:
		return "Address"
	case EmailAddress:
		return "EmailAddress"
	default:
		return "Unknown"
	}
}

// ParseCategory maps an engine category tag to a Category. The second
// return value is false for tags outside the recognized set; callers
// treat those as plain text rather than failing.
func ParseCategory(tag string) (Category, bool) {
	switch tag {
	case "Title":
		return Title, true
	case "NarrativeText":
		return NarrativeText, true
	case "UncategorizedText":
		return UncategorizedText, true
	case "Table":
		return Table, true
	case "Image":
		return Image, true
	case "Header":
		return Header, true
	case "Footer":
		return Footer, true
	case "PageBreak":
		return PageBreak, true
	case "Formula":
		return Formula, true
	case "FigureCaption":
		return FigureCaption, true
	case "ListItem":
		return ListItem, true
	case "Address":
		return Address, true
	case "EmailAddress":
		return EmailAddress, true
	default:
		return Unknown, false
	}
}

// Element is one extracted content unit. Elements are immutable once
// produced; consumers must not modify Metadata in place.
type Element struct {
	// ID is the engine-assigned stable identifier.
	ID string `json:"element_id"`

	// Text is the raw textual content. May be empty (e.g. PageBreak).
	Text string `json:"text"`

	// Tag is the category string as reported by the engine. Remote
	// payloads use either a "category" or a "type" key; decoding
	// accepts both.
	Tag string `json:"-"`

	// Metadata carries open per-element attributes: coordinates,
	// page_number, text_as_html, image_path, languages, and so on.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Category returns the recognized category for the element's tag,
// or Unknown for tags outside the closed set.
func (e Element) Category() Category {
	c, _ := ParseCategory(e.Tag)
	return c
}

// HTMLTable returns the table markup from the text_as_html metadata
// key, or "" when absent.
func (e Element) HTMLTable() string {
	s, _ := e.Metadata["text_as_html"].(string)
	return s
}

// ImagePath returns the rendered image artifact path from the
// image_path metadata key, or "" when absent.
func (e Element) ImagePath() string {
	s, _ := e.Metadata["image_path"].(string)
	return s
}

// elementJSON mirrors the wire shape of one element record. The
// category tag appears as "category" in API responses and as "type"
// in engine dumps; whichever is present wins, with "category"
// preferred.
type elementJSON struct {
	ElementID string         `json:"element_id"`
	Text      string         `json:"text"`
	Category  string         `json:"category"`
	Type      string         `json:"type"`
	Metadata  map[string]any `json:"metadata"`
}

// UnmarshalJSON decodes one element record, accepting the category
// under either the "category" or "type" key.
func (e *Element) UnmarshalJSON(data []byte) error {
	var raw elementJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decoding element record: %w", err)
	}
	tag := raw.Category
	if tag == "" {
		tag = raw.Type
	}
	*e = Element{
		ID:       raw.ElementID,
		Text:     raw.Text,
		Tag:      tag,
		Metadata: raw.Metadata,
	}
	return nil
}

// MarshalJSON encodes the element in the wire shape, emitting the
// category under both keys for compatibility with either consumer.
func (e Element) MarshalJSON() ([]byte, error) {
	return json.Marshal(elementJSON{
		ElementID: e.ID,
		Text:      e.Text,
		Category:  e.Tag,
		Type:      e.Tag,
		Metadata:  e.Metadata,
	})
}
