package unstructured

import "strings"

// Warning describes a non-fatal issue encountered while assembling
// documents: an unrecognized element category, a deprecated option,
// an unsupported option combination. Processing continues with a
// best-effort fallback.
type Warning struct {
	// Source is the input file the warning relates to, when known.
	Source string

	// Message describes the issue.
	Message string
}

// String returns the warning as a single line.
func (w Warning) String() string {
	if w.Source == "" {
		return w.Message
	}
	return w.Source + ": " + w.Message
}

// FormatWarnings joins warnings into one readable string for logging.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
