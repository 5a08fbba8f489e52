package diag

import (
	"simplint/internal/source"
)

// Note attaches secondary context to a diagnostic, e.g. the location of
// an earlier assignment the finding refers to.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single linter finding. Message holds the human text
// without the code prefix; formatters join Code and Message as needed.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
