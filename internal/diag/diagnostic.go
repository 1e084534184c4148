package diag

import (
	"errfmt/internal/token"
)

type Diagnostic struct {
	File    string
	Line    uint64
	Column  uint64
	Kind    string
	Message string
	// Fields records which of the above were captured.
	Fields token.FieldSet
}

// Has reports whether the template captured f for this diagnostic.
func (d Diagnostic) Has(f token.Field) bool {
	return d.Fields.Has(f)
}

// Severity derives the diagnostic's severity from its kind.
func (d Diagnostic) Severity() Severity {
	if !d.Has(token.Kind) {
		return SevError
	}
	return ParseSeverity(d.Kind)
}

// WithFile returns a copy of d with File set and marked as captured.
func (d Diagnostic) WithFile(path string) Diagnostic {
	d.File = path
	d.Fields = d.Fields.Add(token.File)
	return d
}
