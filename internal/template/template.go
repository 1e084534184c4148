package template

import (
	"strings"

	"errfmt/internal/token"
)

// Segment is one unit of a compiled template: either literal text or a
// placeholder for a Field.
type Segment struct {
	Field token.Field // token.Invalid for literals
	Text  string      // literal text; empty for placeholders
	// Offset is the byte offset of the segment in the source format string.
	Offset int
}

// IsLiteral reports whether the segment is matched verbatim.
func (s Segment) IsLiteral() bool {
	return s.Field == token.Invalid
}

func (s Segment) String() string {
	if s.IsLiteral() {
		return strings.ReplaceAll(s.Text, "%", "%%")
	}
	return s.Field.Placeholder()
}

// Template is a compiled format string.
type Template struct {
	source   string
	segments []Segment
	fields   token.FieldSet
}

// Source returns the format string the template was compiled from.
func (t *Template) Source() string {
	if t == nil {
		return ""
	}
	return t.source
}

// Len returns the number of segments.
func (t *Template) Len() int {
	if t == nil {
		return 0
	}
	return len(t.segments)
}

// Segment returns the i-th segment.
func (t *Template) Segment(i int) Segment {
	return t.segments[i]
}

// Segments returns a copy of the segment list.
func (t *Template) Segments() []Segment {
	if t == nil {
		return nil
	}
	return append([]Segment(nil), t.segments...)
}

// Fields returns the set of fields the template captures.
func (t *Template) Fields() token.FieldSet {
	if t == nil {
		return 0
	}
	return t.fields
}

// NextLiteral returns the text of segment i+1 when it is a literal.
func (t *Template) NextLiteral(i int) (string, bool) {
	if i+1 >= len(t.segments) {
		return "", false
	}
	next := t.segments[i+1]
	if !next.IsLiteral() {
		return "", false
	}
	return next.Text, true
}

// IsLast reports whether i is the index of the final segment.
func (t *Template) IsLast(i int) bool {
	return i == len(t.segments)-1
}

// String renders the canonical format string; compiling it again yields an
// equivalent template.
func (t *Template) String() string {
	if t == nil {
		return ""
	}
	var sb strings.Builder
	for _, seg := range t.segments {
		sb.WriteString(seg.String())
	}
	return sb.String()
}
