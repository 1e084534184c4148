package token

import "strings"

// Field identifies the piece of a diagnostic a placeholder captures.
type Field uint8

const (
	// Invalid is the zero Field and never appears in a compiled template.
	Invalid Field = iota
	// File captures the path of the offending source file (%f).
	File
	// Line captures a decimal line number (%l).
	Line
	// Column captures a decimal column number (%c).
	Column
	// Kind captures the severity word, e.g. "error" (%k).
	Kind
	// Message captures the diagnostic text (%m).
	Message
)

// Fields lists every valid field in template letter order.
var Fields = [...]Field{File, Line, Column, Kind, Message}

var fieldLetters = [...]byte{
	File:    'f',
	Line:    'l',
	Column:  'c',
	Kind:    'k',
	Message: 'm',
}

var fieldNames = [...]string{
	Invalid: "invalid",
	File:    "file",
	Line:    "line",
	Column:  "column",
	Kind:    "kind",
	Message: "message",
}

// FromLetter maps a placeholder letter to its Field.
func FromLetter(b byte) (Field, bool) {
	switch b {
	case 'f':
		return File, true
	case 'l':
		return Line, true
	case 'c':
		return Column, true
	case 'k':
		return Kind, true
	case 'm':
		return Message, true
	}
	return Invalid, false
}

// Letter returns the placeholder letter, or 0 for Invalid.
func (f Field) Letter() byte {
	if !f.Valid() {
		return 0
	}
	return fieldLetters[f]
}

// Placeholder returns the "%x" spelling of the field.
func (f Field) Placeholder() string {
	if !f.Valid() {
		return ""
	}
	return "%" + string(f.Letter())
}

// Valid reports whether f is one of the five capturable fields.
func (f Field) Valid() bool {
	return f >= File && f <= Message
}

// Numeric reports whether the field captures a run of decimal digits.
func (f Field) Numeric() bool {
	return f == Line || f == Column
}

func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return "unknown"
}

// FieldSet is a bitmask of fields.
type FieldSet uint8

// Add returns s with f included.
func (s FieldSet) Add(f Field) FieldSet {
	if !f.Valid() {
		return s
	}
	return s | 1<<f
}

// Has reports whether f is in the set.
func (s FieldSet) Has(f Field) bool {
	return f.Valid() && s&(1<<f) != 0
}

// Len returns the number of fields in the set.
func (s FieldSet) Len() int {
	n := 0
	for _, f := range Fields {
		if s.Has(f) {
			n++
		}
	}
	return n
}

// Fields returns the members in canonical order.
func (s FieldSet) Fields() []Field {
	out := make([]Field, 0, len(Fields))
	for _, f := range Fields {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s FieldSet) String() string {
	parts := make([]string, 0, len(Fields))
	for _, f := range s.Fields() {
		parts = append(parts, f.String())
	}
	return "{" + strings.Join(parts, ",") + "}"
}
