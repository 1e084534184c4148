package template

import (
	"strings"

	"errfmt/internal/token"
)

// Compile parses a format string into a Template.
//
// It returns *Error (wrapping ErrInvalidPlaceholder or
// ErrDuplicatePlaceholder) when the string is malformed.
func Compile(format string) (*Template, error) {
	segments, err := scan(format)
	if err != nil {
		return nil, err
	}
	fields, err := checkDuplicates(format, segments)
	if err != nil {
		return nil, err
	}
	return &Template{
		source:   format,
		segments: segments,
		fields:   fields,
	}, nil
}

// MustCompile is like Compile but panics on error. Intended for built-in
// presets and tests.
func MustCompile(format string) *Template {
	t, err := Compile(format)
	if err != nil {
		panic(err)
	}
	return t
}

// scan walks the format left to right, accumulating literal bytes and
// emitting a placeholder segment for each recognised %x.
func scan(format string) ([]Segment, error) {
	var (
		segments []Segment
		lit      strings.Builder
		litStart = -1
	)

	flush := func() {
		if lit.Len() == 0 {
			return
		}
		segments = append(segments, Segment{Text: lit.String(), Offset: litStart})
		lit.Reset()
		litStart = -1
	}

	for off := 0; off < len(format); off++ {
		b := format[off]
		if b != '%' {
			if litStart < 0 {
				litStart = off
			}
			lit.WriteByte(b)
			continue
		}

		if off+1 >= len(format) {
			return nil, &Error{Code: InvalidPlaceholder, Format: format, Offset: off, Text: "%"}
		}
		next := format[off+1]
		if next == '%' {
			// %% остаётся частью текущего литерала
			if litStart < 0 {
				litStart = off
			}
			lit.WriteByte('%')
			off++
			continue
		}

		field, ok := token.FromLetter(next)
		if !ok {
			return nil, &Error{Code: InvalidPlaceholder, Format: format, Offset: off, Text: placeholderText(format, off)}
		}
		flush()
		segments = append(segments, Segment{Field: field, Offset: off})
		off++
	}
	flush()
	return segments, nil
}

// placeholderText returns '%' plus the whole (possibly multi-byte) rune that
// follows it.
func placeholderText(format string, off int) string {
	end := off + 2
	for end < len(format) && !isRuneStart(format[end]) {
		end++
	}
	return format[off:end]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

func checkDuplicates(format string, segments []Segment) (token.FieldSet, error) {
	var seen token.FieldSet
	for _, seg := range segments {
		if seg.IsLiteral() {
			continue
		}
		if seen.Has(seg.Field) {
			return 0, &Error{
				Code:   DuplicatePlaceholder,
				Format: format,
				Offset: seg.Offset,
				Text:   seg.Field.Placeholder(),
				Field:  seg.Field,
			}
		}
		seen = seen.Add(seg.Field)
	}
	return seen, nil
}
