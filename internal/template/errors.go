package template

import (
	"errors"
	"fmt"

	"errfmt/internal/token"
)

// Code is a stable identifier for compile errors.
type Code uint16

const (
	UnknownCode Code = 0
	// InvalidPlaceholder: '%' followed by an unknown letter or by nothing.
	InvalidPlaceholder Code = 1001
	// DuplicatePlaceholder: the same field appears twice.
	DuplicatePlaceholder Code = 1002
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown template error",
	InvalidPlaceholder:   "Invalid placeholder",
	DuplicatePlaceholder: "Duplicate placeholder",
}

func (c Code) ID() string {
	if c == UnknownCode {
		return "TPL0000"
	}
	return fmt.Sprintf("TPL%04d", int(c))
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

var (
	// ErrInvalidPlaceholder is wrapped by every InvalidPlaceholder error.
	ErrInvalidPlaceholder = errors.New("invalid placeholder")
	// ErrDuplicatePlaceholder is wrapped by every DuplicatePlaceholder error.
	ErrDuplicatePlaceholder = errors.New("duplicate placeholder")
)

// Error describes why a format string could not be compiled.
type Error struct {
	Code   Code
	Format string
	// Offset is the byte offset of the offending '%' in Format.
	Offset int
	// Text is the offending placeholder spelling ("%x", "%" or "%f").
	Text string
	// Field is set for DuplicatePlaceholder.
	Field token.Field
}

func (e *Error) Error() string {
	switch e.Code {
	case InvalidPlaceholder:
		if e.Text == "%" {
			return fmt.Sprintf("%s: dangling %% at offset %d", e.Code.ID(), e.Offset)
		}
		return fmt.Sprintf("%s: unknown placeholder %q at offset %d (expected %%f, %%l, %%c, %%k, %%m or %%%%)", e.Code.ID(), e.Text, e.Offset)
	case DuplicatePlaceholder:
		return fmt.Sprintf("%s: placeholder %s (%s) repeated at offset %d", e.Code.ID(), e.Text, e.Field, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Code.Title())
}

// Unwrap exposes the sentinel matching the error code.
func (e *Error) Unwrap() error {
	switch e.Code {
	case InvalidPlaceholder:
		return ErrInvalidPlaceholder
	case DuplicatePlaceholder:
		return ErrDuplicatePlaceholder
	}
	return nil
}
