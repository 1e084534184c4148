package diag

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for informational diagnostics (notes, hints).
	SevInfo Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lowercase spelling used by editor line formats.
func (s Severity) Label() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	default:
		return "error"
	}
}

var lower = cases.Lower(language.Und)

var severityWords = map[string]Severity{
	"error":   SevError,
	"err":     SevError,
	"fatal":   SevError,
	"warning": SevWarning,
	"warn":    SevWarning,
	"info":    SevInfo,
	"note":    SevInfo,
	"hint":    SevInfo,
}

// ParseSeverity derives a severity from a captured kind such as "error",
// "Warning" or "PHP Parse error". Matching is case-insensitive and looks at
// whole words; when several severity words occur the last one wins. Unknown
// or empty kinds are reported as errors.
func ParseSeverity(kind string) Severity {
	words := strings.FieldsFunc(lower.String(kind), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	sev := SevError
	for _, w := range words {
		if s, ok := severityWords[w]; ok {
			sev = s
		}
	}
	return sev
}
