package match

import (
	"math"
	"strconv"

	"errfmt/internal/diag"
	"errfmt/internal/token"
)

// Captures holds the raw text captured for each field of one line.
type Captures struct {
	values [token.Message + 1]string
	set    token.FieldSet
}

// Get returns the text captured for f.
func (c Captures) Get(f token.Field) (string, bool) {
	if !c.set.Has(f) {
		return "", false
	}
	return c.values[f], true
}

// Fields returns the set of captured fields.
func (c Captures) Fields() token.FieldSet {
	return c.set
}

func (c *Captures) put(f token.Field, v string) {
	c.values[f] = v
	c.set = c.set.Add(f)
}

// Diagnostic converts the captures into a diagnostic record.
func (c Captures) Diagnostic() diag.Diagnostic {
	d := diag.Diagnostic{Fields: c.set}
	d.File = c.values[token.File]
	d.Kind = c.values[token.Kind]
	d.Message = c.values[token.Message]
	if v, ok := c.Get(token.Line); ok {
		d.Line = parseDecimal(v)
	}
	if v, ok := c.Get(token.Column); ok {
		d.Column = parseDecimal(v)
	}
	return d
}

// parseDecimal parses a digit run; overflow saturates.
func parseDecimal(s string) uint64 {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		// ParseUint already returns MaxUint64 on ErrRange; the digit-run
		// capture rules out ErrSyntax.
		return math.MaxUint64
	}
	return n
}
