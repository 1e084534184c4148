package diagfmt

import (
	"errfmt/internal/diag"
	"errfmt/internal/token"
)

// Entry is a diagnostic with defaults applied, ready for serialization.
type Entry struct {
	File     string `json:"file" msgpack:"file"`
	Line     uint64 `json:"line" msgpack:"line"`
	Column   uint64 `json:"column" msgpack:"column"`
	Kind     string `json:"kind" msgpack:"kind"`
	Severity string `json:"severity" msgpack:"severity"`
	Message  string `json:"message" msgpack:"message"`
	// RawKind is the captured kind text before normalisation.
	RawKind string `json:"raw_kind,omitempty" msgpack:"raw_kind,omitempty"`
}

// Resolve applies the editor defaults: missing line and column become 1,
// missing kind becomes "error", and the file override is applied.
func Resolve(d diag.Diagnostic, opts Opts) Entry {
	sev := d.Severity()
	e := Entry{
		File:     d.File,
		Line:     1,
		Column:   1,
		Kind:     sev.Label(),
		Severity: sev.String(),
		Message:  d.Message,
	}
	if d.Has(token.Line) {
		e.Line = d.Line
	}
	if d.Has(token.Column) {
		e.Column = d.Column
	}
	if d.Has(token.Kind) && d.Kind != e.Kind {
		e.RawKind = d.Kind
	}
	if opts.File != "" && (opts.ForceFile || !d.Has(token.File)) {
		e.File = opts.File
	}
	return e
}

// Entries resolves every diagnostic of the bag.
func Entries(bag *diag.Bag, opts Opts) []Entry {
	if bag == nil {
		return nil
	}
	items := bag.Items()
	out := make([]Entry, len(items))
	for i, d := range items {
		out[i] = Resolve(d, opts)
	}
	return out
}
