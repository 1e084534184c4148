package diagfmt

import (
	"encoding/json"
	"io"

	"errfmt/internal/diag"
)

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []Entry `json:"diagnostics" msgpack:"diagnostics"`
	Count       int     `json:"count" msgpack:"count"`
	// Dropped counts diagnostics rejected by --max-diagnostics.
	Dropped int `json:"dropped,omitempty" msgpack:"dropped,omitempty"`
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, opts Opts) DiagnosticsOutput {
	entries := Entries(bag, opts)
	if entries == nil {
		entries = []Entry{}
	}
	out := DiagnosticsOutput{
		Diagnostics: entries,
		Count:       len(entries),
	}
	if bag != nil {
		out.Dropped = bag.Dropped() + bag.Len() - len(entries)
	}
	return out
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, opts Opts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(bag, opts))
}
