package diagfmt

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"errfmt/internal/diag"
)

// Msgpack writes the same document as JSON, msgpack-encoded, for consumers
// that read a binary stream.
func Msgpack(w io.Writer, bag *diag.Bag, opts Opts) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(BuildDiagnosticsOutput(bag, opts))
}

// DecodeMsgpack reads a document written by Msgpack.
func DecodeMsgpack(r io.Reader) (DiagnosticsOutput, error) {
	var out DiagnosticsOutput
	dec := msgpack.NewDecoder(r)
	if err := dec.Decode(&out); err != nil {
		return DiagnosticsOutput{}, err
	}
	return out, nil
}
