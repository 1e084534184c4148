package diagfmt

import (
	"fmt"
	"io"

	"errfmt/internal/diag"
)

// Write renders the bag in the requested format.
func Write(w io.Writer, bag *diag.Bag, format Format, opts Opts, meta SarifRunMeta) error {
	switch format {
	case FormatKak:
		return Kak(w, bag, opts)
	case FormatJSON:
		return JSON(w, bag, opts)
	case FormatMsgpack:
		return Msgpack(w, bag, opts)
	case FormatSarif:
		return Sarif(w, bag, opts, meta)
	case FormatPretty:
		return Pretty(w, bag, opts)
	}
	return fmt.Errorf("unsupported format %v", format)
}
