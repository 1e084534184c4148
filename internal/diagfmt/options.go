package diagfmt

import (
	"fmt"
	"strings"
)

// Format selects the output syntax.
type Format uint8

const (
	// FormatKak is the editor line syntax file:line:column: kind: message.
	FormatKak Format = iota
	FormatJSON
	FormatMsgpack
	FormatSarif
	// FormatPretty is an aligned, optionally colored listing for humans.
	FormatPretty
)

func (f Format) String() string {
	switch f {
	case FormatKak:
		return "kak"
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	case FormatSarif:
		return "sarif"
	case FormatPretty:
		return "pretty"
	}
	return "unknown"
}

// ParseFormat converts a --format value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "kak", "kakoune", "short":
		return FormatKak, nil
	case "json":
		return FormatJSON, nil
	case "msgpack":
		return FormatMsgpack, nil
	case "sarif":
		return FormatSarif, nil
	case "pretty":
		return FormatPretty, nil
	}
	return FormatKak, fmt.Errorf("unknown format %q (expected kak|json|msgpack|sarif|pretty)", s)
}

// Opts configures rendering.
type Opts struct {
	// File fills in the path for diagnostics whose template has no %f.
	File string
	// ForceFile makes File replace extracted paths too.
	ForceFile bool
	// Color enables ANSI styling (pretty only).
	Color bool
	// Width limits pretty lines; 0 means unlimited.
	Width int
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	Template       string
	InvocationArgs []string
}
