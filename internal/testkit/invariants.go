package testkit

import (
	"fmt"
	"strings"

	"errfmt/internal/template"
	"errfmt/internal/token"
)

// Captured is the read side of a match result.
type Captured interface {
	Get(f token.Field) (string, bool)
}

// CheckCaptures runs a minimal set of invariants on a successful match:
// 1) replaying the template with the captured values reproduces the line
// 2) numeric captures are non-empty runs of ASCII digits
// 3) non-final %f / %k captures are non-empty
//
// Replay stops at the first placeholder without a capture; only segments
// after %m can be left unreached.
func CheckCaptures(tpl *template.Template, line string, caps Captured) error {
	if tpl == nil || caps == nil {
		return fmt.Errorf("nil template or captures")
	}

	var sb strings.Builder
	segs := tpl.Segments()
	sawMessage := false
	for i, seg := range segs {
		if seg.IsLiteral() {
			sb.WriteString(seg.Text)
			continue
		}
		v, ok := caps.Get(seg.Field)
		if !ok {
			if !sawMessage {
				return fmt.Errorf("segment %d (%s) not captured before %%m", i, seg.Field)
			}
			break
		}
		if seg.Field == token.Message {
			sawMessage = true
		}
		if seg.Field.Numeric() {
			if v == "" {
				return fmt.Errorf("%s capture is empty", seg.Field)
			}
			for j := 0; j < len(v); j++ {
				if v[j] < '0' || v[j] > '9' {
					return fmt.Errorf("%s capture %q contains non-digit", seg.Field, v)
				}
			}
		}
		if (seg.Field == token.File || seg.Field == token.Kind) && i != len(segs)-1 && v == "" {
			return fmt.Errorf("non-final %s capture is empty", seg.Field)
		}
		sb.WriteString(v)
	}

	if got := sb.String(); got != line {
		return fmt.Errorf("captures replay to %q, line is %q", got, line)
	}
	return nil
}
