package fuzztests

import (
	"errors"
	"testing"

	"errfmt/internal/template"
)

func FuzzCompile(f *testing.F) {
	addFormatSeeds(f)
	f.Fuzz(func(t *testing.T, format string) {
		tpl, err := template.Compile(format)
		if err != nil {
			var te *template.Error
			if !errors.As(err, &te) {
				t.Fatalf("compile error is not *template.Error: %v", err)
			}
			if te.Offset < 0 || te.Offset >= len(format) {
				t.Fatalf("offset %d out of range for %q", te.Offset, format)
			}
			return
		}

		// canonical form must compile to the same segments
		again, err := template.Compile(tpl.String())
		if err != nil {
			t.Fatalf("recompile %q (from %q): %v", tpl.String(), format, err)
		}
		a, b := tpl.Segments(), again.Segments()
		if len(a) != len(b) {
			t.Fatalf("segment count changed: %d vs %d", len(a), len(b))
		}
		for i := range a {
			if a[i].Field != b[i].Field || a[i].Text != b[i].Text {
				t.Fatalf("segment %d changed: %v vs %v", i, a[i], b[i])
			}
		}
	})
}
