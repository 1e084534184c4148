package match

import (
	"strings"
	"testing"
	"time"

	"errfmt/internal/template"
	"errfmt/internal/token"
)

func TestTailTable_AgreesWithFrom(t *testing.T) {
	formats := []string{
		"%f:%l:%k",
		"%m:%f:%l",
		"%k: %m in %f on line %l",
		"%f%k:%c",
		"%m%f",
		"x%f",
		"%l%c",
		"%m in %f:%l: %k",
	}
	lines := []string{
		"",
		"a:1:b",
		"ab:12:: x",
		"é:é:1",
		"\xe2\x82:1:\x80x",
		"msg:file.go:12",
		"error: a in in b on line 4",
		"::::",
		"12:34:56",
		"oops in a.go:3: error in b.go:x: warn",
	}
	for _, format := range formats {
		tpl := template.MustCompile(format)
		for _, line := range lines {
			m := matcher{tpl: tpl, line: line}
			for j := tpl.Len(); j >= 0; j-- {
				if j < tpl.Len() && tpl.Segment(j).Field == token.Message && !tpl.Segment(j).IsLiteral() {
					break
				}
				table := m.tailTable(j)
				for p := 0; p <= len(line); p++ {
					_, want := m.from(j, p, Captures{})
					if table[p] != want {
						t.Fatalf("%q on %q: tailTable(%d)[%d] = %v, from = %v", format, line, j, p, table[p], want)
					}
				}
			}
		}
	}
}

const longLineBudget = 2 * time.Second

func TestMatch_LongLinesStayLinear(t *testing.T) {
	const size = 1 << 20
	tests := []struct {
		name   string
		format string
		line   string
		want   bool
	}{
		{"spaces against message then file", "%m %f:x", strings.Repeat(" ", size), false},
		{"php preset without tail", "PHP %k: %m in %f on line %l", "PHP Warning: " + strings.Repeat(" in ", size/4), false},
		{"php preset with tail", "PHP %k: %m in %f on line %l", "PHP Warning: " + strings.Repeat(" in x", size/5) + " in a.php on line 3", true},
		{"separators everywhere", "%m:%f:%l", strings.Repeat("a:", size/2), false},
		{"winner far from the right", "%m:%f:%l %k", "msg:f.go:7 " + strings.Repeat(":z", size/2), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := template.MustCompile(tt.format)
			done := make(chan bool, 1)
			go func() {
				_, ok := Match(tpl, tt.line)
				done <- ok
			}()
			select {
			case ok := <-done:
				if ok != tt.want {
					t.Fatalf("Match ok = %v, want %v", ok, tt.want)
				}
			case <-time.After(longLineBudget):
				t.Fatalf("Match on a %d byte line took longer than %v", len(tt.line), longLineBudget)
			}
		})
	}
}

func TestMatch_LongLineCaptures(t *testing.T) {
	tail := strings.Repeat(":z", 1<<18)
	d, ok := Match(template.MustCompile("%m:%f:%l %k"), "msg:f.go:7 "+tail)
	if !ok {
		t.Fatal("expected match")
	}
	if d.Message != "msg" || d.File != "f.go" || d.Line != 7 || d.Kind != tail {
		t.Fatalf("unexpected diagnostic: message %q file %q line %d kind length %d", d.Message, d.File, d.Line, len(d.Kind))
	}

	body := strings.Repeat(" in x", 1<<16)
	d, ok = Match(template.MustCompile("PHP %k: %m in %f on line %l"), "PHP Warning: "+body+" in a.php on line 3")
	if !ok {
		t.Fatal("expected php match")
	}
	if d.Kind != "Warning" || d.Message != body || d.File != "a.php" || d.Line != 3 {
		t.Fatalf("unexpected php diagnostic: kind %q file %q line %d", d.Kind, d.File, d.Line)
	}
}
