package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"errfmt/internal/diag"
	"errfmt/internal/template"
	"errfmt/internal/trace"
)

func compile(t *testing.T, format string) *template.Template {
	t.Helper()
	tpl, err := template.Compile(format)
	if err != nil {
		t.Fatalf("compile %q: %v", format, err)
	}
	return tpl
}

func TestReadLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single no newline", "abc", []string{"abc"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"blank lines", "\n\nx\n", []string{"", "", "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadLines(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("ReadLines: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestReadLines_TooLong(t *testing.T) {
	long := strings.Repeat("x", MaxLineBytes+1)
	if _, err := ReadLines(strings.NewReader(long)); err == nil {
		t.Fatal("expected error for oversized line")
	}
}

func TestRun_SkipsNonMatching(t *testing.T) {
	tpl := compile(t, "%f:%l:%c: %k: %m")
	in := "a.c:1:2: error: boom\nnoise\nb.c:3:4: warning: meh\n"
	res, err := Run(context.Background(), tpl, strings.NewReader(in), Options{Jobs: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Bag.Len() != 2 {
		t.Fatalf("bag len = %d, want 2", res.Bag.Len())
	}
	if res.Stats.Lines != 3 || res.Stats.Matched != 2 || res.Stats.Reported != 2 || res.Stats.Inputs != 1 {
		t.Fatalf("unexpected stats %+v", res.Stats)
	}
	first := res.Bag.Items()[0]
	if first.File != "a.c" || first.Line != 1 || first.Column != 2 || first.Message != "boom" {
		t.Fatalf("unexpected first diagnostic %+v", first)
	}
	if res.Timer != nil {
		t.Fatal("timer should be nil without EnableTimings")
	}
}

func TestRun_ParallelPreservesOrder(t *testing.T) {
	tpl := compile(t, "%f:%l: %m")
	var sb strings.Builder
	const n = chunkSize*7 + 13
	for i := range n {
		if i%5 == 0 {
			sb.WriteString("garbage line\n")
			continue
		}
		fmt.Fprintf(&sb, "f%d.go:%d: message %d\n", i, i+1, i)
	}
	input := sb.String()

	seq, err := Run(context.Background(), tpl, strings.NewReader(input), Options{Jobs: 1})
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	par, err := Run(context.Background(), tpl, strings.NewReader(input), Options{Jobs: 8})
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	a, b := seq.Bag.Items(), par.Bag.Items()
	if len(a) != len(b) {
		t.Fatalf("len mismatch: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("item %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
	if want := n - (n+4)/5; len(a) != want {
		t.Fatalf("matched %d, want %d", len(a), want)
	}
	if a[0].File != "f1.go" || a[len(a)-1].Line != uint64(n) {
		t.Fatalf("unexpected order: first %+v last %+v", a[0], a[len(a)-1])
	}
}

func TestRun_MaxDiagnostics(t *testing.T) {
	tpl := compile(t, "%m")
	res, err := Run(context.Background(), tpl, strings.NewReader("a\nb\nc\nd\n"), Options{MaxDiagnostics: 2})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Bag.Len() != 2 || res.Bag.Dropped() != 2 {
		t.Fatalf("len=%d dropped=%d, want 2/2", res.Bag.Len(), res.Bag.Dropped())
	}
	if res.Stats.Reported != 4 {
		t.Fatalf("reported = %d, want 4", res.Stats.Reported)
	}
}

func TestRun_Dedup(t *testing.T) {
	tpl := compile(t, "%f: %m")
	in := "a: x\na: x\na: y\n"
	res, err := Run(context.Background(), tpl, strings.NewReader(in), Options{Dedup: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Bag.Len() != 2 {
		t.Fatalf("bag len = %d, want 2", res.Bag.Len())
	}
	if res.Stats.Matched != 3 || res.Stats.Reported != 2 {
		t.Fatalf("matched=%d reported=%d, want 3/2", res.Stats.Matched, res.Stats.Reported)
	}
}

func TestRun_DedupWithLimit(t *testing.T) {
	tpl := compile(t, "%m")
	res, err := Run(context.Background(), tpl, strings.NewReader("a\na\nb\nc\n"), Options{Dedup: true, MaxDiagnostics: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stats.Reported != 3 || res.Bag.Len() != 1 || res.Bag.Dropped() != 2 {
		t.Fatalf("reported=%d len=%d dropped=%d, want 3/1/2", res.Stats.Reported, res.Bag.Len(), res.Bag.Dropped())
	}
}

func TestRun_WarningPolicy(t *testing.T) {
	tpl := compile(t, "%k: %m")
	in := "warning: w1\nerror: e1\nnote: n1\n"
	tests := []struct {
		name      string
		opts      Options
		wantKinds []string
	}{
		{"keep", Options{}, []string{"warning", "error", "note"}},
		{"drop", Options{IgnoreWarnings: true}, []string{"error"}},
		{"promote", Options{WarningsAsErrors: true}, []string{"error", "error", "note"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Run(context.Background(), tpl, strings.NewReader(in), tt.opts)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			items := res.Bag.Items()
			if len(items) != len(tt.wantKinds) {
				t.Fatalf("got %d items, want %d", len(items), len(tt.wantKinds))
			}
			for i, k := range tt.wantKinds {
				if items[i].Kind != k {
					t.Fatalf("item %d kind = %q, want %q", i, items[i].Kind, k)
				}
			}
			if res.Stats.Reported != len(tt.wantKinds) {
				t.Fatalf("reported = %d, want %d", res.Stats.Reported, len(tt.wantKinds))
			}
		})
	}
}

func TestRun_InvalidOptions(t *testing.T) {
	tpl := compile(t, "%m")
	tests := []Options{
		{IgnoreWarnings: true, WarningsAsErrors: true},
		{MaxDiagnostics: -1},
		{Jobs: -3},
	}
	for _, opts := range tests {
		if _, err := Run(context.Background(), tpl, strings.NewReader("x"), opts); err == nil {
			t.Fatalf("expected error for %+v", opts)
		}
	}
}

func TestRun_NilTemplate(t *testing.T) {
	if _, err := Run(context.Background(), nil, strings.NewReader("x"), Options{}); err == nil {
		t.Fatal("expected error for nil template")
	}
}

func TestRun_Cancelled(t *testing.T) {
	tpl := compile(t, "%m")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, tpl, strings.NewReader("a\nb\n"), Options{Jobs: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestRun_Timings(t *testing.T) {
	tpl := compile(t, "%m")
	res, err := Run(context.Background(), tpl, strings.NewReader("a\n"), Options{EnableTimings: true})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Timer == nil {
		t.Fatal("timer missing")
	}
	summary := res.Timer.Summary()
	if !strings.Contains(summary, "read") || !strings.Contains(summary, "match") {
		t.Fatalf("summary lacks phases:\n%s", summary)
	}
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.log")
	b := filepath.Join(dir, "b.log")
	if err := os.WriteFile(a, []byte("x.go:1: first\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("y.go:2: second\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	tpl := compile(t, "%f:%l: %m")
	res, err := RunFiles(context.Background(), tpl, []string{a, b}, Options{})
	if err != nil {
		t.Fatalf("RunFiles: %v", err)
	}
	items := res.Bag.Items()
	if len(items) != 2 || items[0].File != "x.go" || items[1].File != "y.go" {
		t.Fatalf("unexpected items %+v", items)
	}
	if res.Stats.Inputs != 2 {
		t.Fatalf("inputs = %d, want 2", res.Stats.Inputs)
	}

	if _, err := RunFiles(context.Background(), tpl, []string{a, filepath.Join(dir, "missing")}, Options{}); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestOpenInputs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "build.log")
	if err := os.WriteFile(path, []byte("x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	stdin := strings.NewReader("")

	inputs, closeAll, err := OpenInputs(nil, stdin)
	if err != nil || len(inputs) != 1 || inputs[0].Name != StdinName {
		t.Fatalf("no args: %+v %v", inputs, err)
	}
	closeAll()

	inputs, closeAll, err = OpenInputs([]string{path, "-"}, stdin)
	if err != nil {
		t.Fatalf("OpenInputs: %v", err)
	}
	defer closeAll()
	if len(inputs) != 2 || inputs[0].Name != path || inputs[1].Name != StdinName || inputs[1].Reader != io.Reader(stdin) {
		t.Fatalf("unexpected inputs %+v", inputs)
	}

	_, closeAll, err = OpenInputs([]string{path, filepath.Join(dir, "missing")}, stdin)
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	closeAll()
}

func TestRun_Trace(t *testing.T) {
	var buf bytes.Buffer
	tr := trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)
	ctx := trace.WithTracer(context.Background(), tr)

	tpl := compile(t, "%m")
	if _, err := Run(ctx, tpl, strings.NewReader("a\n"), Options{}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := tr.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"run", "input:<stdin>", "read", "match", "line:1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace output missing %q:\n%s", want, out)
		}
	}
}

type recordingSink struct {
	events []Event
}

func (s *recordingSink) OnEvent(evt Event) { s.events = append(s.events, evt) }

func TestRun_Progress(t *testing.T) {
	tpl := compile(t, "%f: %m")
	sink := &recordingSink{}
	inputs := []Input{
		{Name: "a", Reader: strings.NewReader("x: one\nnoise\n")},
		{Name: "b", Reader: strings.NewReader("y: two\n")},
	}
	if _, err := RunInputs(context.Background(), tpl, inputs, Options{Progress: sink}); err != nil {
		t.Fatalf("RunInputs: %v", err)
	}
	want := []struct {
		input  string
		stage  Stage
		status Status
	}{
		{"a", "", StatusQueued},
		{"b", "", StatusQueued},
		{"a", StageRead, StatusWorking},
		{"a", StageMatch, StatusWorking},
		{"a", StageMatch, StatusDone},
		{"b", StageRead, StatusWorking},
		{"b", StageMatch, StatusWorking},
		{"b", StageMatch, StatusDone},
	}
	if len(sink.events) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(sink.events), len(want), sink.events)
	}
	for i, w := range want {
		ev := sink.events[i]
		wantIndex := 0
		if w.input == "b" {
			wantIndex = 1
		}
		if ev.Input != w.input || ev.Index != wantIndex || ev.Stage != w.stage || ev.Status != w.status {
			t.Fatalf("event %d = %+v, want %+v", i, ev, w)
		}
	}
	if done := sink.events[4]; done.Lines != 2 || done.Matched != 1 {
		t.Fatalf("done event counts = %d/%d, want 2/1", done.Lines, done.Matched)
	}
}

func TestRun_ProgressError(t *testing.T) {
	tpl := compile(t, "%m")
	sink := &recordingSink{}
	long := strings.Repeat("x", MaxLineBytes+1)
	_, err := Run(context.Background(), tpl, strings.NewReader(long), Options{Progress: sink})
	if err == nil {
		t.Fatal("expected error")
	}
	last := sink.events[len(sink.events)-1]
	if last.Status != StatusError || last.Stage != StageRead || last.Err == nil {
		t.Fatalf("unexpected last event %+v", last)
	}
}

var _ diag.Reporter = (*countingReporter)(nil)
