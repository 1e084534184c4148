package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"errfmt/internal/diag"
	"errfmt/internal/token"
)

func withFields(d diag.Diagnostic, fs ...token.Field) diag.Diagnostic {
	for _, f := range fs {
		d.Fields = d.Fields.Add(f)
	}
	return d
}

func sampleBag() *diag.Bag {
	bag := diag.NewBag(0)
	bag.Add(withFields(diag.Diagnostic{
		File: "/tmp/foo", Line: 2, Column: 3, Kind: "Warning", Message: "syntax error",
	}, token.File, token.Line, token.Column, token.Kind, token.Message))
	bag.Add(withFields(diag.Diagnostic{
		File: "/tmp/test.php", Line: 4, Kind: "PHP Parse error", Message: "  unexpected end of file",
	}, token.File, token.Line, token.Kind, token.Message))
	return bag
}

func TestResolve_Defaults(t *testing.T) {
	got := Resolve(diag.Diagnostic{}, Opts{})
	want := Entry{Line: 1, Column: 1, Kind: "error", Severity: "ERROR"}
	if got != want {
		t.Fatalf("Resolve(empty) = %+v, want %+v", got, want)
	}
	var buf []byte
	if s := string(AppendKak(buf, got)); s != ":1:1: error: " {
		t.Fatalf("AppendKak(default) = %q", s)
	}
}

func TestResolve_FileOverride(t *testing.T) {
	extracted := withFields(diag.Diagnostic{File: "a.go", Message: "m"}, token.File, token.Message)
	missing := withFields(diag.Diagnostic{Message: "m"}, token.Message)

	tests := []struct {
		name string
		d    diag.Diagnostic
		opts Opts
		want string
	}{
		{"fill missing", missing, Opts{File: "buf.go"}, "buf.go"},
		{"keep extracted", extracted, Opts{File: "buf.go"}, "a.go"},
		{"force replaces", extracted, Opts{File: "/etc/shadow", ForceFile: true}, "/etc/shadow"},
		{"no override", missing, Opts{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.d, tt.opts).File; got != tt.want {
				t.Errorf("File = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolve_CapturedZeroIsKept(t *testing.T) {
	d := withFields(diag.Diagnostic{Line: 0, Column: 0}, token.Line, token.Column)
	e := Resolve(d, Opts{})
	if e.Line != 0 || e.Column != 0 {
		t.Fatalf("captured zeros replaced by defaults: %+v", e)
	}
}

func TestKak(t *testing.T) {
	var buf bytes.Buffer
	if err := Kak(&buf, sampleBag(), Opts{}); err != nil {
		t.Fatal(err)
	}
	want := "/tmp/foo:2:3: warning: syntax error\n" +
		"/tmp/test.php:4:1: error:   unexpected end of file\n"
	if buf.String() != want {
		t.Fatalf("Kak output:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestKak_EmptyBag(t *testing.T) {
	var buf bytes.Buffer
	if err := Kak(&buf, diag.NewBag(0), Opts{}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, sampleBag(), Opts{}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 2 || len(out.Diagnostics) != 2 {
		t.Fatalf("count = %d", out.Count)
	}
	first := out.Diagnostics[0]
	if first.Kind != "warning" || first.RawKind != "Warning" || first.Severity != "WARNING" {
		t.Errorf("first entry kinds = %+v", first)
	}
	if out.Diagnostics[1].RawKind != "PHP Parse error" {
		t.Errorf("raw kind lost: %+v", out.Diagnostics[1])
	}
}

func TestJSON_EmptyBagHasArray(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, diag.NewBag(0), Opts{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"diagnostics": []`) {
		t.Fatalf("expected empty array, got %s", buf.String())
	}
}

func TestMsgpack_Decode(t *testing.T) {
	var buf bytes.Buffer
	if err := Msgpack(&buf, sampleBag(), Opts{File: "x", ForceFile: true}); err != nil {
		t.Fatal(err)
	}
	out, err := DecodeMsgpack(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 || out.Diagnostics[1].File != "x" || out.Diagnostics[1].Line != 4 {
		t.Fatalf("decoded = %+v", out)
	}
}

func TestSarif(t *testing.T) {
	var buf bytes.Buffer
	meta := SarifRunMeta{ToolName: "errfmt", ToolVersion: "1.0.0", Template: "%f:%l: %m", InvocationArgs: []string{"errfmt", "-p", "php"}}
	if err := Sarif(&buf, sampleBag(), Opts{}, meta); err != nil {
		t.Fatal(err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF JSON: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log: %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "errfmt" || len(run.Results) != 2 {
		t.Fatalf("unexpected run: %+v", run)
	}
	if run.Results[0].Level != "warning" || run.Results[1].Level != "error" {
		t.Errorf("levels = %s, %s", run.Results[0].Level, run.Results[1].Level)
	}
	if run.Results[1].Message.Text != "unexpected end of file" {
		t.Errorf("message = %q", run.Results[1].Message.Text)
	}
	if run.Invocations[0].Properties["errfmt"] != "%f:%l: %m" {
		t.Errorf("template not recorded: %+v", run.Invocations)
	}
}

func TestPretty_Plain(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, sampleBag(), Opts{Color: false}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("plain output contains escape codes: %q", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 2 entries + summary, got %q", out)
	}
	// колонки выровнены по самому длинному пути
	if strings.Index(lines[0], "WARNING") != strings.Index(lines[1], "ERROR") {
		t.Errorf("severity column not aligned:\n%s", out)
	}
	if lines[2] != "2 diagnostics, 1 error, 1 warning" {
		t.Errorf("summary = %q", lines[2])
	}
}

func TestPretty_Width(t *testing.T) {
	bag := diag.NewBag(0)
	bag.Add(withFields(diag.Diagnostic{File: "a", Message: strings.Repeat("x", 200)}, token.File, token.Message))
	var buf bytes.Buffer
	if err := Pretty(&buf, bag, Opts{Width: 40}); err != nil {
		t.Fatal(err)
	}
	first := strings.SplitN(buf.String(), "\n", 2)[0]
	if !strings.HasSuffix(first, "...") {
		t.Errorf("message not truncated: %q", first)
	}
	if len(first) > 40 {
		t.Errorf("line longer than width: %d", len(first))
	}
}

func TestPretty_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Pretty(&buf, diag.NewBag(0), Opts{}); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "no diagnostics\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"kak", "json", "msgpack", "sarif", "pretty"} {
		f, err := ParseFormat(name)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", name, err)
		}
		if f.String() != name {
			t.Errorf("ParseFormat(%q).String() = %q", name, f.String())
		}
	}
	if f, err := ParseFormat(""); err != nil || f != FormatKak {
		t.Errorf("empty format should default to kak")
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWrite_Dispatch(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sampleBag(), FormatKak, Opts{}, SarifRunMeta{}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "/tmp/foo:2:3:") {
		t.Errorf("got %q", buf.String())
	}
	if err := Write(&buf, sampleBag(), Format(99), Opts{}, SarifRunMeta{}); err == nil {
		t.Error("expected error for unknown format")
	}
}
