package observ

import (
	"strings"
	"testing"
)

func TestTimer_Phases(t *testing.T) {
	timer := NewTimer()
	done := timer.Track("compile")
	done("3 segments")
	idx := timer.Begin("match")
	timer.End(idx, "")
	timer.End(42, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(report.Phases))
	}
	if report.Phases[0].Name != "compile" || report.Phases[0].Note != "3 segments" {
		t.Errorf("first phase = %+v", report.Phases[0])
	}
	summary := timer.Summary()
	for _, want := range []string{"timings:", "compile", "match", "total", "// 3 segments"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

func TestTimer_Nil(t *testing.T) {
	var timer *Timer
	done := timer.Track("x")
	done("y")
	if len(timer.Report().Phases) != 0 {
		t.Fatal("nil timer recorded phases")
	}
}
