package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	// GitCommit and BuildDate can be empty (optional)
	_ = GitCommit
	_ = BuildDate
}

func TestColorize_Plain(t *testing.T) {
	prevNoColor := color.NoColor
	t.Cleanup(func() { color.NoColor = prevNoColor })
	color.NoColor = true

	tests := []string{"0.1.0", "0.1.0-dev", "1.2.3-rc.1+build.123", "nightly", "1.2"}
	for _, v := range tests {
		if got := Colorize(v); got != v {
			t.Errorf("Colorize(%q) = %q, want it unchanged", v, got)
		}
	}
}

func TestColorize_Enabled(t *testing.T) {
	prevNoColor := color.NoColor
	t.Cleanup(func() { color.NoColor = prevNoColor })
	color.NoColor = false

	got := Colorize("1.2.3-rc.1")
	if got == "1.2.3-rc.1" || !strings.HasSuffix(got, "-rc.1") {
		t.Fatalf("unexpected colored version %q", got)
	}
	if Colorize("nightly") != "nightly" {
		t.Fatal("non-semver strings must stay plain")
	}
}

func TestCommit_PrefersLinkerValue(t *testing.T) {
	prev := GitCommit
	t.Cleanup(func() { GitCommit = prev })
	GitCommit = " abc123 "
	if got := Commit(); got != "abc123" {
		t.Fatalf("Commit() = %q, want abc123", got)
	}
}

func TestColored_Enabled(t *testing.T) {
	prevNoColor := color.NoColor
	t.Cleanup(func() { color.NoColor = prevNoColor })
	color.NoColor = false

	if got := Colored(); got == Version {
		t.Fatalf("expected ANSI sequences in %q", got)
	}
}
