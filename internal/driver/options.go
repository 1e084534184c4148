package driver

import (
	"fmt"
	"runtime"

	"fortio.org/safecast"

	"errfmt/internal/diag"
)

// Options controls a run.
type Options struct {
	// MaxDiagnostics caps the bag; 0 means unlimited.
	MaxDiagnostics int
	IgnoreWarnings bool
	// WarningsAsErrors rewrites warning kinds to "error".
	WarningsAsErrors bool
	// Dedup drops diagnostics identical to an earlier one.
	Dedup bool
	// Jobs is the number of matching workers; 0 picks GOMAXPROCS, 1 matches
	// sequentially.
	Jobs          int
	EnableTimings bool
	// Progress receives per-input events; nil disables reporting.
	Progress ProgressSink
}

func (o Options) validate() error {
	if o.IgnoreWarnings && o.WarningsAsErrors {
		return fmt.Errorf("ignoring warnings and treating warnings as errors are mutually exclusive")
	}
	if _, err := safecast.Conv[uint](o.MaxDiagnostics); err != nil {
		return fmt.Errorf("invalid max diagnostics %d: %w", o.MaxDiagnostics, err)
	}
	if _, err := safecast.Conv[uint](o.Jobs); err != nil {
		return fmt.Errorf("invalid jobs %d: %w", o.Jobs, err)
	}
	return nil
}

func (o Options) jobs() int {
	if o.Jobs <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Jobs
}

func (o Options) policy() diag.WarningPolicy {
	switch {
	case o.IgnoreWarnings:
		return diag.WarningsDrop
	case o.WarningsAsErrors:
		return diag.WarningsAsErrors
	}
	return diag.WarningsKeep
}
