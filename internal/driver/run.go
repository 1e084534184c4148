package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"errfmt/internal/diag"
	"errfmt/internal/observ"
	"errfmt/internal/template"
	"errfmt/internal/trace"
)

// Input is one stream of tool output.
type Input struct {
	Name   string
	Reader io.Reader
}

// Stats counts what happened to the input lines.
type Stats struct {
	Inputs  int
	Lines   int
	Matched int
	// Reported counts diagnostics handed to the bag after the warning
	// policy and dedup, including ones the bag cap then dropped.
	Reported int
}

// Result содержит результат прогона шаблона по входу
type Result struct {
	Bag   *diag.Bag
	Stats Stats
	// Timer is nil unless Options.EnableTimings was set.
	Timer *observ.Timer
}

// Run matches every line of r against tpl.
func Run(ctx context.Context, tpl *template.Template, r io.Reader, opts Options) (*Result, error) {
	return RunInputs(ctx, tpl, []Input{{Name: StdinName, Reader: r}}, opts)
}

// RunFiles opens the given paths with OpenInputs and processes them in
// order; "-" reads os.Stdin.
func RunFiles(ctx context.Context, tpl *template.Template, paths []string, opts Options) (*Result, error) {
	inputs, closeAll, err := OpenInputs(paths, os.Stdin)
	if err != nil {
		return nil, err
	}
	defer closeAll()
	return RunInputs(ctx, tpl, inputs, opts)
}

// RunInputs processes inputs in order; diagnostics keep input order. The
// limit, dedup and warning policy apply across all inputs.
func RunInputs(ctx context.Context, tpl *template.Template, inputs []Input, opts Options) (*Result, error) {
	if tpl == nil {
		return nil, errors.New("nil template")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tr := trace.FromContext(ctx)
	runSpan := trace.Begin(tr, trace.ScopeDriver, "run", trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, runSpan)

	res := &Result{Bag: diag.NewBag(opts.MaxDiagnostics)}
	if opts.EnableTimings {
		res.Timer = observ.NewTimer()
	}

	// policy -> dedup -> counter -> bag
	counting := &countingReporter{next: diag.BagReporter{Bag: res.Bag}}
	var reporter diag.Reporter = counting
	if opts.Dedup {
		reporter = diag.NewDedupReporter(reporter)
	}
	reporter = diag.FilterReporter{Next: reporter, Policy: opts.policy()}

	for i, in := range inputs {
		emit(opts.Progress, Event{Index: i, Input: in.Name, Status: StatusQueued})
	}
	for i, in := range inputs {
		if err := runInput(ctx, tpl, i, in, opts, res, reporter); err != nil {
			trace.Error(tr, "input:"+in.Name, err)
			runSpan.End("failed")
			return nil, err
		}
	}
	res.Stats.Reported = counting.n

	runSpan.WithExtra("lines", strconv.Itoa(res.Stats.Lines)).
		WithExtra("matched", strconv.Itoa(res.Stats.Matched)).
		WithExtra("reported", strconv.Itoa(res.Bag.Len()))
	runSpan.End("")
	return res, nil
}

func runInput(ctx context.Context, tpl *template.Template, index int, in Input, opts Options, res *Result, reporter diag.Reporter) error {
	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeInput, "input:"+in.Name, trace.CurrentSpan(ctx))
	defer span.End("")
	start := time.Now()
	fail := func(stage Stage, err error) error {
		emit(opts.Progress, Event{Index: index, Input: in.Name, Stage: stage, Status: StatusError, Err: err, Elapsed: time.Since(start)})
		return err
	}

	emit(opts.Progress, Event{Index: index, Input: in.Name, Stage: StageRead, Status: StatusWorking})
	doneRead := res.Timer.Track("read")
	readSpan := trace.Begin(tr, trace.ScopeStage, "read", span.ID())
	lines, err := ReadLines(in.Reader)
	readSpan.WithExtra("lines", strconv.Itoa(len(lines))).End("")
	doneRead(in.Name)
	if err != nil {
		return fail(StageRead, fmt.Errorf("%s: %w", in.Name, err))
	}

	emit(opts.Progress, Event{Index: index, Input: in.Name, Stage: StageMatch, Status: StatusWorking, Lines: len(lines)})
	doneMatch := res.Timer.Track("match")
	matchSpan := trace.Begin(tr, trace.ScopeStage, "match", span.ID())
	results, err := matchLines(ctx, tpl, lines, opts.jobs())
	if err != nil {
		matchSpan.End("cancelled")
		return fail(StageMatch, err)
	}

	lineTrace := tr.Level().ShouldEmit(trace.ScopeLine)
	matched := 0
	for i, r := range results {
		if lineTrace {
			outcome := "no match"
			if r.ok {
				outcome = "match"
			}
			trace.Point(tr, trace.ScopeLine, "line:"+strconv.Itoa(i+1), outcome, matchSpan.ID())
		}
		if !r.ok {
			continue
		}
		matched++
		reporter.Report(r.d)
	}
	matchSpan.WithExtra("matched", strconv.Itoa(matched)).End("")
	doneMatch(strconv.Itoa(matched) + "/" + strconv.Itoa(len(lines)) + " lines")

	res.Stats.Inputs++
	res.Stats.Lines += len(lines)
	res.Stats.Matched += matched
	emit(opts.Progress, Event{
		Index:   index,
		Input:   in.Name,
		Stage:   StageMatch,
		Status:  StatusDone,
		Elapsed: time.Since(start),
		Lines:   len(lines),
		Matched: matched,
	})
	return nil
}

// countingReporter counts diagnostics that reach the bag.
type countingReporter struct {
	next diag.Reporter
	n    int
}

func (r *countingReporter) Report(d diag.Diagnostic) {
	r.n++
	r.next.Report(d)
}
