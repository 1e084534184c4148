package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"errfmt/internal/diagfmt"
	"errfmt/internal/driver"
	"errfmt/internal/observ"
	"errfmt/internal/template"
	"errfmt/internal/trace"
	"errfmt/internal/version"
)

// init registers the filter flags on the root command used by runFilter.
func init() {
	rootCmd.Flags().StringP("errfmt", "e", "", "template, e.g. '%f:%l:%c: %k: %m'")
	rootCmd.Flags().StringP("preset", "p", "", "named template (see 'errfmt presets')")
	rootCmd.Flags().StringP("file", "f", "", "file name for diagnostics whose template has no %f")
	rootCmd.Flags().Bool("force-file", false, "use --file even when a file name was extracted")
	rootCmd.Flags().String("format", "kak", "output format (kak|json|msgpack|sarif|pretty)")
	rootCmd.Flags().Int("jobs", 0, "max parallel matching workers (0=auto, 1=sequential)")
	rootCmd.Flags().Int("width", 0, "truncate pretty output to this many columns (0=terminal width or unlimited)")
	rootCmd.Flags().Bool("no-warnings", false, "drop warnings and notes")
	rootCmd.Flags().Bool("warnings-as-errors", false, "report warnings as errors")
	rootCmd.Flags().Bool("fail-on-error", false, "exit with status 1 when an error diagnostic was emitted")
	rootCmd.Flags().Bool("dedup", false, "drop diagnostics identical to an earlier one")
	rootCmd.Flags().String("ui", "auto", "progress UI on stderr for file inputs (auto|on|off)")
}

// runFilter is the root command: compile the template, match every input
// line and write the diagnostics. An invalid template fails before any input
// is read.
func runFilter(cmd *cobra.Command, args []string) error {
	cleanupTrace, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanupTrace()

	cleanupProf, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer cleanupProf()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ff, err := readFilterFlags(cmd)
	if err != nil {
		return err
	}
	st, err := mergeSettings(cfg, ff)
	if err != nil {
		return err
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}

	doneCompile := timer.Track("compile")
	tpl, err := template.Compile(st.template)
	if err != nil {
		return fmt.Errorf("%s: %w", st.origin, err)
	}
	doneCompile(fmt.Sprintf("%d segments", tpl.Len()))

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	color, err := useColor(cmd)
	if err != nil {
		return err
	}
	if st.width == 0 && st.format == diagfmt.FormatPretty {
		st.width = terminalWidth(os.Stdout)
	}

	ctx := cmd.Context()
	trace.Point(trace.FromContext(ctx), trace.ScopeDriver, "template", st.origin+": "+tpl.String(), trace.CurrentSpan(ctx))

	inputs, closeInputs, err := driver.OpenInputs(args, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer closeInputs()

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	withUI := !quiet && shouldUseUI(mode, args, isTerminal(os.Stderr))

	res, err := filter(ctx, tpl, inputs, st, showTimings, withUI)
	if err != nil {
		return err
	}

	opts := diagfmt.Opts{
		File:      st.file,
		ForceFile: st.forceFile,
		Color:     color,
		Width:     st.width,
	}
	meta := diagfmt.SarifRunMeta{
		ToolName:       "errfmt",
		ToolVersion:    version.Version,
		Template:       tpl.String(),
		InvocationArgs: os.Args[1:],
	}
	timer.Merge(res.Timer)
	doneRender := timer.Track("render")
	if err := diagfmt.Write(cmd.OutOrStdout(), res.Bag, st.format, opts, meta); err != nil {
		return fmt.Errorf("failed to write diagnostics: %w", err)
	}
	doneRender(st.format.String())

	errOut := cmd.ErrOrStderr()
	if showTimings {
		printTimings(errOut, timer)
	}
	if !quiet && res.Bag.Dropped() > 0 {
		fmt.Fprintf(errOut, "errfmt: %d diagnostics dropped (limit %d)\n", res.Bag.Dropped(), res.Bag.Cap())
	}

	if st.failOnError && res.Bag.HasErrors() {
		return errSilentExit
	}
	return nil
}

// filter runs the driver with the effective settings.
func filter(ctx context.Context, tpl *template.Template, inputs []driver.Input, st filterSettings, timings, withUI bool) (*driver.Result, error) {
	opts := driver.Options{
		MaxDiagnostics:   st.maxDiagnostics,
		IgnoreWarnings:   st.noWarnings,
		WarningsAsErrors: st.warningsAsErrors,
		Dedup:            st.dedup,
		Jobs:             st.jobs,
		EnableTimings:    timings,
	}
	if withUI {
		return runWithUI(ctx, tpl, inputs, opts)
	}
	return driver.RunInputs(ctx, tpl, inputs, opts)
}
