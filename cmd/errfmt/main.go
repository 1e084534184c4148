package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"errfmt/internal/version"
)

// errSilentExit ends the process with status 1 without printing anything;
// the diagnostics themselves are the report.
var errSilentExit = errors.New("")

var rootCmd = &cobra.Command{
	Use:   "errfmt [flags] [file...]",
	Short: "Reshape compiler and linter output into editor diagnostics",
	Long: `errfmt reads tool output line by line, extracts file, line, column, kind
and message with a %-placeholder template and re-emits every matching line as
file:line:column: kind: message. Lines that do not match are dropped.

Placeholders: %f file, %l line, %c column, %k kind, %m message, %% literal %.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runFilter,
}

// main wires the command tree, runs it and maps failures to exit status 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics to keep (0=unlimited)")
	rootCmd.PersistentFlags().String("config", "", "path to .errfmt.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errSilentExit) {
			printError(err)
		}
		os.Exit(1)
	}
}

func printError(err error) {
	label := color.New(color.FgRed, color.Bold)
	if !isTerminal(os.Stderr) {
		label.DisableColor()
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", label.Sprint("error:"), err)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the column count of f, or 0 when f is not a terminal.
func terminalWidth(f *os.File) int {
	if !isTerminal(f) {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}
