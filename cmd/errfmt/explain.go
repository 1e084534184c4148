package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"errfmt/internal/template"
	"errfmt/internal/token"
)

var explainCmd = &cobra.Command{
	Use:   "explain <template>",
	Short: "Show how a template is split into literals and placeholders",
	Long: `Compile a template and print its segments in matching order. An invalid
template is printed with a caret under the offending placeholder.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		colorOn, err := useColor(cmd)
		if err != nil {
			return err
		}
		if !renderExplain(cmd.OutOrStdout(), args[0], colorOn) {
			return errSilentExit
		}
		return nil
	},
}

type explainPalette struct {
	field   *color.Color
	literal *color.Color
	err     *color.Color
	caret   *color.Color
}

func newExplainPalette(enabled bool) explainPalette {
	p := explainPalette{
		field:   color.New(color.FgCyan, color.Bold),
		literal: color.New(color.FgGreen),
		err:     color.New(color.FgRed, color.Bold),
		caret:   color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.field, p.literal, p.err, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// renderExplain writes the segment table for format, or the compile error
// with a caret. It reports whether format compiled.
func renderExplain(out io.Writer, format string, colorOn bool) bool {
	p := newExplainPalette(colorOn)

	tpl, err := template.Compile(format)
	if err != nil {
		var te *template.Error
		if !errors.As(err, &te) {
			fmt.Fprintf(out, "%s %v\n", p.err.Sprint("error:"), err)
			return false
		}
		fmt.Fprintf(out, "%s %s\n", p.err.Sprint("error["+te.Code.ID()+"]:"), te.Code.Title())
		fmt.Fprintf(out, "  %s\n", format)
		pad := runewidth.StringWidth(format[:te.Offset])
		marks := max(runewidth.StringWidth(te.Text), 1)
		fmt.Fprintf(out, "  %s%s %s\n", strings.Repeat(" ", pad), p.caret.Sprint(strings.Repeat("^", marks)), err.Error())
		return false
	}

	fmt.Fprintf(out, "template: %s\n", tpl.String())
	if tpl.Len() == 0 {
		fmt.Fprintln(out, "  (empty: matches only empty lines)")
		return true
	}
	for i, seg := range tpl.Segments() {
		idx := strconv.Itoa(i)
		if seg.IsLiteral() {
			fmt.Fprintf(out, "  %2s  %-8s %s\n", idx, "literal", p.literal.Sprint(strconv.Quote(seg.Text)))
			continue
		}
		fmt.Fprintf(out, "  %2s  %-8s %s %s\n", idx, seg.Field.String(), p.field.Sprint(seg.Field.Placeholder()), captureRule(tpl, i))
	}
	return true
}

// captureRule describes how the placeholder at i consumes the line.
func captureRule(tpl *template.Template, i int) string {
	seg := tpl.Segment(i)
	next, hasNext := tpl.NextLiteral(i)
	switch {
	case seg.Field.Numeric():
		return "digits"
	case seg.Field == token.Message && hasNext:
		return "greedy, up to the last " + strconv.Quote(next) + " that lets the rest match"
	case seg.Field == token.Message:
		return "rest of line"
	case tpl.IsLast(i):
		return "rest of line"
	case hasNext:
		return "shortest, up to " + strconv.Quote(next)
	}
	return "one character"
}
