package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"errfmt/internal/diag"
)

// Pretty форматирует диагностики в человекочитаемый вид:
//
//	<path>:<line>:<col>  <SEV>  <message>
//
// Locations are padded to a common display width; messages are cut to
// opts.Width. A summary line follows the listing.
func Pretty(w io.Writer, bag *diag.Bag, opts Opts) error {
	entries := Entries(bag, opts)
	bw := bufio.NewWriter(w)

	renderer := lipgloss.NewRenderer(bw)
	if opts.Color {
		renderer.SetColorProfile(termenv.ANSI)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	locs := make([]string, len(entries))
	locWidth := 0
	for i, e := range entries {
		locs[i] = fmt.Sprintf("%s:%d:%d", e.File, e.Line, e.Column)
		locWidth = max(locWidth, runewidth.StringWidth(locs[i]))
	}

	const sevWidth = len("WARNING")
	var errors, warnings int
	for i, e := range entries {
		switch e.Kind {
		case "error":
			errors++
		case "warning":
			warnings++
		}
		loc := runewidth.FillRight(locs[i], locWidth)
		sev := styleSeverity(renderer, e.Kind).Render(padRight(e.Severity, sevWidth))
		msg := e.Message
		if opts.Width > 0 {
			msg = truncate(msg, opts.Width-locWidth-sevWidth-4)
		}
		if _, err := fmt.Fprintf(bw, "%s  %s  %s\n", renderer.NewStyle().Bold(true).Render(loc), sev, msg); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(bw, summary(len(entries), errors, warnings)); err != nil {
		return err
	}
	return bw.Flush()
}

func styleSeverity(r *lipgloss.Renderer, kind string) lipgloss.Style {
	switch kind {
	case "error":
		return r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	case "warning":
		return r.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	default:
		return r.NewStyle().Foreground(lipgloss.Color("6"))
	}
}

func summary(total, errors, warnings int) string {
	if total == 0 {
		return "no diagnostics"
	}
	parts := []string{plural(total, "diagnostic")}
	if errors > 0 {
		parts = append(parts, plural(errors, "error"))
	}
	if warnings > 0 {
		parts = append(parts, plural(warnings, "warning"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	tail := "..."
	if width <= len(tail) {
		tail = ""
	}
	// ширина хвоста входит в width
	return runewidth.Truncate(value, width, tail)
}
