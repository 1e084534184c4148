package match

import (
	"strings"
	"unicode/utf8"

	"errfmt/internal/diag"
	"errfmt/internal/template"
	"errfmt/internal/token"
)

// Match applies t to line and returns the extracted diagnostic.
// The boolean is false when the line does not have the template's shape.
func Match(t *template.Template, line string) (diag.Diagnostic, bool) {
	caps, ok := MatchCaptures(t, line)
	if !ok {
		return diag.Diagnostic{}, false
	}
	return caps.Diagnostic(), true
}

// MatchCaptures is like Match but returns the raw captured text.
func MatchCaptures(t *template.Template, line string) (Captures, bool) {
	if t == nil {
		return Captures{}, false
	}
	m := matcher{tpl: t, line: line}
	return m.from(0, 0, Captures{})
}

type matcher struct {
	tpl  *template.Template
	line string
}

// from matches segments i.. starting at byte offset pos.
func (m *matcher) from(i, pos int, caps Captures) (Captures, bool) {
	n := m.tpl.Len()
	for ; i < n; i++ {
		seg := m.tpl.Segment(i)
		rest := m.line[pos:]

		if seg.IsLiteral() {
			if !strings.HasPrefix(rest, seg.Text) {
				return Captures{}, false
			}
			pos += len(seg.Text)
			continue
		}

		switch {
		case seg.Field == token.Message:
			return m.message(i, pos, caps)

		case seg.Field.Numeric():
			// цифры сами себя ограничивают, lookahead не нужен
			width := digitRun(rest)
			if width == 0 {
				return Captures{}, false
			}
			caps.put(seg.Field, rest[:width])
			pos += width

		case m.tpl.IsLast(i):
			caps.put(seg.Field, rest)
			return caps, true

		default:
			width, ok := m.shortest(i, rest)
			if !ok {
				return Captures{}, false
			}
			caps.put(seg.Field, rest[:width])
			pos += width
		}
	}
	return caps, pos == len(m.line)
}

// shortest returns the width of the shortest non-empty capture for the
// free-text placeholder at i such that the following literal matches right
// after it. Without a following literal the capture is exactly one rune.
func (m *matcher) shortest(i int, rest string) (int, bool) {
	if rest == "" {
		return 0, false
	}
	next, ok := m.tpl.NextLiteral(i)
	if !ok {
		_, size := utf8.DecodeRuneInString(rest)
		return size, true
	}
	for end := 0; end < len(rest); {
		_, size := utf8.DecodeRuneInString(rest[end:])
		end += size
		if strings.HasPrefix(rest[end:], next) {
			return end, true
		}
	}
	return 0, false
}

// message captures %m greedily. When a literal follows, candidate ends are
// tried from the rightmost occurrence of that literal leftwards until the
// remaining segments match. Only the rightmost candidate is matched
// directly; the others are resolved through tailTable, so the whole search
// stays linear in the line length.
func (m *matcher) message(i, pos int, caps Captures) (Captures, bool) {
	rest := m.line[pos:]
	next, ok := m.tpl.NextLiteral(i)
	if !ok {
		caps.put(token.Message, rest)
		return caps, true
	}

	end := strings.LastIndex(rest, next)
	if end < 0 {
		return Captures{}, false
	}
	attempt := caps
	attempt.put(token.Message, rest[:end])
	if out, ok := m.from(i+1, pos+end, attempt); ok {
		return out, true
	}

	tail := m.tailTable(i + 1)
	for p := pos + end - 1; p >= pos; p-- {
		if tail[p] {
			caps.put(token.Message, m.line[pos:p])
			return m.from(i+1, p, caps)
		}
	}
	return Captures{}, false
}

// tailTable reports for every offset p in [0, len(line)] whether segments
// i.. match line[p:] exactly as from would. Segments i.. contain no %m, so
// each segment resolves deterministically and one right-to-left pass per
// segment is enough.
func (m *matcher) tailTable(i int) []bool {
	n := len(m.line)
	next := make([]bool, n+1)
	next[n] = true
	cur := make([]bool, n+1)
	for j := m.tpl.Len() - 1; j >= i; j-- {
		m.fillLayer(j, cur, next)
		cur, next = next, cur
	}
	return next
}

// fillLayer computes cur for segment j from next, the table of segment j+1.
func (m *matcher) fillLayer(j int, cur, next []bool) {
	line := m.line
	n := len(line)
	seg := m.tpl.Segment(j)

	switch {
	case seg.IsLiteral():
		for p := 0; p <= n; p++ {
			end := p + len(seg.Text)
			cur[p] = end <= n && line[p:end] == seg.Text && next[end]
		}

	case seg.Field.Numeric():
		cur[n] = false
		run := 0
		for p := n - 1; p >= 0; p-- {
			if isDigit(line[p]) {
				run++
			} else {
				run = 0
			}
			cur[p] = run > 0 && next[p+run]
		}

	case m.tpl.IsLast(j):
		for p := range cur {
			cur[p] = true
		}

	default:
		cur[n] = false
		lit, ok := m.tpl.NextLiteral(j)
		if !ok {
			for p := n - 1; p >= 0; p-- {
				_, size := utf8.DecodeRuneInString(line[p:])
				cur[p] = next[p+size]
			}
			return
		}
		// found[q % len] is true when the first occurrence of lit on the rune
		// chain starting at q is followed by a match of the next segments.
		// A rune step is at most utf8.UTFMax bytes, so a small ring suffices.
		var found [utf8.UTFMax + 1]bool
		for p := n - 1; p >= 0; p-- {
			_, size := utf8.DecodeRuneInString(line[p:])
			step := found[(p+size)%len(found)]
			if p+size == n {
				step = false
			}
			cur[p] = step
			if strings.HasPrefix(line[p:], lit) {
				found[p%len(found)] = next[p]
			} else {
				found[p%len(found)] = step
			}
		}
	}
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func digitRun(s string) int {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}
	return n
}
