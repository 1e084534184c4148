// Package match applies a compiled template to one line of tool output.
//
// Matching walks the template's segments with a single cursor:
//
//   - Literal segments must appear verbatim at the cursor.
//   - %l and %c take the maximal run of ASCII digits (at least one).
//   - %f and %k take the shortest non-empty run after which the next
//     literal matches. Directly followed by another placeholder they take
//     exactly one rune; two adjacent free-text fields cannot be told apart
//     and this rule keeps the outcome deterministic.
//   - %m is greedy. As the final segment, or directly followed by a
//     placeholder, it takes the rest of the line. Followed by a literal it
//     takes the span up to the rightmost occurrence of that literal for
//     which the remaining segments also match.
//   - Any other final placeholder takes the rest of the line, possibly empty.
//
// A template without a trailing free-text placeholder must account for the
// whole line. A line that does not fit is not an error: Match reports false
// and the caller moves on.
package match
