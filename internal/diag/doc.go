// Package diag defines the diagnostic record extracted from one line of tool
// output, plus light-weight collection utilities.
//
// # Data model
//
// Diagnostic holds the raw captures of a matched line:
//
//   - File, Kind, Message – captured text, verbatim.
//   - Line, Column – parsed decimal captures; zero and overflow values are
//     passed through unvalidated (overflow saturates at math.MaxUint64).
//   - Fields – the set of fields the template actually captured, so a
//     captured "0" is distinguishable from an absent value.
//
// Severity is derived from Kind on demand (see ParseSeverity); the raw Kind
// text is never rewritten.
//
// # Emitting diagnostics
//
// Producers report through a Reporter. BagReporter collects into a capped
// Bag, DedupReporter drops exact repeats, FilterReporter applies the
// warning policy (--no-warnings / --warnings-as-errors).
//
// Package diag does no formatting or IO; rendering lives in internal/diagfmt.
package diag
