// Package driver runs a compiled template over tool output.
//
// It owns everything between "template compiled" and "diagnostics ready to
// render": splitting input into lines, matching them (optionally in parallel
// while keeping input order), applying the warning policy, de-duplication and
// the diagnostic limit. It does no formatting.
package driver
