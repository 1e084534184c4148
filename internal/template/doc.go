// Package template compiles errorformat strings such as
//
//	%k: %m in %f on line %l
//
// into an immutable Template: an ordered list of literal and placeholder
// segments consumed by package match.
//
// # Grammar
//
//	format      = { literal | placeholder | escape } ;
//	placeholder = "%" ( "f" | "l" | "c" | "k" | "m" ) ;
//	escape      = "%%" ;
//
// Any other character after '%', and a '%' at the very end of the string,
// fail with InvalidPlaceholder. Every field may appear at most once; a
// repeat fails with DuplicatePlaceholder. The duplicate check runs as a
// separate pass after scanning, so the error always points at the second
// occurrence regardless of which field was seen first.
//
// Adjacent literal text (including escaped percent signs) is merged into a
// single Literal segment. A compiled Template is read-only and safe to share
// between goroutines.
package template
