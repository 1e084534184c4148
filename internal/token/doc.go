// Package token defines the placeholder fields an errorformat template can
// capture.
// Invariants:
//   - Each Field has exactly one placeholder letter (f, l, c, k, m).
//   - Letters are case-sensitive; %F is not %f.
//   - FieldSet is a value type; the zero value is the empty set.
package token
