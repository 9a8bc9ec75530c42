// Package builder holds the mutable field list behind the form editor. It
// assigns ids, applies typed or RFC 6902 updates, imports pasted markup and
// notifies subscribers with a consistent snapshot after each change.
package builder
