// Package model exposes the field descriptors the builder edits and every
// generator consumes. A Form is an ordered list of Field values; each field
// has a stable id, a type from a closed set, a label whose sanitised form is
// the field's export name, and optional type-specific attributes (options,
// accept filter, reCAPTCHA site key). ShowWhen makes a field conditional on
// the current value of a select field. The implementation lives in
// internal/model; this package re-exports it.
package model
