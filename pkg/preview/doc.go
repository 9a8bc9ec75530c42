// Package preview binds a field list to live values. It tracks one value and
// one error flag per field id, evaluates conditional visibility on every read,
// and validates required fields on submit. Hidden fields are never validated.
package preview
