// Package htmlimport turns pasted HTML form markup into field descriptors.
// Input is sanitised down to form markup before it is parsed.
package htmlimport
