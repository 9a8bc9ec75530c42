// Package definition loads form definitions, the JSON or YAML documents that
// persist a field list, and describes their format as JSON Schema.
//
// A definition is either an object
//
//	{"title": "Contact", "fields": [{"id": "1", "type": "text", "label": "Name"}]}
//
// or the bare fields array. Loading is split between Source/Document values
// defined here and the Loader implementation in internal/definition/loader,
// constructed through formbuilder.NewLoader.
package definition
