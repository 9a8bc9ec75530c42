// Package orchestrator wires the loader → definition parser → transformer →
// renderer pipeline behind a single Generate call. The built-in registry
// carries the schema, html, html-styled, openapi and openapi-yaml renderers.
package orchestrator
