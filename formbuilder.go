package formbuilder

import (
	"context"
	"io/fs"

	internalLoader "github.com/goliatone/go-formbuilder/internal/definition/loader"
	"github.com/goliatone/go-formbuilder/pkg/builder"
	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/preview"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/markup"
	"github.com/goliatone/go-formbuilder/pkg/renderers/schema"
)

// Field is the editable form field record.
type Field = model.Field

// Form pairs an ordered field list with an optional title.
type Form = model.Form

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or change the submission target.
type RenderOptions = render.RenderOptions

// NewLoader constructs a definition loader using the internal implementation
// while keeping the concrete type hidden from consumers.
func NewLoader(options ...definition.LoaderOption) definition.Loader {
	return internalLoader.New(definition.NewLoaderOptions(options...))
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewBuilder creates an editing session seeded with the given fields.
func NewBuilder(fields []Field, options ...builder.Option) (*builder.Controller, error) {
	return builder.New(append([]builder.Option{builder.WithFields(fields)}, options...)...)
}

// NewPreview creates an interactive preview over fields.
func NewPreview(fields []Field, options ...preview.Option) *preview.Preview {
	return preview.New(fields, options...)
}

// Generate loads the definition at source and renders it with the named
// renderer. An empty name selects the html renderer.
func Generate(ctx context.Context, source definition.Source, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Source:   source,
		Renderer: rendererName,
	})
}

// GenerateFromDocument renders a pre-loaded document, bypassing the loader.
func GenerateFromDocument(ctx context.Context, doc definition.Document, rendererName string, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Document: &doc,
		Renderer: rendererName,
	})
}

// GenerateSchema returns the indented JSON schema records for fields.
func GenerateSchema(fields []Field) ([]byte, error) {
	return schema.Marshal(schema.Generate(fields))
}

// GenerateMarkup returns the HTML for fields, either as a bare form or as a
// complete styled document.
func GenerateMarkup(fields []Field, styled bool, options ...markup.Option) (string, error) {
	return markup.Generate(fields, styled, options...)
}

// EmbeddedTemplates exposes the built-in markup templates so callers can copy
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return markup.TemplatesFS()
}

// AssetsFS exposes the stylesheet inlined into styled documents so
// applications can serve it separately.
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formbuilder.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return markup.AssetsFS()
}
