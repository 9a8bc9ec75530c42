package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	internalLoader "github.com/goliatone/go-formbuilder/internal/definition/loader"
	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	"github.com/goliatone/go-formbuilder/pkg/renderers/markup"
	"github.com/goliatone/go-formbuilder/pkg/renderers/openapi"
	"github.com/goliatone/go-formbuilder/pkg/renderers/schema"
)

const defaultRendererName = "html"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom definition loader.
func WithLoader(loader definition.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithRegistry injects a renderer registry. The built-in renderers are not
// registered into it.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithMarkupOptions configures the built-in html and html-styled renderers.
func WithMarkupOptions(opts ...markup.Option) Option {
	return func(o *Orchestrator) {
		o.markupOptions = append(o.markupOptions, opts...)
	}
}

// WithTransformer registers a Transformer that can rewrite the form after it
// is resolved and before it is rendered.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithLogger sets the logger for pipeline events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator coordinates the pipeline from a definition (or an in-memory
// form) to rendered output.
type Orchestrator struct {
	loader          definition.Loader
	registry        *render.Registry
	defaultRenderer string
	markupOptions   []markup.Option
	transformer     Transformer
	logger          *slog.Logger
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one render.
type Request struct {
	// Source identifies where the definition lives.
	Source definition.Source

	// Document bypasses the loader.
	Document *definition.Document

	// Form bypasses loading and parsing entirely. It takes precedence over
	// Document and Source.
	Form *model.Form

	// Renderer names the renderer to use. Empty selects the default.
	Renderer string

	// RenderOptions carries per-request overrides (action, method, values).
	RenderOptions render.RenderOptions
}

// Registry exposes the renderer registry so callers can add renderers.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

// Renderers lists the registered renderer names.
func (o *Orchestrator) Renderers() []string {
	if o.registry == nil {
		return nil
	}
	return o.registry.List()
}

// Resolve returns the validated form a request refers to, with the
// transformer applied.
func (o *Orchestrator) Resolve(ctx context.Context, req Request) (model.Form, error) {
	if ctx == nil {
		return model.Form{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return model.Form{}, err
	}
	if err := o.initialiseErr; err != nil {
		return model.Form{}, err
	}

	form, err := o.resolveForm(ctx, req)
	if err != nil {
		return model.Form{}, err
	}

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &form); err != nil {
			return model.Form{}, fmt.Errorf("orchestrator: transform form: %w", err)
		}
		if err := model.ValidateFields(form.Fields); err != nil {
			return model.Form{}, fmt.Errorf("orchestrator: transformed form: %w", err)
		}
	}

	if _, collisions := model.ExportNames(form.Fields); len(collisions) > 0 {
		for _, col := range collisions {
			o.logger.Warn("labels share an export name; suffixes applied", "token", col.Token, "fields", col.FieldIDs)
		}
	}
	return form, nil
}

// Generate resolves the form and renders it with the requested renderer.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("rendering form", "renderer", renderer.Name(), "fields", len(form.Fields))
	output, err := renderer.Render(ctx, form, req.RenderOptions)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) resolveForm(ctx context.Context, req Request) (model.Form, error) {
	if req.Form != nil {
		form := req.Form.Clone()
		if err := model.ValidateFields(form.Fields); err != nil {
			return model.Form{}, fmt.Errorf("orchestrator: invalid form: %w", err)
		}
		return form, nil
	}

	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return model.Form{}, err
	}
	form, err := definition.Parse(doc)
	if err != nil {
		return model.Form{}, fmt.Errorf("orchestrator: parse definition: %w", err)
	}
	return form, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (definition.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return definition.Document{}, errors.New("orchestrator: source, document or form is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return definition.Document{}, fmt.Errorf("orchestrator: load definition: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	return o.registry.Get(names[0])
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.loader == nil {
		o.loader = internalLoader.New(definition.NewLoaderOptions())
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.registry != nil {
		return
	}

	o.registry = render.NewRegistry()
	if err := RegisterBuiltins(o.registry, o.markupOptions...); err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: default renderers: %w", err)
	}
}

// RegisterBuiltins adds the schema, html, html-styled, openapi and
// openapi-yaml renderers to registry.
func RegisterBuiltins(registry *render.Registry, markupOptions ...markup.Option) error {
	plain, err := markup.New(append(append([]markup.Option(nil), markupOptions...), markup.WithStyled(false))...)
	if err != nil {
		return err
	}
	styled, err := markup.New(append(append([]markup.Option(nil), markupOptions...), markup.WithStyled(true))...)
	if err != nil {
		return err
	}

	for _, r := range []render.Renderer{
		schema.New(),
		plain,
		styled,
		openapi.New(openapi.FormatJSON),
		openapi.New(openapi.FormatYAML),
	} {
		if err := registry.Register(r); err != nil {
			return err
		}
	}
	return nil
}
