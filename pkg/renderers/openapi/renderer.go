package openapi

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Format selects the encoding of rendered documents.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Renderer exposes Export through the render registry.
type Renderer struct {
	format Format
	opts   []Option
}

var _ render.Renderer = (*Renderer)(nil)

// New returns a renderer that encodes documents in format (JSON when empty).
func New(format Format, opts ...Option) *Renderer {
	if format == "" {
		format = FormatJSON
	}
	return &Renderer{format: format, opts: opts}
}

// Name reports "openapi" or "openapi-yaml".
func (r *Renderer) Name() string {
	if r.format == FormatYAML {
		return "openapi-yaml"
	}
	return "openapi"
}

// ContentType reports the MIME type of the encoding.
func (r *Renderer) ContentType() string {
	if r.format == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Render exports form and encodes the document. options.Action overrides the
// configured submit endpoint.
func (r *Renderer) Render(ctx context.Context, form model.Form, options render.RenderOptions) ([]byte, error) {
	opts := append([]Option(nil), r.opts...)
	if options.Action != "" {
		opts = append(opts, WithAction(options.Action))
	}
	doc, err := Export(ctx, form, opts...)
	if err != nil {
		return nil, err
	}

	if r.format == FormatYAML {
		out, err := yaml.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("openapi: encode yaml: %w", err)
		}
		return out, nil
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("openapi: encode json: %w", err)
	}
	return out, nil
}
