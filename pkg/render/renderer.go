package render

import (
	"context"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Renderer converts a form snapshot into a byte representation (JSON schema
// fragment, HTML document, OpenAPI description, terminal submission).
// Implementations must treat the form as read-only.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.Form, options RenderOptions) ([]byte, error)
}
