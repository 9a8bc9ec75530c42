package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Transformer mutates a form after it is resolved and before it is rendered.
type Transformer interface {
	Transform(ctx context.Context, form *model.Form) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, form *model.Form) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, form *model.Form) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, form)
}

// PresetTransformer applies declarative overrides loaded from a JSON or YAML
// document. Fields are addressed by id or by export name:
//
//	title: Newsletter
//	fields:
//	  full_name:
//	    label: Your name
//	    required: true
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Title  string                 `yaml:"title"`
	Fields map[string]presetPatch `yaml:"fields"`
}

type presetPatch struct {
	Label        *string `yaml:"label"`
	Description  *string `yaml:"description"`
	Placeholder  *string `yaml:"placeholder"`
	ErrorMessage *string `yaml:"errorMessage"`
	Required     *bool   `yaml:"required"`
}

// NewPresetTransformer constructs a transformer from raw JSON or YAML bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied form. Unknown
// field keys are an error.
func (t *PresetTransformer) Transform(ctx context.Context, form *model.Form) error {
	if form == nil {
		return errors.New("preset transformer: form is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if title := strings.TrimSpace(t.document.Title); title != "" {
		form.Title = title
	}

	names := model.ExportNameIndex(form.Fields)
	for key, patch := range t.document.Fields {
		idx := findField(form.Fields, names, key)
		if idx < 0 {
			return fmt.Errorf("preset transformer: field %q not found", key)
		}
		next, err := patch.fieldPatch().Apply(form.Fields[idx])
		if err != nil {
			return fmt.Errorf("preset transformer: %w", err)
		}
		form.Fields[idx] = next
	}
	return nil
}

func (p presetPatch) fieldPatch() model.FieldPatch {
	return model.FieldPatch{
		Label:        p.Label,
		Description:  p.Description,
		Placeholder:  p.Placeholder,
		ErrorMessage: p.ErrorMessage,
		Required:     p.Required,
	}
}

func findField(fields []model.Field, names map[string]string, key string) int {
	for i, field := range fields {
		if field.ID == key {
			return i
		}
	}
	for i, field := range fields {
		if names[field.ID] == key {
			return i
		}
	}
	return -1
}
