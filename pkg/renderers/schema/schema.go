// Package schema derives the backend binding fragment: one record per field
// naming the target variable, its path under "details." and a coarse type.
package schema

import (
	"context"
	"errors"
	"fmt"

	gojson "github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// PathPrefix is prepended to every export name in Record.Path.
const PathPrefix = "details."

const (
	TypeString = "string"
	TypeNumber = "number"
)

// Data names the variable a submitted value binds to.
type Data struct {
	TargetVariables string `json:"targetVariables"`
}

// Record is one schema entry.
type Record struct {
	Data Data   `json:"data"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// Generate returns one record per field in list order. Visibility rules are
// ignored. The result is never nil.
func Generate(fields []model.Field) []Record {
	names, _ := model.ExportNames(fields)
	out := make([]Record, len(fields))
	for i, field := range fields {
		out[i] = Record{
			Data: Data{TargetVariables: names[i]},
			Path: PathPrefix + names[i],
			Type: recordType(field.Type),
		}
	}
	return out
}

func recordType(t model.FieldType) string {
	if t == model.FieldTypeNumber {
		return TypeNumber
	}
	return TypeString
}

// Marshal encodes records as pretty-printed JSON with two-space indentation.
// A nil slice encodes as an empty array.
func Marshal(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	out, err := gojson.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schema: encode records: %w", err)
	}
	return out, nil
}

// Renderer exposes the generator through the render registry.
type Renderer struct{}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the schema renderer.
func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) Name() string {
	return "schema"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, form model.Form, _ render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("schema: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Marshal(Generate(form.Fields))
}
