package openapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

const (
	// Version is the OpenAPI version of exported documents.
	Version = "3.0.3"
	// DefaultAction is used when neither the options nor the form name one.
	DefaultAction = "/api/submit"
	// DefaultTitle names documents for untitled forms.
	DefaultTitle = "Generated Form"
	// DefaultDocVersion is the info.version of exported documents.
	DefaultDocVersion = "1.0.0"
	// ShowWhenExtension carries a conditional rule on a property schema.
	ShowWhenExtension = "x-show-when"
)

type config struct {
	action     string
	docVersion string
	validate   bool
}

// Option customises Export.
type Option func(*config)

// WithAction sets the submit endpoint. Absolute URLs contribute a server
// entry and their path.
func WithAction(action string) Option {
	return func(c *config) {
		if trimmed := strings.TrimSpace(action); trimmed != "" {
			c.action = trimmed
		}
	}
}

// WithDocVersion overrides info.version.
func WithDocVersion(version string) Option {
	return func(c *config) {
		if trimmed := strings.TrimSpace(version); trimmed != "" {
			c.docVersion = trimmed
		}
	}
}

// WithoutValidation skips the final document validation.
func WithoutValidation() Option {
	return func(c *config) {
		c.validate = false
	}
}

// Export describes the submission of form as an OpenAPI document with one
// POST operation whose multipart body has one property per field, keyed by
// export name.
func Export(ctx context.Context, form model.Form, opts ...Option) (*openapi3.T, error) {
	cfg := config{action: DefaultAction, docVersion: DefaultDocVersion, validate: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	title := strings.TrimSpace(form.Title)
	if title == "" {
		title = DefaultTitle
	}

	path, servers, err := splitAction(cfg.action)
	if err != nil {
		return nil, err
	}

	body := SubmissionSchema(form.Fields)
	operation := &openapi3.Operation{
		OperationID: operationID(title),
		Summary:     "Submit " + title,
		RequestBody: &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithContent(openapi3.NewContentWithFormDataSchema(body)),
		},
		Responses: openapi3.NewResponses(
			openapi3.WithName("200", openapi3.NewResponse().WithDescription("Submission accepted")),
			openapi3.WithName("400", openapi3.NewResponse().WithDescription("Validation failed")),
		),
	}

	doc := &openapi3.T{
		OpenAPI: Version,
		Info: &openapi3.Info{
			Title:   title,
			Version: cfg.docVersion,
		},
		Servers: servers,
		Paths:   openapi3.NewPaths(openapi3.WithPath(path, &openapi3.PathItem{Post: operation})),
	}

	if cfg.validate {
		if err := doc.Validate(ctx); err != nil {
			return nil, fmt.Errorf("openapi: validate document: %w", err)
		}
	}
	return doc, nil
}

// SubmissionSchema returns the object schema of a submission. Recaptcha
// fields are left out; their token is posted by the provider widget.
// Conditional fields are never listed as required.
func SubmissionSchema(fields []model.Field) *openapi3.Schema {
	names, _ := model.ExportNames(fields)
	nameByID := model.ExportNameIndex(fields)

	obj := openapi3.NewObjectSchema()
	var required []string
	for i, field := range fields {
		if field.Type == model.FieldTypeRecaptcha {
			continue
		}
		prop := propertySchema(field)
		if rule := field.ShowWhen; rule != nil {
			ext := map[string]any{"field": rule.Field, "value": rule.Value}
			if controller, ok := nameByID[rule.Field]; ok {
				ext["property"] = controller
			}
			prop.Extensions = map[string]any{ShowWhenExtension: ext}
		}
		obj.WithProperty(names[i], prop)
		if field.Required && field.ShowWhen == nil {
			required = append(required, names[i])
		}
	}
	obj.Required = required
	return obj
}

func propertySchema(field model.Field) *openapi3.Schema {
	var s *openapi3.Schema
	switch field.Type {
	case model.FieldTypeNumber:
		s = openapi3.NewFloat64Schema()
	case model.FieldTypeEmail:
		s = openapi3.NewStringSchema().WithFormat("email")
	case model.FieldTypeDate:
		s = openapi3.NewStringSchema().WithFormat("date")
	case model.FieldTypeFile:
		s = openapi3.NewStringSchema().WithFormat("binary")
		if accept := model.ResolveAccept(field.Accept); accept != "" {
			s.Extensions = map[string]any{"x-accept": accept}
		}
	case model.FieldTypeCheckbox:
		s = openapi3.NewStringSchema().WithEnum("true", "false")
	case model.FieldTypeSelect, model.FieldTypeRadio:
		s = openapi3.NewStringSchema()
		if choices := model.OptionChoices(field); len(choices) > 0 {
			values := make([]any, len(choices))
			for i, choice := range choices {
				values[i] = choice.Value
			}
			s.WithEnum(values...)
		}
	default:
		s = openapi3.NewStringSchema()
	}
	s.Title = field.Label
	s.Description = field.Description
	return s
}

func splitAction(action string) (string, openapi3.Servers, error) {
	u, err := url.Parse(action)
	if err != nil {
		return "", nil, fmt.Errorf("openapi: parse action %q: %w", action, err)
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if u.Host == "" {
		return path, nil, nil
	}
	server := &openapi3.Server{URL: u.Scheme + "://" + u.Host}
	return path, openapi3.Servers{server}, nil
}

func operationID(title string) string {
	token := model.Sanitize(title)
	if token == "" {
		return "submit"
	}
	return "submit_" + token
}
