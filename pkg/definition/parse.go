package definition

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Format names a definition encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrEmptyDefinition is returned for documents without content.
var ErrEmptyDefinition = errors.New("definition: document is empty")

// Parse decodes a definition document. JSON is tried first, YAML second.
// Both accept either {title, fields} or a bare field array. The result is
// validated with model.ValidateFields.
func Parse(doc Document) (model.Form, error) {
	form, err := Decode(doc.Raw())
	if err != nil {
		if loc := doc.Location(); loc != "" {
			return model.Form{}, fmt.Errorf("%s: %w", loc, err)
		}
		return model.Form{}, err
	}
	return form, nil
}

// Decode parses raw definition bytes.
func Decode(raw []byte) (model.Form, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return model.Form{}, ErrEmptyDefinition
	}

	var (
		form model.Form
		err  error
	)
	if trimmed[0] == '{' || trimmed[0] == '[' {
		form, err = decodeJSON(trimmed)
		if err != nil {
			if yamlForm, yamlErr := decodeYAML(trimmed); yamlErr == nil {
				form, err = yamlForm, nil
			}
		}
	} else {
		form, err = decodeYAML(trimmed)
	}
	if err != nil {
		return model.Form{}, err
	}

	if err := normaliseTypes(form.Fields); err != nil {
		return model.Form{}, err
	}
	if form.Fields == nil {
		form.Fields = []model.Field{}
	}
	if err := model.ValidateFields(form.Fields); err != nil {
		return model.Form{}, fmt.Errorf("definition: %w", err)
	}
	return form, nil
}

func decodeJSON(raw []byte) (model.Form, error) {
	if raw[0] == '[' {
		var fields []model.Field
		if err := json.Unmarshal(raw, &fields); err != nil {
			return model.Form{}, fmt.Errorf("definition: decode json: %w", err)
		}
		return model.Form{Fields: fields}, nil
	}
	var form model.Form
	if err := json.Unmarshal(raw, &form); err != nil {
		return model.Form{}, fmt.Errorf("definition: decode json: %w", err)
	}
	return form, nil
}

func decodeYAML(raw []byte) (model.Form, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(raw, &node); err != nil {
		return model.Form{}, fmt.Errorf("definition: decode yaml: %w", err)
	}
	if len(node.Content) == 0 {
		return model.Form{}, ErrEmptyDefinition
	}

	root := node.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var fields []model.Field
		if err := root.Decode(&fields); err != nil {
			return model.Form{}, fmt.Errorf("definition: decode yaml: %w", err)
		}
		return model.Form{Fields: fields}, nil
	case yaml.MappingNode:
		var form model.Form
		if err := root.Decode(&form); err != nil {
			return model.Form{}, fmt.Errorf("definition: decode yaml: %w", err)
		}
		return form, nil
	default:
		return model.Form{}, fmt.Errorf("definition: decode yaml: expected a mapping or a sequence")
	}
}

// normaliseTypes accepts type names in any case, defaults a missing type to
// text and rejects unknown ones.
func normaliseTypes(fields []model.Field) error {
	for i := range fields {
		if strings.TrimSpace(string(fields[i].Type)) == "" {
			fields[i].Type = model.FieldTypeText
			continue
		}
		t, err := model.ParseFieldType(string(fields[i].Type))
		if err != nil {
			return &model.FieldError{FieldID: fields[i].ID, Err: err}
		}
		fields[i].Type = t
	}
	return nil
}

// Marshal encodes form in the requested format.
func Marshal(form model.Form, format Format) ([]byte, error) {
	if form.Fields == nil {
		form.Fields = []model.Field{}
	}
	switch Format(strings.ToLower(string(format))) {
	case FormatYAML, "yml":
		out, err := yaml.Marshal(form)
		if err != nil {
			return nil, fmt.Errorf("definition: encode yaml: %w", err)
		}
		return out, nil
	case FormatJSON, "":
		out, err := json.MarshalIndent(form, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("definition: encode json: %w", err)
		}
		return append(out, '\n'), nil
	default:
		return nil, fmt.Errorf("definition: unknown format %q", format)
	}
}

// FormatFromPath picks YAML for .yaml/.yml paths and JSON otherwise.
func FormatFromPath(path string) Format {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return FormatYAML
	}
	return FormatJSON
}
