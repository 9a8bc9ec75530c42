package definition

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/invopop/jsonschema"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// SchemaID is the $id of the definition JSON Schema.
const SchemaID = "https://github.com/goliatone/go-formbuilder/definition.schema.json"

// JSONSchema describes the {title, fields} definition format.
func JSONSchema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		Anonymous:      true,
		DoNotReference: true,
	}
	s := r.Reflect(&model.Form{})
	s.ID = jsonschema.ID(SchemaID)
	s.Title = "Form definition"
	return s
}

// MarshalJSONSchema returns the indented definition JSON Schema.
func MarshalJSONSchema() ([]byte, error) {
	out, err := json.MarshalIndent(JSONSchema(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("definition: encode json schema: %w", err)
	}
	return out, nil
}
