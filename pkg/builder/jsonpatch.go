package builder

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// ApplyJSONPatch applies an RFC 6902 document to the JSON form of one field.
// Paths are relative to the field object, e.g. {"op":"replace",
// "path":"/label","value":"Email"}. The id cannot be changed.
func (c *Controller) ApplyJSONPatch(id string, patchJSON []byte) (model.Field, error) {
	patch, err := jsonpatch.DecodePatch(patchJSON)
	if err != nil {
		return model.Field{}, fmt.Errorf("builder: decode patch: %w", err)
	}

	var updated model.Field
	err = c.mutate("json-patch", func(fields []model.Field) ([]model.Field, error) {
		idx := indexOf(fields, id)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, id)
		}

		current, err := json.Marshal(fields[idx])
		if err != nil {
			return nil, fmt.Errorf("builder: encode field: %w", err)
		}
		modified, err := patch.Apply(current)
		if err != nil {
			return nil, fmt.Errorf("builder: apply patch: %w", err)
		}

		var next model.Field
		if err := json.Unmarshal(modified, &next); err != nil {
			return nil, fmt.Errorf("builder: decode patched field: %w", err)
		}
		if next.ID != id {
			return nil, fmt.Errorf("%w: %q became %q", ErrIDImmutable, id, next.ID)
		}

		fields[idx] = next
		updated = next
		return fields, nil
	})
	if err != nil {
		return model.Field{}, err
	}
	return updated.Clone(), nil
}
