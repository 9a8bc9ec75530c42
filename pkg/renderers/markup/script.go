package markup

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/visibility"
)

// rule is the client-side form of a ShowWhen: the export name of the
// controlling field (nil when it no longer exists) and the value to match.
type rule struct {
	Control *string `json:"control"`
	Value   string  `json:"value"`
}

// Script returns the visibility script for fields, or "" when no field is
// conditional. Each distinct controlling field gets exactly one change
// listener.
func (r *Renderer) Script(fields []model.Field) (string, error) {
	if r == nil || r.templates == nil {
		return "", fmt.Errorf("markup: template renderer is nil")
	}

	names, _ := model.ExportNames(fields)
	nameByID := make(map[string]string, len(fields))
	for i, field := range fields {
		if _, seen := nameByID[field.ID]; !seen {
			nameByID[field.ID] = names[i]
		}
	}

	rules := make(map[string]rule)
	for i, field := range fields {
		if field.ShowWhen == nil {
			continue
		}
		entry := rule{Value: field.ShowWhen.Value}
		if controller, ok := nameByID[field.ShowWhen.Field]; ok && field.ShowWhen.Field != field.ID {
			entry.Control = &controller
		}
		rules[names[i]] = entry
	}
	if len(rules) == 0 {
		return "", nil
	}

	var controls []string
	for _, id := range visibility.New(fields).Controllers() {
		controls = append(controls, nameByID[id])
	}

	encoded, err := json.Marshal(rules)
	if err != nil {
		return "", fmt.Errorf("markup: encode visibility rules: %w", err)
	}

	out, err := r.templates.RenderTemplate(visibilityTemplate, map[string]any{
		"formId":   r.cfg.formID,
		"rules":    string(encoded),
		"controls": controls,
	})
	if err != nil {
		return "", fmt.Errorf("markup: render visibility script: %w", err)
	}
	return strings.TrimSpace(compactLines(out)), nil
}

// Script renders the visibility script with default settings.
func Script(fields []model.Field) (string, error) {
	r, err := New()
	if err != nil {
		return "", err
	}
	return r.Script(fields)
}
