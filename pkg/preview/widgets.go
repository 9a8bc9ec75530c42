package preview

import (
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// WidgetKind selects how a widget is presented.
type WidgetKind string

const (
	KindInput       WidgetKind = "input"
	KindTextarea    WidgetKind = "textarea"
	KindSelect      WidgetKind = "select"
	KindRadio       WidgetKind = "radio"
	KindCheckbox    WidgetKind = "checkbox"
	KindFile        WidgetKind = "file"
	KindRecaptcha   WidgetKind = "recaptcha"
	KindConfigError WidgetKind = "config-error"
)

// Widget is the presentation of one visible field bound to its live value.
type Widget struct {
	FieldID     string
	Kind        WidgetKind
	InputType   string
	ControlID   string
	Label       string
	Required    bool
	Placeholder string
	Description string
	Options     []model.Choice
	Value       string
	Checked     bool
	Accept      string
	SiteKey     string
	Error       string
	Message     string
	DescribedBy []string
}

// Widgets returns one widget per visible field in list order.
func (p *Preview) Widgets() []Widget {
	p.mu.RLock()
	defer p.mu.RUnlock()

	values := p.state.Values()
	names, _ := model.ExportNames(p.fields)
	out := make([]Widget, 0, len(p.fields))
	for i, field := range p.fields {
		if !p.visible(field.ID, values) {
			continue
		}
		out = append(out, p.widget(field, names[i], values[field.ID]))
	}
	return out
}

func (p *Preview) widget(field model.Field, name, value string) Widget {
	w := Widget{
		FieldID:     field.ID,
		Kind:        widgetKind(field),
		ControlID:   name,
		Label:       field.Label,
		Required:    field.Required,
		Description: field.Description,
		Value:       value,
	}

	switch w.Kind {
	case KindInput:
		w.InputType = string(field.Type)
		w.Placeholder = placeholder(field, "Enter")
	case KindTextarea:
		w.Placeholder = placeholder(field, "Enter")
	case KindSelect:
		w.Placeholder = placeholder(field, "Select")
		w.Options = model.OptionChoices(field)
	case KindRadio:
		w.Options = model.OptionChoices(field)
	case KindCheckbox:
		w.Checked = value == "true"
	case KindFile:
		w.Accept = model.ResolveAccept(field.Accept)
	case KindRecaptcha:
		w.SiteKey = strings.TrimSpace(field.RecaptchaSiteKey)
	case KindConfigError:
		w.Message = RecaptchaConfigError
		w.Required = false
	}

	if field.Description != "" {
		w.DescribedBy = append(w.DescribedBy, name+"-description")
	}
	if p.state.Flagged(field.ID) {
		w.Error = ErrorMessage(field)
		w.DescribedBy = append(w.DescribedBy, name+"-error")
	}
	return w
}

func widgetKind(field model.Field) WidgetKind {
	switch field.Type {
	case model.FieldTypeTextarea:
		return KindTextarea
	case model.FieldTypeSelect:
		return KindSelect
	case model.FieldTypeRadio:
		return KindRadio
	case model.FieldTypeCheckbox:
		return KindCheckbox
	case model.FieldTypeFile:
		return KindFile
	case model.FieldTypeRecaptcha:
		if isUnconfiguredRecaptcha(field) {
			return KindConfigError
		}
		return KindRecaptcha
	default:
		return KindInput
	}
}

// placeholder returns the field's own placeholder or "<verb> <label>" in
// lower case.
func placeholder(field model.Field, verb string) string {
	if ph := strings.TrimSpace(field.Placeholder); ph != "" {
		return ph
	}
	label := strings.TrimSpace(field.Label)
	if label == "" {
		return ""
	}
	return verb + " " + strings.ToLower(label)
}
