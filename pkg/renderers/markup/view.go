package markup

import (
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

type formView struct {
	ID                   string      `json:"id"`
	Action               string      `json:"action"`
	Method               string      `json:"method"`
	SubmitLabel          string      `json:"submitLabel"`
	Recaptcha            bool        `json:"recaptcha"`
	RecaptchaConfigError string      `json:"recaptchaConfigError"`
	Fields               []fieldView `json:"fields"`
}

type fieldView struct {
	Name        string         `json:"name"`
	Label       string         `json:"label"`
	Kind        string         `json:"kind"`
	InputType   string         `json:"inputType,omitempty"`
	Required    bool           `json:"required"`
	Accept      string         `json:"accept,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`
	Description string         `json:"description,omitempty"`
	DescribedBy string         `json:"describedBy,omitempty"`
	SiteKey     string         `json:"siteKey,omitempty"`
	Options     []model.Choice `json:"options,omitempty"`
}

func (r *Renderer) formView(fields []model.Field, opts render.RenderOptions) formView {
	view := formView{
		ID:                   r.cfg.formID,
		Action:               r.cfg.action,
		Method:               r.cfg.method,
		SubmitLabel:          r.cfg.submitLabel,
		RecaptchaConfigError: RecaptchaConfigError,
		Fields:               make([]fieldView, len(fields)),
	}
	if opts.Action != "" {
		view.Action = opts.Action
	}
	if opts.Method != "" {
		view.Method = normaliseMethod(opts.Method)
	}

	names, _ := model.ExportNames(fields)
	for i, field := range fields {
		fv := fieldView{
			Name:        names[i],
			Label:       field.Label,
			Kind:        fieldKind(field.Type),
			Required:    field.Required,
			Description: field.Description,
		}
		if fv.Kind == "input" {
			fv.InputType = string(field.Type)
		}
		if field.Type.AcceptsPlaceholder() {
			fv.Placeholder = field.Placeholder
		}
		if field.Description != "" {
			fv.DescribedBy = names[i] + "-description"
		}
		switch field.Type {
		case model.FieldTypeSelect, model.FieldTypeRadio:
			fv.Options = model.OptionChoices(field)
		case model.FieldTypeFile:
			fv.Accept = model.ResolveAccept(field.Accept)
		case model.FieldTypeRecaptcha:
			fv.SiteKey = field.RecaptchaSiteKey
			if fv.SiteKey != "" {
				view.Recaptcha = true
			}
		}
		view.Fields[i] = fv
	}
	return view
}

func fieldKind(t model.FieldType) string {
	switch t {
	case model.FieldTypeSelect, model.FieldTypeRadio, model.FieldTypeCheckbox,
		model.FieldTypeTextarea, model.FieldTypeFile, model.FieldTypeRecaptcha:
		return string(t)
	default:
		return "input"
	}
}
