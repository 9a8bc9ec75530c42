package model

import (
	"fmt"
	"strings"
)

// FieldType is the closed set of control kinds a form field can take.
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeNumber    FieldType = "number"
	FieldTypeEmail     FieldType = "email"
	FieldTypeTel       FieldType = "tel"
	FieldTypeDate      FieldType = "date"
	FieldTypeSelect    FieldType = "select"
	FieldTypeRadio     FieldType = "radio"
	FieldTypeCheckbox  FieldType = "checkbox"
	FieldTypeTextarea  FieldType = "textarea"
	FieldTypeFile      FieldType = "file"
	FieldTypeRecaptcha FieldType = "recaptcha"
)

var fieldTypes = []FieldType{
	FieldTypeText,
	FieldTypeNumber,
	FieldTypeEmail,
	FieldTypeTel,
	FieldTypeDate,
	FieldTypeSelect,
	FieldTypeRadio,
	FieldTypeCheckbox,
	FieldTypeTextarea,
	FieldTypeFile,
	FieldTypeRecaptcha,
}

// FieldTypes lists every supported type in editor order.
func FieldTypes() []FieldType {
	return append([]FieldType(nil), fieldTypes...)
}

// Valid reports whether t belongs to the supported set.
func (t FieldType) Valid() bool {
	for _, known := range fieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HasOptions reports whether the type carries a choice list.
func (t FieldType) HasOptions() bool {
	return t == FieldTypeSelect || t == FieldTypeRadio
}

// AcceptsPlaceholder reports whether the type renders placeholder text.
func (t FieldType) AcceptsPlaceholder() bool {
	switch t {
	case FieldTypeCheckbox, FieldTypeRadio, FieldTypeFile, FieldTypeRecaptcha:
		return false
	default:
		return true
	}
}

// ParseFieldType normalises raw into a FieldType, rejecting unknown kinds.
func ParseFieldType(raw string) (FieldType, error) {
	t := FieldType(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", fmt.Errorf("model: %w: %q", ErrUnknownType, raw)
	}
	return t, nil
}

// ShowWhen makes a field conditional on the current value of a select field.
type ShowWhen struct {
	Field string `json:"field" yaml:"field" jsonschema:"description=Id of the controlling select field"`
	Value string `json:"value" yaml:"value" jsonschema:"description=Option value that reveals the field"`
}

// Field describes one form control. Options and OptionValues are parallel
// arrays; OptionValues may be absent, in which case values are derived from
// the display strings on demand.
type Field struct {
	ID               string    `json:"id" yaml:"id" jsonschema:"required,description=Unique identifier within the form"`
	Type             FieldType `json:"type" yaml:"type" jsonschema:"required,enum=text,enum=number,enum=email,enum=tel,enum=date,enum=select,enum=radio,enum=checkbox,enum=textarea,enum=file,enum=recaptcha"`
	Label            string    `json:"label" yaml:"label" jsonschema:"required,description=Display label also used to derive the export name"`
	Required         bool      `json:"required" yaml:"required"`
	Placeholder      string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Description      string    `json:"description,omitempty" yaml:"description,omitempty"`
	ErrorMessage     string    `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
	Options          []string  `json:"options,omitempty" yaml:"options,omitempty"`
	OptionValues     []string  `json:"optionValues,omitempty" yaml:"optionValues,omitempty"`
	Accept           string    `json:"accept,omitempty" yaml:"accept,omitempty" jsonschema:"description=File filter expression or one of the presets documents/images/all"`
	ShowWhen         *ShowWhen `json:"showWhen,omitempty" yaml:"showWhen,omitempty"`
	RecaptchaSiteKey string    `json:"recaptchaSiteKey,omitempty" yaml:"recaptchaSiteKey,omitempty"`
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	out.Options = cloneStrings(f.Options)
	out.OptionValues = cloneStrings(f.OptionValues)
	if f.ShowWhen != nil {
		rule := *f.ShowWhen
		out.ShowWhen = &rule
	}
	return out
}

// Form is the ordered field list handed to renderers together with an
// optional document title.
type Form struct {
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Clone returns a deep copy of the form.
func (f Form) Clone() Form {
	return Form{Title: f.Title, Fields: CloneFields(f.Fields)}
}

// CloneFields deep-copies a field list. A nil input yields an empty slice.
func CloneFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, field := range fields {
		out[i] = field.Clone()
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

// NewField returns the default descriptor for a freshly added field.
func NewField(id string) Field {
	return Field{ID: id, Type: FieldTypeText, Label: NewFieldLabel}
}
