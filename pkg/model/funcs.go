package model

import internalmodel "github.com/goliatone/go-formbuilder/internal/model"

// Sanitize converts display text into an identifier token.
func Sanitize(text string) string { return internalmodel.Sanitize(text) }

// ExportNames derives unique per-field names aligned with the input order and
// reports labels that collide.
func ExportNames(fields []Field) ([]string, []Collision) {
	return internalmodel.ExportNames(fields)
}

// ExportNameIndex maps field ids to export names.
func ExportNameIndex(fields []Field) map[string]string {
	return internalmodel.ExportNameIndex(fields)
}

// OptionChoices pairs option labels with their submitted tokens.
func OptionChoices(field Field) []Choice { return internalmodel.OptionChoices(field) }

// OptionLabel returns the display string for an option token.
func OptionLabel(field Field, value string) string { return internalmodel.OptionLabel(field, value) }

// NormalizeOptions trims option labels and derives aligned tokens.
func NormalizeOptions(display []string) ([]string, []string) {
	return internalmodel.NormalizeOptions(display)
}

// ParseOptionList splits comma separated option input.
func ParseOptionList(raw string) []string { return internalmodel.ParseOptionList(raw) }

// ResolveAccept expands accept presets.
func ResolveAccept(accept string) string { return internalmodel.ResolveAccept(accept) }

// ParseFieldType validates a raw type name.
func ParseFieldType(raw string) (FieldType, error) { return internalmodel.ParseFieldType(raw) }

// FieldTypes lists the supported field types.
func FieldTypes() []FieldType { return internalmodel.FieldTypes() }

// ValidateField checks per-field invariants.
func ValidateField(field Field) error { return internalmodel.ValidateField(field) }

// ValidateFields checks per-field and list-level invariants.
func ValidateFields(fields []Field) error { return internalmodel.ValidateFields(fields) }

// CloneFields deep-copies a field list.
func CloneFields(fields []Field) []Field { return internalmodel.CloneFields(fields) }

// NewField returns the defaults for a freshly added field.
func NewField(id string) Field { return internalmodel.NewField(id) }

// LabelFor picks a display label from candidates or a control name.
func LabelFor(name string, candidates ...string) string {
	return internalmodel.LabelFor(name, candidates...)
}

// DefaultLabeler humanises a control name.
func DefaultLabeler(name string) string { return internalmodel.DefaultLabeler(name) }

func StringPtr(v string) *string        { return internalmodel.StringPtr(v) }
func BoolPtr(v bool) *bool              { return internalmodel.BoolPtr(v) }
func TypePtr(v FieldType) *FieldType    { return internalmodel.TypePtr(v) }
func OptionsPtr(v ...string) *[]string { return internalmodel.OptionsPtr(v...) }
