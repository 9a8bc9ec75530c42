package model

import (
	"fmt"
	"strings"
)

// FieldPatch is a partial update for a single field. Nil members are left
// untouched. Options carries display strings; their tokens are recomputed.
// The field id is immutable and therefore absent.
type FieldPatch struct {
	Type             *FieldType
	Label            *string
	Required         *bool
	Placeholder      *string
	Description      *string
	ErrorMessage     *string
	Options          *[]string
	Accept           *string
	ShowWhen         *ShowWhen
	ClearShowWhen    bool
	RecaptchaSiteKey *string
}

// Empty reports whether the patch changes nothing.
func (p FieldPatch) Empty() bool {
	return p.Type == nil && p.Label == nil && p.Required == nil &&
		p.Placeholder == nil && p.Description == nil && p.ErrorMessage == nil &&
		p.Options == nil && p.Accept == nil && p.ShowWhen == nil &&
		!p.ClearShowWhen && p.RecaptchaSiteKey == nil
}

// Apply returns a copy of field with the patch merged in. Members that do
// not apply to the resulting field type are rejected with
// ErrPatchNotApplicable.
func (p FieldPatch) Apply(field Field) (Field, error) {
	out := field.Clone()

	if p.Type != nil {
		if !p.Type.Valid() {
			return field, &FieldError{FieldID: field.ID, Err: fmt.Errorf("%w: %q", ErrUnknownType, *p.Type)}
		}
		out.Type = *p.Type
	}

	if err := p.checkApplicable(field.ID, out.Type); err != nil {
		return field, err
	}

	if p.Label != nil {
		out.Label = *p.Label
	}
	if p.Required != nil {
		out.Required = *p.Required
	}
	if p.Placeholder != nil {
		out.Placeholder = *p.Placeholder
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.ErrorMessage != nil {
		out.ErrorMessage = *p.ErrorMessage
	}
	if p.Options != nil {
		out.Options, out.OptionValues = NormalizeOptions(*p.Options)
	}
	if p.Accept != nil {
		out.Accept = strings.TrimSpace(*p.Accept)
	}
	if p.RecaptchaSiteKey != nil {
		out.RecaptchaSiteKey = strings.TrimSpace(*p.RecaptchaSiteKey)
	}
	switch {
	case p.ClearShowWhen:
		out.ShowWhen = nil
	case p.ShowWhen != nil:
		rule := *p.ShowWhen
		out.ShowWhen = &rule
	}

	return out, nil
}

func (p FieldPatch) checkApplicable(id string, t FieldType) error {
	var attr string
	switch {
	case p.Options != nil && !t.HasOptions():
		attr = "options"
	case p.Accept != nil && t != FieldTypeFile:
		attr = "accept"
	case p.RecaptchaSiteKey != nil && t != FieldTypeRecaptcha:
		attr = "recaptchaSiteKey"
	case p.Placeholder != nil && !t.AcceptsPlaceholder():
		attr = "placeholder"
	default:
		return nil
	}
	return &FieldError{FieldID: id, Err: fmt.Errorf("%w: %s on %s", ErrPatchNotApplicable, attr, t)}
}

// StringPtr is a convenience for building patches.
func StringPtr(v string) *string { return &v }

// BoolPtr is a convenience for building patches.
func BoolPtr(v bool) *bool { return &v }

// TypePtr is a convenience for building patches.
func TypePtr(v FieldType) *FieldType { return &v }

// OptionsPtr is a convenience for building patches.
func OptionsPtr(v ...string) *[]string { return &v }
