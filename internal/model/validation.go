package model

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyID              = errors.New("field id is required")
	ErrDuplicateID          = errors.New("duplicate field id")
	ErrUnknownType          = errors.New("unknown field type")
	ErrOptionValuesMismatch = errors.New("options and optionValues differ in length")
	ErrEmptyOptionValue     = errors.New("option value is empty")
	ErrShowWhenSelf         = errors.New("showWhen references the field itself")
	ErrShowWhenTarget       = errors.New("showWhen must reference a select field")
	ErrPatchNotApplicable   = errors.New("attribute not applicable to field type")
)

// FieldError ties a validation failure to the offending field.
type FieldError struct {
	FieldID string
	Err     error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("model: field %q: %v", e.FieldID, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ValidateField checks the invariants that hold for a field in isolation.
func ValidateField(field Field) error {
	var errs []error
	if field.ID == "" {
		errs = append(errs, ErrEmptyID)
	}
	if !field.Type.Valid() {
		errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownType, field.Type))
	}
	if len(field.OptionValues) > 0 {
		if len(field.OptionValues) != len(field.Options) {
			errs = append(errs, fmt.Errorf("%w: %d options, %d values", ErrOptionValuesMismatch, len(field.Options), len(field.OptionValues)))
		} else {
			for i, value := range field.OptionValues {
				if value == "" {
					errs = append(errs, fmt.Errorf("%w: option %q", ErrEmptyOptionValue, field.Options[i]))
				}
			}
		}
	}
	if field.ShowWhen != nil && field.ID != "" && field.ShowWhen.Field == field.ID {
		errs = append(errs, ErrShowWhenSelf)
	}

	if len(errs) == 0 {
		return nil
	}
	out := make([]error, len(errs))
	for i, err := range errs {
		out[i] = &FieldError{FieldID: field.ID, Err: err}
	}
	return errors.Join(out...)
}

// ValidateFields checks every per-field invariant plus the list-level ones:
// unique ids and showWhen references that point at select fields. A
// reference to a missing field is accepted; it evaluates as hidden.
func ValidateFields(fields []Field) error {
	var errs []error
	byID := make(map[string]Field, len(fields))
	for _, field := range fields {
		if err := ValidateField(field); err != nil {
			errs = append(errs, err)
		}
		if field.ID == "" {
			continue
		}
		if _, exists := byID[field.ID]; exists {
			errs = append(errs, &FieldError{FieldID: field.ID, Err: ErrDuplicateID})
			continue
		}
		byID[field.ID] = field
	}

	for _, field := range fields {
		if field.ShowWhen == nil || field.ShowWhen.Field == field.ID {
			continue
		}
		target, ok := byID[field.ShowWhen.Field]
		if ok && target.Type != FieldTypeSelect {
			errs = append(errs, &FieldError{
				FieldID: field.ID,
				Err:     fmt.Errorf("%w: %q is %s", ErrShowWhenTarget, target.ID, target.Type),
			})
		}
	}

	return errors.Join(errs...)
}
