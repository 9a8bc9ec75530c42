package model

import internalmodel "github.com/goliatone/go-formbuilder/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeText      = internalmodel.FieldTypeText
	FieldTypeNumber    = internalmodel.FieldTypeNumber
	FieldTypeEmail     = internalmodel.FieldTypeEmail
	FieldTypeTel       = internalmodel.FieldTypeTel
	FieldTypeDate      = internalmodel.FieldTypeDate
	FieldTypeSelect    = internalmodel.FieldTypeSelect
	FieldTypeRadio     = internalmodel.FieldTypeRadio
	FieldTypeCheckbox  = internalmodel.FieldTypeCheckbox
	FieldTypeTextarea  = internalmodel.FieldTypeTextarea
	FieldTypeFile      = internalmodel.FieldTypeFile
	FieldTypeRecaptcha = internalmodel.FieldTypeRecaptcha
)

const (
	AcceptPresetDocuments = internalmodel.AcceptPresetDocuments
	AcceptPresetImages    = internalmodel.AcceptPresetImages
	AcceptPresetAll       = internalmodel.AcceptPresetAll
	FallbackExportName    = internalmodel.FallbackExportName
	NewFieldLabel         = internalmodel.NewFieldLabel
	UntitledLabel         = internalmodel.UntitledLabel
)

type Field = internalmodel.Field
type ShowWhen = internalmodel.ShowWhen
type Form = internalmodel.Form
type FieldPatch = internalmodel.FieldPatch
type FieldError = internalmodel.FieldError
type Choice = internalmodel.Choice
type Collision = internalmodel.Collision

var (
	ErrEmptyID              = internalmodel.ErrEmptyID
	ErrDuplicateID          = internalmodel.ErrDuplicateID
	ErrUnknownType          = internalmodel.ErrUnknownType
	ErrOptionValuesMismatch = internalmodel.ErrOptionValuesMismatch
	ErrEmptyOptionValue     = internalmodel.ErrEmptyOptionValue
	ErrShowWhenSelf         = internalmodel.ErrShowWhenSelf
	ErrShowWhenTarget       = internalmodel.ErrShowWhenTarget
	ErrPatchNotApplicable   = internalmodel.ErrPatchNotApplicable
)
