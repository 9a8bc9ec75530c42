package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOptionChoices(t *testing.T) {
	field := Field{
		ID:      "color",
		Type:    FieldTypeSelect,
		Label:   "Color",
		Options: []string{"Red", "Green", "***"},
	}
	want := []Choice{{Label: "Red", Value: "red"}, {Label: "Green", Value: "green"}}
	if diff := cmp.Diff(want, OptionChoices(field)); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}

	field.Options = []string{"Red", "Green"}
	field.OptionValues = []string{"r", ""}
	want = []Choice{{Label: "Red", Value: "r"}, {Label: "Green", Value: "green"}}
	if diff := cmp.Diff(want, OptionChoices(field)); diff != "" {
		t.Fatalf("stored values mismatch (-want +got):\n%s", diff)
	}
	if got := OptionLabel(field, "r"); got != "Red" {
		t.Fatalf("OptionLabel = %q, want Red", got)
	}
}

func TestNormalizeOptions(t *testing.T) {
	options, values := NormalizeOptions(ParseOptionList(" Red , ,Light Blue,!!, Green"))
	if diff := cmp.Diff([]string{"Red", "Light Blue", "Green"}, options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"red", "light_blue", "green"}, values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if got := ParseOptionList("   "); got != nil {
		t.Fatalf("expected nil for blank input, got %v", got)
	}
}

func TestResolveAccept(t *testing.T) {
	cases := map[string]string{
		"documents": ".pdf,.doc,.docx",
		"Images":    "image/*",
		"all":       ".pdf,.doc,.docx,image/*",
		" .csv ":    ".csv",
		"":          "",
	}
	for input, want := range cases {
		if got := ResolveAccept(input); got != want {
			t.Errorf("ResolveAccept(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseFieldType(t *testing.T) {
	got, err := ParseFieldType(" Select ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != FieldTypeSelect {
		t.Fatalf("got %q", got)
	}
	if _, err := ParseFieldType("password"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestValidateFields(t *testing.T) {
	valid := []Field{
		{ID: "1", Type: FieldTypeSelect, Label: "Contact", Options: []string{"Email", "Phone"}, OptionValues: []string{"email", "phone"}},
		{ID: "2", Type: FieldTypeEmail, Label: "Email", ShowWhen: &ShowWhen{Field: "1", Value: "email"}},
		{ID: "3", Type: FieldTypeText, Label: "Orphan", ShowWhen: &ShowWhen{Field: "gone", Value: "x"}},
	}
	if err := ValidateFields(valid); err != nil {
		t.Fatalf("expected valid list, got %v", err)
	}

	tests := []struct {
		name   string
		fields []Field
		want   error
	}{
		{"empty id", []Field{{Type: FieldTypeText, Label: "A"}}, ErrEmptyID},
		{"duplicate id", []Field{{ID: "1", Type: FieldTypeText}, {ID: "1", Type: FieldTypeText}}, ErrDuplicateID},
		{"unknown type", []Field{{ID: "1", Type: "slider"}}, ErrUnknownType},
		{"value mismatch", []Field{{ID: "1", Type: FieldTypeSelect, Options: []string{"A", "B"}, OptionValues: []string{"a"}}}, ErrOptionValuesMismatch},
		{"empty value", []Field{{ID: "1", Type: FieldTypeRadio, Options: []string{"A"}, OptionValues: []string{""}}}, ErrEmptyOptionValue},
		{"self reference", []Field{{ID: "1", Type: FieldTypeText, ShowWhen: &ShowWhen{Field: "1", Value: "x"}}}, ErrShowWhenSelf},
		{"non select target", []Field{
			{ID: "1", Type: FieldTypeText},
			{ID: "2", Type: FieldTypeText, ShowWhen: &ShowWhen{Field: "1", Value: "x"}},
		}, ErrShowWhenTarget},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateFields(tc.fields)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			var fieldErr *FieldError
			if !errors.As(err, &fieldErr) {
				t.Fatalf("expected *FieldError in %v", err)
			}
		})
	}
}

func TestFieldPatchApply(t *testing.T) {
	base := NewField("f1")

	patched, err := FieldPatch{
		Type:     TypePtr(FieldTypeSelect),
		Label:    StringPtr("Favourite Colour"),
		Required: BoolPtr(true),
		Options:  OptionsPtr("Red", " Dark Green ", ""),
	}.Apply(base)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	want := Field{
		ID:           "f1",
		Type:         FieldTypeSelect,
		Label:        "Favourite Colour",
		Required:     true,
		Options:      []string{"Red", "Dark Green"},
		OptionValues: []string{"red", "dark_green"},
	}
	if diff := cmp.Diff(want, patched); diff != "" {
		t.Fatalf("patched mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(NewField("f1"), base); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}

	withRule, err := FieldPatch{ShowWhen: &ShowWhen{Field: "other", Value: ""}}.Apply(patched)
	if err != nil {
		t.Fatalf("apply showWhen: %v", err)
	}
	if withRule.ShowWhen == nil || withRule.ShowWhen.Field != "other" {
		t.Fatalf("expected showWhen to be set, got %+v", withRule.ShowWhen)
	}
	cleared, err := FieldPatch{ClearShowWhen: true}.Apply(withRule)
	if err != nil {
		t.Fatalf("clear showWhen: %v", err)
	}
	if cleared.ShowWhen != nil {
		t.Fatalf("expected showWhen cleared")
	}
}

func TestFieldPatchRejectsInapplicable(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		patch FieldPatch
	}{
		{"options on text", NewField("a"), FieldPatch{Options: OptionsPtr("A")}},
		{"accept on select", Field{ID: "a", Type: FieldTypeSelect}, FieldPatch{Accept: StringPtr("images")}},
		{"site key on text", NewField("a"), FieldPatch{RecaptchaSiteKey: StringPtr("key")}},
		{"placeholder on checkbox", Field{ID: "a", Type: FieldTypeCheckbox}, FieldPatch{Placeholder: StringPtr("x")}},
		{"options after type change", Field{ID: "a", Type: FieldTypeSelect}, FieldPatch{Type: TypePtr(FieldTypeText), Options: OptionsPtr("A")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.patch.Apply(tc.field)
			if !errors.Is(err, ErrPatchNotApplicable) {
				t.Fatalf("expected ErrPatchNotApplicable, got %v", err)
			}
		})
	}

	if _, err := (FieldPatch{Type: TypePtr("slider")}).Apply(NewField("a")); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("expected ErrUnknownType, got %v", err)
	}
}

func TestLabelFor(t *testing.T) {
	if got := LabelFor("email", "  Work   Email "); got != "Work Email" {
		t.Fatalf("got %q", got)
	}
	if got := LabelFor("contact_method", "", " "); got != "Contact Method" {
		t.Fatalf("got %q", got)
	}
	if got := LabelFor(""); got != UntitledLabel {
		t.Fatalf("got %q", got)
	}
}

func TestCloneFieldsIsDeep(t *testing.T) {
	src := []Field{{ID: "1", Type: FieldTypeSelect, Options: []string{"A"}, OptionValues: []string{"a"}, ShowWhen: &ShowWhen{Field: "x", Value: "y"}}}
	clone := CloneFields(src)
	clone[0].Options[0] = "changed"
	clone[0].ShowWhen.Value = "changed"
	if src[0].Options[0] != "A" || src[0].ShowWhen.Value != "y" {
		t.Fatalf("clone shares memory with source: %+v", src[0])
	}
}
