package definition_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

func doc(raw string) definition.Document {
	return definition.MustNewDocument(definition.SourceFromFS("form"), []byte(raw))
}

func TestParse_Formats(t *testing.T) {
	want := model.Form{
		Title: "Contact",
		Fields: []model.Field{
			{ID: "c", Type: model.FieldTypeSelect, Label: "Contact", Options: []string{"Email", "Phone"}},
			{ID: "e", Type: model.FieldTypeEmail, Label: "Email", Required: true, ShowWhen: &model.ShowWhen{Field: "c", Value: "email"}},
		},
	}

	cases := map[string]string{
		"json object": `{"title":"Contact","fields":[
			{"id":"c","type":"select","label":"Contact","options":["Email","Phone"]},
			{"id":"e","type":"EMAIL","label":"Email","required":true,"showWhen":{"field":"c","value":"email"}}]}`,
		"yaml object": `
title: Contact
fields:
  - id: c
    type: select
    label: Contact
    options: [Email, Phone]
  - id: e
    type: email
    label: Email
    required: true
    showWhen:
      field: c
      value: email
`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := definition.Parse(doc(raw))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("form mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_BareArrays(t *testing.T) {
	for name, raw := range map[string]string{
		"json": `[{"id":"1","label":"Full Name","required":true}]`,
		"yaml": "- id: \"1\"\n  label: Full Name\n  required: true\n",
	} {
		t.Run(name, func(t *testing.T) {
			got, err := definition.Parse(doc(raw))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			want := model.Form{Fields: []model.Field{{ID: "1", Type: model.FieldTypeText, Label: "Full Name", Required: true}}}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("form mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Rejections(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"unknown type", `[{"id":"1","type":"slider","label":"x"}]`, model.ErrUnknownType},
		{"duplicate id", `[{"id":"1","label":"a"},{"id":"1","label":"b"}]`, model.ErrDuplicateID},
		{"missing id", `[{"label":"a"}]`, model.ErrEmptyID},
		{"bad target", `[{"id":"1","label":"a"},{"id":"2","label":"b","showWhen":{"field":"1","value":"x"}}]`, model.ErrShowWhenTarget},
		{"blank", "   \n", definition.ErrEmptyDefinition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := definition.Decode([]byte(tc.raw))
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	_, err := definition.Parse(doc(`[{"id":"1","type":"slider","label":"x"}]`))
	if err == nil || !strings.HasPrefix(err.Error(), "form: ") {
		t.Fatalf("expected location prefix, got %v", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	form := model.Form{Title: "T", Fields: []model.Field{
		{ID: "1", Type: model.FieldTypeRadio, Label: "Size", Options: []string{"S", "M"}, OptionValues: []string{"s", "m"}},
	}}
	for _, format := range []definition.Format{definition.FormatJSON, definition.FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			raw, err := definition.Marshal(form, format)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			got, err := definition.Decode(raw)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if diff := cmp.Diff(form, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if _, err := definition.Marshal(form, "toml"); err == nil {
		t.Fatalf("expected unknown format error")
	}
}

func TestFormatFromPath(t *testing.T) {
	if definition.FormatFromPath("a/b.YML") != definition.FormatYAML || definition.FormatFromPath("x.json") != definition.FormatJSON {
		t.Fatalf("unexpected format detection")
	}
}

func TestParseSource(t *testing.T) {
	src, err := definition.ParseSource("https://example.com/form.json")
	if err != nil || src.Kind() != definition.SourceKindURL {
		t.Fatalf("expected url source, got %v %v", src, err)
	}
	src, err = definition.ParseSource("./forms/../forms/contact.json")
	if err != nil || src.Kind() != definition.SourceKindFile || src.Location() != "forms/contact.json" {
		t.Fatalf("expected cleaned file source, got %v %v", src, err)
	}
	if _, err := definition.ParseSource(" "); err == nil {
		t.Fatalf("expected error for empty reference")
	}
}

func TestJSONSchema(t *testing.T) {
	raw, err := definition.MarshalJSONSchema()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	out := string(raw)
	for _, want := range []string{`"fields"`, `"showWhen"`, `"recaptchaSiteKey"`, `"recaptcha"`, definition.SchemaID} {
		if !strings.Contains(out, want) {
			t.Fatalf("schema missing %s:\n%s", want, out)
		}
	}
}
