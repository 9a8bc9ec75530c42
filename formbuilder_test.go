package formbuilder

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/definition"
	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/orchestrator"
	"github.com/goliatone/go-formbuilder/pkg/renderers/markup"
)

func TestGenerateFromFileSystem(t *testing.T) {
	files := fstest.MapFS{"contact.yaml": {Data: []byte(`
title: Contact
fields:
  - id: "1"
    type: email
    label: Work Email
    required: true
`)}}
	loader := NewLoader(definition.WithFileSystem(files))

	out, err := Generate(context.Background(), definition.SourceFromFS("contact.yaml"), "schema", orchestrator.WithLoader(loader))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `"path": "details.work_email"`) {
		t.Fatalf("unexpected schema output:\n%s", out)
	}
}

func TestGenerateFromDocument(t *testing.T) {
	doc := definition.MustNewDocument(definition.SourceFromFS("inline.json"), []byte(`[{"id":"a","type":"text","label":"Name"}]`))
	out, err := GenerateFromDocument(context.Background(), doc, "")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(out), `name="name"`) {
		t.Fatalf("expected html fragment, got:\n%s", out)
	}
}

func TestGenerateHelpersAgree(t *testing.T) {
	fields := []Field{{ID: "1", Type: model.FieldTypeText, Label: "Full Name", Required: true}}

	schemaOut, err := GenerateSchema(fields)
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	if !strings.Contains(string(schemaOut), `"targetVariables": "full_name"`) {
		t.Fatalf("unexpected schema:\n%s", schemaOut)
	}

	got, err := GenerateMarkup(fields, false)
	if err != nil {
		t.Fatalf("markup: %v", err)
	}
	want, err := markup.Generate(fields, false)
	if err != nil {
		t.Fatalf("markup direct: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("markup mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderAndPreviewFacade(t *testing.T) {
	ctrl, err := NewBuilder([]Field{{ID: "a", Type: model.FieldTypeText, Label: "Name", Required: true}})
	if err != nil {
		t.Fatalf("builder: %v", err)
	}
	p := NewPreview(ctrl.Fields())
	if res := p.Submit(); res.OK {
		t.Fatalf("expected blank required field to block submit")
	}
	p.OnValueChange("a", "Ada")
	res := p.Submit()
	if !res.OK {
		t.Fatalf("expected submit to succeed: %+v", res)
	}
	if diff := cmp.Diff(map[string]string{"name": "Ada"}, res.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestEmbeddedBundles(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "templates/form.tmpl"); err != nil {
		t.Fatalf("expected form template: %v", err)
	}
	if _, err := fs.ReadFile(AssetsFS(), markup.StylesheetName); err != nil {
		t.Fatalf("expected stylesheet: %v", err)
	}
}
