package template_test

import (
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()
	files := fstest.MapFS{
		"templates/hello.tmpl":      {Data: []byte("Hello {{ name }}!")},
		"templates/use-global.tmpl": {Data: []byte("env={{ settings.env }}")},
		"templates/use-filter.tmpl": {Data: []byte("{{ name|shout }}")},
		"templates/escape.tmpl":     {Data: []byte(`<p title="{{ label }}">{{ label }}</p>`)},
		"templates/script.tmpl":     {Data: []byte(`var name = {{ label|jsstring }}; var id = "{{ label|token }}";`)},
		"templates/view.tmpl":       {Data: []byte(`{% for field in fields %}{{ field.name }}{% if field.required %}*{% endif %};{% endfor %}`)},
	}
	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngineRenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var written strings.Builder
	result, err := engine.RenderTemplate("templates/hello", map[string]any{"name": "Ada"}, &written)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Ada!" {
		t.Fatalf("unexpected result %q", result)
	}
	if written.String() != result {
		t.Fatalf("writer mismatch: %q", written.String())
	}
}

func TestEngineGlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, err := engine.RenderTemplate("templates/use-global.tmpl", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "env=staging" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngineRegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}
	if err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) { return input, nil }); err == nil {
		t.Fatalf("expected duplicate filter registration to fail")
	}

	result, err := engine.RenderTemplate("templates/use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngineAutoescapes(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderTemplate("templates/escape", map[string]any{"label": `<b>"Bold"</b>`})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(result, "<b>") {
		t.Fatalf("expected label to be escaped, got %q", result)
	}
	if !strings.Contains(result, "&lt;b&gt;") {
		t.Fatalf("expected escaped markup, got %q", result)
	}
}

func TestEngineScriptFilters(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderTemplate("templates/script", map[string]any{"label": "Contact </script> Method"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `var name = "Contact \u003c/script\u003e Method"; var id = "contact_script_method";`
	if result != want {
		t.Fatalf("unexpected result\nwant: %s\n got: %s", want, result)
	}
}

func TestEngineStructDataUsesJSONKeys(t *testing.T) {
	type fieldView struct {
		Name     string `json:"name"`
		Required bool   `json:"required"`
	}
	engine := newEngine(t)
	result, err := engine.RenderTemplate("templates/view", struct {
		Fields []fieldView `json:"fields"`
	}{Fields: []fieldView{{Name: "email", Required: true}, {Name: "phone"}}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "email*;phone;" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngineRenderString(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.Render("{{ greeting }}, {{ name }}", map[string]any{"greeting": "Hi", "name": "Lin"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if result != "Hi, Lin" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngineRequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template source")
	}
}
