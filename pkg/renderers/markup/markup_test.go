package markup

import (
	"context"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

func mustGenerate(t *testing.T, fields []model.Field, styled bool, opts ...Option) string {
	t.Helper()
	out, err := Generate(fields, styled, opts...)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return out
}

func assertContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, out)
		}
	}
}

func assertNotContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if strings.Contains(out, fragment) {
			t.Fatalf("expected output not to contain %q\n%s", fragment, out)
		}
	}
}

func TestGenerateFullName(t *testing.T) {
	fields := []model.Field{{ID: "1", Type: model.FieldTypeText, Label: "Full Name", Required: true}}

	for _, styled := range []bool{false, true} {
		out := mustGenerate(t, fields, styled)
		assertContains(t, out,
			`<form id="generated-form" action="/api/submit" method="POST" enctype="multipart/form-data">`,
			`<div class="form-group">`,
			`<label for="full_name">Full Name<span class="required">*</span></label>`,
			`<input type="text" id="full_name" name="full_name" required>`,
			`<button type="submit" class="submit-button">Submit</button>`,
			`</form>`,
		)
		assertNotContains(t, out, "<script")
		if got := strings.Count(out, `<div class="form-group">`); got != 1 {
			t.Fatalf("expected one form group, got %d", got)
		}
	}
}

func TestGeneratePlainIsFragment(t *testing.T) {
	out := mustGenerate(t, []model.Field{{ID: "1", Type: model.FieldTypeEmail, Label: "Email"}}, false)
	if !strings.HasPrefix(out, "<form ") {
		t.Fatalf("plain output should start with the form element:\n%s", out)
	}
	assertNotContains(t, out, "<!DOCTYPE html>", "<style>")
	assertContains(t, out, `<input type="email" id="email" name="email">`)
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			t.Fatalf("output contains blank lines:\n%s", out)
		}
	}
}

func TestGenerateStyledDocument(t *testing.T) {
	out := mustGenerate(t, []model.Field{{ID: "1", Type: model.FieldTypeText, Label: "Name"}}, true)
	if !strings.HasPrefix(out, "<!DOCTYPE html>") {
		t.Fatalf("styled output should be a document:\n%s", out)
	}
	assertContains(t, out,
		"<title>Generated Form</title>",
		"<style>",
		"--accent: #2563eb;",
		".form-group {",
		".required {",
		".hidden {",
		"display: none !important;",
		".submit-button {",
		"</html>",
	)
}

func TestGenerateStyledThemeVariant(t *testing.T) {
	out := mustGenerate(t, nil, true, WithTheme(NewManifestSelector(DefaultThemeManifest()), "", "dark"))
	assertContains(t, out, "--accent: #3b82f6;", "--danger: #ef4444;")

	custom := &theme.Manifest{Name: "acme", Version: "1.0.0", Tokens: map[string]string{"accent": "#123456; }</style>"}}
	out = mustGenerate(t, nil, true, WithTheme(NewManifestSelector(custom), "acme", ""))
	assertContains(t, out, "--accent: #123456 /style;")
	assertNotContains(t, out, "--label:")

	if _, err := New(WithStyled(true), WithTheme(NewManifestSelector(custom), "missing", "")); err == nil {
		t.Fatalf("expected unknown theme to fail")
	}
	if _, err := New(WithStyled(true), WithTheme(NewManifestSelector(custom), "acme", "dark")); err == nil {
		t.Fatalf("expected unknown variant to fail")
	}
}

func TestGenerateEmptyForm(t *testing.T) {
	out := mustGenerate(t, nil, false)
	assertContains(t, out, `enctype="multipart/form-data"`, `<button type="submit" class="submit-button">Submit</button>`)
	assertNotContains(t, out, "form-group", "<script")
}

func TestGenerateSelectDerivesOptionValues(t *testing.T) {
	out := mustGenerate(t, []model.Field{{
		ID: "c", Type: model.FieldTypeSelect, Label: "Color", Options: []string{"Red", "Green"},
	}}, false)
	assertContains(t, out,
		`<select id="color" name="color">`,
		`<option value="red">Red</option>`,
		`<option value="green">Green</option>`,
	)
	assertNotContains(t, out, `<option value="">`)
}

func TestGenerateSelectPlaceholderOption(t *testing.T) {
	out := mustGenerate(t, []model.Field{{
		ID: "c", Type: model.FieldTypeSelect, Label: "Color", Required: true,
		Options: []string{"Red"}, OptionValues: []string{"r"}, Placeholder: "Pick one",
	}}, false)
	assertContains(t, out,
		`<select id="color" name="color" required>`,
		`<option value="">Pick one</option>`,
		`<option value="r">Red</option>`,
	)
}

func TestGenerateControlKinds(t *testing.T) {
	fields := []model.Field{
		{ID: "1", Type: model.FieldTypeRadio, Label: "Size", Required: true, Options: []string{"Small", "Large"}},
		{ID: "2", Type: model.FieldTypeCheckbox, Label: "Agree", Required: true},
		{ID: "3", Type: model.FieldTypeTextarea, Label: "Notes", Placeholder: "Anything else?", Description: "Optional"},
		{ID: "4", Type: model.FieldTypeFile, Label: "Resume", Accept: "documents"},
		{ID: "5", Type: model.FieldTypeFile, Label: "Photo"},
		{ID: "6", Type: model.FieldTypeNumber, Label: "Age"},
		{ID: "7", Type: model.FieldTypeDate, Label: "Start"},
		{ID: "8", Type: model.FieldTypeTel, Label: "Phone", Placeholder: "+1"},
	}
	out := mustGenerate(t, fields, false)
	assertContains(t, out,
		`<label>Size<span class="required">*</span></label>`,
		`<input type="radio" id="size_small" name="size" value="small" required>`,
		`<label for="size_small">Small</label>`,
		`<input type="radio" id="size_large" name="size" value="large" required>`,
		`<input type="checkbox" id="agree" name="agree" value="true" required>`,
		`<label for="agree">Agree</label>`,
		`<textarea id="notes" name="notes" placeholder="Anything else?" aria-describedby="notes-description"></textarea>`,
		`<small class="description" id="notes-description">Optional</small>`,
		`<input type="file" id="resume" name="resume" accept=".pdf,.doc,.docx">`,
		`<input type="file" id="photo" name="photo">`,
		`<input type="number" id="age" name="age">`,
		`<input type="date" id="start" name="start">`,
		`<input type="tel" id="phone" name="phone" placeholder="+1">`,
	)
	assertNotContains(t, out, `<label for="agree">Agree<span`)
	if got := strings.Count(out, `<div class="form-group">`); got != len(fields) {
		t.Fatalf("expected %d form groups, got %d", len(fields), got)
	}
}

func TestGenerateRecaptcha(t *testing.T) {
	out := mustGenerate(t, []model.Field{
		{ID: "1", Type: model.FieldTypeRecaptcha, Label: "Captcha", RecaptchaSiteKey: "site-key"},
	}, false)
	assertContains(t, out,
		`<div class="g-recaptcha" id="captcha" data-sitekey="site-key"></div>`,
		`<script src="https://www.google.com/recaptcha/api.js" async defer></script>`,
	)

	out = mustGenerate(t, []model.Field{{ID: "1", Type: model.FieldTypeRecaptcha, Label: "Captcha"}}, false)
	assertContains(t, out, `<p class="config-error" id="captcha" role="alert">`+RecaptchaConfigError+`</p>`)
	assertNotContains(t, out, "recaptcha/api.js")
}

func TestGenerateEscapesUserText(t *testing.T) {
	out := mustGenerate(t, []model.Field{{
		ID: "1", Type: model.FieldTypeSelect, Label: `Pick <b>"one"</b>`, Options: []string{"<script>alert(1)</script>"}, OptionValues: []string{"x"},
	}}, false)
	assertNotContains(t, out, "<b>", "<script>alert")
	assertContains(t, out, `<label for="pick_boneb">Pick &lt;b&gt;`)
}

func TestGenerateDuplicateLabelsGetDistinctNames(t *testing.T) {
	out := mustGenerate(t, []model.Field{
		{ID: "1", Type: model.FieldTypeText, Label: "Email"},
		{ID: "2", Type: model.FieldTypeText, Label: "Email"},
	}, false)
	assertContains(t, out, `name="email"`, `name="email_2"`)
}

func TestScriptEmptyWithoutConditions(t *testing.T) {
	script, err := Script([]model.Field{{ID: "1", Type: model.FieldTypeText, Label: "Name"}})
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if script != "" {
		t.Fatalf("expected empty script, got %q", script)
	}
}

func conditionalFields() []model.Field {
	return []model.Field{
		{ID: "m", Type: model.FieldTypeSelect, Label: "Contact Method", Options: []string{"Email", "Phone"}},
		{ID: "e", Type: model.FieldTypeEmail, Label: "Email Address", Required: true, ShowWhen: &model.ShowWhen{Field: "m", Value: "email"}},
		{ID: "p", Type: model.FieldTypeTel, Label: "Phone Number", ShowWhen: &model.ShowWhen{Field: "m", Value: "phone"}},
	}
}

func TestScriptOneListenerPerController(t *testing.T) {
	script, err := Script(conditionalFields())
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if !strings.HasPrefix(script, "<script>") || !strings.HasSuffix(script, "</script>") {
		t.Fatalf("expected a script element, got:\n%s", script)
	}
	if got := strings.Count(script, "addEventListener('change'"); got != 1 {
		t.Fatalf("expected one change listener, got %d:\n%s", got, script)
	}
	assertContains(t, script,
		`form.elements.namedItem("contact_method")`,
		`"email_address":{"control":"contact_method","value":"email"}`,
		`"phone_number":{"control":"contact_method","value":"phone"}`,
		"classList.toggle('hidden', !shown)",
		".closest('.form-group')",
		"updateVisibility();",
	)
}

func TestScriptTwoControllers(t *testing.T) {
	fields := append(conditionalFields(),
		model.Field{ID: "s", Type: model.FieldTypeSelect, Label: "Size", Options: []string{"S", "L"}},
		model.Field{ID: "n", Type: model.FieldTypeText, Label: "Notes", ShowWhen: &model.ShowWhen{Field: "s", Value: "l"}},
	)
	script, err := Script(fields)
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if got := strings.Count(script, "addEventListener('change'"); got != 2 {
		t.Fatalf("expected two change listeners, got %d", got)
	}
}

func TestScriptDanglingControllerHides(t *testing.T) {
	script, err := Script([]model.Field{
		{ID: "x", Type: model.FieldTypeText, Label: "Orphan", ShowWhen: &model.ShowWhen{Field: "deleted", Value: "yes"}},
	})
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	assertContains(t, script, `"orphan":{"control":null,"value":"yes"}`)
	assertNotContains(t, script, "addEventListener('change'")
}

func TestScriptEscapesRuleValues(t *testing.T) {
	script, err := Script([]model.Field{
		{ID: "m", Type: model.FieldTypeSelect, Label: "Mode", Options: []string{"A"}},
		{ID: "x", Type: model.FieldTypeText, Label: "Extra", ShowWhen: &model.ShowWhen{Field: "m", Value: "</script><b>&"}},
	})
	if err != nil {
		t.Fatalf("script: %v", err)
	}
	if got := strings.Count(script, "</script>"); got != 1 {
		t.Fatalf("rule value must not close the script element, found %d closers:\n%s", got, script)
	}
	assertContains(t, script, `"value":"\u003c/script\u003e\u003cb\u003e\u0026"`)
}

func TestGenerateIncludesScriptWhenConditional(t *testing.T) {
	out := mustGenerate(t, conditionalFields(), false)
	assertContains(t, out, `<input type="email" id="email_address" name="email_address" required>`, "<script>", "</script>")
	if strings.Index(out, "</form>") > strings.Index(out, "<script>") {
		t.Fatalf("script should follow the form")
	}

	styled := mustGenerate(t, conditionalFields(), true)
	if strings.Index(styled, "<script>") > strings.Index(styled, "</body>") {
		t.Fatalf("script should be inside the body")
	}
}

func TestRendererOptions(t *testing.T) {
	r, err := New(WithAction("/forms/contact"), WithMethod("get"), WithSubmitLabel("Send"), WithFormID("Contact Form"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if r.Name() != "html" {
		t.Fatalf("unexpected name %q", r.Name())
	}
	out, err := r.Render(context.Background(), model.Form{}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out),
		`<form id="contact_form" action="/forms/contact" method="GET" enctype="multipart/form-data">`,
		`<button type="submit" class="submit-button">Send</button>`,
	)

	out, err = r.Render(context.Background(), model.Form{}, render.RenderOptions{Action: "/override", Method: "PATCH"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, string(out), `action="/override" method="POST"`)

	styled, err := New(WithStyled(true), WithTitle("Contact us"))
	if err != nil {
		t.Fatalf("new styled: %v", err)
	}
	if styled.Name() != "html-styled" {
		t.Fatalf("unexpected name %q", styled.Name())
	}
	doc, err := styled.Render(context.Background(), model.Form{Title: "Survey"}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render styled: %v", err)
	}
	assertContains(t, string(doc), "<title>Survey</title>")
	doc, err = styled.Render(context.Background(), model.Form{}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render styled: %v", err)
	}
	assertContains(t, string(doc), "<title>Contact us</title>")
}
