// Package markup renders a field list into a standalone HTML form, either as
// a bare <form> fragment or as a complete styled document. Conditional fields
// get a small script that toggles the "hidden" class on their .form-group
// wrapper whenever a controlling select changes.
package markup

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/render"
	rendertemplate "github.com/goliatone/go-formbuilder/pkg/render/template"
	"github.com/goliatone/go-formbuilder/pkg/render/template/gotemplate"
)

const (
	DefaultFormID      = "generated-form"
	DefaultAction      = "/api/submit"
	DefaultMethod      = "POST"
	DefaultSubmitLabel = "Submit"
	DefaultTitle       = "Generated Form"

	// RecaptchaConfigError is shown in place of a reCAPTCHA widget that has
	// no site key.
	RecaptchaConfigError = "Please configure reCAPTCHA site key in the form builder"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	styled           bool
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	formID           string
	action           string
	method           string
	submitLabel      string
	title            string
	stylesheet       *string
	selector         theme.ThemeSelector
	themeName        string
	themeVariant     string
}

// WithStyled switches between the bare form fragment and the full document.
func WithStyled(styled bool) Option {
	return func(cfg *config) {
		cfg.styled = styled
	}
}

// WithTemplatesFS supplies an alternate template bundle. It must contain the
// same template paths as TemplatesFS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithFormID overrides the id of the generated form element.
func WithFormID(id string) Option {
	return func(cfg *config) {
		if token := model.Sanitize(id); token != "" {
			cfg.formID = token
		}
	}
}

// WithAction overrides the submission endpoint.
func WithAction(action string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(action); trimmed != "" {
			cfg.action = trimmed
		}
	}
}

// WithMethod overrides the submission method. Only GET and POST survive;
// anything else falls back to POST.
func WithMethod(method string) Option {
	return func(cfg *config) {
		cfg.method = normaliseMethod(method)
	}
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// WithTitle sets the document title used when the form has none.
func WithTitle(title string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(title); trimmed != "" {
			cfg.title = trimmed
		}
	}
}

// WithStylesheet replaces the embedded stylesheet in styled documents.
func WithStylesheet(css string) Option {
	return func(cfg *config) {
		cfg.stylesheet = &css
	}
}

// WithTheme resolves design tokens through a go-theme selector. The merged
// tokens are emitted as CSS custom properties ahead of the stylesheet.
func WithTheme(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = strings.TrimSpace(name)
		cfg.themeVariant = strings.TrimSpace(variant)
	}
}

// Renderer produces HTML from a form snapshot.
type Renderer struct {
	cfg        config
	templates  rendertemplate.TemplateRenderer
	stylesheet string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer. Theme selection happens here so a bad theme
// name fails fast.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		formID:      DefaultFormID,
		action:      DefaultAction,
		method:      DefaultMethod,
		submitLabel: DefaultSubmitLabel,
		title:       DefaultTitle,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("markup: configure template renderer: %w", err)
		}
		templates = engine
	}

	stylesheet, err := buildStylesheet(cfg)
	if err != nil {
		return nil, err
	}

	return &Renderer{cfg: cfg, templates: templates, stylesheet: stylesheet}, nil
}

func buildStylesheet(cfg config) (string, error) {
	if !cfg.styled {
		return "", nil
	}
	css := defaultStylesheet()
	if cfg.stylesheet != nil {
		css = *cfg.stylesheet
	}

	selector := cfg.selector
	if selector == nil {
		selector = NewManifestSelector(DefaultThemeManifest())
	}
	selection, err := selector.Select(cfg.themeName, cfg.themeVariant)
	if err != nil {
		return "", fmt.Errorf("markup: select theme: %w", err)
	}
	return cssVariables(SelectionTokens(selection)) + css, nil
}

// Name reports "html-styled" for document output and "html" otherwise.
func (r *Renderer) Name() string {
	if r.cfg.styled {
		return "html-styled"
	}
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render implements render.Renderer. RenderOptions may override the form
// action and method.
func (r *Renderer) Render(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("markup: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := r.markup(form, opts)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// Markup renders the form with the renderer's own settings.
func (r *Renderer) Markup(form model.Form) (string, error) {
	return r.markup(form, render.RenderOptions{})
}

func (r *Renderer) markup(form model.Form, opts render.RenderOptions) (string, error) {
	if r == nil || r.templates == nil {
		return "", errors.New("markup: template renderer is nil")
	}

	view := r.formView(form.Fields, opts)
	formHTML, err := r.templates.RenderTemplate(formTemplate, map[string]any{"form": view})
	if err != nil {
		return "", fmt.Errorf("markup: render form: %w", err)
	}

	script, err := r.Script(form.Fields)
	if err != nil {
		return "", err
	}

	if !r.cfg.styled {
		return compactLines(formHTML + "\n" + script), nil
	}

	title := strings.TrimSpace(form.Title)
	if title == "" {
		title = r.cfg.title
	}
	document, err := r.templates.RenderTemplate(documentTemplate, map[string]any{
		"title":      title,
		"stylesheet": r.stylesheet,
		"form":       formHTML,
		"script":     script,
	})
	if err != nil {
		return "", fmt.Errorf("markup: render document: %w", err)
	}
	return compactLines(document), nil
}

// Generate renders fields with the default templates. styled selects the
// complete document over the bare form.
func Generate(fields []model.Field, styled bool, options ...Option) (string, error) {
	r, err := New(append(options, WithStyled(styled))...)
	if err != nil {
		return "", err
	}
	return r.Markup(model.Form{Fields: fields})
}

// compactLines drops whitespace-only lines left behind by template tags.
func compactLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t\r"))
	}
	return strings.Join(kept, "\n") + "\n"
}

func normaliseMethod(method string) string {
	switch upper := strings.ToUpper(strings.TrimSpace(method)); upper {
	case "GET", "POST":
		return upper
	default:
		return DefaultMethod
	}
}
