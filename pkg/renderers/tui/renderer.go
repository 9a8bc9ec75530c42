package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/preview"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Renderer implements render.Renderer for terminal-driven preview sessions.
// It prompts every visible field, submits through a preview, re-prompts the
// fields that fail validation and serialises the submitted values.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	maxAttempts       int
	submitTransformer SubmitTransformer
	theme             Theme
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       NewSurveyDriver(nil),
		outputFormat: OutputFormatJSON,
		maxAttempts:  DefaultMaxAttempts,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	return r, nil
}

var _ render.Renderer = (*Renderer)(nil)

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render runs an interactive session over the form. opts.Values prefills
// answers keyed by field id.
func (r *Renderer) Render(ctx context.Context, form model.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	p := preview.New(form.Fields, preview.WithValues(opts.Values))
	values, err := r.Session(ctx, p)
	if err != nil {
		return nil, err
	}
	return r.serialize(values)
}

// Session drives p until a submit succeeds and returns the submitted values
// keyed by export name.
func (r *Renderer) Session(ctx context.Context, p *preview.Preview) (map[string]string, error) {
	prompted := make(map[string]bool)
	for attempt := 1; ; attempt++ {
		if err := r.promptVisible(ctx, p, prompted); err != nil {
			return nil, err
		}

		res := p.Submit()
		if res.OK {
			values := res.Values
			if r.submitTransformer != nil {
				var err error
				values, err = r.submitTransformer(values)
				if err != nil {
					return nil, fmt.Errorf("tui: submit transformer: %w", err)
				}
			}
			return values, nil
		}

		if err := r.reportErrors(ctx, p, res.Errors); err != nil {
			return nil, err
		}
		if attempt >= r.maxAttempts {
			return nil, fmt.Errorf("%w: %s", ErrTooManyAttempts, strings.Join(res.Errors, ", "))
		}
		for _, id := range res.Errors {
			delete(prompted, id)
		}
	}
}

// promptVisible prompts the first visible field not yet answered until none
// is left. Visibility is re-evaluated after each answer.
func (r *Renderer) promptVisible(ctx context.Context, p *preview.Preview, prompted map[string]bool) error {
	for {
		var next *preview.Widget
		widgets := p.Widgets()
		for i := range widgets {
			if !prompted[widgets[i].FieldID] {
				next = &widgets[i]
				break
			}
		}
		if next == nil {
			return nil
		}

		value, ok, err := r.promptWidget(ctx, *next)
		if err != nil {
			return err
		}
		prompted[next.FieldID] = true
		if ok {
			p.OnValueChange(next.FieldID, value)
		}
	}
}

func (r *Renderer) promptWidget(ctx context.Context, w preview.Widget) (string, bool, error) {
	message := w.Label
	if w.Required {
		message += " *"
	}

	switch w.Kind {
	case preview.KindConfigError:
		return "", false, r.driver.Info(ctx, r.theme.ErrorPrefix+w.Label+": "+w.Message)

	case preview.KindCheckbox:
		checked, err := r.driver.Confirm(ctx, ConfirmConfig{
			Message: message,
			Default: w.Checked,
			Help:    w.Description,
		})
		if err != nil {
			return "", false, err
		}
		return preview.CheckboxValue(checked), true, nil

	case preview.KindSelect, preview.KindRadio:
		if len(w.Options) == 0 {
			return "", false, r.driver.Info(ctx, r.theme.InfoPrefix+w.Label+": no options configured")
		}
		labels := make([]string, len(w.Options))
		defaultIdx := 0
		for i, choice := range w.Options {
			labels[i] = choice.Label
			if choice.Value == w.Value {
				defaultIdx = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      message,
			Options:      labels,
			DefaultIndex: defaultIdx,
			Help:         w.Description,
		})
		if err != nil {
			return "", false, err
		}
		if idx < 0 || idx >= len(w.Options) {
			return "", false, nil
		}
		return w.Options[idx].Value, true, nil

	case preview.KindTextarea:
		text, err := r.driver.TextArea(ctx, TextAreaConfig{
			Message: message,
			Default: w.Value,
			Help:    w.Description,
		})
		if err != nil {
			return "", false, err
		}
		return text, true, nil

	default:
		cfg := InputConfig{
			Message:     message,
			Default:     w.Value,
			Help:        w.Description,
			Placeholder: w.Placeholder,
		}
		if w.InputType == string(model.FieldTypeNumber) {
			cfg.Validator = validateNumber
		}
		text, err := r.driver.Input(ctx, cfg)
		if err != nil {
			return "", false, err
		}
		return text, true, nil
	}
}

func (r *Renderer) reportErrors(ctx context.Context, p *preview.Preview, flagged []string) error {
	messages := make(map[string]string, len(flagged))
	for _, w := range p.Widgets() {
		if w.Error != "" {
			messages[w.FieldID] = w.Label + ": " + w.Error
		}
	}
	for _, id := range flagged {
		msg, ok := messages[id]
		if !ok {
			msg = id + ": " + preview.DefaultRequiredMessage
		}
		if err := r.driver.Info(ctx, r.theme.ErrorPrefix+msg); err != nil {
			return err
		}
	}
	return nil
}

func validateNumber(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return fmt.Errorf("expected a number")
	}
	return nil
}

func (r *Renderer) serialize(values map[string]string) ([]byte, error) {
	if values == nil {
		values = map[string]string{}
	}
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for k, v := range values {
			form.Set(k, v)
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		out, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return out, nil
	}
}

func prettyPrint(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s=%s\n", k, values[k])
	}
	return b.String()
}
