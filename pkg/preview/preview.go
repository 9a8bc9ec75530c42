package preview

import (
	"strings"
	"sync"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/visibility"
)

const (
	// DefaultRequiredMessage is shown for flagged fields without a custom
	// error message.
	DefaultRequiredMessage = "This field is required"
	// DefaultChoiceMessage replaces DefaultRequiredMessage for select and
	// radio fields.
	DefaultChoiceMessage = "Please select an option"
	// RecaptchaConfigError is displayed instead of a recaptcha widget that
	// has no site key.
	RecaptchaConfigError = "Please configure reCAPTCHA site key in the form builder"
)

// Result reports the outcome of a submit attempt.
type Result struct {
	OK bool
	// Errors lists flagged field ids in list order.
	Errors []string
	// Values holds the submitted values keyed by export name. Nil when the
	// submission was blocked.
	Values map[string]string
}

// Option customises a Preview.
type Option func(*Preview)

// WithValues prefills the value map, keyed by field id.
func WithValues(values map[string]string) Option {
	return func(p *Preview) {
		for id, v := range values {
			p.state.SetValue(id, v)
		}
	}
}

// WithEvaluator overrides the visibility evaluator. The default evaluates
// ShowWhen chains transitively over the current field list.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(p *Preview) {
		p.custom = evaluator
	}
}

// Preview is the interactive representation of a field list bound to live
// values.
type Preview struct {
	mu     sync.RWMutex
	fields []model.Field
	rules  *visibility.Rules
	custom visibility.Evaluator
	state  *State
}

// New builds a preview over a snapshot of fields.
func New(fields []model.Field, opts ...Option) *Preview {
	p := &Preview{state: NewState(nil)}
	p.setFields(fields)
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// SetFields swaps in a new snapshot. Values and error flags of ids that
// survive are kept.
func (p *Preview) SetFields(fields []model.Field) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setFields(fields)
	keep := make(map[string]bool, len(p.fields))
	for _, field := range p.fields {
		keep[field.ID] = true
	}
	p.state.retain(keep)
}

func (p *Preview) setFields(fields []model.Field) {
	p.fields = model.CloneFields(fields)
	p.rules = visibility.New(p.fields)
}

// Fields returns a copy of the current snapshot.
func (p *Preview) Fields() []model.Field {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return model.CloneFields(p.fields)
}

// OnValueChange stores value for id and clears its error flag. No
// validation happens here.
func (p *Preview) OnValueChange(id, value string) {
	p.state.SetValue(id, value)
}

// Value returns the stored value for id.
func (p *Preview) Value(id string) (string, bool) {
	return p.state.Value(id)
}

// Values returns a copy of the value map keyed by field id.
func (p *Preview) Values() map[string]string {
	return p.state.Values()
}

// Errors returns the flagged field ids.
func (p *Preview) Errors() map[string]bool {
	return p.state.Errors()
}

// Visible reports whether id is currently shown.
func (p *Preview) Visible(id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.visible(id, p.state.Values())
}

func (p *Preview) visible(id string, values map[string]string) bool {
	ctx := visibility.Context{Values: values}
	if p.custom != nil {
		return p.custom.Visible(id, ctx)
	}
	return p.rules.Visible(id, ctx)
}

// VisibleFields returns the shown fields in list order.
func (p *Preview) VisibleFields() []model.Field {
	p.mu.RLock()
	defer p.mu.RUnlock()
	values := p.state.Values()
	out := make([]model.Field, 0, len(p.fields))
	for _, field := range p.fields {
		if p.visible(field.ID, values) {
			out = append(out, field.Clone())
		}
	}
	return out
}

// Submit validates every visible required field. Hidden fields never block
// submission. When any field is flagged the result is not OK and carries no
// values.
func (p *Preview) Submit() Result {
	p.mu.RLock()
	defer p.mu.RUnlock()

	values := p.state.Values()
	var flagged []string
	for _, field := range p.fields {
		if !validates(field) || !p.visible(field.ID, values) {
			continue
		}
		if strings.TrimSpace(values[field.ID]) == "" {
			flagged = append(flagged, field.ID)
		}
	}
	p.state.replaceErrors(flagged)
	if len(flagged) > 0 {
		return Result{Errors: flagged}
	}

	names, _ := model.ExportNames(p.fields)
	submitted := make(map[string]string)
	for i, field := range p.fields {
		if !p.visible(field.ID, values) || isUnconfiguredRecaptcha(field) {
			continue
		}
		if v, ok := values[field.ID]; ok {
			submitted[names[i]] = v
		}
	}
	return Result{OK: true, Values: submitted}
}

// validates reports whether a required check applies to field at all.
func validates(field model.Field) bool {
	return field.Required && !isUnconfiguredRecaptcha(field)
}

func isUnconfiguredRecaptcha(field model.Field) bool {
	return field.Type == model.FieldTypeRecaptcha && strings.TrimSpace(field.RecaptchaSiteKey) == ""
}

// CheckboxValue maps a checkbox state to its stored value.
func CheckboxValue(checked bool) string {
	if checked {
		return "true"
	}
	return "false"
}

// ErrorMessage returns the message displayed for a flagged field.
func ErrorMessage(field model.Field) string {
	if msg := strings.TrimSpace(field.ErrorMessage); msg != "" {
		return msg
	}
	if field.Type.HasOptions() {
		return DefaultChoiceMessage
	}
	return DefaultRequiredMessage
}
