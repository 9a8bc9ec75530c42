package visibility

import "github.com/goliatone/go-formbuilder/pkg/model"

// Evaluator determines whether a field is shown given the current value map
// keyed by field id.
type Evaluator interface {
	Visible(fieldID string, ctx Context) bool
}

// Context carries the live values a rule is evaluated against.
type Context struct {
	Values map[string]string
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(fieldID string, ctx Context) bool

// Visible delegates to the underlying function.
func (fn EvaluatorFunc) Visible(fieldID string, ctx Context) bool {
	return fn(fieldID, ctx)
}

// IsVisible applies a field's own rule: a field without ShowWhen is always
// visible, otherwise the controlling field's stored value must equal the
// rule value exactly. An absent value never matches.
func IsVisible(field model.Field, values map[string]string) bool {
	if field.ShowWhen == nil {
		return true
	}
	current, ok := values[field.ShowWhen.Field]
	return ok && current == field.ShowWhen.Value
}

// Rules evaluates ShowWhen chains over a snapshot of the field list. A field
// is visible only when its own rule matches and its controlling field is
// itself visible. Dangling references, self references and cycles hide the
// field.
type Rules struct {
	order []string
	byID  map[string]model.Field
}

var _ Evaluator = (*Rules)(nil)

// New indexes fields for evaluation. The slice is copied.
func New(fields []model.Field) *Rules {
	r := &Rules{
		order: make([]string, 0, len(fields)),
		byID:  make(map[string]model.Field, len(fields)),
	}
	for _, field := range model.CloneFields(fields) {
		if _, dup := r.byID[field.ID]; dup {
			continue
		}
		r.order = append(r.order, field.ID)
		r.byID[field.ID] = field
	}
	return r
}

// Visible reports whether the field with the given id is shown. Unknown ids
// are hidden.
func (r *Rules) Visible(fieldID string, ctx Context) bool {
	if r == nil {
		return false
	}
	return r.visible(fieldID, ctx.Values, make(map[string]bool))
}

func (r *Rules) visible(id string, values map[string]string, seen map[string]bool) bool {
	field, ok := r.byID[id]
	if !ok {
		return false
	}
	if field.ShowWhen == nil {
		return true
	}
	if seen[id] || field.ShowWhen.Field == id {
		return false
	}
	seen[id] = true
	if _, ok := r.byID[field.ShowWhen.Field]; !ok {
		return false
	}
	if !IsVisible(field, values) {
		return false
	}
	return r.visible(field.ShowWhen.Field, values, seen)
}

// VisibleFields returns the shown fields in list order.
func (r *Rules) VisibleFields(values map[string]string) []model.Field {
	if r == nil {
		return nil
	}
	ctx := Context{Values: values}
	out := make([]model.Field, 0, len(r.order))
	for _, id := range r.order {
		if r.Visible(id, ctx) {
			out = append(out, r.byID[id].Clone())
		}
	}
	return out
}

// Controllers returns the ids of fields referenced by at least one ShowWhen
// rule and present in the list, in list order.
func (r *Rules) Controllers() []string {
	if r == nil {
		return nil
	}
	referenced := make(map[string]bool)
	for _, field := range r.byID {
		if field.ShowWhen != nil && field.ShowWhen.Field != field.ID {
			referenced[field.ShowWhen.Field] = true
		}
	}
	var out []string
	for _, id := range r.order {
		if referenced[id] {
			out = append(out, id)
		}
	}
	return out
}
