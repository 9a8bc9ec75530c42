package visibility

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

func contactFields() []model.Field {
	return []model.Field{
		{ID: "A", Type: model.FieldTypeSelect, Label: "Subscribe", Options: []string{"Yes", "No"}},
		{ID: "B", Type: model.FieldTypeEmail, Label: "Email", ShowWhen: &model.ShowWhen{Field: "A", Value: "yes"}},
	}
}

func TestIsVisible(t *testing.T) {
	fields := contactFields()
	dependent := fields[1]

	cases := []struct {
		name   string
		values map[string]string
		want   bool
	}{
		{"matching value", map[string]string{"A": "yes"}, true},
		{"other value", map[string]string{"A": "no"}, false},
		{"absent value", map[string]string{}, false},
		{"nil map", nil, false},
		{"case sensitive", map[string]string{"A": "Yes"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsVisible(dependent, tc.values); got != tc.want {
				t.Fatalf("IsVisible = %v, want %v", got, tc.want)
			}
		})
	}

	if !IsVisible(fields[0], nil) {
		t.Fatalf("field without rule must be visible")
	}
}

func TestIsVisibleEmptyRuleValue(t *testing.T) {
	field := model.Field{ID: "B", ShowWhen: &model.ShowWhen{Field: "A", Value: ""}}
	if !IsVisible(field, map[string]string{"A": ""}) {
		t.Fatalf("stored empty value should match empty rule value")
	}
	if IsVisible(field, map[string]string{}) {
		t.Fatalf("absent value should not match empty rule value")
	}
}

func TestRulesTransitive(t *testing.T) {
	fields := append(contactFields(),
		model.Field{ID: "C", Type: model.FieldTypeSelect, Label: "Frequency", Options: []string{"Daily", "Weekly"}, ShowWhen: &model.ShowWhen{Field: "A", Value: "yes"}},
		model.Field{ID: "D", Type: model.FieldTypeText, Label: "Best time", ShowWhen: &model.ShowWhen{Field: "C", Value: "daily"}},
	)
	rules := New(fields)

	values := map[string]string{"A": "yes", "C": "daily"}
	if !rules.Visible("D", Context{Values: values}) {
		t.Fatalf("D should be visible when whole chain matches")
	}

	values["A"] = "no"
	if rules.Visible("D", Context{Values: values}) {
		t.Fatalf("D should be hidden when its controller is hidden")
	}

	var ids []string
	for _, field := range rules.VisibleFields(values) {
		ids = append(ids, field.ID)
	}
	if diff := cmp.Diff([]string{"A"}, ids); diff != "" {
		t.Fatalf("visible ids mismatch (-want +got):\n%s", diff)
	}
}

func TestRulesDanglingAndCycles(t *testing.T) {
	rules := New([]model.Field{
		{ID: "orphan", Type: model.FieldTypeText, ShowWhen: &model.ShowWhen{Field: "deleted", Value: "x"}},
		{ID: "x", Type: model.FieldTypeSelect, ShowWhen: &model.ShowWhen{Field: "y", Value: "1"}},
		{ID: "y", Type: model.FieldTypeSelect, ShowWhen: &model.ShowWhen{Field: "x", Value: "1"}},
		{ID: "self", Type: model.FieldTypeSelect, ShowWhen: &model.ShowWhen{Field: "self", Value: "1"}},
	})
	values := map[string]string{"deleted": "x", "x": "1", "y": "1", "self": "1"}
	for _, id := range []string{"orphan", "x", "y", "self", "unknown"} {
		if rules.Visible(id, Context{Values: values}) {
			t.Errorf("%s should be hidden", id)
		}
	}
}

func TestRulesControllers(t *testing.T) {
	fields := append(contactFields(),
		model.Field{ID: "C", Type: model.FieldTypeText, ShowWhen: &model.ShowWhen{Field: "A", Value: "no"}},
		model.Field{ID: "D", Type: model.FieldTypeText, ShowWhen: &model.ShowWhen{Field: "missing", Value: "no"}},
	)
	if diff := cmp.Diff([]string{"A"}, New(fields).Controllers()); diff != "" {
		t.Fatalf("controllers mismatch (-want +got):\n%s", diff)
	}
}

func TestEvaluatorFunc(t *testing.T) {
	var eval Evaluator = EvaluatorFunc(func(id string, ctx Context) bool {
		return ctx.Values[id] == "on"
	})
	if !eval.Visible("x", Context{Values: map[string]string{"x": "on"}}) {
		t.Fatalf("expected adapter to delegate")
	}
}
