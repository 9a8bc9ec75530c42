package tui

import "testing"

func TestSurveyValidatorAdaptsStringValidator(t *testing.T) {
	validate := surveyValidator(validateNumber)

	if err := validate("42"); err != nil {
		t.Fatalf("expected number to pass, got %v", err)
	}
	if err := validate("forty-two"); err == nil {
		t.Fatalf("expected non-number to fail")
	}
	if err := validate(nil); err != nil {
		t.Fatalf("non-string answer should validate as empty input, got %v", err)
	}
}
