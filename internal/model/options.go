package model

import "strings"

// Accept presets offered by the file field editor.
const (
	AcceptPresetDocuments = "documents"
	AcceptPresetImages    = "images"
	AcceptPresetAll       = "all"
)

var acceptPresets = map[string]string{
	AcceptPresetDocuments: ".pdf,.doc,.docx",
	AcceptPresetImages:    "image/*",
	AcceptPresetAll:       ".pdf,.doc,.docx,image/*",
}

// ResolveAccept expands a preset name into its file filter expression.
// Anything else is returned trimmed and unchanged.
func ResolveAccept(accept string) string {
	trimmed := strings.TrimSpace(accept)
	if expr, ok := acceptPresets[strings.ToLower(trimmed)]; ok {
		return expr
	}
	return trimmed
}

// Choice is one selectable option: the text shown to the user and the token
// submitted for it.
type Choice struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OptionChoices pairs display strings with their submitted tokens. A stored
// OptionValues entry wins; otherwise the token is derived with Sanitize.
// Options whose token is empty are skipped.
func OptionChoices(field Field) []Choice {
	if len(field.Options) == 0 {
		return nil
	}
	out := make([]Choice, 0, len(field.Options))
	for i, label := range field.Options {
		value := ""
		if i < len(field.OptionValues) {
			value = field.OptionValues[i]
		}
		if value == "" {
			value = Sanitize(label)
		}
		if value == "" {
			continue
		}
		out = append(out, Choice{Label: label, Value: value})
	}
	return out
}

// OptionLabel returns the display string for a stored option token, or the
// token itself when no option matches.
func OptionLabel(field Field, value string) string {
	for _, choice := range OptionChoices(field) {
		if choice.Value == value {
			return choice.Label
		}
	}
	return value
}

// ParseOptionList splits the comma separated editor input ("Red, Green")
// into display strings.
func ParseOptionList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// NormalizeOptions trims display strings and derives their tokens. Entries
// that are blank, or whose token would be empty, are dropped so the two
// returned slices always line up.
func NormalizeOptions(display []string) ([]string, []string) {
	var (
		options []string
		values  []string
	)
	for _, raw := range display {
		label := strings.TrimSpace(raw)
		if label == "" {
			continue
		}
		token := Sanitize(label)
		if token == "" {
			continue
		}
		options = append(options, label)
		values = append(values, token)
	}
	return options, values
}
