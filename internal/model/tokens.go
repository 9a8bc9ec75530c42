package model

import (
	"strconv"
	"strings"
	"unicode"
)

// FallbackExportName is used when a label sanitises to the empty token.
const FallbackExportName = "field"

// Sanitize turns arbitrary text into a lowercase identifier token. The text
// is trimmed and lowercased, every rune outside ASCII letters, digits,
// whitespace, underscore and hyphen is removed, and only then do the
// remaining whitespace runs collapse into a single underscore. A space left
// at an edge by a removed rune still yields a separator, so "Name *" becomes
// "name_". Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(text string) string {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if trimmed == "" {
		return ""
	}

	filtered := make([]rune, 0, len(trimmed))
	for _, r := range trimmed {
		if isLower(r) || isDigit(r) || r == '_' || r == '-' || unicode.IsSpace(r) {
			filtered = append(filtered, r)
		}
	}

	var out strings.Builder
	out.Grow(len(filtered))
	inSpace := false
	for _, r := range filtered {
		if unicode.IsSpace(r) {
			if !inSpace {
				out.WriteByte('_')
			}
			inSpace = true
			continue
		}
		inSpace = false
		out.WriteRune(r)
	}
	return out.String()
}

// Collision records several fields whose labels sanitise to the same token.
type Collision struct {
	Token    string
	FieldIDs []string
}

// ExportNames derives one stable name per field, aligned with the input
// order. The first field claiming a token keeps it; later ones receive a
// numeric suffix (_2, _3, ...) so every name is unique. Labels that sanitise
// to nothing fall back to FallbackExportName.
func ExportNames(fields []Field) ([]string, []Collision) {
	names := make([]string, len(fields))
	taken := make(map[string]bool, len(fields))
	claims := make(map[string][]string)
	var order []string

	base := make([]string, len(fields))
	for i, field := range fields {
		token := Sanitize(field.Label)
		if token == "" {
			token = FallbackExportName
		}
		base[i] = token
		if _, seen := claims[token]; !seen {
			order = append(order, token)
		}
		claims[token] = append(claims[token], field.ID)
	}

	// plain tokens first so a later "a_2" label cannot steal a suffix slot
	for i, token := range base {
		if !taken[token] {
			taken[token] = true
			names[i] = token
		}
	}
	for i, token := range base {
		if names[i] != "" {
			continue
		}
		for n := 2; ; n++ {
			candidate := token + "_" + strconv.Itoa(n)
			if !taken[candidate] {
				taken[candidate] = true
				names[i] = candidate
				break
			}
		}
	}

	var collisions []Collision
	for _, token := range order {
		if ids := claims[token]; len(ids) > 1 {
			collisions = append(collisions, Collision{Token: token, FieldIDs: ids})
		}
	}
	return names, collisions
}

// ExportNameIndex maps field ids to their export names.
func ExportNameIndex(fields []Field) map[string]string {
	names, _ := ExportNames(fields)
	index := make(map[string]string, len(fields))
	for i, field := range fields {
		index[field.ID] = names[i]
	}
	return index
}
