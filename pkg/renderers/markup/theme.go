package markup

import (
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// DefaultThemeName names the built-in manifest.
const DefaultThemeName = "formbuilder"

// DefaultThemeManifest returns the built-in palette with a "dark" variant.
// Token names become CSS custom properties (accent -> --accent).
func DefaultThemeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"accent":       "#2563eb",
			"accent-hover": "#1d4ed8",
			"accent-text":  "#ffffff",
			"border":       "#d1d5db",
			"danger":       "#ef4444",
			"label":        "#374151",
			"muted":        "#6b7280",
			"radius":       "0.375rem",
			"surface":      "#ffffff",
			"text":         "#111827",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"accent":       "#3b82f6",
					"accent-hover": "#60a5fa",
					"border":       "#4b5563",
					"label":        "#e5e7eb",
					"muted":        "#9ca3af",
					"surface":      "#111827",
					"text":         "#f9fafb",
				},
			},
		},
	}
}

// ManifestSelector resolves theme selections from an in-memory set of
// manifests. The first manifest registered is the default theme.
type ManifestSelector struct {
	order     []string
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector indexes manifests by name. Nil or unnamed manifests are
// skipped.
func NewManifestSelector(manifests ...*theme.Manifest) *ManifestSelector {
	s := &ManifestSelector{manifests: make(map[string]*theme.Manifest, len(manifests))}
	for _, manifest := range manifests {
		if manifest == nil || manifest.Name == "" {
			continue
		}
		if _, exists := s.manifests[manifest.Name]; !exists {
			s.order = append(s.order, manifest.Name)
		}
		s.manifests[manifest.Name] = manifest
	}
	return s
}

// Select returns the named theme and variant. An empty name picks the
// default theme; an empty variant selects the base tokens.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if s == nil || len(s.order) == 0 {
		return nil, fmt.Errorf("markup: no themes registered")
	}
	if name == "" {
		name = s.order[0]
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("markup: theme %q not found", name)
	}
	if variant != "" {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("markup: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// SelectionTokens merges the manifest's base tokens with the selected
// variant's overrides.
func SelectionTokens(selection *theme.Selection) map[string]string {
	tokens := make(map[string]string)
	if selection == nil || selection.Manifest == nil {
		return tokens
	}
	for key, value := range selection.Manifest.Tokens {
		tokens[key] = value
	}
	if selection.Variant != "" {
		if variant, ok := selection.Manifest.Variants[selection.Variant]; ok {
			for key, value := range variant.Tokens {
				tokens[key] = value
			}
		}
	}
	return tokens
}

// cssVariables renders tokens as a :root block, sorted by name. Names are
// reduced to identifier tokens and values lose characters that could close
// the declaration or the style element.
func cssVariables(tokens map[string]string) string {
	if len(tokens) == 0 {
		return ""
	}
	names := make([]string, 0, len(tokens))
	for name := range tokens {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, name := range names {
		ident := model.Sanitize(name)
		value := cssValueReplacer.Replace(strings.TrimSpace(tokens[name]))
		if ident == "" || value == "" {
			continue
		}
		fmt.Fprintf(&b, "  --%s: %s;\n", ident, value)
	}
	b.WriteString("}\n")
	return b.String()
}

var cssValueReplacer = strings.NewReplacer(";", "", "{", "", "}", "", "<", "", ">", "")
