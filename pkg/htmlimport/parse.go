package htmlimport

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

var (
	// ErrNoForm is returned when the markup contains no form element.
	ErrNoForm = errors.New("htmlimport: no form element found")
	// ErrNoFields is returned when the form holds no importable controls.
	ErrNoFields = errors.New("htmlimport: form has no importable controls")
)

var skippedInputTypes = map[string]bool{
	"submit": true,
	"button": true,
	"reset":  true,
	"hidden": true,
	"image":  true,
}

var keptInputTypes = map[string]model.FieldType{
	"tel":      model.FieldTypeTel,
	"email":    model.FieldTypeEmail,
	"number":   model.FieldTypeNumber,
	"date":     model.FieldTypeDate,
	"file":     model.FieldTypeFile,
	"radio":    model.FieldTypeRadio,
	"checkbox": model.FieldTypeCheckbox,
}

// Parse reads raw HTML and returns one descriptor per control of the first
// form, in document order. Radios sharing a name collapse into one field.
// The descriptors carry no ids. Parse returns either the complete list or an
// error.
func Parse(raw string) ([]model.Field, error) {
	clean := formSanitizer().Sanitize(raw)
	doc, err := html.Parse(strings.NewReader(clean))
	if err != nil {
		return nil, fmt.Errorf("htmlimport: parse: %w", err)
	}

	form := findFirst(doc, atom.Form)
	if form == nil {
		return nil, ErrNoForm
	}

	p := &parser{form: form, byID: make(map[string]*html.Node), radios: make(map[string]int)}
	p.index(form)
	p.walk(form)

	if len(p.fields) == 0 {
		return nil, ErrNoFields
	}
	return p.fields, nil
}

type parser struct {
	form   *html.Node
	byID   map[string]*html.Node
	radios map[string]int
	fields []model.Field
}

func (p *parser) index(n *html.Node) {
	if n.Type == html.ElementNode {
		if id := attr(n, "id"); id != "" {
			if _, seen := p.byID[id]; !seen {
				p.byID[id] = n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.index(c)
	}
}

func (p *parser) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Input:
			p.input(n)
			return
		case atom.Select:
			p.selectField(n)
			return
		case atom.Textarea:
			p.textarea(n)
			return
		case atom.Div:
			if key := attr(n, "data-sitekey"); key != "" {
				p.recaptcha(n, key)
				return
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

func (p *parser) input(n *html.Node) {
	kind := strings.ToLower(strings.TrimSpace(attr(n, "type")))
	if skippedInputTypes[kind] {
		return
	}
	fieldType, ok := keptInputTypes[kind]
	if !ok {
		fieldType = model.FieldTypeText
	}
	if fieldType == model.FieldTypeRadio {
		p.radio(n)
		return
	}

	field := p.base(n, fieldType)
	switch fieldType {
	case model.FieldTypeFile:
		field.Accept = strings.TrimSpace(attr(n, "accept"))
	case model.FieldTypeCheckbox:
	default:
		field.Placeholder = strings.TrimSpace(attr(n, "placeholder"))
	}
	p.fields = append(p.fields, field)
}

func (p *parser) textarea(n *html.Node) {
	field := p.base(n, model.FieldTypeTextarea)
	field.Placeholder = strings.TrimSpace(attr(n, "placeholder"))
	p.fields = append(p.fields, field)
}

func (p *parser) selectField(n *html.Node) {
	field := p.base(n, model.FieldTypeSelect)
	for _, opt := range findAll(n, atom.Option) {
		text := collapse(textContent(opt))
		value, hasValue := lookupAttr(opt, "value")
		if hasValue && strings.TrimSpace(value) == "" {
			if field.Placeholder == "" {
				field.Placeholder = text
			}
			continue
		}
		if !hasValue {
			value = text
		}
		if text == "" {
			text = strings.TrimSpace(value)
		}
		p.addOption(&field, text, value)
	}
	p.fields = append(p.fields, field)
}

func (p *parser) radio(n *html.Node) {
	group := attr(n, "name")
	if group == "" {
		group = "#" + attr(n, "id")
	}

	value := attr(n, "value")
	display := ""
	if id := attr(n, "id"); id != "" {
		if label := p.labelFor(id); label != nil {
			display = labelText(label)
		}
	}
	if display == "" {
		display = strings.TrimSpace(value)
	}
	if value == "" {
		value = display
	}

	if idx, ok := p.radios[group]; ok {
		field := &p.fields[idx]
		if hasAttr(n, "required") {
			field.Required = true
		}
		p.addOption(field, display, value)
		return
	}

	field := model.Field{
		Type:     model.FieldTypeRadio,
		Label:    model.LabelFor(attr(n, "name"), attr(n, "aria-label"), p.groupLabel(n)),
		Required: hasAttr(n, "required"),
	}
	p.addOption(&field, display, value)
	p.radios[group] = len(p.fields)
	p.fields = append(p.fields, field)
}

func (p *parser) recaptcha(n *html.Node, siteKey string) {
	p.fields = append(p.fields, model.Field{
		Type:             model.FieldTypeRecaptcha,
		Label:            model.LabelFor(attr(n, "id"), attr(n, "aria-label")),
		RecaptchaSiteKey: strings.TrimSpace(siteKey),
	})
}

// base fills the attributes shared by every non-radio control.
func (p *parser) base(n *html.Node, fieldType model.FieldType) model.Field {
	var forLabel, wrapping string
	if id := attr(n, "id"); id != "" {
		if label := p.labelFor(id); label != nil {
			forLabel = labelText(label)
		}
	}
	if label := enclosing(n, atom.Label, p.form); label != nil {
		wrapping = labelText(label)
	}

	return model.Field{
		Type:        fieldType,
		Label:       model.LabelFor(attr(n, "name"), attr(n, "aria-label"), forLabel, wrapping),
		Required:    hasAttr(n, "required"),
		Description: p.description(n),
	}
}

func (p *parser) addOption(field *model.Field, display, value string) {
	display = collapse(display)
	token := model.Sanitize(value)
	if display == "" || token == "" {
		return
	}
	field.Options = append(field.Options, display)
	field.OptionValues = append(field.OptionValues, token)
}

func (p *parser) labelFor(id string) *html.Node {
	var found *html.Node
	visit(p.form, func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.DataAtom == atom.Label && attr(n, "for") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// groupLabel finds the heading of a radio group: the closest ancestor's
// legend or label without a for attribute.
func (p *parser) groupLabel(n *html.Node) string {
	for parent := n.Parent; parent != nil; parent = parent.Parent {
		for c := parent.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if c.DataAtom == atom.Legend || (c.DataAtom == atom.Label && !hasAttr(c, "for")) {
				if text := labelText(c); text != "" {
					return text
				}
			}
		}
		if parent == p.form {
			break
		}
	}
	return ""
}

func (p *parser) description(n *html.Node) string {
	for _, id := range strings.Fields(attr(n, "aria-describedby")) {
		if target, ok := p.byID[id]; ok {
			if text := collapse(textContent(target)); text != "" {
				return text
			}
		}
	}
	return ""
}

// labelText returns the visible label text, leaving out nested controls and
// required markers.
func labelText(label *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
			b.WriteByte(' ')
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Input, atom.Select, atom.Textarea:
				return
			}
			if hasClass(n, "required") {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(label)
	return strings.TrimSpace(strings.TrimSuffix(collapse(b.String()), "*"))
}
