package htmlimport

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	formPolicyOnce sync.Once
	formPolicy     *bluemonday.Policy
)

// formSanitizer keeps form controls and the markup that labels them. Scripts,
// styles and event handlers are dropped before parsing.
func formSanitizer() *bluemonday.Policy {
	formPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		elements := []string{
			"form", "label", "input", "select", "option", "optgroup", "textarea",
			"fieldset", "legend", "div", "span", "p", "small",
		}
		policy.AllowElements(elements...)
		policy.AllowNoAttrs().OnElements(elements...)

		policy.AllowAttrs(
			"id", "name", "class", "aria-label", "aria-describedby",
		).Globally()
		policy.AllowAttrs(
			"type", "value", "required", "accept", "placeholder", "checked",
		).OnElements("input")
		policy.AllowAttrs("required", "multiple").OnElements("select")
		policy.AllowAttrs("value", "selected").OnElements("option")
		policy.AllowAttrs("required", "placeholder").OnElements("textarea")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs("data-sitekey").OnElements("div")

		formPolicy = policy
	})
	return formPolicy
}
