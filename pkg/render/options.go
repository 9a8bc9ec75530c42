package render

// RenderOptions describe per-request data that renderers can use to customise
// their output without touching the field list.
type RenderOptions struct {
	// Action overrides the submission endpoint declared on the form element.
	Action string
	// Method overrides the HTTP method declared on the form element.
	Method string
	// Values pre-populates interactive renderers keyed by field id.
	Values map[string]string
}
