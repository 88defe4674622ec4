package renders

import (
	"github.com/reusee/taideck/nodes"
)

// ErrorPanel is the diagnostic surface for a failed instance: a plain
// box carrying the failure text. Monospace and pre-wrap keep compile
// carets aligned.
func ErrorPanel(err error) *nodes.Node {
	return nodes.Element("div",
		map[string]any{
			"class": "component-error",
			"style": map[string]any{
				"border":     "1px solid #c0392b",
				"color":      "#c0392b",
				"padding":    "8px",
				"fontSize":   "12px",
				"fontFamily": "monospace",
				"whiteSpace": "pre-wrap",
				"overflow":   "hidden",
			},
		},
		nodes.Text(err.Error()),
	)
}
