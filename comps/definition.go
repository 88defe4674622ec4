package comps

import (
	"github.com/reusee/taideck/vars"
)

// RenderFunc is the directly-callable form of component logic. It gets the
// same context a compiled unit would and returns a node tree, raw markup,
// or anything else the result normalizer accepts.
type RenderFunc func(ctx *ExecutionContext) (any, error)

// Definition is the immutable authoring-side input: either source text or
// a callable, plus declared custom properties and fixed layout fields.
type Definition struct {
	ID          string
	Text        string
	Render      RenderFunc
	CustomProps map[string]any
	Width       int
	Height      int
}

// MergedProps builds the property mapping an execution context carries:
// measured container size as the base layer (falling back to the
// definition's fixed fields), declared custom properties layered over it.
func (d *Definition) MergedProps(width int, height int) map[string]any {
	props := make(map[string]any, len(d.CustomProps)+2)
	props["width"] = vars.FirstNonZero(width, d.Width)
	props["height"] = vars.FirstNonZero(height, d.Height)
	for name, value := range d.CustomProps {
		props[name] = value
	}
	return props
}
