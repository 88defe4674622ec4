package deckjs

import (
	"fmt"
	"strconv"

	"github.com/dop251/goja"

	"github.com/reusee/taideck/nodes"
)

// Builtins is the node-construction vocabulary every runtime exposes to
// compiled sources. The well-known helper retry in the callable path keys
// off the same names.
var Builtins = map[string]any{
	"Element":   jsElement,
	"Fragment":  jsFragment,
	"Text":      jsText,
	"LineBreak": jsLineBreak,
	"RawMarkup": jsRawMarkup,
}

func registerBuiltins(rt *goja.Runtime) error {
	for name, fn := range Builtins {
		if err := rt.Set(name, fn); err != nil {
			return err
		}
	}
	return nil
}

func jsElement(tag string, attrs any, children ...any) *nodes.Node {
	return nodes.Element(tag, attrsMap(attrs), convertChildren(children)...)
}

func jsFragment(children ...any) *nodes.Node {
	return nodes.Sequence(convertChildren(children)...)
}

func jsText(text string) *nodes.Node {
	return nodes.Text(text)
}

func jsLineBreak() *nodes.Node {
	return nodes.LineBreak()
}

func jsRawMarkup(markup string) *nodes.Node {
	return nodes.RawMarkup(markup)
}

func attrsMap(attrs any) map[string]any {
	if m, ok := attrs.(map[string]any); ok {
		return m
	}
	return nil
}

// convertChildren maps exported runtime values onto child nodes the way a
// UI tree builder would: null, undefined and booleans vanish, arrays
// splice, text and numbers become text nodes.
func convertChildren(children []any) []*nodes.Node {
	var out []*nodes.Node
	for _, child := range children {
		switch c := child.(type) {
		case nil, bool:
		case *nodes.Node:
			out = append(out, c)
		case []any:
			out = append(out, convertChildren(c)...)
		case string:
			out = append(out, nodes.Text(c))
		case int64:
			out = append(out, nodes.Text(strconv.FormatInt(c, 10)))
		case float64:
			out = append(out, nodes.Text(strconv.FormatFloat(c, 'f', -1, 64)))
		default:
			out = append(out, nodes.Text(fmt.Sprint(c)))
		}
	}
	return out
}
