package nodes

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// RenderHTML serializes the node tree. Raw markup carried in an innerHTML
// attribute goes through a parse-then-render round trip, so malformed
// generator output cannot escape its injection point.
func RenderHTML(n *Node) (string, error) {
	var sb strings.Builder
	if err := renderNode(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func renderNode(sb *strings.Builder, n *Node) error {
	if n == nil {
		return nil
	}
	switch n.Kind {

	case KindEmpty:
		return nil

	case KindText:
		return html.Render(sb, &html.Node{
			Type: html.TextNode,
			Data: n.Text,
		})

	case KindSequence:
		for _, child := range n.Children {
			if err := renderNode(sb, child); err != nil {
				return err
			}
		}
		return nil

	case KindElement:
		elem, err := toHTMLNode(n)
		if err != nil {
			return err
		}
		return html.Render(sb, elem)

	}
	return fmt.Errorf("cannot render node kind: %v", n.Kind)
}

func toHTMLNode(n *Node) (*html.Node, error) {
	tag := strings.ToLower(n.Tag)
	elem := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}

	for _, key := range sortedAttrKeys(n.Attrs) {
		value := n.Attrs[key]
		switch key {
		case "innerHTML":
			continue
		case "style":
			if css := styleText(value); css != "" {
				elem.Attr = append(elem.Attr, html.Attribute{Key: "style", Val: css})
			}
			continue
		}
		str, ok := attrText(value)
		if !ok {
			continue
		}
		elem.Attr = append(elem.Attr, html.Attribute{Key: attrName(key), Val: str})
	}

	if raw, ok := n.Attr("innerHTML"); ok {
		markup, _ := raw.(string)
		children, err := parseFragment(markup)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			elem.AppendChild(child)
		}
		return elem, nil
	}

	for _, child := range flattenChildren(n.Children) {
		switch child.Kind {
		case KindText:
			elem.AppendChild(&html.Node{
				Type: html.TextNode,
				Data: child.Text,
			})
		case KindElement:
			childElem, err := toHTMLNode(child)
			if err != nil {
				return nil, err
			}
			elem.AppendChild(childElem)
		}
	}

	return elem, nil
}

// flattenChildren splices nested sequences and drops empty nodes, so the
// exporter only ever appends text and element nodes.
func flattenChildren(children []*Node) []*Node {
	var ret []*Node
	for _, child := range children {
		if child == nil || child.Kind == KindEmpty {
			continue
		}
		if child.Kind == KindSequence {
			ret = append(ret, flattenChildren(child.Children)...)
			continue
		}
		ret = append(ret, child)
	}
	return ret
}

// ValidateMarkup parses markup as a fragment and re-renders it, returning
// the sanitized form. Invalid structure is repaired by the parser rather
// than rejected, matching how a browser would treat it.
func ValidateMarkup(markup string) (string, error) {
	children, err := parseFragment(markup)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, child := range children {
		if err := html.Render(&sb, child); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func parseFragment(markup string) ([]*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	return html.ParseFragment(strings.NewReader(markup), context)
}

func sortedAttrKeys(attrs map[string]any) []string {
	if len(attrs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// attrName maps framework-flavored attribute names that generators tend to
// emit onto their HTML forms.
func attrName(key string) string {
	switch key {
	case "className":
		return "class"
	case "htmlFor":
		return "for"
	}
	return strings.ToLower(key)
}

func attrText(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		if !v {
			return "", false
		}
		return "", true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	}
	return "", false
}

// styleText renders a style attribute. Generators produce either object
// styles with camelCase keys or plain css text; both are accepted.
func styleText(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case map[string]any:
		var parts []string
		for _, key := range sortedAttrKeys(v) {
			str, ok := attrText(v[key])
			if !ok {
				continue
			}
			parts = append(parts, cssName(key)+": "+str)
		}
		return strings.Join(parts, "; ")
	}
	return ""
}

func cssName(key string) string {
	var sb strings.Builder
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			sb.WriteRune('-')
			sb.WriteRune(r + ('a' - 'A'))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
