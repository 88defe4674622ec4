package nodes

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/reusee/taideck/logs"
)

// MultilineMarker is the attribute a generator sets on elements whose text
// content originated from a multi-line literal. Splitting such an element
// also pins its white-space style unless one is already requested.
const MultilineMarker = "data-multiline"

type Normalizer struct {
	Logger logs.Logger
}

// Normalize post-processes the value returned by component logic into a
// single node tree. Embedded newlines in text become explicit line breaks,
// bare markup strings and DOM-like handles become injection leaves, and
// anything unrecognized degrades to its string form rather than failing a
// render that already succeeded.
func (n Normalizer) Normalize(value any) *Node {
	switch v := value.(type) {

	case nil:
		return Empty()

	case *Node:
		return n.normalizeNode(v)

	case string:
		return RawMarkup(v)

	case *html.Node:
		var sb strings.Builder
		if err := html.Render(&sb, v); err != nil {
			n.warn("cannot serialize markup handle", "error", err)
			return Empty()
		}
		return RawMarkup(sb.String())

	}

	n.warn("component returned unrecognized value", "type", fmt.Sprintf("%T", value))
	return Element("div", nil, Text(fmt.Sprint(value)))
}

func (n Normalizer) normalizeNode(node *Node) *Node {
	if node == nil {
		return Empty()
	}
	switch node.Kind {

	case KindText:
		if !strings.Contains(node.Text, "\n") {
			return node
		}
		return Sequence(splitLines(node.Text)...)

	case KindSequence:
		for i, child := range node.Children {
			node.Children[i] = n.normalizeNode(child)
		}
		return node

	case KindElement:
		return n.normalizeElement(node)

	}
	return node
}

func (n Normalizer) normalizeElement(elem *Node) *Node {
	if len(elem.Children) == 1 && elem.Children[0] != nil &&
		elem.Children[0].Kind == KindText &&
		strings.Contains(elem.Children[0].Text, "\n") {
		elem.Children = splitLines(elem.Children[0].Text)
		if _, marked := elem.Attr(MultilineMarker); marked {
			ensureWhitespaceStyle(elem)
		}
		return elem
	}
	for i, child := range elem.Children {
		elem.Children[i] = n.normalizeNode(child)
	}
	return elem
}

// splitLines turns embedded newlines into explicit break elements. The
// first segment carries no leading break and empty segments are dropped,
// while their breaks remain.
func splitLines(text string) []*Node {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var ret []*Node
	for i, segment := range strings.Split(text, "\n") {
		if i > 0 {
			ret = append(ret, LineBreak())
		}
		if segment == "" {
			continue
		}
		ret = append(ret, Text(segment))
	}
	return ret
}

func ensureWhitespaceStyle(elem *Node) {
	style, ok := elem.Attr("style")
	if !ok || style == nil {
		elem.SetAttr("style", map[string]any{"whiteSpace": "pre-wrap"})
		return
	}
	switch s := style.(type) {
	case map[string]any:
		if _, ok := s["whiteSpace"]; ok {
			return
		}
		if _, ok := s["white-space"]; ok {
			return
		}
		s["whiteSpace"] = "pre-wrap"
	case string:
		if strings.Contains(s, "white-space") {
			return
		}
		s = strings.TrimRight(strings.TrimSpace(s), ";")
		if s != "" {
			s += "; "
		}
		elem.SetAttr("style", s+"white-space: pre-wrap")
	}
}

func (n Normalizer) warn(msg string, args ...any) {
	if n.Logger == nil {
		return
	}
	n.Logger.Warn(msg, args...)
}
