package nodes

import "fmt"

type Kind uint8

const (
	KindEmpty Kind = iota
	KindText
	KindElement
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindElement:
		return "element"
	case KindSequence:
		return "sequence"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Node is a framework-agnostic description of a renderable tree. Tag and
// Attrs are meaningful for KindElement, Text for KindText, Children for
// KindElement and KindSequence.
type Node struct {
	Kind     Kind
	Tag      string
	Text     string
	Attrs    map[string]any
	Children []*Node
}

func Text(text string) *Node {
	return &Node{
		Kind: KindText,
		Text: text,
	}
}

func Element(tag string, attrs map[string]any, children ...*Node) *Node {
	return &Node{
		Kind:     KindElement,
		Tag:      tag,
		Attrs:    attrs,
		Children: children,
	}
}

func Sequence(children ...*Node) *Node {
	return &Node{
		Kind:     KindSequence,
		Children: children,
	}
}

func Empty() *Node {
	return &Node{
		Kind: KindEmpty,
	}
}

func LineBreak() *Node {
	return Element("br", nil)
}

// RawMarkup wraps markup text in an injection leaf. The markup is not
// parsed here; the HTML exporter sanitizes it at render time.
func RawMarkup(markup string) *Node {
	return Element("div", map[string]any{
		"innerHTML": markup,
	})
}

func (n *Node) Attr(name string) (any, bool) {
	if n == nil || n.Attrs == nil {
		return nil, false
	}
	v, ok := n.Attrs[name]
	return v, ok
}

func (n *Node) SetAttr(name string, value any) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]any)
	}
	n.Attrs[name] = value
}
