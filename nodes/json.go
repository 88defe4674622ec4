package nodes

import (
	"encoding/json"
	"fmt"
)

type nodeJSON struct {
	Kind     string          `json:"kind"`
	Tag      string          `json:"tag,omitempty"`
	Text     string          `json:"text,omitempty"`
	Attrs    map[string]any  `json:"attrs,omitempty"`
	Children []*Node         `json:"children,omitempty"`
}

func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(nodeJSON{
		Kind:     n.Kind.String(),
		Tag:      n.Tag,
		Text:     n.Text,
		Attrs:    marshalableAttrs(n.Attrs),
		Children: n.Children,
	})
}

func (n *Node) UnmarshalJSON(data []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch raw.Kind {
	case "empty", "":
		n.Kind = KindEmpty
	case "text":
		n.Kind = KindText
	case "element":
		n.Kind = KindElement
	case "sequence":
		n.Kind = KindSequence
	default:
		return fmt.Errorf("unknown node kind: %q", raw.Kind)
	}
	n.Tag = raw.Tag
	n.Text = raw.Text
	n.Attrs = raw.Attrs
	n.Children = raw.Children
	return nil
}

// marshalableAttrs drops attribute values that cannot be represented in
// JSON, such as event handler functions attached by component logic.
func marshalableAttrs(attrs map[string]any) map[string]any {
	var ret map[string]any
	for key, value := range attrs {
		switch value.(type) {
		case nil, bool, string,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64,
			map[string]any, []any:
		default:
			continue
		}
		if ret == nil {
			ret = make(map[string]any)
		}
		ret[key] = value
	}
	return ret
}
