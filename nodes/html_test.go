package nodes

import (
	"strings"
	"testing"
)

func TestRenderHTML(t *testing.T) {
	tests := []struct {
		node *Node
		want string
	}{
		{
			node: Element("div", nil, Text("hi")),
			want: `<div>hi</div>`,
		},
		{
			node: Element("div", map[string]any{"className": "card", "id": "a"}, Text("x")),
			want: `<div class="card" id="a">x</div>`,
		},
		{
			node: Element("span", map[string]any{
				"style": map[string]any{"whiteSpace": "pre-wrap", "fontSize": 14},
			}, Text("s")),
			want: `<span style="font-size: 14; white-space: pre-wrap">s</span>`,
		},
		{
			node: Sequence(Text("a"), LineBreak(), Text("b")),
			want: `a<br/>b`,
		},
		{
			node: Element("div", nil, Sequence(Text("a"), Empty(), Text("b"))),
			want: `<div>ab</div>`,
		},
		{
			node: Text("<script>alert(1)</script>"),
			want: `&lt;script&gt;alert(1)&lt;/script&gt;`,
		},
		{
			node: Empty(),
			want: ``,
		},
	}

	for _, test := range tests {
		got, err := RenderHTML(test.node)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Fatalf("got %q, want %q", got, test.want)
		}
	}
}

func TestRenderHTMLInnerHTML(t *testing.T) {
	// unterminated markup goes through a parse/render round trip
	got, err := RenderHTML(RawMarkup(`<b>bold<i>both`))
	if err != nil {
		t.Fatal(err)
	}
	if got != `<div><b>bold<i>both</i></b></div>` {
		t.Fatalf("got %q", got)
	}
}

func TestValidateMarkup(t *testing.T) {
	got, err := ValidateMarkup(`<p>one<p>two`)
	if err != nil {
		t.Fatal(err)
	}
	if got != `<p>one</p><p>two</p>` {
		t.Fatalf("got %q", got)
	}
}

func TestRenderHTMLBooleanAttr(t *testing.T) {
	got, err := RenderHTML(Element("input", map[string]any{
		"disabled": true,
		"hidden":   false,
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, "disabled") {
		t.Fatalf("got %q", got)
	}
	if strings.Contains(got, "hidden") {
		t.Fatalf("got %q", got)
	}
}
