package rewrites

import (
	"strings"
	"testing"
)

func TestDedupBindings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// first declaration wins
		{
			input: "const x = 1;\nconst x = 2;",
			want:  "const x = 1;",
		},
		// later declarator keyword does not matter
		{
			input: "let n = 1;\nvar n = 2;\nconst n = 3;",
			want:  "let n = 1;",
		},
		// distinct names all survive
		{
			input: "const a = 1;\nconst b = 2;\nconst c = 3;",
			want:  "const a = 1;\nconst b = 2;\nconst c = 3;",
		},
		// plain reassignment is not a declaration
		{
			input: "let x = 1;\nx = 2;",
			want:  "let x = 1;\nx = 2;",
		},
		// indentation on a top-level line still counts
		{
			input: "const x = 1;\n  const x = 2;",
			want:  "const x = 1;",
		},
		// $ and _ are identifier characters
		{
			input: "const $v = 1;\nconst $v = 2;\nconst _u = 3;\nconst _u = 4;",
			want:  "const $v = 1;\nconst _u = 3;",
		},
		// declarations without initializer are not touched
		{
			input: "let x;\nlet x;",
			want:  "let x;\nlet x;",
		},
	}

	for _, test := range tests {
		got := DedupBindings(test.input)
		if got != test.want {
			t.Fatalf("input %q: got %q, want %q", test.input, got, test.want)
		}
	}
}

func TestDedupBindingsNestedScopesUntouched(t *testing.T) {
	source := strings.Join([]string{
		"function a() {",
		"  const x = 1;",
		"  return x;",
		"}",
		"function b() {",
		"  const x = 2;",
		"  return x;",
		"}",
	}, "\n")
	if got := DedupBindings(source); got != source {
		t.Fatalf("nested declarations modified:\n%s", got)
	}
}

func TestDedupBindingsAfterBlockIsTopLevelAgain(t *testing.T) {
	source := strings.Join([]string{
		"const x = 1;",
		"function f() {",
		"  const x = 10;",
		"}",
		"const x = 2;",
	}, "\n")
	want := strings.Join([]string{
		"const x = 1;",
		"function f() {",
		"  const x = 10;",
		"}",
	}, "\n")
	if got := DedupBindings(source); got != want {
		t.Fatalf("got:\n%s", got)
	}
}

func TestDedupBindingsTemplateLiteralUntouched(t *testing.T) {
	// decl-shaped text inside a multi-line template is content, not code
	source := strings.Join([]string{
		"const tpl = `",
		"const x = 1;",
		"const x = 2;",
		"`;",
		"entry = () => tpl;",
	}, "\n")
	if got := DedupBindings(source); got != source {
		t.Fatalf("template content modified:\n%s", got)
	}
}

func TestDedupBindingsQuotedBracesIgnored(t *testing.T) {
	// an opening brace inside a string must not push the tracker into a
	// nested scope for the rest of the source
	source := strings.Join([]string{
		"const s = '{';",
		"const x = 1;",
		"const x = 2;",
	}, "\n")
	want := strings.Join([]string{
		"const s = '{';",
		"const x = 1;",
	}, "\n")
	if got := DedupBindings(source); got != want {
		t.Fatalf("got:\n%s", got)
	}
}

func TestDedupBindingsMultilineObjectInitializer(t *testing.T) {
	source := strings.Join([]string{
		"const cfg = {",
		"  width: 100,",
		"};",
		"const cfg = { width: 200 };",
		"entry = () => cfg.width;",
	}, "\n")
	want := strings.Join([]string{
		"const cfg = {",
		"  width: 100,",
		"};",
		"entry = () => cfg.width;",
	}, "\n")
	if got := DedupBindings(source); got != want {
		t.Fatalf("got:\n%s", got)
	}
}
