package rewrites

import (
	"strings"
	"testing"
)

func TestEscapeNewlines(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		// raw breaks inside quoted literals
		{
			input: "const s = 'a\nb';",
			want:  `const s = 'a\nb';`,
		},
		{
			input: "const s = \"a\nb\";",
			want:  `const s = "a\nb";`,
		},
		{
			input: "const s = 'a\r\nb';",
			want:  `const s = 'a\nb';`,
		},
		{
			input: "const s = 'a\rb';",
			want:  `const s = 'a\nb';`,
		},
		{
			input: "const s = 'a\n\nb';",
			want:  `const s = 'a\n\nb';`,
		},
		// breaks outside literals are code structure
		{
			input: "const a = 1;\nconst b = 2;",
			want:  "const a = 1;\nconst b = 2;",
		},
		// template literals keep raw breaks
		{
			input: "const s = `a\nb`;",
			want:  "const s = `a\nb`;",
		},
		// quoted literal inside an interpolation is still rewritten
		{
			input: "const s = `x${'a\nb'}y`;",
			want:  "const s = `x${'a\\nb'}y`;",
		},
		// template content after the interpolation stays raw
		{
			input: "const s = `x${f(1)}\ny`;",
			want:  "const s = `x${f(1)}\ny`;",
		},
		// nested braces inside the interpolation do not end it early
		{
			input: "const s = `${ {a: '1\n2'}.a }\nz`;",
			want:  "const s = `${ {a: '1\\n2'}.a }\nz`;",
		},
		// nested template inside an interpolation keeps its raw breaks
		{
			input: "const s = `x${`inner\nline`}y\nz`;",
			want:  "const s = `x${`inner\nline`}y\nz`;",
		},
		// escaped quote does not close the literal
		{
			input: "const s = 'it\\'s\nhere';",
			want:  "const s = 'it\\'s\\nhere';",
		},
		// escaped backtick does not open a template
		{
			input: "const s = 'a\\`b\nc';",
			want:  "const s = 'a\\`b\\nc';",
		},
		// quote characters of the other kind are plain content
		{
			input: "const s = \"it's\na quote\";",
			want:  "const s = \"it's\\na quote\";",
		},
		// unterminated literal at end of input still rewrites
		{
			input: "const s = 'a\nb",
			want:  `const s = 'a\nb`,
		},
	}

	for _, test := range tests {
		got := EscapeNewlines(test.input)
		if got != test.want {
			t.Fatalf("input %q: got %q, want %q", test.input, got, test.want)
		}
	}
}

func TestEscapeNewlinesIdempotent(t *testing.T) {
	inputs := []string{
		"const s = 'a\nb';",
		"const s = `a\nb${'c\nd'}`;",
		"function entry() {\n\treturn Element('div', null, 'x\ny');\n}",
	}
	for _, input := range inputs {
		once := EscapeNewlines(input)
		twice := EscapeNewlines(once)
		if once != twice {
			t.Fatalf("not idempotent: %q -> %q -> %q", input, once, twice)
		}
	}
}

func TestEscapeNewlinesRoundTrip(t *testing.T) {
	// decoding the escape must recover the original literal content
	literals := []string{
		"line1\nline2",
		"a\r\nb",
		"\n",
		"multi\nline\ncontent\n",
	}
	for _, content := range literals {
		source := "const s = '" + content + "';"
		escaped := EscapeNewlines(source)
		if strings.ContainsAny(escaped, "\n\r") {
			t.Fatalf("raw break left in %q", escaped)
		}
		decoded := strings.ReplaceAll(escaped, `\n`, "\n")
		normalized := strings.ReplaceAll(content, "\r\n", "\n")
		normalized = strings.ReplaceAll(normalized, "\r", "\n")
		if decoded != "const s = '"+normalized+"';" {
			t.Fatalf("content %q: got %q", content, decoded)
		}
	}
}

func TestEscapeNewlinesPreservesTemplate(t *testing.T) {
	// template content must be byte-identical, including nested
	// interpolations holding quoted and template content
	sources := []string{
		"`a\nb`",
		"`${x}\n${y}`",
		"`outer${`inner\ndeep${`deepest\n`}`}end\n`",
		"`css {\n  color: red;\n}`",
	}
	for _, source := range sources {
		if got := EscapeNewlines(source); got != source {
			t.Fatalf("template corrupted: %q -> %q", source, got)
		}
	}
}
