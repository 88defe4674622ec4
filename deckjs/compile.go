package deckjs

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dop251/goja"

	"github.com/reusee/taideck/rewrites"
)

var (
	importSyntax  = regexp.MustCompile(`(?m)^\s*import[\s({'"]`)
	requireSyntax = regexp.MustCompile(`\brequire\s*\(`)
)

// the harness adds one line above the source, so diagnostics shift by one
const harnessPrefixLines = 1

func harness(source string) string {
	var sb strings.Builder
	sb.Grow(len(source) + 256)
	sb.WriteString("(function () {\n")
	sb.WriteString(source)
	sb.WriteString("\nif (typeof entry !== \"function\") { throw new TypeError(\"entry is not defined as a function\"); }\n")
	sb.WriteString("return entry({ props: __ctx.props, state: __ctx.state, updateState: __ctx.updateState, id: __ctx.id, isThumbnail: __ctx.isThumbnail });\n")
	sb.WriteString("})()")
	return sb.String()
}

// Compile sanitizes raw component source and produces a Unit. It is a pure
// function of the source text: same text, same Unit, no ambient state. The
// returned Unit is immutable and safe for concurrent runs.
func Compile(name string, raw string) (*Unit, error) {
	source := rewrites.Apply(raw)

	if importSyntax.MatchString(source) || requireSyntax.MatchString(source) {
		return nil, &CompileError{
			Name:    name,
			Message: "module imports are not allowed in component source",
		}
	}

	program, err := goja.Compile(name, harness(source), false)
	if err != nil {
		return nil, newCompileError(name, source, err)
	}

	return &Unit{
		Name:    name,
		Source:  source,
		program: program,
	}, nil
}

var compilePos = regexp.MustCompile(`Line (\d+):(\d+)\s*([^(\n]*)`)

func newCompileError(name string, source string, err error) *CompileError {
	ce := &CompileError{
		Name:    name,
		Message: "syntax error, check quotes and brackets",
		lines:   strings.Split(source, "\n"),
	}
	m := compilePos.FindStringSubmatch(err.Error())
	if m == nil {
		return ce
	}
	line, _ := strconv.Atoi(m[1])
	column, _ := strconv.Atoi(m[2])
	line -= harnessPrefixLines
	if line < 1 {
		line = 1
	}
	ce.Line = line
	ce.Column = column
	if msg := strings.TrimSpace(m[3]); msg != "" {
		ce.Message = msg
	}
	return ce
}
