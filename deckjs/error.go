package deckjs

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dop251/goja"
)

// ErrBudgetExceeded reports that a run was interrupted because its
// context deadline passed before the compiled logic returned.
var ErrBudgetExceeded = errors.New("render budget exceeded")

// CompileError describes a source that could not be turned into a Unit.
// When a position is known it renders the offending line with a caret.
type CompileError struct {
	Name    string
	Line    int
	Column  int
	Message string

	lines []string
}

func (c *CompileError) Error() string {
	if c.Line < 1 || c.Line > len(c.lines) {
		if c.Name != "" {
			return fmt.Sprintf("%s: %s", c.Name, c.Message)
		}
		return c.Message
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s at %s:%d:%d\n", c.Message, c.Name, c.Line, c.Column))

	line := c.lines[c.Line-1]
	sb.WriteString(line)
	sb.WriteString("\n")

	// Caret
	runes := []rune(line)
	col := c.Column - 1
	for i, r := range runes {
		if i >= col {
			break
		}
		if r == '\t' {
			sb.WriteString("\t")
		} else {
			w := runeWidth(r)
			for k := 0; k < w; k++ {
				sb.WriteString(" ")
			}
		}
	}
	sb.WriteString("^\n")

	return sb.String()
}

// MissingBindingError reports a run that failed because the source
// referenced a name with no binding. The harness treats it as recoverable.
type MissingBindingError struct {
	Name string
}

func (m MissingBindingError) Error() string {
	return fmt.Sprintf("binding %q is not defined", m.Name)
}

// RuntimeError is any other failure thrown by the compiled logic. It is
// never retried.
type RuntimeError struct {
	Message string
}

func (r RuntimeError) Error() string {
	return r.Message
}

var refErrPattern = regexp.MustCompile(`^ReferenceError: (.+?) is not defined`)

func classifyRunError(err error) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return ErrBudgetExceeded
	}
	var ex *goja.Exception
	if errors.As(err, &ex) {
		return classifyThrown(ex.Value())
	}
	return err
}

func classifyThrown(value goja.Value) error {
	text := value.String()
	if m := refErrPattern.FindStringSubmatch(text); m != nil {
		return MissingBindingError{Name: m[1]}
	}
	return RuntimeError{Message: text}
}

func runeWidth(r rune) int {
	if r == 0 {
		return 0
	}
	if r >= 0x1100 &&
		(r <= 0x115f || r == 0x2329 || r == 0x232a ||
			(r >= 0x2e80 && r <= 0xa4cf && r != 0x303f) ||
			(r >= 0xac00 && r <= 0xd7a3) ||
			(r >= 0xf900 && r <= 0xfaff) ||
			(r >= 0xfe10 && r <= 0xfe19) ||
			(r >= 0xfe30 && r <= 0xfe6f) ||
			(r >= 0xff00 && r <= 0xff60) ||
			(r >= 0xffe0 && r <= 0xffe6)) {
		return 2
	}
	return 1
}
