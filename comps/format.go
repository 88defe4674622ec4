package comps

import (
	"regexp"
	"strings"
)

type Format uint8

const (
	FormatSource Format = iota
	FormatMarkup
	FormatCallable
)

func (f Format) String() string {
	switch f {
	case FormatSource:
		return "source"
	case FormatMarkup:
		return "markup"
	case FormatCallable:
		return "callable"
	}
	return "unknown"
}

var (
	placeholderPattern = regexp.MustCompile(`\{[A-Za-z_][A-Za-z0-9_]*\}`)

	// an entry-point declaration, not just the word "entry" somewhere
	entryDeclPattern = regexp.MustCompile(
		`\bfunction\s+entry\b` +
			`|\b(?:const|let|var)\s+entry\s*=` +
			`|\bentry\s*=\s*(?:async\b|function\b|\()`)
)

// Classify routes a definition to its processing path. Markup holding
// unresolved {placeholder} tokens is invalid, not silently tolerated.
func Classify(def *Definition) (Format, error) {
	if def.Render != nil {
		return FormatCallable, nil
	}

	text := strings.TrimSpace(def.Text)
	if text == "" {
		return FormatSource, &FormatError{
			Reason: "definition has no source text",
		}
	}

	if strings.HasPrefix(text, "<") && !entryDeclPattern.MatchString(text) {
		if placeholderPattern.MatchString(text) {
			return FormatSource, &FormatError{
				Reason: "markup contains unresolved placeholders",
			}
		}
		return FormatMarkup, nil
	}

	return FormatSource, nil
}
