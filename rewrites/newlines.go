package rewrites

import "strings"

type lexState uint8

const (
	stateNormal lexState = iota
	stateSingle
	stateDouble
	stateTemplate
	stateInterp
)

// EscapeNewlines rewrites raw line breaks inside single- and double-quoted
// string literals into \n escapes, so a literal can never terminate a
// statement early. Template literal content passes through verbatim,
// including breaks inside arbitrarily nested interpolations. A CRLF pair
// collapses to a single escape.
func EscapeNewlines(source string) string {
	var out strings.Builder
	out.Grow(len(source))

	stack := []lexState{stateNormal}
	top := func() lexState {
		return stack[len(stack)-1]
	}
	push := func(s lexState) {
		stack = append(stack, s)
	}
	pop := func() {
		if len(stack) > 1 {
			stack = stack[:len(stack)-1]
		}
	}

	escapeNext := false
	runes := []rune(source)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if escapeNext {
			escapeNext = false
			out.WriteRune(r)
			continue
		}
		if r == '\\' {
			escapeNext = true
			out.WriteRune(r)
			continue
		}

		switch top() {

		case stateNormal:
			switch r {
			case '\'':
				push(stateSingle)
			case '"':
				push(stateDouble)
			case '`':
				push(stateTemplate)
			}
			out.WriteRune(r)

		case stateSingle, stateDouble:
			switch {
			case r == '\'' && top() == stateSingle,
				r == '"' && top() == stateDouble:
				pop()
			case r == '\r':
				if i+1 < len(runes) && runes[i+1] == '\n' {
					i++
				}
				out.WriteString(`\n`)
				continue
			case r == '\n':
				out.WriteString(`\n`)
				continue
			}
			out.WriteRune(r)

		case stateTemplate:
			switch {
			case r == '`':
				pop()
			case r == '$' && i+1 < len(runes) && runes[i+1] == '{':
				push(stateInterp)
				out.WriteString("${")
				i++
				continue
			}
			out.WriteRune(r)

		case stateInterp:
			switch r {
			case '{':
				push(stateInterp)
			case '}':
				pop()
			case '\'':
				push(stateSingle)
			case '"':
				push(stateDouble)
			case '`':
				push(stateTemplate)
			}
			out.WriteRune(r)

		}
	}

	return out.String()
}
