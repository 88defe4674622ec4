package rewrites

import "strings"

// Unescape reverses one level of string escaping when the text shows signs
// of having been JSON-encoded in transit: escape sequences present but not
// a single real line break. Applying it to already-plain source is a no-op.
func Unescape(source string) string {
	if !looksEscaped(source) {
		return source
	}

	var out strings.Builder
	out.Grow(len(source))
	runes := []rune(source)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r != '\\' || i+1 >= len(runes) {
			out.WriteRune(r)
			continue
		}
		i++
		switch runes[i] {
		case 'n':
			out.WriteRune('\n')
		case 't':
			out.WriteRune('\t')
		case 'r':
			out.WriteRune('\r')
		case '"':
			out.WriteRune('"')
		case '\'':
			out.WriteRune('\'')
		case '\\':
			out.WriteRune('\\')
		default:
			out.WriteRune(r)
			out.WriteRune(runes[i])
		}
	}
	return out.String()
}

// looksEscaped reports whether the whole text was string-encoded. Escaped
// line breaks with no real ones is the deciding signal: source code always
// has real line breaks unless something encoded them away.
func looksEscaped(source string) bool {
	if strings.ContainsAny(source, "\n\r") {
		return false
	}
	return strings.Contains(source, `\n`)
}
