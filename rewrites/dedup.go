package rewrites

import (
	"regexp"
	"strings"
)

var topLevelBinding = regexp.MustCompile(`^\s*(?:const|let|var)\s+([$A-Za-z_][$A-Za-z0-9_]*)\s*=`)

// DedupBindings drops top-level re-declarations of a name already bound by
// an earlier const/let/var line. The first declaration wins; each later one
// has its line deleted, not merged. Declarations nested inside brackets or
// template literals are left alone.
func DedupBindings(source string) string {
	seen := make(map[string]bool)
	var out []string
	var depth bindingDepth

	for _, line := range strings.Split(source, "\n") {
		if depth.topLevel() {
			if m := topLevelBinding.FindStringSubmatch(line); m != nil {
				name := m[1]
				if seen[name] {
					continue
				}
				seen[name] = true
			}
		}
		depth.scan(line)
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// bindingDepth tracks bracket nesting across lines, skipping bracket
// characters inside string literals. Template literals span lines, so that
// state persists; quoted literals cannot after newline normalization.
type bindingDepth struct {
	brackets   int
	inTemplate bool
}

func (d *bindingDepth) topLevel() bool {
	return d.brackets <= 0 && !d.inTemplate
}

func (d *bindingDepth) scan(line string) {
	inSingle := false
	inDouble := false
	escapeNext := false
	for _, r := range line {
		if escapeNext {
			escapeNext = false
			continue
		}
		if r == '\\' {
			escapeNext = true
			continue
		}
		switch {
		case d.inTemplate:
			if r == '`' {
				d.inTemplate = false
			}
		case inSingle:
			if r == '\'' {
				inSingle = false
			}
		case inDouble:
			if r == '"' {
				inDouble = false
			}
		default:
			switch r {
			case '`':
				d.inTemplate = true
			case '\'':
				inSingle = true
			case '"':
				inDouble = true
			case '{', '(', '[':
				d.brackets++
			case '}', ')', ']':
				d.brackets--
			}
		}
	}
}
