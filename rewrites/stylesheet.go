package rewrites

import (
	"regexp"
	"strconv"
)

var stylesheetCall = regexp.MustCompile(
	`(?s)\bElement\(\s*['"]style['"]\s*,\s*(?:null|undefined|\{\s*\})\s*,\s*` +
		"`([^`]*)`" + `\s*\)`)

// FlattenStylesheets rewrites style elements whose content is a multi-line
// template literal into a single-line markup injection, so the stylesheet
// text cannot break the surrounding call. Already-flat style calls are
// untouched.
func FlattenStylesheets(source string) string {
	return stylesheetCall.ReplaceAllStringFunc(source, func(call string) string {
		css := stylesheetCall.FindStringSubmatch(call)[1]
		return "Element('style', { innerHTML: " + strconv.Quote(css) + " })"
	})
}
