package rewrites

import "regexp"

// CanonicalEntryParams is the one parameter shape compiled entry points
// receive, whatever the author declared.
const CanonicalEntryParams = "{ props, state, updateState, id, isThumbnail }"

var (
	entryFunction = regexp.MustCompile(`\bfunction\s+entry\s*\(([^)]*)\)`)
	entryArrow    = regexp.MustCompile(`\b(const|let|var)\s+entry\s*=\s*(async\s+)?\(([^)]*)\)\s*=>`)
	entryAssign   = regexp.MustCompile(`\bentry\s*=\s*function\s*\(([^)]*)\)`)
)

// CanonicalizeEntry rewrites the entry-point declaration's parameter list
// into CanonicalEntryParams. Extra trailing parameters in the source are
// tolerated and discarded.
func CanonicalizeEntry(source string) string {
	source = entryFunction.ReplaceAllString(source,
		"function entry("+CanonicalEntryParams+")")
	source = entryArrow.ReplaceAllString(source,
		"$1 entry = $2("+CanonicalEntryParams+") =>")
	source = entryAssign.ReplaceAllString(source,
		"entry = function("+CanonicalEntryParams+")")
	return source
}
