package rewrites

// Apply runs the full rewrite pipeline. Unescape goes first so that an
// encoded envelope is restored before the newline pass inspects quote
// state; every pass is idempotent, so re-applying the pipeline to its own
// output changes nothing.
func Apply(source string) string {
	source = Unescape(source)
	source = EscapeNewlines(source)
	source = DedupBindings(source)
	source = FlattenStylesheets(source)
	source = CanonicalizeEntry(source)
	return source
}
