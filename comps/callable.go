package comps

import (
	"errors"

	"github.com/reusee/taideck/nodes"
)

// WellKnownHelpers is the node-construction vocabulary a callable may
// assume. The names match what compiled sources see in their runtime.
var WellKnownHelpers = map[string]any{
	"Element":   nodes.Element,
	"Fragment":  nodes.Sequence,
	"Text":      nodes.Text,
	"LineBreak": nodes.LineBreak,
	"RawMarkup": nodes.RawMarkup,
}

// WrapCallable gives a callable the self-repair the compiled path gets
// from its runtime: when the call fails wanting a well-known helper, the
// helper is attached to the context once and the call retried exactly
// once. Any other failure, or an unknown helper, passes through.
func WrapCallable(fn RenderFunc) RenderFunc {
	return func(ctx *ExecutionContext) (any, error) {
		value, err := fn(ctx)
		if err == nil {
			return value, nil
		}

		var missing MissingHelperError
		if !errors.As(err, &missing) {
			return value, err
		}
		helper, ok := WellKnownHelpers[missing.Name]
		if !ok {
			return value, err
		}

		if ctx.Helpers == nil {
			ctx.Helpers = make(map[string]any)
		}
		if _, bound := ctx.Helpers[missing.Name]; !bound {
			ctx.Helpers[missing.Name] = helper
		}
		return fn(ctx)
	}
}
