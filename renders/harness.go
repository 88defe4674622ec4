package renders

import (
	"context"
	"errors"
	"fmt"

	"github.com/reusee/taideck/deckjs"
)

// maxAttempts bounds the self-healing loop: the initial call plus
// retries, five calls in total.
const maxAttempts = 5

// runWithHealing invokes the unit, binding a default for every missing
// binding it reports and retrying. Defaults accumulate in env, which
// belongs to this invocation only; every attempt still runs in a fresh
// runtime. Failures other than a missing binding abort immediately.
func runWithHealing(ctx context.Context, unit *deckjs.Unit, call deckjs.Call, env *deckjs.Env) (any, error) {
	var lastErr error
	var lastMissing string
	for attempt := 0; attempt < maxAttempts; attempt++ {
		value, err := unit.Run(ctx, call, env)
		if err == nil {
			return value, nil
		}
		var missing deckjs.MissingBindingError
		if !errors.As(err, &missing) {
			return nil, err
		}
		lastErr = err
		lastMissing = missing.Name
		if _, bound := env.Get(missing.Name); !bound {
			env.Def(missing.Name, defaultFor(missing.Name, call.Props))
		}
	}
	return nil, fmt.Errorf(
		"%w after %d attempts; declare it in the source: const %s = props.%s || defaultValue;",
		lastErr, maxAttempts, lastMissing, lastMissing,
	)
}
