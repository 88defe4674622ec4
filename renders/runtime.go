package renders

import (
	"log/slog"
	"time"

	"github.com/reusee/taideck/comps"
	"github.com/reusee/taideck/deckjs"
	"github.com/reusee/taideck/logs"
	"github.com/reusee/taideck/nodes"
	"github.com/reusee/taideck/states"
)

// Runtime owns the process-wide compile cache and the per-instance state
// store, and mints instances. Budget, when positive, caps the wall time
// of a single execution; the zero default leaves execution uncapped,
// matching the cooperative scheduling model this engine inherits.
type Runtime struct {
	Cache  *Cache
	States states.Store
	Logger logs.Logger
	Hooks  Hooks
	Budget time.Duration
}

func NewRuntime() *Runtime {
	return &Runtime{
		Cache:  NewCache(),
		States: states.NewMemoryStore(),
	}
}

// Compile produces the unit for def's current text and records the
// outcome in the cache. Identity is the source content: an unchanged
// text reuses the cached outcome, success or failure, without firing
// hooks again.
func (r *Runtime) Compile(def *comps.Definition) (*deckjs.Unit, error) {
	if out, ok := r.Cache.Get(def.ID); ok && out.Source == def.Text {
		return out.Current, out.Err
	}

	unit, err := deckjs.Compile(def.ID, def.Text)
	r.Hooks.compile(def.ID, err)
	if err != nil {
		r.Cache.StoreFailed(def.ID, def.Text, err)
		r.log().Warn("compile failed",
			"component", def.ID,
			"error", err,
		)
		return nil, err
	}
	r.Cache.StoreGood(def.ID, def.Text, unit)
	return unit, nil
}

// Warm rebuilds the known-good side of the cache from a previously
// successful source, so a restarted process does not flash error panels
// while components recompile.
func (r *Runtime) Warm(id string, source string) error {
	unit, err := deckjs.Compile(id, source)
	if err != nil {
		return err
	}
	r.Cache.StoreGood(id, source, unit)
	return nil
}

func (r *Runtime) normalizer() nodes.Normalizer {
	return nodes.Normalizer{
		Logger: r.Logger,
	}
}

func (r *Runtime) log() logs.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.DiscardHandler)
}
