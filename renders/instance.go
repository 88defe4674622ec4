package renders

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/reusee/taideck/comps"
	"github.com/reusee/taideck/deckjs"
	"github.com/reusee/taideck/nodes"
)

// Instance is one mounted occurrence of a component. A thumbnail and a
// canvas view of the same definition are separate instances sharing one
// cache slot; each owns its render counter, state slot, and heal
// sequence, so a failure never crosses instances.
type Instance struct {
	ID        string
	Thumbnail bool

	runtime *Runtime
	def     *comps.Definition
	guard   *Guard

	// serializes render cycles, so heal sequences and the guard never
	// interleave within one instance
	mu sync.Mutex
}

// NewInstance binds a fresh instance to def. The definition stays
// shared; an edit to its text takes effect on the next render cycle.
func (r *Runtime) NewInstance(def *comps.Definition, thumbnail bool) *Instance {
	return &Instance{
		ID:        uuid.NewString(),
		Thumbnail: thumbnail,
		runtime:   r,
		def:       def,
		guard:     NewGuard(),
	}
}

// Render runs one cycle and always returns a mountable node: the
// component's output, a stale known-good rendering when the latest
// source is broken, or a diagnostic panel when nothing can run. The
// error reports what failed; it is nil on a stale fallback because no
// error surface is shown for one.
func (i *Instance) Render(ctx context.Context, width int, height int) (node *nodes.Node, err error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	started := time.Now()
	defer func() {
		i.runtime.Hooks.render(i.def.ID, time.Since(started), err)
	}()

	if err = i.guard.Tick(); err != nil {
		i.runtime.Hooks.guardTrip(i.def.ID)
		i.runtime.log().Error("render loop detected",
			"component", i.def.ID,
			"instance", i.ID,
			"error", err,
		)
		return ErrorPanel(err), err
	}

	var value any
	value, err = i.run(ctx, width, height)
	if err != nil {
		return ErrorPanel(err), err
	}
	return i.runtime.normalizer().Normalize(value), nil
}

// Close releases the instance's state slot. The component's cache entry
// stays, other instances of the same id still read it.
func (i *Instance) Close() {
	i.runtime.States.Clear(i.ID)
}

// run classifies the definition as it stands this cycle and routes it.
// A classification failure joins the compile-failure path, where the
// known-good fallback applies.
func (i *Instance) run(ctx context.Context, width int, height int) (any, error) {
	props := i.def.MergedProps(width, height)

	format, classifyErr := comps.Classify(i.def)
	if classifyErr == nil {
		switch format {

		case comps.FormatMarkup:
			return nodes.RawMarkup(i.def.Text), nil

		case comps.FormatCallable:
			return i.runCallable(props, width, height)

		}
	}

	return i.runSource(ctx, props, classifyErr)
}

func (i *Instance) runCallable(props map[string]any, width int, height int) (any, error) {
	w, h := comps.ResolveSize(props, width, height)
	state, _ := i.runtime.States.Get(i.ID)
	render := comps.WrapCallable(i.def.Render)
	return render(&comps.ExecutionContext{
		Props:       props,
		State:       state,
		UpdateState: i.updateState,
		InstanceID:  i.ID,
		IsThumbnail: i.Thumbnail,
		Width:       w,
		Height:      h,
	})
}

func (i *Instance) runSource(ctx context.Context, props map[string]any, classifyErr error) (any, error) {
	unit, err := i.resolveUnit(classifyErr)
	if err != nil {
		return nil, err
	}

	state, _ := i.runtime.States.Get(i.ID)
	call := deckjs.Call{
		Props:       props,
		State:       state,
		UpdateState: i.updateState,
		InstanceID:  i.ID,
		IsThumbnail: i.Thumbnail,
	}

	if budget := i.runtime.Budget; budget > 0 {
		if _, has := ctx.Deadline(); !has {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, budget)
			defer cancel()
		}
	}

	return runWithHealing(ctx, unit, call, new(deckjs.Env))
}

// resolveUnit prefers the freshest successful compile of the instance's
// definition. When the current text is broken, the last good unit stands
// in transparently; the failure surfaces only if no good unit has ever
// existed for this component id.
func (i *Instance) resolveUnit(classifyErr error) (*deckjs.Unit, error) {
	var unit *deckjs.Unit
	var err error
	if classifyErr != nil {
		err = classifyErr
	} else {
		unit, err = i.runtime.Compile(i.def)
	}
	if err == nil {
		return unit, nil
	}

	if out, ok := i.runtime.Cache.Get(i.def.ID); ok && out.LastGood != nil {
		i.runtime.Hooks.staleFallback(i.def.ID)
		i.runtime.log().Warn("rendering last good unit",
			"component", i.def.ID,
			"error", err,
		)
		return out.LastGood, nil
	}
	return nil, err
}

func (i *Instance) updateState(value any) {
	i.runtime.States.Set(i.ID, value)
}
