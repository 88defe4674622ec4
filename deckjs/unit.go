package deckjs

import (
	"context"
	"time"

	"github.com/dop251/goja"
)

// Unit is compiled component logic. Source holds the sanitized text the
// program was compiled from; the program itself never changes after
// Compile, so one Unit may serve any number of concurrent runs.
type Unit struct {
	Name    string
	Source  string
	program *goja.Program
}

// Call carries the per-invocation values the entry point receives.
type Call struct {
	Props       map[string]any
	State       any
	UpdateState func(value any)
	InstanceID  string
	IsThumbnail bool
}

// Run executes the unit in a fresh runtime seeded with the builtin
// vocabulary and the bindings of env. Nothing survives the call, so a
// binding defined for one run can never leak into another. A context
// deadline interrupts long-running logic.
func (u *Unit) Run(ctx context.Context, call Call, env *Env) (any, error) {
	rt := goja.New()

	if err := registerBuiltins(rt); err != nil {
		return nil, err
	}
	if err := env.applyTo(rt); err != nil {
		return nil, err
	}

	props := call.Props
	if props == nil {
		props = map[string]any{}
	}
	update := call.UpdateState
	if update == nil {
		update = func(any) {}
	}
	err := rt.Set("__ctx", map[string]any{
		"props":       props,
		"state":       call.State,
		"updateState": update,
		"id":          call.InstanceID,
		"isThumbnail": call.IsThumbnail,
	})
	if err != nil {
		return nil, err
	}

	if deadline, ok := ctx.Deadline(); ok {
		watchdog := time.AfterFunc(time.Until(deadline), func() {
			rt.Interrupt(ErrBudgetExceeded)
		})
		defer watchdog.Stop()
	}

	value, err := rt.RunProgram(u.program)
	if err != nil {
		return nil, classifyRunError(err)
	}
	return exportResult(value)
}

// exportResult unwraps the returned value, resolving an already-settled
// promise from an async entry point. The runtime drains its job queue
// before RunProgram returns, so a still-pending promise means the logic
// awaited something that can never arrive.
func exportResult(value goja.Value) (any, error) {
	exported := value.Export()
	promise, ok := exported.(*goja.Promise)
	if !ok {
		return exported, nil
	}
	switch promise.State() {
	case goja.PromiseStateFulfilled:
		return promise.Result().Export(), nil
	case goja.PromiseStateRejected:
		return nil, classifyThrown(promise.Result())
	default:
		return nil, RuntimeError{
			Message: "entry returned a promise that never settles",
		}
	}
}
