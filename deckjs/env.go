package deckjs

import (
	"github.com/dop251/goja"
)

// Env is a chain of binding frames handed to Unit.Run. Each run applies
// the whole chain to a fresh runtime, parent frames first, so a child
// frame shadows its parent and nothing persists between runs.
type Env struct {
	Parent *Env
	Vars   map[string]any
}

func (e *Env) Get(name string) (any, bool) {
	if e == nil {
		return nil, false
	}
	if v, ok := e.Vars[name]; ok {
		return v, true
	}
	if e.Parent != nil {
		return e.Parent.Get(name)
	}
	return nil, false
}

func (e *Env) Def(name string, val any) {
	if e.Vars == nil {
		e.Vars = make(map[string]any)
	}
	e.Vars[name] = val
}

func (e *Env) Set(name string, val any) bool {
	if e == nil {
		return false
	}
	if _, ok := e.Vars[name]; ok {
		e.Vars[name] = val
		return true
	}
	if e.Parent != nil {
		return e.Parent.Set(name, val)
	}
	return false
}

func (e *Env) NewChild() *Env {
	return &Env{
		Parent: e,
	}
}

func (e *Env) applyTo(rt *goja.Runtime) error {
	if e == nil {
		return nil
	}
	if err := e.Parent.applyTo(rt); err != nil {
		return err
	}
	for name, val := range e.Vars {
		if err := rt.Set(name, val); err != nil {
			return err
		}
	}
	return nil
}
