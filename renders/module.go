package renders

import (
	"github.com/reusee/dscope"

	"github.com/reusee/taideck/logs"
	"github.com/reusee/taideck/states"
)

type Module struct {
	dscope.Module
}

func (Module) Runtime(
	store states.Store,
	logger logs.Logger,
) *Runtime {
	return &Runtime{
		Cache:  NewCache(),
		States: store,
		Logger: logger,
	}
}
