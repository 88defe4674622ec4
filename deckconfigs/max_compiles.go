package deckconfigs

import (
	"github.com/reusee/taideck/cmds"
	"github.com/reusee/taideck/configs"
	"github.com/reusee/taideck/vars"
)

type MaxConcurrentCompiles int

var maxCompilesFlag = cmds.Var[int]("-max-compiles")

func (Module) MaxConcurrentCompiles(
	loader configs.Loader,
) MaxConcurrentCompiles {
	return MaxConcurrentCompiles(vars.FirstNonZero(
		*maxCompilesFlag,
		configs.First[int](loader, "max_concurrent_compiles"),
		4,
	))
}
