package deckconfigs

import (
	"github.com/reusee/taideck/cmds"
	"github.com/reusee/taideck/configs"
	"github.com/reusee/taideck/vars"
)

// StorePath is the sqlite database file holding component definitions.
// Empty means no persistence.
type StorePath string

var storePathFlag = cmds.Var[string]("-store")

func (Module) StorePath(
	loader configs.Loader,
) StorePath {
	return StorePath(vars.FirstNonZero(
		*storePathFlag,
		configs.First[string](loader, "store_path"),
	))
}
