package deckconfigs

import (
	"github.com/reusee/taideck/cmds"
	"github.com/reusee/taideck/configs"
	"github.com/reusee/taideck/vars"
)

type ListenAddr string

var listenAddrFlag = cmds.Var[string]("-listen")

func (Module) ListenAddr(
	loader configs.Loader,
) ListenAddr {
	return ListenAddr(vars.FirstNonZero(
		*listenAddrFlag,
		configs.First[string](loader, "listen_addr"),
		"127.0.0.1:7331",
	))
}
