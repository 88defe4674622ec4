package main

import (
	"github.com/reusee/dscope"

	"github.com/reusee/taideck/debugs"
	"github.com/reusee/taideck/logs"
	"github.com/reusee/taideck/renders"
	"github.com/reusee/taideck/states"
)

type Module struct {
	dscope.Module
	Debugs  debugs.Module
	Renders renders.Module
	States  states.Module
	Logs    logs.Module
}
