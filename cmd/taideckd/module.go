package main

import (
	"github.com/reusee/dscope"

	"github.com/reusee/taideck/deckconfigs"
	"github.com/reusee/taideck/logs"
	"github.com/reusee/taideck/metrics"
	"github.com/reusee/taideck/renders"
	"github.com/reusee/taideck/servers"
	"github.com/reusee/taideck/states"
)

type Module struct {
	dscope.Module
	Configs deckconfigs.Module
	Logs    logs.Module
	Metrics metrics.Module
	Renders renders.Module
	Servers servers.Module
	States  states.Module
}
