package servers

import (
	"github.com/reusee/dscope"

	"github.com/reusee/taideck/deckconfigs"
	"github.com/reusee/taideck/logs"
	"github.com/reusee/taideck/renders"
	"github.com/reusee/taideck/syncs"
)

type Module struct {
	dscope.Module
}

func (Module) Server(
	runtime *renders.Runtime,
	logger logs.Logger,
	newSpan logs.NewSpan,
	maxCompiles deckconfigs.MaxConcurrentCompiles,
) *Server {
	return &Server{
		Runtime:  runtime,
		Logger:   logger,
		NewSpan:  newSpan,
		Compiles: syncs.NewSemaphore(int(maxCompiles)),
	}
}

func (Module) MCPServer(
	runtime *renders.Runtime,
	logger logs.Logger,
) *MCPServer {
	return NewMCPServer(runtime, logger)
}
