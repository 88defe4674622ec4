package main

import (
	"fmt"
	"os"

	"github.com/reusee/dscope"

	"github.com/reusee/taideck/cmds"
	"github.com/reusee/taideck/modes"
	"github.com/reusee/taideck/servers"
)

func main() {
	cmds.Execute(os.Args[1:])

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		mcpServer *servers.MCPServer,
	) {
		if err := mcpServer.ServeStdio(); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	})

}
