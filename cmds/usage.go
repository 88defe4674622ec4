package cmds

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
)

func (p *Executor) PrintUsage() {
	w := os.Stderr
	fmt.Fprintf(w, "usage: %s [command] ...\n", os.Args[0])
	printCommands(w, p.commands, "")
}

func printCommands(w io.Writer, commands map[string]*Command, indent string) {
	printed := make(map[*Command]bool)
	for _, name := range slices.Sorted(maps.Keys(commands)) {
		command := commands[name]
		if printed[command] {
			continue
		}
		printed[command] = true

		names := append([]string{name}, command.Aliases...)
		fmt.Fprintf(w, "%s%s", indent, strings.Join(names, " | "))
		if command.Description != "" {
			fmt.Fprintf(w, "\n%s\t%s", indent, command.Description)
		}
		fmt.Fprintf(w, "\n")

		if len(command.Subs) > 0 {
			printCommands(w, command.Subs, indent+"\t")
		}
	}
}
