package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/reusee/dscope"
	"golang.org/x/term"

	"github.com/reusee/taideck/cmds"
	"github.com/reusee/taideck/comps"
	"github.com/reusee/taideck/debugs"
	"github.com/reusee/taideck/logs"
	"github.com/reusee/taideck/modes"
	"github.com/reusee/taideck/nodes"
	"github.com/reusee/taideck/renders"
)

var (
	definitionFile = cmds.Var[string]("-file")
	watchFile      = cmds.Switch("-watch")
	asHTML         = cmds.Switch("-html")
	checkOnly      = cmds.Switch("-check")
	asThumbnail    = cmds.Switch("-thumbnail")
	tapShell       = cmds.Switch("-tap")
	propsJSON      = cmds.Var[string]("-props")
	width          = cmds.Var[int]("-width")
	height         = cmds.Var[int]("-height")
)

func main() {
	cmds.Execute(os.Args[1:])
	ctx := context.Background()

	scope := dscope.New(
		new(Module),
		modes.ForProduction(),
	)

	scope.Call(func(
		logger logs.Logger,
		runtime *renders.Runtime,
		tap debugs.Tap,
	) {

		if *watchFile {
			if *definitionFile == "" {
				fmt.Fprintln(os.Stderr, "Error: -watch requires -file")
				os.Exit(1)
			}
			if err := watchLoop(ctx, logger, runtime, *definitionFile); err != nil {
				fmt.Fprintln(os.Stderr, err.Error())
				os.Exit(1)
			}
			return
		}

		def, err := loadDefinition()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		if *checkOnly {
			os.Exit(check(runtime, def))
		}

		node, renderErr := renderOnce(ctx, runtime, def)
		if err := output(os.Stdout, node); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		if *tapShell {
			errText := ""
			if renderErr != nil {
				errText = renderErr.Error()
			}
			tap(ctx, "render "+def.ID, map[string]any{
				"id":    def.ID,
				"props": def.MergedProps(*width, *height),
				"node":  node,
				"error": errText,
			})
		}

		if renderErr != nil {
			fmt.Fprintln(os.Stderr, renderErr.Error())
			os.Exit(1)
		}

	})

}

// loadDefinition reads the component from -file, falling back to piped
// stdin, and overlays -props on its declared properties.
func loadDefinition() (*comps.Definition, error) {
	var def *comps.Definition

	if *definitionFile != "" {
		var err error
		def, err = comps.LoadFile(*definitionFile)
		if err != nil {
			return nil, err
		}
	} else {
		content := getStdinContent()
		if len(content) == 0 {
			return nil, fmt.Errorf("no component definition: pass -file or pipe source on stdin")
		}
		var err error
		def, err = comps.Load(content)
		if err != nil {
			return nil, err
		}
	}

	if *propsJSON != "" {
		var props map[string]any
		if err := json.Unmarshal([]byte(*propsJSON), &props); err != nil {
			return nil, fmt.Errorf("-props is not a JSON object: %w", err)
		}
		if def.CustomProps == nil {
			def.CustomProps = make(map[string]any)
		}
		for name, value := range props {
			def.CustomProps[name] = value
		}
	}

	return def, nil
}

func getStdinContent() (ret []byte) {
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	ret, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil
	}
	return
}

// check classifies and compiles without rendering, printing diagnostics
// the way an editor status line would show them.
func check(runtime *renders.Runtime, def *comps.Definition) int {
	format, err := comps.Classify(def)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid: %v\n", err)
		return 1
	}

	switch format {
	case comps.FormatMarkup:
		if _, err := nodes.ValidateMarkup(def.Text); err != nil {
			fmt.Fprintf(os.Stderr, "invalid markup: %v\n", err)
			return 1
		}
	case comps.FormatSource:
		if _, err := runtime.Compile(def); err != nil {
			fmt.Fprintf(os.Stderr, "compile failed: %v\n", err)
			return 1
		}
	}

	fmt.Printf("ok (%s)\n", format)
	return 0
}

func renderOnce(ctx context.Context, runtime *renders.Runtime, def *comps.Definition) (*nodes.Node, error) {
	instance := runtime.NewInstance(def, *asThumbnail)
	defer instance.Close()
	return instance.Render(ctx, *width, *height)
}

func output(w io.Writer, node *nodes.Node) error {
	if *asHTML {
		html, err := nodes.RenderHTML(node)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, html)
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(node)
}
