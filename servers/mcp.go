package servers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/reusee/taideck/comps"
	"github.com/reusee/taideck/deckjs"
	"github.com/reusee/taideck/logs"
	"github.com/reusee/taideck/nodes"
	"github.com/reusee/taideck/renders"
)

// MCPServer exposes the engine as MCP tools so a generator pipeline can
// compile-check and preview its component output before publishing.
type MCPServer struct {
	runtime   *renders.Runtime
	logger    logs.Logger
	mcpServer *server.MCPServer
}

func NewMCPServer(runtime *renders.Runtime, logger logs.Logger) *MCPServer {
	s := &MCPServer{
		runtime:   runtime,
		logger:    logger,
		mcpServer: server.NewMCPServer("taideck-mcp", "1.0.0"),
	}
	s.registerTools()
	return s
}

// ServeStdio runs the server over stdin/stdout.
func (s *MCPServer) ServeStdio() error {
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return wrap(err)
	}
	return nil
}

type CompileResult struct {
	OK     bool   `json:"ok" jsonschema_description:"Whether the source compiled"`
	Format string `json:"format" jsonschema_description:"Detected definition format"`
	Error  string `json:"error,omitempty" jsonschema_description:"Diagnostic when compilation failed"`
	Line   int    `json:"line,omitempty" jsonschema_description:"Failing line in the submitted source"`
	Column int    `json:"column,omitempty" jsonschema_description:"Failing column in the submitted source"`
}

type RenderResult struct {
	OK    bool   `json:"ok" jsonschema_description:"Whether the render produced component output"`
	Error string `json:"error,omitempty" jsonschema_description:"Failure description"`
	Tree  string `json:"tree,omitempty" jsonschema_description:"Rendered node tree as JSON"`
	HTML  string `json:"html,omitempty" jsonschema_description:"Rendered node tree as HTML"`
}

type ValidateResult struct {
	OK         bool   `json:"ok" jsonschema_description:"Whether the markup parses"`
	Error      string `json:"error,omitempty" jsonschema_description:"Failure description"`
	Normalized string `json:"normalized,omitempty" jsonschema_description:"Markup after a parse and re-serialize round trip"`
}

func (s *MCPServer) registerTools() {
	compileTool := mcp.NewTool("compile_component",
		mcp.WithDescription("Compile component source and report diagnostics without rendering."),
		mcp.WithString("component_id", mcp.Required(), mcp.Description("Component identity owning the cache slot")),
		mcp.WithString("source", mcp.Required(), mcp.Description("Component source text")),
		mcp.WithOutputSchema[CompileResult](),
	)
	s.mcpServer.AddTool(compileTool, mcp.NewStructuredToolHandler(s.handleCompile))

	renderTool := mcp.NewTool("render_component",
		mcp.WithDescription("Compile and render component source once, returning the node tree or HTML."),
		mcp.WithString("component_id", mcp.Required(), mcp.Description("Component identity owning the cache slot")),
		mcp.WithString("source", mcp.Required(), mcp.Description("Component source text")),
		mcp.WithString("props", mcp.Description("JSON object of declared custom properties")),
		mcp.WithNumber("width", mcp.Description("Measured container width")),
		mcp.WithNumber("height", mcp.Description("Measured container height")),
		mcp.WithBoolean("thumbnail", mcp.Description("Render as a thumbnail instance")),
		mcp.WithString("format", mcp.Description("Output format: tree (default) or html")),
		mcp.WithOutputSchema[RenderResult](),
	)
	s.mcpServer.AddTool(renderTool, mcp.NewStructuredToolHandler(s.handleRender))

	validateTool := mcp.NewTool("validate_markup",
		mcp.WithDescription("Check that bare markup parses and return its normalized form."),
		mcp.WithString("markup", mcp.Required(), mcp.Description("Markup text")),
		mcp.WithOutputSchema[ValidateResult](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))
}

func (s *MCPServer) handleCompile(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (CompileResult, error) {
	id, _ := args["component_id"].(string)
	source, _ := args["source"].(string)
	if id == "" || source == "" {
		return CompileResult{}, fmt.Errorf("component_id and source are required")
	}
	def := &comps.Definition{
		ID:   id,
		Text: source,
	}

	format, err := comps.Classify(def)
	if err != nil {
		return CompileResult{
			Format: format.String(),
			Error:  err.Error(),
		}, nil
	}
	if format == comps.FormatMarkup {
		if _, err := nodes.ValidateMarkup(def.Text); err != nil {
			return CompileResult{
				Format: format.String(),
				Error:  err.Error(),
			}, nil
		}
		return CompileResult{
			OK:     true,
			Format: format.String(),
		}, nil
	}

	if _, err := s.runtime.Compile(def); err != nil {
		result := CompileResult{
			Format: format.String(),
			Error:  err.Error(),
		}
		var compileErr *deckjs.CompileError
		if errors.As(err, &compileErr) {
			result.Line = compileErr.Line
			result.Column = compileErr.Column
		}
		return result, nil
	}
	return CompileResult{
		OK:     true,
		Format: format.String(),
	}, nil
}

func (s *MCPServer) handleRender(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (RenderResult, error) {
	id, _ := args["component_id"].(string)
	source, _ := args["source"].(string)
	if id == "" || source == "" {
		return RenderResult{}, fmt.Errorf("component_id and source are required")
	}

	def := &comps.Definition{
		ID:   id,
		Text: source,
	}
	if propsJSON, ok := args["props"].(string); ok && propsJSON != "" {
		if err := json.Unmarshal([]byte(propsJSON), &def.CustomProps); err != nil {
			return RenderResult{}, fmt.Errorf("props is not a JSON object: %w", err)
		}
	}

	width, _ := args["width"].(float64)
	height, _ := args["height"].(float64)
	thumbnail, _ := args["thumbnail"].(bool)

	instance := s.runtime.NewInstance(def, thumbnail)
	defer instance.Close()

	node, renderErr := instance.Render(ctx, int(width), int(height))
	result := RenderResult{
		OK: renderErr == nil,
	}
	if renderErr != nil {
		result.Error = renderErr.Error()
	}

	outputFormat, _ := args["format"].(string)
	switch outputFormat {
	case "", "tree":
		tree, err := json.Marshal(node)
		if err != nil {
			return RenderResult{}, wrap(err)
		}
		result.Tree = string(tree)
	case "html":
		html, err := nodes.RenderHTML(node)
		if err != nil {
			return RenderResult{}, wrap(err)
		}
		result.HTML = html
	default:
		return RenderResult{}, fmt.Errorf("unknown render format %q", outputFormat)
	}

	return result, nil
}

func (s *MCPServer) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (ValidateResult, error) {
	markup, _ := args["markup"].(string)
	if markup == "" {
		return ValidateResult{}, fmt.Errorf("markup is required")
	}
	normalized, err := nodes.ValidateMarkup(markup)
	if err != nil {
		return ValidateResult{
			Error: err.Error(),
		}, nil
	}
	return ValidateResult{
		OK:         true,
		Normalized: normalized,
	}, nil
}
