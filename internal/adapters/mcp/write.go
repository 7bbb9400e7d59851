package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"contexere/internal/application/commands"
)

// RegisterWriteTools adds the tools that create entries or ledger rows
func RegisterWriteTools(s *server.MCPServer, deps Deps) {
	s.AddTool(recordTool(), recordHandler(deps))
	s.AddTool(createNextTool(), createNextHandler(deps))
}

// --- record ---

func recordTool() mcp.Tool {
	return mcp.NewTool("record",
		mcp.WithDescription("Record an issued identifier in the ledger for a directory."),
		mcp.WithString("identifier",
			mcp.Description("Identifier to record, e.g. proj22p3a"),
			mcp.Required(),
		),
		withLocation(),
	)
}

func recordHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if deps.Ledger == nil {
			return toolError(fmt.Errorf("ledger is not available"))
		}
		location, err := deps.location(req)
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewRecordCommand(deps.Ledger, location, req.GetString("identifier", ""), "mcp")
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- create_next ---

func createNextTool() mcp.Tool {
	return mcp.NewTool("create_next",
		mcp.WithDescription("Create a file (or directory) named after the next identifier of a directory, and record it in the ledger when one is available."),
		mcp.WithString("suffix",
			mcp.Description("Text appended to the identifier, e.g. .ipynb or _draft.md"),
		),
		mcp.WithBoolean("directory",
			mcp.Description("Create a directory instead of a file"),
		),
		withLocation(),
		withSource(),
		withTimezone(),
	)
}

func createNextHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		provider, err := deps.provider(req)
		if err != nil {
			return toolError(err)
		}
		location, err := deps.location(req)
		if err != nil {
			return toolError(err)
		}

		suggest := commands.NewSuggestNextCommand(provider, location, deps.timezone(req))
		if deps.Clock != nil {
			suggest.Clock = deps.Clock
		}
		mode := commands.CreateModeFile
		if req.GetBool("directory", false) {
			mode = commands.CreateModeDirectory
		}

		cmd := commands.NewCreateNextCommand(suggest, deps.Repo, deps.Ledger, req.GetString("suffix", ""), mode)
		cmd.Source = "mcp"
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
