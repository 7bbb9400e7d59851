package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"contexere/internal/application/commands"
)

// RegisterReadTools adds the tools that never write
func RegisterReadTools(s *server.MCPServer, deps Deps) {
	s.AddTool(encodeTool(), encodeHandler(deps))
	s.AddTool(decodeTool(), decodeHandler(deps))
	s.AddTool(suggestNextTool(), suggestNextHandler(deps))
	s.AddTool(timelineTool(), timelineHandler(deps))
}

// --- encode ---

func encodeTool() mcp.Tool {
	return mcp.NewTool("encode",
		mcp.WithDescription("Encode a date as a 4-character token (YYMD), or with time as a 7-character token (YYMDHMM). Without a date the current time is used."),
		mcp.WithString("date",
			mcp.Description("Date text, e.g. 2022-02-03 or \"Feb 3 2022 14:05\". Omit for now."),
		),
		mcp.WithBoolean("time",
			mcp.Description("Append hour and minutes"),
		),
		mcp.WithBoolean("seconds",
			mcp.Description("Append two-digit seconds (requires time)"),
		),
		withTimezone(),
	)
}

func encodeHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewEncodeCommand(
			deps.Clock,
			req.GetString("date", ""),
			req.GetBool("time", false),
			req.GetBool("seconds", false),
			deps.timezone(req),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Token), nil
	}
}

// --- decode ---

func decodeTool() mcp.Tool {
	return mcp.NewTool("decode",
		mcp.WithDescription("Decode a 4-character date token or a 7-character datetime token."),
		mcp.WithString("token",
			mcp.Description("Token to decode, e.g. 22p3 or 22p3o05"),
			mcp.Required(),
		),
		withTimezone(),
	)
}

func decodeHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewDecodeCommand(req.GetString("token", ""), deps.timezone(req))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- suggest_next ---

func suggestNextTool() mcp.Tool {
	return mcp.NewTool("suggest_next",
		mcp.WithDescription("Suggest the next identifier (project + date token + step) for a directory. Fails when the history is empty or several projects share the latest date."),
		withLocation(),
		withSource(),
		withTimezone(),
	)
}

func suggestNextHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		provider, err := deps.provider(req)
		if err != nil {
			return toolError(err)
		}
		location, err := deps.location(req)
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewSuggestNextCommand(provider, location, deps.timezone(req))
		if deps.Clock != nil {
			cmd.Clock = deps.Clock
		}
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Identifier.String()), nil
	}
}

// --- timeline ---

func timelineTool() mcp.Tool {
	return mcp.NewTool("timeline",
		mcp.WithDescription("List the identifiers found for a directory, oldest first, with the names carrying each one."),
		withLocation(),
		withSource(),
		mcp.WithNumber("limit",
			mcp.Description("Only show the newest N identifiers. 0 shows all."),
		),
	)
}

func timelineHandler(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		provider, err := deps.provider(req)
		if err != nil {
			return toolError(err)
		}
		location, err := deps.location(req)
		if err != nil {
			return toolError(err)
		}

		cmd := commands.NewTimelineCommand(provider, location, req.GetInt("limit", 0))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if result.Total == 0 {
			return mcp.NewToolResultText("No identifiers found."), nil
		}

		var sb strings.Builder
		for _, id := range result.Timeline {
			fmt.Fprintf(&sb, "%s  %s\n", id, strings.Join(result.Context.Names(id), ", "))
		}
		fmt.Fprintf(&sb, "\n%d of %d shown; latest: %s\n", len(result.Timeline), result.Total, strings.Join(result.Last, ", "))
		return mcp.NewToolResultText(sb.String()), nil
	}
}
