package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"contexere/internal/adapters/filesystem"
	"contexere/internal/ports"
)

// Repository is a directory history that can also create entries
type Repository interface {
	ports.HistoryProvider
	ports.EntryCreator
}

// Deps holds what the tools run against
type Deps struct {
	Repo      Repository
	Ledger    ports.Ledger // nil disables the ledger source and record
	Directory string       // location used when a call omits one
	Timezone  string
	Clock     ports.Clock
}

// Register adds every identifier tool to the MCP server
func Register(s *server.MCPServer, deps Deps) {
	RegisterReadTools(s, deps)
	RegisterWriteTools(s, deps)
}

const (
	sourceDirectory = "directory"
	sourceLedger    = "ledger"
)

func withLocation() mcp.ToolOption {
	return mcp.WithString("location",
		mcp.Description("Directory whose history is used. Defaults to the configured directory."),
	)
}

func withSource() mcp.ToolOption {
	return mcp.WithString("source",
		mcp.Description("Where the history comes from: the directory listing or the ledger"),
		mcp.Enum(sourceDirectory, sourceLedger),
	)
}

func withTimezone() mcp.ToolOption {
	return mcp.WithString("timezone",
		mcp.Description("IANA time zone, e.g. Europe/Rome. Defaults to the configured zone."),
	)
}

func (d Deps) location(req mcp.CallToolRequest) (string, error) {
	return filesystem.ResolveLocation(req.GetString("location", d.Directory))
}

func (d Deps) timezone(req mcp.CallToolRequest) string {
	return req.GetString("timezone", d.Timezone)
}

func (d Deps) provider(req mcp.CallToolRequest) (ports.HistoryProvider, error) {
	switch source := req.GetString("source", sourceDirectory); source {
	case sourceDirectory:
		return d.Repo, nil
	case sourceLedger:
		if d.Ledger == nil {
			return nil, fmt.Errorf("ledger is not available")
		}
		return d.Ledger, nil
	default:
		return nil, fmt.Errorf("unknown source: %s (expected %s or %s)", source, sourceDirectory, sourceLedger)
	}
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
