package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"contexere/internal/adapters/filesystem"
	mcpadapter "contexere/internal/adapters/mcp"
	"contexere/internal/adapters/sqlite"
	"contexere/internal/config"
	"contexere/internal/ports"
)

func main() {
	configFlag := flag.String("config", "", "config file (default $XDG_CONFIG_HOME/contexere/config.yaml)")
	dirFlag := flag.String("dir", "", "default directory for tools called without a location")
	noLedger := flag.Bool("no-ledger", false, "disable the ledger")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("contexere-mcp: %v", err)
	}
	if *dirFlag != "" {
		cfg.Directory = *dirFlag
	}

	// stdout carries the protocol, so logs go to stderr
	logger := cfg.NewLogger(os.Stderr)

	deps := mcpadapter.Deps{
		Repo:      filesystem.NewRepository(cfg.Directory),
		Directory: cfg.Directory,
		Timezone:  cfg.Timezone,
		Clock:     ports.SystemClock{},
	}

	if !*noLedger {
		ledger := sqlite.NewLedger(logger)
		if err := ledger.Open(sqlite.DatabasePath(cfg.DataDir)); err != nil {
			logger.Warn("ledger unavailable", "error", err)
		} else {
			defer ledger.Close()
			deps.Ledger = ledger
		}
	}

	mcpServer := server.NewMCPServer(
		"contexere-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.Register(mcpServer, deps)

	logger.Info("serving MCP over stdio", "directory", cfg.Directory)
	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("contexere-mcp: %v", err)
	}
}
