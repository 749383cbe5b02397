package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/fzmatch/internal/debug"
	"github.com/standardbeagle/fzmatch/internal/mcp"
)

func mcpCommand(c *cli.Context) error {
	// stdio carries the protocol; nothing else may write to it
	debug.SetMCPMode(true)

	cfg, err := loadConfigWithOverrides(c)
	if err != nil {
		return debug.Fatal("failed to load config: %v\n", err)
	}

	server, err := mcp.NewServer(cfg)
	if err != nil {
		return debug.Fatal("failed to create MCP server: %v\n", err)
	}
	defer server.Close()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	debug.LogMCP("Starting MCP server with stdio transport...\n")
	if err := server.Start(ctx); err != nil && !errors.Is(err, ctx.Err()) {
		return debug.Fatal("MCP server error: %v\n", err)
	}
	debug.LogMCP("Server shutdown completed\n")
	return nil
}
