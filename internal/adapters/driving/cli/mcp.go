package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/duxt-mcp/internal/adapters/driving/httpserver"
	"github.com/custodia-labs/duxt-mcp/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

By default, the server communicates over stdio using JSON-RPC and can be
used with Claude Desktop and other MCP-compatible AI assistants.

Use --port to start the HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default, for Claude Desktop)
  duxt-mcp mcp serve --docs ./docs

  # HTTP mode (for MCP Inspector, remote access)
  duxt-mcp mcp serve --port 8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "duxt": {
        "command": "/path/to/duxt-mcp",
        "args": ["mcp", "serve", "--docs", "/path/to/docs"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().BoolP("watch", "w", false, "reload docs when markdown files change")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if appSettings == nil {
		return errors.New("settings not loaded")
	}

	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return err
	}
	watch, err := cmd.Flags().GetBool("watch")
	if err != nil {
		return err
	}
	watch = watch || appSettings.Docs.Watch
	ctx := commandContext(cmd)

	if port > 0 {
		cfg := httpserver.Config{
			Host: appSettings.Server.Host,
			Port: port,
			RateLimit: httpserver.RateLimitConfig{
				RequestsPerSecond: appSettings.Server.RateLimit,
				BurstSize:         appSettings.Server.RateBurst,
			},
		}
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://%s/mcp\n", cfg.Addr())
		return runHTTP(ctx, cfg, watch)
	}

	server, err := newMCPServer()
	if err != nil {
		return err
	}

	return runStdio(ctx, server, watch)
}

// runStdio serves a single stdio session. The reloaders stop when the
// client disconnects, since Run returns nil on EOF.
func runStdio(ctx context.Context, server *mcp.Server, watch bool) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Stdout carries the protocol; logs go to stderr.
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return server.Run(ctx)
	})
	startReloaders(ctx, g, watch, newScheduler())
	return g.Wait()
}
