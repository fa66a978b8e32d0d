package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/duxt-mcp/internal/adapters/driving/httpserver"
	"github.com/custodia-labs/duxt-mcp/internal/adapters/driving/mcp"
	"github.com/custodia-labs/duxt-mcp/internal/core/services"
	"github.com/custodia-labs/duxt-mcp/internal/logger"
)

var (
	serveHost  string
	servePort  int
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. MCP clients connect to POST /mcp; GET /health
reports the number of loaded pages and GET /metrics exposes Prometheus metrics.

The port resolves from --port, then the PORT environment variable, then
server.port in the config file, then 3000.

Examples:
  duxt-mcp serve
  duxt-mcp serve --port 8080 --docs ./docs --watch`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "interface to bind (default from config, 0.0.0.0)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on")
	serveCmd.Flags().BoolVarP(&serveWatch, "watch", "w", false, "reload docs when markdown files change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if appSettings == nil {
		return errors.New("settings not loaded")
	}

	cfg := httpserver.Config{
		Host: appSettings.Server.Host,
		Port: appSettings.Server.Port,
		RateLimit: httpserver.RateLimitConfig{
			RequestsPerSecond: appSettings.Server.RateLimit,
			BurstSize:         appSettings.Server.RateBurst,
		},
	}
	if cmd.Flags().Changed("host") {
		cfg.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	watch := appSettings.Docs.Watch || serveWatch
	fmt.Fprintf(cmd.OutOrStdout(), "duxt-mcp listening on http://%s (MCP at /mcp)\n", cfg.Addr())
	return runHTTP(commandContext(cmd), cfg, watch)
}

// runHTTP serves MCP over HTTP until ctx is cancelled. Docs reload in the
// background when watching or when a reload interval is configured.
func runHTTP(ctx context.Context, cfg httpserver.Config, watch bool) error {
	mcpServer, err := newMCPServer()
	if err != nil {
		return err
	}

	server, err := httpserver.New(cfg, documentService, mcpServer.Handler())
	if err != nil {
		return err
	}

	scheduler := newScheduler()
	if scheduler != nil {
		server.SetReloadReporter(scheduler)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(ctx)
	})
	startReloaders(ctx, g, watch, scheduler)
	return g.Wait()
}

// newScheduler returns the scheduled reload, or nil when
// docs.reload_interval is unset.
func newScheduler() *services.Scheduler {
	if appSettings == nil || appSettings.Docs.ReloadInterval <= 0 || documentService == nil {
		return nil
	}
	return services.NewScheduler(documentService, appSettings.Docs.ReloadInterval)
}

// startReloaders adds the docs watcher and the scheduled reload to g.
// Both stop when ctx is cancelled.
func startReloaders(ctx context.Context, g *errgroup.Group, watch bool, scheduler *services.Scheduler) {
	if watch {
		g.Go(func() error {
			return watchInBackground(ctx)
		})
	}
	if scheduler != nil {
		g.Go(func() error {
			return scheduler.Start(ctx)
		})
	}
}

// watchInBackground runs the docs watcher. A watcher that cannot start is
// logged and does not stop the server.
func watchInBackground(ctx context.Context) error {
	if watchDocs == nil {
		return nil
	}
	if err := watchDocs(ctx); err != nil {
		logger.Warn("docs watcher stopped: %v", err)
	}
	return nil
}

func newMCPServer() (*mcp.Server, error) {
	server, err := mcp.NewServer(&mcp.Ports{
		Documents: documentService,
		Search:    searchService,
		Generator: generatorService,
	})
	if err != nil {
		return nil, fmt.Errorf("create mcp server: %w", err)
	}
	return server, nil
}
