// Package cli provides the cobra command tree for duxt-mcp.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/duxt-mcp/internal/adapters/driven/config/file"
	"github.com/custodia-labs/duxt-mcp/internal/adapters/driven/docsource/filesystem"
	"github.com/custodia-labs/duxt-mcp/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
	"github.com/custodia-labs/duxt-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/duxt-mcp/internal/core/services"
	"github.com/custodia-labs/duxt-mcp/internal/logger"
)

// Command annotations read by bootstrap.
const (
	// skipBootstrap marks commands that run without loading config or docs.
	skipBootstrap = "skip-bootstrap"

	// configOnly marks commands that need settings but not the docs tree.
	configOnly = "config-only"
)

var version = "dev"

// Global flags.
var (
	verbose    bool
	docsDir    string
	configDir  string
	strictLoad bool
)

// Services wired by bootstrap.
var (
	appSettings      *domain.AppSettings
	settingsService  driving.SettingsService
	documentService  driving.DocumentService
	searchService    driving.SearchService
	generatorService driving.GeneratorService
	templateStore    *file.TemplateStore
	configPath       string

	// watchDocs reloads documents on change until ctx is cancelled.
	watchDocs func(ctx context.Context) error
)

// bootstrap builds the services before a command runs. Tests replace it.
var bootstrap = buildServices

var rootCmd = &cobra.Command{
	Use:   "duxt-mcp",
	Short: "MCP server for the Duxt framework documentation",
	Long: `duxt-mcp serves the Duxt framework documentation to AI assistants over the
Model Context Protocol. It loads markdown pages from a docs directory, ranks
them for search and generates Dart code that follows Duxt conventions.

Run "duxt-mcp serve" for the HTTP server or "duxt-mcp mcp serve" for stdio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		if cmd.Annotations[skipBootstrap] == "true" {
			return nil
		}
		return bootstrap(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&docsDir, "docs", "", "docs directory (overrides config and "+services.EnvDocsDir+")")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default $XDG_CONFIG_HOME/duxt-mcp)")
	rootCmd.PersistentFlags().BoolVar(&strictLoad, "strict", false, "fail when two files map to the same document URI")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by the version command and the server.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// buildServices is the composition root: config, settings, docs, search
// and generators, in that order.
func buildServices(cmd *cobra.Command) error {
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	settings := services.NewSettingsService(configStore)
	resolved, err := settings.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if cmd.Flags().Changed("docs") {
		resolved.Docs.Dir = docsDir
	}
	if cmd.Flags().Changed("strict") {
		resolved.Docs.Strict = strictLoad
	}
	logger.Debug("config: %s", configStore.Path())
	logger.Debug("docs: %s", resolved.Docs.Dir)

	appSettings = resolved
	settingsService = settings
	configPath = configStore.Path()
	templateStore = file.NewTemplateStore("")
	if cmd.Annotations[configOnly] == "true" {
		return nil
	}

	docs := services.NewDocumentService(filesystem.New(resolved.Docs.Dir), memory.NewDocumentStore())
	docs.SetStrict(resolved.Docs.Strict)
	if err := docs.Load(commandContext(cmd)); err != nil {
		return err
	}

	search := services.NewSearchService(docs)
	documentService = docs
	searchService = search
	generatorService = services.NewGeneratorService(templateStore, search)
	watcher := filesystem.NewWatcher(resolved.Docs.Dir, filesystem.DefaultDebounce)
	watchDocs = func(ctx context.Context) error {
		return docs.Watch(ctx, watcher)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
