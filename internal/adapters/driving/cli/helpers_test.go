package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/duxt-mcp/internal/adapters/driven/config/file"
	"github.com/custodia-labs/duxt-mcp/internal/adapters/driven/docsource/filesystem"
	"github.com/custodia-labs/duxt-mcp/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
	"github.com/custodia-labs/duxt-mcp/internal/core/services"
)

var testDocs = map[string]string{
	"getting-started/installation.md": `---
title: Installation
description: Install the Duxt CLI and create a project
order: 1
---
# Installation

Run duxt create my-app to scaffold a new project.
`,
	"getting-started/routing.md": `---
title: Routing
description: File-based routing and middleware
order: 2
---
# Routing

Pages under lib/pages map to routes.
`,
	"duxt-orm/relations.md": `---
title: Relations
---
# Relations

Models declare hasMany and belongsTo relations.
`,
}

// writeDocs writes the fixture tree and returns its root.
func writeDocs(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range testDocs {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// setupTestServices wires real services over a fixture docs tree and a
// temporary config directory, and replaces bootstrap with a no-op.
func setupTestServices(t *testing.T) {
	t.Helper()
	t.Setenv(services.EnvPort, "")
	t.Setenv(services.EnvDocsDir, "")

	root := writeDocs(t)
	cfgDir := t.TempDir()

	configStore, err := file.NewConfigStore(cfgDir)
	require.NoError(t, err)
	settings := services.NewSettingsService(configStore)
	resolved, err := settings.Get()
	require.NoError(t, err)
	resolved.Docs.Dir = root

	docs := services.NewDocumentService(filesystem.New(root), memory.NewDocumentStore())
	require.NoError(t, docs.Load(context.Background()))
	search := services.NewSearchService(docs)
	store := file.NewTemplateStore(t.TempDir())

	prevBootstrap := bootstrap
	bootstrap = func(*cobra.Command) error { return nil }

	appSettings = resolved
	settingsService = settings
	configPath = configStore.Path()
	documentService = docs
	searchService = search
	templateStore = store
	generatorService = services.NewGeneratorService(store, search)
	watchDocs = nil

	resetFlags()

	t.Cleanup(func() {
		bootstrap = prevBootstrap
		appSettings = nil
		settingsService = nil
		configPath = ""
		documentService = nil
		searchService = nil
		templateStore = nil
		generatorService = nil
		resetFlags()
	})
}

// resetFlags restores flag variables that persist between executions of
// the shared command tree.
func resetFlags() {
	searchLimit = domain.DefaultSearchLimit
	searchSection = ""
	searchJSON = false
	docsListSection = ""
	docsShowRaw = false
	docsShowStyle = ""
	generateFields = map[string]string{}
}

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(bytes.NewReader(nil))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
