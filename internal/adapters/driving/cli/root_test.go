package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/duxt-mcp/internal/core/services"
)

// withCleanGlobals resets the wired services after the test.
func withCleanGlobals(t *testing.T) {
	t.Helper()
	prevDir := configDir
	t.Cleanup(func() {
		configDir = prevDir
		appSettings = nil
		settingsService = nil
		configPath = ""
		documentService = nil
		searchService = nil
		templateStore = nil
		generatorService = nil
		watchDocs = nil
	})
}

func TestBuildServices(t *testing.T) {
	withCleanGlobals(t)
	root := writeDocs(t)
	t.Setenv(services.EnvDocsDir, root)
	t.Setenv(services.EnvPort, "4000")
	configDir = t.TempDir()

	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	require.NoError(t, buildServices(cmd))

	require.NotNil(t, appSettings)
	assert.Equal(t, root, appSettings.Docs.Dir)
	assert.Equal(t, 4000, appSettings.Server.Port)
	assert.Equal(t, filepath.Join(configDir, "config.toml"), configPath)

	require.NotNil(t, documentService)
	assert.Equal(t, 3, documentService.Snapshot(context.Background()).Count)
	assert.NotNil(t, searchService)
	assert.NotNil(t, generatorService)
	assert.NotNil(t, templateStore)
	assert.NotNil(t, watchDocs)
}

func TestBuildServices_ConfigOnlySkipsDocs(t *testing.T) {
	withCleanGlobals(t)
	notADir := filepath.Join(t.TempDir(), "file.md")
	require.NoError(t, os.WriteFile(notADir, []byte("x"), 0o644))
	t.Setenv(services.EnvDocsDir, notADir)
	t.Setenv(services.EnvPort, "")
	configDir = t.TempDir()

	cmd := &cobra.Command{Annotations: map[string]string{configOnly: "true"}}
	require.NoError(t, buildServices(cmd))

	assert.NotNil(t, settingsService)
	assert.Nil(t, documentService)
}

func TestBuildServices_DocsRootIsFile(t *testing.T) {
	withCleanGlobals(t)
	notADir := filepath.Join(t.TempDir(), "file.md")
	require.NoError(t, os.WriteFile(notADir, []byte("x"), 0o644))
	t.Setenv(services.EnvDocsDir, notADir)
	t.Setenv(services.EnvPort, "")
	configDir = t.TempDir()

	err := buildServices(&cobra.Command{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestBuildServices_InvalidPortEnv(t *testing.T) {
	withCleanGlobals(t)
	t.Setenv(services.EnvPort, "http")
	configDir = t.TempDir()

	err := buildServices(&cobra.Command{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load settings")
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "mcp", "search", "docs", "generate", "settings", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestRootCmd_GlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "docs", "config", "strict"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
}

func TestRootCmd_BootstrapError(t *testing.T) {
	setupTestServices(t)
	bootstrap = func(*cobra.Command) error { return assert.AnError }

	_, err := execute(t, "docs", "list")

	require.ErrorIs(t, err, assert.AnError)
}
