package cli

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCmd_Use(t *testing.T) {
	assert.Equal(t, "version", versionCmd.Use)
}

func TestVersionCmd_SkipsBootstrap(t *testing.T) {
	assert.Equal(t, "true", versionCmd.Annotations[skipBootstrap])
}

func TestVersionCmd_Executes(t *testing.T) {
	originalVersion := version
	version = "test-version-1.0.0"
	defer func() { version = originalVersion }()

	// A failing bootstrap proves the command never loads services.
	prev := bootstrap
	bootstrap = func(*cobra.Command) error { return errors.New("should not run") }
	defer func() { bootstrap = prev }()

	out, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, out, "duxt-mcp version test-version-1.0.0")
}

func TestSetVersion(t *testing.T) {
	originalVersion := version
	defer func() { version = originalVersion }()

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)

	SetVersion("")
	assert.Equal(t, "1.2.3", version, "empty version is ignored")
}
