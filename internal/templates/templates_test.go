package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Known(t *testing.T) {
	src, ok := Default("code_component")

	require.True(t, ok)
	assert.Contains(t, src, "extends StatelessComponent")
}

func TestDefault_Unknown(t *testing.T) {
	src, ok := Default("does_not_exist")

	assert.False(t, ok)
	assert.Empty(t, src)
}

func TestNames(t *testing.T) {
	names := Names()

	expected := []string{
		"cli_build", "cli_component", "cli_create", "cli_delete", "cli_dev",
		"cli_fallback", "cli_layout", "cli_model", "cli_page", "cli_scaffold",
		"code_api", "code_component", "code_layout", "code_model", "code_page",
		"prompt_crud", "prompt_model", "prompt_page",
		"structure_client", "structure_server", "structure_static",
	}
	assert.Equal(t, expected, names)
}

func TestNames_AllParse(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			src, ok := Default(name)
			require.True(t, ok)

			_, err := Render(name, src, nil)
			if err != nil {
				// Templates with fields fail on nil data; parsing must still succeed.
				assert.Contains(t, err.Error(), "render template")
			}
		})
	}
}

func TestRender(t *testing.T) {
	out, err := Render("t", "Hello {{.Name | lower}}", map[string]string{"Name": "WORLD"})

	require.NoError(t, err)
	assert.Equal(t, "Hello world", out)
}

func TestRender_ParseError(t *testing.T) {
	_, err := Render("bad", "{{.Name", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `parse template "bad"`)
}

func TestRender_MissingKey(t *testing.T) {
	_, err := Render("t", "{{.Missing}}", map[string]string{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `render template "t"`)
}

func TestRender_Structure(t *testing.T) {
	src, ok := Default("structure_server")
	require.True(t, ok)

	out, err := Render("structure_server", src, nil)

	require.NoError(t, err)
	assert.Contains(t, out, "# Duxt Server Project Structure")
	assert.Contains(t, out, "duxt_orm")
}
