package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

func makeGetPromptRequest(name string, args map[string]string) *mcp.GetPromptRequest {
	return &mcp.GetPromptRequest{
		Params: &mcp.GetPromptParams{Name: name, Arguments: args},
	}
}

func promptText(t *testing.T, res *mcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, res.Messages, 1)
	assert.Equal(t, mcp.Role("user"), res.Messages[0].Role)
	text, ok := res.Messages[0].Content.(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServer_Prompts(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(nil, nil, nil)

	tests := []struct {
		name    string
		handler func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)
		args    map[string]string
		want    string
	}{
		{
			name:    "create-page",
			handler: server.handleCreatePage,
			args:    map[string]string{"pageName": "BlogPage", "route": "/blog"},
			want:    "page:BlogPage:/blog",
		},
		{
			name:    "create-model",
			handler: server.handleCreateModel,
			args:    map[string]string{"modelName": "Post", "fields": "title:String"},
			want:    "model:Post:title:String",
		},
		{
			name:    "scaffold-crud",
			handler: server.handleScaffoldCRUD,
			args:    map[string]string{"resourceName": "Product", "fields": "price:double"},
			want:    "crud:Product:price:double",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := tt.handler(ctx, makeGetPromptRequest(tt.name, tt.args))

			require.NoError(t, err)
			assert.Equal(t, tt.want, promptText(t, res))
		})

		t.Run(tt.name+" without arguments", func(t *testing.T) {
			_, err := tt.handler(ctx, makeGetPromptRequest(tt.name, nil))

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestServer_Prompts_GeneratorError(t *testing.T) {
	server := newTestServer(nil, nil, &mockGeneratorService{err: errors.New("template broken")})

	_, err := server.handleCreateModel(context.Background(),
		makeGetPromptRequest("create-model", map[string]string{"modelName": "Post"}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "template broken")
}

func TestPromptArgs(t *testing.T) {
	assert.NotNil(t, promptArgs(nil))
	assert.NotNil(t, promptArgs(&mcp.GetPromptRequest{}))
	assert.Equal(t, "x", promptArgs(makeGetPromptRequest("p", map[string]string{"a": "x"}))["a"])
}
