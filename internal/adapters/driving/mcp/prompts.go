package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// registerPrompts registers the guided workflow prompts.
func (s *Server) registerPrompts() {
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "create-page",
		Description: "Step-by-step guide for creating a new Duxt page with routing, layout, and components.",
		Arguments: []*mcp.PromptArgument{
			{Name: "pageName", Description: "Name of the page component (e.g. 'BlogPage', 'AboutPage')", Required: true},
			{Name: "route", Description: "Route path (e.g. '/blog', '/about', '/blog/[slug]')", Required: true},
		},
	}, s.handleCreatePage)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "create-model",
		Description: "Step-by-step guide for creating a Duxt ORM model with schema, relations, and migrations.",
		Arguments: []*mcp.PromptArgument{
			{Name: "modelName", Description: "Model class name (e.g. 'Post', 'User', 'Comment')", Required: true},
			{
				Name:        "fields",
				Description: "Comma-separated fields with types (e.g. 'title:String, body:String, published:bool')",
				Required:    true,
			},
		},
	}, s.handleCreateModel)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "scaffold-crud",
		Description: "Complete guide for scaffolding a full CRUD resource with model, API, pages, and components.",
		Arguments: []*mcp.PromptArgument{
			{Name: "resourceName", Description: "Resource name (e.g. 'Post', 'Product', 'User')", Required: true},
			{
				Name:        "fields",
				Description: "Comma-separated fields with types (e.g. 'title:String, price:double, active:bool')",
				Required:    true,
			},
		},
	}, s.handleScaffoldCRUD)
}

func (s *Server) handleCreatePage(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := promptArgs(req)
	text, err := s.ports.Generator.PagePrompt(args["pageName"], args["route"])
	if err != nil {
		return nil, err
	}
	return userPrompt(text), nil
}

func (s *Server) handleCreateModel(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := promptArgs(req)
	text, err := s.ports.Generator.ModelPrompt(args["modelName"], args["fields"])
	if err != nil {
		return nil, err
	}
	return userPrompt(text), nil
}

func (s *Server) handleScaffoldCRUD(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := promptArgs(req)
	text, err := s.ports.Generator.CRUDPrompt(args["resourceName"], args["fields"])
	if err != nil {
		return nil, err
	}
	return userPrompt(text), nil
}

// promptArgs returns the request arguments, never nil.
func promptArgs(req *mcp.GetPromptRequest) map[string]string {
	if req == nil || req.Params == nil || req.Params.Arguments == nil {
		return map[string]string{}
	}
	return req.Params.Arguments
}

// userPrompt wraps a guide in a single user message.
func userPrompt(text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{{
			Role:    "user",
			Content: &mcp.TextContent{Text: text},
		}},
	}
}
