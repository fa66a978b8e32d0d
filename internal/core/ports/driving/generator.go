package driving

import (
	"context"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

// GeneratorService renders code templates, guides and reference text.
type GeneratorService interface {
	// GenerateCode renders Dart source for the given kind.
	GenerateCode(kind domain.CodeKind, name string, fields map[string]string) (*domain.GeneratedCode, error)

	// ProjectStructure describes the directory layout of a project template.
	ProjectStructure(template domain.ProjectTemplate) (string, error)

	// CLIHelp suggests CLI commands for a task described in plain words.
	CLIHelp(ctx context.Context, task string) (string, error)

	// PagePrompt renders the create-page guide.
	PagePrompt(pageName, route string) (string, error)

	// ModelPrompt renders the create-model guide.
	ModelPrompt(modelName, fields string) (string, error)

	// CRUDPrompt renders the scaffold-crud guide.
	CRUDPrompt(resourceName, fields string) (string, error)
}
