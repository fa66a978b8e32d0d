package driven

// TemplateStore provides access to the generator's text templates.
// Implementations may read user overrides from disk and fall back to
// the templates embedded in the binary.
type TemplateStore interface {
	// Load returns the template source for the given name.
	// Returns an error if no override or embedded default exists.
	Load(name string) (string, error)

	// Reload clears any cached templates, forcing fresh loads on next access.
	Reload()
}

// Well-known template names used by the generator.
const (
	TemplateCodeModel     = "code_model"
	TemplateCodePage      = "code_page"
	TemplateCodeComponent = "code_component"
	TemplateCodeAPI       = "code_api"
	TemplateCodeLayout    = "code_layout"

	TemplatePromptPage  = "prompt_page"
	TemplatePromptModel = "prompt_model"
	TemplatePromptCRUD  = "prompt_crud"

	TemplateStructureStatic = "structure_static"
	TemplateStructureServer = "structure_server"
	TemplateStructureClient = "structure_client"

	// TemplateCLIFallback is rendered when no CLI keyword matches a task.
	TemplateCLIFallback = "cli_fallback"
)
