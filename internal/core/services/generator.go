package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
	"github.com/custodia-labs/duxt-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/duxt-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/duxt-mcp/internal/logger"
	"github.com/custodia-labs/duxt-mcp/internal/templates"
)

// Ensure GeneratorService implements the interface.
var _ driving.GeneratorService = (*GeneratorService)(nil)

// cliHintLimit is how many search results back a CLI help answer when no
// keyword matches.
const cliHintLimit = 3

// cliSeparator joins multiple CLI help topics.
const cliSeparator = "\n\n---\n\n"

// cliTopics maps task keywords to CLI help templates, in answer order.
var cliTopics = []struct {
	keywords []string
	template string
}{
	{[]string{"create", "new project", "start"}, "cli_create"},
	{[]string{"dev", "run", "start", "serve"}, "cli_dev"},
	{[]string{"build", "production", "deploy"}, "cli_build"},
	{[]string{"model", "orm", "database"}, "cli_model"},
	{[]string{"page", "route"}, "cli_page"},
	{[]string{"scaffold", "crud"}, "cli_scaffold"},
	{[]string{"component"}, "cli_component"},
	{[]string{"layout"}, "cli_layout"},
	{[]string{"delete", "remove", "destroy"}, "cli_delete"},
}

var codeTemplates = map[domain.CodeKind]string{
	domain.CodeKindModel:     driven.TemplateCodeModel,
	domain.CodeKindPage:      driven.TemplateCodePage,
	domain.CodeKindComponent: driven.TemplateCodeComponent,
	domain.CodeKindAPI:       driven.TemplateCodeAPI,
	domain.CodeKindLayout:    driven.TemplateCodeLayout,
}

var structureTemplates = map[domain.ProjectTemplate]string{
	domain.ProjectTemplateStatic: driven.TemplateStructureStatic,
	domain.ProjectTemplateServer: driven.TemplateStructureServer,
	domain.ProjectTemplateClient: driven.TemplateStructureClient,
}

// fieldView is a field as seen by templates.
type fieldView struct {
	Name   string
	Type   string
	Column string
}

type codeData struct {
	Name   string
	Title  string
	Snake  string
	Table  string
	Fields []fieldView
}

type pagePromptData struct {
	PageName string
	Route    string
	FilePath string
	Param    string
	Heading  string
}

type modelPromptData struct {
	ModelName string
	Raw       string
	Snake     string
	Table     string
	First     string
	Fields    []fieldView
}

type crudPromptData struct {
	ResourceName string
	Raw          string
	Snake        string
	Plural       string
	Fields       []fieldView
}

type cliHint struct {
	Title string
	URI   string
}

type cliFallbackData struct {
	Task  string
	Hints []cliHint
}

// GeneratorService renders Duxt code, guides and reference text from
// templates.
type GeneratorService struct {
	templates driven.TemplateStore
	search    driving.SearchService
}

// NewGeneratorService creates a new generator service.
// search is optional; without it CLI help has no documentation hints.
func NewGeneratorService(store driven.TemplateStore, search driving.SearchService) *GeneratorService {
	return &GeneratorService{
		templates: store,
		search:    search,
	}
}

// GenerateCode renders Dart source for kind. Fields are rendered in key order.
func (s *GeneratorService) GenerateCode(
	kind domain.CodeKind, name string, fields map[string]string,
) (*domain.GeneratedCode, error) {
	tmpl, ok := codeTemplates[kind]
	if !ok {
		return nil, fmt.Errorf("%w: code type %q", domain.ErrUnsupportedType, kind)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	views := make([]fieldView, 0, len(keys))
	for _, k := range keys {
		views = append(views, newFieldView(domain.Field{Name: k, Type: fields[k]}))
	}

	snake := ToSnakeCase(name)
	code, err := s.render(tmpl, codeData{
		Name:   name,
		Title:  SplitCamelCase(name),
		Snake:  snake,
		Table:  snake + "s",
		Fields: views,
	})
	if err != nil {
		return nil, err
	}

	return &domain.GeneratedCode{Kind: kind, Name: name, Code: code}, nil
}

// ProjectStructure describes the directory layout of a project template.
func (s *GeneratorService) ProjectStructure(template domain.ProjectTemplate) (string, error) {
	tmpl, ok := structureTemplates[template]
	if !ok {
		return "", fmt.Errorf("%w: project template %q", domain.ErrUnsupportedType, template)
	}
	out, err := s.render(tmpl, nil)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// CLIHelp suggests CLI commands for a task. Every topic whose keywords
// appear in the task is included. With no match, the answer points at
// related documentation and the common commands.
func (s *GeneratorService) CLIHelp(ctx context.Context, task string) (string, error) {
	lower := strings.ToLower(task)

	var sections []string
	for _, topic := range cliTopics {
		if !containsAny(lower, topic.keywords) {
			continue
		}
		out, err := s.render(topic.template, nil)
		if err != nil {
			return "", err
		}
		sections = append(sections, strings.TrimRight(out, "\n"))
	}

	if len(sections) == 0 {
		data := cliFallbackData{Task: task, Hints: s.cliHints(ctx, task)}
		out, err := s.render(driven.TemplateCLIFallback, data)
		if err != nil {
			return "", err
		}
		sections = append(sections, strings.TrimRight(out, "\n"))
	}

	return strings.Join(sections, cliSeparator), nil
}

func (s *GeneratorService) cliHints(ctx context.Context, task string) []cliHint {
	if s.search == nil {
		return nil
	}
	results, err := s.search.Search(ctx, task, domain.SearchOptions{Limit: cliHintLimit})
	if err != nil {
		logger.Warn("cli help search: %v", err)
		return nil
	}

	hints := make([]cliHint, 0, len(results))
	for _, r := range results {
		hints = append(hints, cliHint{Title: r.Document.Title, URI: r.Document.URI})
	}
	return hints
}

// PagePrompt renders the create-page guide.
func (s *GeneratorService) PagePrompt(pageName, route string) (string, error) {
	pageName = strings.TrimSpace(pageName)
	if pageName == "" {
		return "", fmt.Errorf("%w: pageName is required", domain.ErrInvalidInput)
	}
	route = strings.TrimSpace(route)

	out, err := s.render(driven.TemplatePromptPage, pagePromptData{
		PageName: pageName,
		Route:    route,
		FilePath: RouteToFilePath(route),
		Param:    RouteParameter(route),
		Heading:  strings.TrimSuffix(pageName, "Page"),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// ModelPrompt renders the create-model guide.
func (s *GeneratorService) ModelPrompt(modelName, fields string) (string, error) {
	modelName = strings.TrimSpace(modelName)
	if modelName == "" {
		return "", fmt.Errorf("%w: modelName is required", domain.ErrInvalidInput)
	}

	views := fieldViews(ParseFieldList(fields))
	first := ""
	if len(views) > 0 {
		first = views[0].Name
	}

	snake := ToSnakeCase(modelName)
	out, err := s.render(driven.TemplatePromptModel, modelPromptData{
		ModelName: modelName,
		Raw:       fields,
		Snake:     snake,
		Table:     snake + "s",
		First:     first,
		Fields:    views,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// CRUDPrompt renders the scaffold-crud guide.
func (s *GeneratorService) CRUDPrompt(resourceName, fields string) (string, error) {
	resourceName = strings.TrimSpace(resourceName)
	if resourceName == "" {
		return "", fmt.Errorf("%w: resourceName is required", domain.ErrInvalidInput)
	}

	snake := ToSnakeCase(resourceName)
	out, err := s.render(driven.TemplatePromptCRUD, crudPromptData{
		ResourceName: resourceName,
		Raw:          fields,
		Snake:        snake,
		Plural:       snake + "s",
		Fields:       fieldViews(ParseFieldList(fields)),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

// render loads a template by name and executes it with data.
func (s *GeneratorService) render(name string, data any) (string, error) {
	if s.templates == nil {
		return "", fmt.Errorf("render %s: no template store", name)
	}
	src, err := s.templates.Load(name)
	if err != nil {
		return "", fmt.Errorf("load template: %w", err)
	}
	return templates.Render(name, src, data)
}

func newFieldView(f domain.Field) fieldView {
	return fieldView{Name: f.Name, Type: f.Type, Column: DartColumnType(f.Type)}
}

func fieldViews(fields []domain.Field) []fieldView {
	views := make([]fieldView, 0, len(fields))
	for _, f := range fields {
		views = append(views, newFieldView(f))
	}
	return views
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
