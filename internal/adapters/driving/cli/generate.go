package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

var generateFields map[string]string

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate Duxt code and guides",
	Long: `Generate the same output MCP clients receive from the generate_code,
get_project_structure and duxt_cli_help tools and the guided prompts.

Templates can be overridden by placing <name>.tmpl files in the template
directory shown by "duxt-mcp settings show".`,
}

var generateCodeCmd = &cobra.Command{
	Use:   "code <type> <name>",
	Short: "Generate Dart code (model, page, component, api, layout)",
	Long: `Generate ready-to-use Dart code following Duxt framework patterns.

Examples:
  duxt-mcp generate code model Post --field title=String --field views=int
  duxt-mcp generate code page BlogPage`,
	Args: cobra.ExactArgs(2),
	RunE: runGenerateCode,
}

var generateStructureCmd = &cobra.Command{
	Use:       "structure <template>",
	Short:     "Show a project layout (static, server, client)",
	Args:      cobra.ExactArgs(1),
	ValidArgs: templateNames(),
	RunE:      runGenerateStructure,
}

var generateCLIHelpCmd = &cobra.Command{
	Use:   "cli-help <task>",
	Short: "Suggest Duxt CLI commands for a task",
	Long: `Suggest Duxt CLI commands for a task described in plain words.

Example:
  duxt-mcp generate cli-help create a blog with posts`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerateCLIHelp,
}

var generateGuideCmd = &cobra.Command{
	Use:   "guide <page|model|crud> <name> [route|fields]",
	Short: "Print a step-by-step guide",
	Long: `Print the guide behind the create-page, create-model and scaffold-crud prompts.

Examples:
  duxt-mcp generate guide page BlogPage /blog/[slug]
  duxt-mcp generate guide model Post "title:String, published:bool"
  duxt-mcp generate guide crud Product "name:String, price:double"`,
	Args:      cobra.RangeArgs(2, 3),
	ValidArgs: []string{"page", "model", "crud"},
	RunE:      runGenerateGuide,
}

func init() {
	generateCodeCmd.Flags().StringToStringVarP(&generateFields, "field", "f", nil, "field as name=Type (repeatable)")

	generateCmd.AddCommand(generateCodeCmd)
	generateCmd.AddCommand(generateStructureCmd)
	generateCmd.AddCommand(generateCLIHelpCmd)
	generateCmd.AddCommand(generateGuideCmd)
	rootCmd.AddCommand(generateCmd)
}

func runGenerateCode(cmd *cobra.Command, args []string) error {
	if generatorService == nil {
		return errors.New("generator service not configured")
	}

	code, err := generatorService.GenerateCode(domain.CodeKind(args[0]), args[1], generateFields)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), code.Code)
	return nil
}

func runGenerateStructure(cmd *cobra.Command, args []string) error {
	if generatorService == nil {
		return errors.New("generator service not configured")
	}

	out, err := generatorService.ProjectStructure(domain.ProjectTemplate(args[0]))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runGenerateCLIHelp(cmd *cobra.Command, args []string) error {
	if generatorService == nil {
		return errors.New("generator service not configured")
	}

	out, err := generatorService.CLIHelp(commandContext(cmd), strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func runGenerateGuide(cmd *cobra.Command, args []string) error {
	if generatorService == nil {
		return errors.New("generator service not configured")
	}

	name, extra := args[1], ""
	if len(args) == 3 {
		extra = args[2]
	}

	var (
		out string
		err error
	)
	switch args[0] {
	case "page":
		out, err = generatorService.PagePrompt(name, extra)
	case "model":
		out, err = generatorService.ModelPrompt(name, extra)
	case "crud":
		out, err = generatorService.CRUDPrompt(name, extra)
	default:
		return fmt.Errorf("%w: guide %q (want page, model or crud)", domain.ErrUnsupportedType, args[0])
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func templateNames() []string {
	templates := domain.ProjectTemplates()
	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.String()
	}
	return names
}
