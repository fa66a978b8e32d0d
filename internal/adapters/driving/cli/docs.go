package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

var (
	docsListSection string
	docsShowRaw     bool
	docsShowStyle   string
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Browse the loaded documentation",
}

var docsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List documentation pages",
	Long: `List every loaded page grouped by section, in the order MCP clients see them.

Examples:
  duxt-mcp docs list
  duxt-mcp docs list --section duxt-orm`,
	Args: cobra.NoArgs,
	RunE: runDocsList,
}

var docsShowCmd = &cobra.Command{
	Use:   "show <uri|section/slug>",
	Short: "Print a documentation page",
	Long: `Print one page. The page can be given as a full URI or as section/slug.

Markdown is rendered for terminals and printed as-is otherwise. Use --style
to force rendering with a glamour style (dark, light, notty, ascii).

Examples:
  duxt-mcp docs show getting-started/installation
  duxt-mcp docs show duxt://docs/duxt-orm/relations --raw`,
	Args: cobra.ExactArgs(1),
	RunE: runDocsShow,
}

func init() {
	docsListCmd.Flags().StringVarP(&docsListSection, "section", "s", "", "only list one section")
	docsShowCmd.Flags().BoolVar(&docsShowRaw, "raw", false, "print the file including front-matter")
	docsShowCmd.Flags().StringVar(&docsShowStyle, "style", "", "glamour style used to render markdown")

	docsCmd.AddCommand(docsListCmd)
	docsCmd.AddCommand(docsShowCmd)
	rootCmd.AddCommand(docsCmd)
}

func runDocsList(cmd *cobra.Command, _ []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	ctx := commandContext(cmd)
	var (
		docs []domain.Document
		err  error
	)
	if docsListSection != "" {
		docs, err = documentService.ListBySection(ctx, docsListSection)
	} else {
		docs, err = documentService.List(ctx)
	}
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(docs) == 0 {
		fmt.Fprintln(out, "No documents loaded.")
		return nil
	}

	st := newOutputStyles(out)
	section := ""
	for i := range docs {
		if docs[i].Section != section {
			if section != "" {
				fmt.Fprintln(out)
			}
			section = docs[i].Section
			fmt.Fprintln(out, st.Heading.Render(section))
		}
		fmt.Fprintf(out, "  %-28s %s\n", docs[i].Slug, docs[i].Title)
	}

	snap := documentService.Snapshot(ctx)
	fmt.Fprintln(out)
	fmt.Fprintln(out, st.Muted.Render(fmt.Sprintf("%d documents in %d sections", snap.Count, len(snap.Sections))))
	return nil
}

func runDocsShow(cmd *cobra.Command, args []string) error {
	if documentService == nil {
		return errors.New("document service not configured")
	}

	uri, err := resolveDocumentURI(args[0])
	if err != nil {
		return err
	}

	doc, err := documentService.Get(commandContext(cmd), uri)
	if err != nil {
		return fmt.Errorf("get %s: %w", uri, err)
	}

	out := cmd.OutOrStdout()
	if docsShowRaw {
		fmt.Fprint(out, doc.RawContent)
		return nil
	}

	style := docsShowStyle
	if style == "" && !isTerminal(out) {
		fmt.Fprint(out, doc.Content)
		return nil
	}

	rendered, err := renderMarkdown(doc.Content, style, termWidth(out))
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}

// resolveDocumentURI accepts a full document URI or a section/slug pair.
func resolveDocumentURI(ref string) (string, error) {
	if strings.HasPrefix(ref, domain.URIScheme) {
		if _, _, ok := domain.ParseDocumentURI(ref); !ok {
			return "", fmt.Errorf("%w: malformed document URI %q", domain.ErrInvalidInput, ref)
		}
		return ref, nil
	}

	section, slug, ok := strings.Cut(strings.Trim(ref, "/"), "/")
	if !ok || section == "" || slug == "" || strings.Contains(slug, "/") {
		return "", fmt.Errorf("%w: expected section/slug, got %q", domain.ErrInvalidInput, ref)
	}
	return domain.DocumentURI(section, strings.TrimSuffix(slug, ".md")), nil
}

// renderMarkdown renders markdown for a terminal. An empty style picks
// dark or light from the terminal background.
func renderMarkdown(content, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	rendered, err := renderer.Render(content)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return rendered, nil
}
