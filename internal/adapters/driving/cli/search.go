package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

const searchPreviewRunes = 200

var (
	searchLimit   int
	searchSection string
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the documentation",
	Long: `Ranks documentation pages against a query. Title matches weigh most,
then description matches, then mentions in the page body.

Examples:
  duxt-mcp search routing middleware
  duxt-mcp search orm relations --section duxt-orm --limit 3
  duxt-mcp search signals --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().StringVarP(&searchSection, "section", "s", "", "only search one section")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

// searchHit is the JSON form of a search result.
type searchHit struct {
	URI         string `json:"uri"`
	Title       string `json:"title"`
	Section     string `json:"section"`
	Description string `json:"description,omitempty"`
	Score       int    `json:"score"`
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	query := strings.Join(args, " ")
	opts := domain.SearchOptions{
		Limit:   searchLimit,
		Section: searchSection,
	}

	results, err := searchService.Search(commandContext(cmd), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	outputSearchList(cmd, query, results)
	return nil
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	hits := make([]searchHit, len(results))
	for i := range results {
		doc := &results[i].Document
		hits[i] = searchHit{
			URI:         doc.URI,
			Title:       doc.Title,
			Section:     doc.Section,
			Description: doc.Description,
			Score:       results[i].Score,
		}
	}

	data, err := json.MarshalIndent(hits, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchList(cmd *cobra.Command, query string, results []domain.SearchResult) {
	out := cmd.OutOrStdout()
	st := newOutputStyles(out)

	if len(results) == 0 {
		fmt.Fprintf(out, "No results found for %q.\n", query)
		return
	}

	fmt.Fprintln(out, st.Title.Render(fmt.Sprintf("Found %d results for %q", len(results), query)))
	fmt.Fprintln(out)

	width := termWidth(out)
	indent := "    "
	previewWidth := uint(max(width-len(indent), 20))

	for i := range results {
		doc := &results[i].Document
		fmt.Fprintf(out, "%2d. %s %s\n", i+1, st.Heading.Render(doc.Title),
			st.Score.Render(fmt.Sprintf("(score %d)", results[i].Score)))
		fmt.Fprintf(out, "%s%s\n", indent, st.Muted.Render(doc.URI))
		if p := searchPreview(doc); p != "" {
			fmt.Fprintf(out, "%s%s\n", indent, truncate.StringWithTail(p, previewWidth, "..."))
		}
		fmt.Fprintln(out)
	}
}

// searchPreview prefers the description and falls back to the start of
// the body, flattened to one line.
func searchPreview(doc *domain.Document) string {
	if doc.Description != "" {
		return doc.Description
	}
	runes := []rune(doc.Content)
	if len(runes) > searchPreviewRunes {
		runes = runes[:searchPreviewRunes]
	}
	return strings.Join(strings.Fields(string(runes)), " ")
}
