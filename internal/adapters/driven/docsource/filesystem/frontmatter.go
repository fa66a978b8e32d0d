package filesystem

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
)

// formats are the front-matter delimiters recognised at the top of a file.
var formats = []*frontmatter.Format{
	frontmatter.NewFormat("---", "---", yaml.Unmarshal),
	frontmatter.NewFormat("+++", "+++", toml.Unmarshal),
}

// metadata holds the recognised front-matter keys after coercion.
type metadata struct {
	Title       string
	Description string
	Order       int
}

// splitFrontMatter separates the front-matter block from the body.
// Text without front-matter is returned unchanged as the body.
func splitFrontMatter(raw string) (metadata, string, error) {
	var fields map[string]any
	body, err := frontmatter.Parse(strings.NewReader(raw), &fields, formats...)
	if err != nil {
		return metadata{}, raw, fmt.Errorf("parse front-matter: %w", err)
	}

	return metadata{
		Title:       coerceString(fields["title"]),
		Description: coerceString(fields["description"]),
		Order:       coerceInt(fields["order"]),
	}, string(body), nil
}

// parseDocument builds the document for one file. Malformed front-matter
// is returned as an error alongside a document with default metadata and
// the whole text as its body.
func parseDocument(section, slug, raw string) (domain.Document, error) {
	meta, body, err := splitFrontMatter(raw)

	doc := domain.Document{
		URI:         domain.DocumentURI(section, slug),
		Section:     section,
		Slug:        slug,
		Title:       meta.Title,
		Description: meta.Description,
		Order:       meta.Order,
		Content:     body,
		RawContent:  raw,
	}
	if doc.Title == "" {
		doc.Title = slug
	}
	return doc, err
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(val)
	default:
		return ""
	}
}

func coerceInt(v any) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case uint64:
		if val > math.MaxInt {
			return 0
		}
		return int(val)
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0
		}
		return int(val)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
