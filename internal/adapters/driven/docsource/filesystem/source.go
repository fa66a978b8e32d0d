package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
	"github.com/custodia-labs/duxt-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/duxt-mcp/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.DocumentSource = (*Source)(nil)

// markdownExt is the extension of document files.
const markdownExt = ".md"

// Source loads documents from a directory tree on the local filesystem.
type Source struct {
	root     string
	readFile func(string) ([]byte, error)
}

// New creates a Source reading from root.
func New(root string) *Source {
	return &Source{
		root:     root,
		readFile: os.ReadFile,
	}
}

// Root returns the directory the source reads from.
func (s *Source) Root() string {
	return s.root
}

// Load reads every <section>/<slug>.md file under the root.
// Sections and files are visited in name order; hidden ones are skipped,
// matching the watcher. A missing root yields
// no documents. Files that cannot be read are skipped with a warning;
// files with malformed front-matter load with default metadata.
func (s *Source) Load(ctx context.Context) ([]domain.Document, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("docs directory not found: %s", s.root)
			return nil, nil
		}
		return nil, fmt.Errorf("stat docs root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("docs root %s: not a directory", s.root)
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read docs root: %w", err)
	}

	var docs []domain.Document
	sections := 0
	for _, entry := range entries {
		if !entry.IsDir() || isHidden(entry.Name()) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sectionDocs, err := s.loadSection(entry.Name())
		if err != nil {
			return nil, err
		}
		docs = append(docs, sectionDocs...)
		sections++
	}

	logger.Info("loaded %d docs from %d sections", len(docs), sections)
	return docs, nil
}

// loadSection reads the markdown files directly inside one section.
func (s *Source) loadSection(section string) ([]domain.Document, error) {
	dir := filepath.Join(s.root, section)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read section %s: %w", section, err)
	}

	var docs []domain.Document
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || isHidden(name) || !strings.HasSuffix(name, markdownExt) {
			continue
		}

		path := filepath.Join(dir, name)
		data, err := s.readFile(path)
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			continue
		}

		doc, err := parseDocument(section, strings.TrimSuffix(name, markdownExt), string(data))
		if err != nil {
			logger.Warn("%s: %v; using default metadata", path, err)
		}
		docs = append(docs, doc)
	}

	logger.Debug("section %s: %d docs", section, len(docs))
	return docs, nil
}
