package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"

	"github.com/custodia-labs/duxt-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/duxt-mcp/internal/templates"
)

// Ensure TemplateStore implements the interface.
var _ driven.TemplateStore = (*TemplateStore)(nil)

// ErrTemplateNotFound is returned when neither an override nor an embedded
// default exists for a template name.
var ErrTemplateNotFound = errors.New("template not found")

// TemplateStore loads generator templates from user-editable files on disk.
// A file named <name>.tmpl in the template directory overrides the embedded
// default of the same name. Missing files fall back to the embedded copy.
//
// The store never writes to the template directory.
type TemplateStore struct {
	mu          sync.RWMutex
	templateDir string
	cache       map[string]string
}

// NewTemplateStore creates a new file-based template store.
// If templateDir is empty, defaults to $XDG_CONFIG_HOME/duxt-mcp/templates.
func NewTemplateStore(templateDir string) *TemplateStore {
	if templateDir == "" {
		templateDir = filepath.Join(xdg.ConfigHome, appDirName, "templates")
	}

	return &TemplateStore{
		templateDir: templateDir,
		cache:       make(map[string]string),
	}
}

// Load returns the template source for the given name.
// Returns cached value if available, otherwise loads from file.
// Falls back to the embedded default if the file doesn't exist.
func (s *TemplateStore) Load(name string) (string, error) {
	s.mu.RLock()
	if src, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return src, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	src, err := s.loadFromFile(name)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("load template %q: %w", name, err)
		}
		def, ok := templates.Default(name)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		src = def
	}

	// Double-check so concurrent loads agree on one value
	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		src = cached
	} else {
		s.cache[name] = src
	}
	s.mu.Unlock()

	return src, nil
}

// Reload clears the template cache, forcing fresh loads from disk.
func (s *TemplateStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the template override directory path.
func (s *TemplateStore) Dir() string {
	return s.templateDir
}

// loadFromFile reads an override template from disk.
func (s *TemplateStore) loadFromFile(name string) (string, error) {
	if strings.ContainsAny(name, `/\`) {
		return "", os.ErrNotExist
	}
	data, err := os.ReadFile(filepath.Join(s.templateDir, name+templates.Extension))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
