package file

import (
	"bytes"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/duxt-mcp/internal/core/ports/driven"
)

const (
	// appDirName is the directory under the XDG config home holding duxt-mcp files.
	appDirName = "duxt-mcp"

	configFileName = "config.toml"
	configHeader   = "# duxt-mcp configuration. Edit by hand or with `duxt-mcp settings set`.\n\n"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// ConfigStore keeps duxt-mcp settings in a TOML file. Tables are exposed as
// dot-notation keys, so [server] port = 8080 is read with
// GetInt("server.port"), and written back as tables.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	values   map[string]any
}

// NewConfigStore opens config.toml in configDir, defaulting to
// $XDG_CONFIG_HOME/duxt-mcp. A missing file is an empty config; the
// directory is created on first write.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		configDir = filepath.Join(xdg.ConfigHome, appDirName)
	}

	s := &ConfigStore{filePath: filepath.Join(configDir, configFileName)}
	values, err := readConfig(s.filePath)
	if err != nil {
		return nil, err
	}
	s.values = values
	return s, nil
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.values[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	val, _ := s.Get(key)
	str, _ := val.(string)
	return str
}

// GetInt retrieves an integer configuration value. TOML integers decode
// as int64.
func (s *ConfigStore) GetInt(key string) int {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// GetFloat retrieves a numeric configuration value.
func (s *ConfigStore) GetFloat(key string) float64 {
	val, _ := s.Get(key)
	switch v := val.(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	val, _ := s.Get(key)
	b, _ := val.(bool)
	return b
}

// Update merges values into the config and rewrites the file.
func (s *ConfigStore) Update(values map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := maps.Clone(s.values)
	maps.Copy(next, values)
	if err := writeConfig(s.filePath, next); err != nil {
		return err
	}
	s.values = next
	return nil
}

// Path returns the configuration file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// readConfig decodes the file into flat keys. A missing file is empty.
func readConfig(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}

	var tables map[string]any
	if err := toml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	values := make(map[string]any)
	flatten(tables, "", values)
	return values, nil
}

// writeConfig encodes flat keys as tables and replaces the file
// atomically, so a failed write leaves the old config intact.
func writeConfig(path string, values map[string]any) error {
	tables, err := nest(values)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	if err := toml.NewEncoder(&buf).Encode(tables); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+configFileName+"-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	// CreateTemp already uses 0600.
	return os.Rename(tmp.Name(), path)
}

// flatten converts nested tables to dot-notation keys in out.
// E.g., {"a": {"b": 1}} becomes {"a.b": 1}.
func flatten(tables map[string]any, prefix string, out map[string]any) {
	for key, value := range tables {
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flatten(nested, key, out)
			continue
		}
		out[key] = value
	}
}

// nest is the inverse of flatten. A key that is both a value and a table
// prefix, such as "docs" and "docs.dir", is an error.
func nest(values map[string]any) (map[string]any, error) {
	root := make(map[string]any)
	for key, value := range values {
		parts := strings.Split(key, ".")
		table := root
		for _, part := range parts[:len(parts)-1] {
			next, exists := table[part]
			if !exists {
				child := make(map[string]any)
				table[part] = child
				table = child
				continue
			}
			child, ok := next.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("config key %q: %q is a value, not a table", key, part)
			}
			table = child
		}

		leaf := parts[len(parts)-1]
		if _, exists := table[leaf]; exists {
			return nil, fmt.Errorf("config key %q is also a table", key)
		}
		table[leaf] = value
	}
	return root, nil
}
