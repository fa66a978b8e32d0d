package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/duxt-mcp/internal/core/domain"
	"github.com/custodia-labs/duxt-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/duxt-mcp/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyDocsDir    = "docs.dir"
	keyDocsStrict = "docs.strict"
	keyDocsWatch  = "docs.watch"
	keyDocsReload = "docs.reload_interval"
	keyServerHost = "server.host"
	keyServerPort = "server.port"
	keyRateLimit  = "server.rate_limit"
	keyRateBurst  = "server.rate_burst"
)

// Environment variables that override the config file.
const (
	EnvPort    = "PORT"
	EnvDocsDir = "DUXT_DOCS_DIR"
)

// SettingsService manages application settings.
// Values resolve in order: environment, config file, defaults.
type SettingsService struct {
	configStore driven.ConfigStore
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		getenv:      os.Getenv,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Docs: domain.DocsSettings{
			Dir:    s.getString(keyDocsDir, defaults.Docs.Dir),
			Strict: s.getBool(keyDocsStrict, defaults.Docs.Strict),
			Watch:  s.getBool(keyDocsWatch, defaults.Docs.Watch),
		},
		Server: domain.ServerSettings{
			Host:      s.getString(keyServerHost, defaults.Server.Host),
			Port:      s.getInt(keyServerPort, defaults.Server.Port),
			RateLimit: s.configStore.GetFloat(keyRateLimit),
			RateBurst: s.configStore.GetInt(keyRateBurst),
		},
	}

	if raw := strings.TrimSpace(s.configStore.GetString(keyDocsReload)); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q is not a duration", domain.ErrInvalidInput, keyDocsReload, raw)
		}
		settings.Docs.ReloadInterval = interval
	}

	if dir := strings.TrimSpace(s.getenv(EnvDocsDir)); dir != "" {
		settings.Docs.Dir = dir
	}
	if raw := strings.TrimSpace(s.getenv(EnvPort)); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q is not a number", domain.ErrInvalidInput, EnvPort, raw)
		}
		settings.Server.Port = port
	}

	if err := validateSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := validateSettings(settings); err != nil {
		return err
	}

	values := map[string]any{
		keyDocsDir:    settings.Docs.Dir,
		keyDocsStrict: settings.Docs.Strict,
		keyDocsWatch:  settings.Docs.Watch,
		keyDocsReload: formatInterval(settings.Docs.ReloadInterval),
		keyServerHost: settings.Server.Host,
		keyServerPort: settings.Server.Port,
		keyRateLimit:  settings.Server.RateLimit,
		keyRateBurst:  settings.Server.RateBurst,
	}
	if err := s.configStore.Update(values); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return *domain.DefaultAppSettings()
}

func validateSettings(settings *domain.AppSettings) error {
	if settings.Server.Port < 1 || settings.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", domain.ErrInvalidInput, settings.Server.Port)
	}
	if settings.Docs.ReloadInterval < 0 {
		return fmt.Errorf("%w: reload interval must not be negative", domain.ErrInvalidInput)
	}
	if settings.Server.RateLimit < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", domain.ErrInvalidInput)
	}
	if settings.Server.RateBurst < 0 {
		return fmt.Errorf("%w: rate burst must not be negative", domain.ErrInvalidInput)
	}
	return nil
}

// formatInterval stores a disabled interval as an empty string.
func formatInterval(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return d.String()
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
