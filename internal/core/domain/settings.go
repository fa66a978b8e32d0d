package domain

import "time"

// Default settings values.
const (
	DefaultDocsDir  = "docs"
	DefaultHTTPHost = "0.0.0.0"
	DefaultHTTPPort = 3000
)

// DocsSettings controls how the documentation tree is loaded.
type DocsSettings struct {
	// Dir is the root directory; each child directory is a section.
	Dir string

	// Strict rejects loads in which two files map to the same URI.
	Strict bool

	// Watch reloads the tree when markdown files change.
	Watch bool

	// ReloadInterval reloads the tree on a fixed schedule. Zero disables it.
	ReloadInterval time.Duration
}

// ServerSettings controls the HTTP transport.
type ServerSettings struct {
	// Host is the interface to bind.
	Host string

	// Port is the TCP port to listen on.
	Port int

	// RateLimit is the sustained requests per second allowed on /mcp.
	// Zero disables rate limiting.
	RateLimit float64

	// RateBurst is the token bucket size. Defaults to 1 when RateLimit is set.
	RateBurst int
}

// AppSettings aggregates all runtime configuration.
type AppSettings struct {
	Docs   DocsSettings
	Server ServerSettings
}

// DefaultAppSettings returns the settings used when nothing is configured.
func DefaultAppSettings() *AppSettings {
	return &AppSettings{
		Docs: DocsSettings{
			Dir: DefaultDocsDir,
		},
		Server: ServerSettings{
			Host: DefaultHTTPHost,
			Port: DefaultHTTPPort,
		},
	}
}
