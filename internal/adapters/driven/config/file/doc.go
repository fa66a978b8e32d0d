// Package file provides file-based implementations of driven port interfaces.
// These adapters read from and persist to the local filesystem under the
// XDG config home.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - TemplateStore: user overrides for the embedded generator templates
package file
