// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentSource: Reads the markdown tree from disk
//   - DocumentStore: Holds the in-memory document snapshot
//   - ConfigStore: Application configuration
//   - TemplateStore: Generator templates, with user overrides
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - DocumentWatcher: Signals when the markdown tree changes. Without it,
//     documents are loaded at startup and on the reload schedule.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
