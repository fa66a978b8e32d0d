// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - DocumentService: loads the docs tree and serves read-only views
//   - SearchService: substring relevance ranking over the loaded docs
//   - GeneratorService: Dart code, guides and CLI help from templates
//   - SettingsService: configuration with environment overrides
//   - Scheduler: reloads the docs on a fixed interval
package services
