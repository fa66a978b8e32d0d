// Package filesystem reads Duxt documentation from a directory tree of
// markdown files laid out as <root>/<section>/<slug>.md.
//
// Each file may open with a YAML (---) or TOML (+++) front-matter block
// carrying title, description and order. The package also provides a
// Watcher that reports changes to the tree so callers can reload.
package filesystem
