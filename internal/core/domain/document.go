package domain

import (
	"strings"
	"time"
)

// URIScheme prefixes every document URI.
const URIScheme = "duxt://"

// docsPrefix is the authority and path root shared by all document URIs.
const docsPrefix = URIScheme + "docs/"

// Document is one page of documentation loaded from disk.
// Documents are immutable once loaded; callers receive copies.
type Document struct {
	// URI is the stable identifier, duxt://docs/{section}/{slug}.
	URI string `json:"uri"`

	// Section is the name of the directory the file lives in.
	Section string `json:"section"`

	// Slug is the file name without its .md extension.
	Slug string `json:"slug"`

	// Title comes from front-matter and falls back to Slug.
	Title string `json:"title"`

	// Description comes from front-matter and falls back to "".
	Description string `json:"description"`

	// Order sorts documents within a section. Defaults to 0.
	Order int `json:"order"`

	// Content is the body with the front-matter block removed.
	Content string `json:"content"`

	// RawContent is the file text exactly as read from disk.
	RawContent string `json:"-"`
}

// DocumentURI builds the URI for a section and slug.
func DocumentURI(section, slug string) string {
	return docsPrefix + section + "/" + slug
}

// ParseDocumentURI splits a document URI into section and slug.
// It returns ok=false for anything that is not duxt://docs/{section}/{slug}.
func ParseDocumentURI(uri string) (section, slug string, ok bool) {
	rest, found := strings.CutPrefix(uri, docsPrefix)
	if !found {
		return "", "", false
	}
	section, slug, found = strings.Cut(rest, "/")
	if !found || section == "" || slug == "" || strings.Contains(slug, "/") {
		return "", "", false
	}
	return section, slug, true
}

// Snapshot describes one completed load of the document tree.
type Snapshot struct {
	// Generation identifies the load that produced the current collection.
	Generation string

	// LoadedAt is when the collection was swapped in.
	LoadedAt time.Time

	// Count is the number of documents in the collection.
	Count int

	// Sections lists distinct section names in sorted order.
	Sections []string
}
