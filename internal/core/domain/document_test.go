package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentURI(t *testing.T) {
	assert.Equal(t, "duxt://docs/orm/relations", DocumentURI("orm", "relations"))
	assert.Equal(t, "duxt://docs/duxt-html/api-reference", DocumentURI("duxt-html", "api-reference"))
}

func TestParseDocumentURI(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		section string
		slug    string
		ok      bool
	}{
		{name: "valid", uri: "duxt://docs/cli/commands", section: "cli", slug: "commands", ok: true},
		{name: "wrong scheme", uri: "file://docs/cli/commands"},
		{name: "missing slug", uri: "duxt://docs/cli"},
		{name: "empty slug", uri: "duxt://docs/cli/"},
		{name: "empty section", uri: "duxt://docs//commands"},
		{name: "nested slug", uri: "duxt://docs/cli/a/b"},
		{name: "empty", uri: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section, slug, ok := ParseDocumentURI(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.section, section)
			assert.Equal(t, tt.slug, slug)
		})
	}
}

func TestDocumentURI_RoundTrip(t *testing.T) {
	section, slug, ok := ParseDocumentURI(DocumentURI("signals", "effects"))
	assert.True(t, ok)
	assert.Equal(t, "signals", section)
	assert.Equal(t, "effects", slug)
}
