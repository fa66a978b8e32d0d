package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()
	assert.Equal(t, "docs", s.Docs.Dir)
	assert.False(t, s.Docs.Strict)
	assert.False(t, s.Docs.Watch)
	assert.Equal(t, "0.0.0.0", s.Server.Host)
	assert.Equal(t, 3000, s.Server.Port)
	assert.Zero(t, s.Server.RateLimit)
}
