package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDefaultConfigTOML(t *testing.T) {
	out, err := GenerateDefaultConfigTOML()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# rtdbuild configuration"))
	assert.Contains(t, out, `builder = "html"`)
	assert.Contains(t, out, "html, htmldir, singlehtml, pdf, epub")
	assert.NotContains(t, out, "{{")
}

func TestDefaultConfigRoundTrip(t *testing.T) {
	cfg, err := LoadDefaultConfigFromTOML()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
