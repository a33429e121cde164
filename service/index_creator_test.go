package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/rtdbuild/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexCreator_CreateIndex(t *testing.T) {
	set := templates.NewEmbedded()

	t.Run("existing index", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "index.rst"), "Home\n====\n")

		name, err := NewIndexCreator(set, "Pip", nil).CreateIndex(dir, "rst")
		require.NoError(t, err)
		assert.Equal(t, "index", name)
	})

	t.Run("readme", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "README.md"), "# Pip\n")

		name, err := NewIndexCreator(set, "Pip", nil).CreateIndex(dir, ".md")
		require.NoError(t, err)
		assert.Equal(t, "README", name)
		assert.NoFileExists(t, filepath.Join(dir, "index.md"))
	})

	t.Run("generated", func(t *testing.T) {
		dir := t.TempDir()

		name, err := NewIndexCreator(set, "  Pip  ", nil).CreateIndex(dir, "")
		require.NoError(t, err)
		assert.Equal(t, "index", name)

		data, err := os.ReadFile(filepath.Join(dir, "index.rst"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "Pip\n===\n")
		assert.Contains(t, string(data), "``index.rst`` or ``README.rst``")
	})
}
