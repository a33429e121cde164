package service

import (
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/rtdbuild/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocate(t *testing.T) {
	t.Run("existing conf.py", func(t *testing.T) {
		checkout := t.TempDir()
		writeFile(t, filepath.Join(checkout, "docs", "conf.py"), "project = 'pip'\n")

		loc, err := Locate(config.DefaultConfig(), testEnv(t, loadTestProject(t, "pip"), checkout), nil)
		require.NoError(t, err)
		assert.False(t, loc.Generated)
		assert.Equal(t, filepath.Join(checkout, "docs", "conf.py"), loc.ConfPyPath)
		assert.Equal(t, filepath.Join(checkout, "docs"), loc.DocsDir)
		assert.Contains(t, loc.BuildArgs, "-b")
	})

	t.Run("missing conf.py", func(t *testing.T) {
		checkout := t.TempDir()
		writeFile(t, filepath.Join(checkout, "docs", "index.rst"), "Pip\n===\n")

		loc, err := Locate(config.DefaultConfig(), testEnv(t, loadTestProject(t, "pip"), checkout), nil)
		require.NoError(t, err)
		assert.True(t, loc.Generated)
		assert.Equal(t, filepath.Join(checkout, "docs", "conf.py"), loc.ConfPyPath)
		assert.NoFileExists(t, loc.ConfPyPath)
	})
}
