package service

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocsDirResolver_DocsDir(t *testing.T) {
	project := &domain.Project{Slug: "demo"}

	t.Run("conf.py directory", func(t *testing.T) {
		checkout := t.TempDir()
		writeFile(t, filepath.Join(checkout, "source", "conf.py"), "")
		writeFile(t, filepath.Join(checkout, "docs", "index.rst"), "")
		env := &domain.BuildEnvironment{Project: project, CheckoutPath: checkout}

		got, err := NewDocsDirResolver(NewConfPyLocator(nil)).DocsDir(env)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(checkout, "source"), got)
	})

	t.Run("conventional directory", func(t *testing.T) {
		checkout := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(checkout, "doc"), 0o755))
		env := &domain.BuildEnvironment{Project: project, CheckoutPath: checkout}

		got, err := NewDocsDirResolver(NewConfPyLocator(nil)).DocsDir(env)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(checkout, "doc"), got)
	})

	t.Run("checkout root", func(t *testing.T) {
		checkout := t.TempDir()
		env := &domain.BuildEnvironment{Project: project, CheckoutPath: checkout}

		got, err := NewDocsDirResolver(NewConfPyLocator(nil)).DocsDir(env)
		require.NoError(t, err)
		assert.Equal(t, checkout, got)
	})

	t.Run("locator failure propagates", func(t *testing.T) {
		boom := errors.New("boom")
		env := &domain.BuildEnvironment{Project: project, CheckoutPath: t.TempDir()}

		_, err := NewDocsDirResolver(&stubLocator{err: boom}).DocsDir(env)
		assert.ErrorIs(t, err, boom)
	})
}
