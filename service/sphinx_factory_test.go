package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/ludo-technologies/rtdbuild/internal/config"
	"github.com/ludo-technologies/rtdbuild/internal/logger"
	"github.com/ludo-technologies/rtdbuild/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSphinxBuilderFactory_ReadOnlyCreatesNoFiles(t *testing.T) {
	checkout := t.TempDir()
	writeFile(t, filepath.Join(checkout, "docs", "guide.rst"), "Guide\n=====\n")

	factory, err := NewSphinxBuilderFactory(config.DefaultConfig(), nil, nil)
	require.NoError(t, err)

	project := loadTestProject(t, "pip")
	renderer, err := factory.NewRenderer(testEnv(t, project, checkout), true)
	require.NoError(t, err)

	rendered, err := renderer.RenderConf(context.Background())
	require.NoError(t, err)
	assert.True(t, rendered.Generated)
	assert.Contains(t, rendered.Content, "master_doc = 'index'")
	assert.Contains(t, rendered.Content, "templates_path = ['"+domain.DefaultSphinxTemplateDir+"'")
	assert.NoFileExists(t, filepath.Join(checkout, "docs", "index.rst"))
	assert.NoFileExists(t, filepath.Join(checkout, "docs", "conf.py"))
}

func TestSphinxBuilderFactory_WritesConf(t *testing.T) {
	checkout := t.TempDir()
	writeFile(t, filepath.Join(checkout, "docs", "README.rst"), "Pip\n===\n")

	factory, err := NewSphinxBuilderFactory(config.DefaultConfig(), nil, nil)
	require.NoError(t, err)

	project := loadTestProject(t, "pip")
	renderer, err := factory.NewRenderer(testEnv(t, project, checkout), false)
	require.NoError(t, err)
	require.NoError(t, renderer.AppendConf(context.Background()))

	assert.FileExists(t, filepath.Join(checkout, "docs", "conf.py"))
	assert.NoFileExists(t, filepath.Join(checkout, "docs", "index.rst"))
}

func TestNewSphinxBuilderFactory_BrokenOverrideDir(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Build.TemplateOverrideDir = t.TempDir()

	_, err := NewSphinxBuilderFactory(cfg, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)
}

func TestNewSphinxBuilderFactory_OverrideDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{templates.ConfPyBase, templates.ConfPyOverlay, templates.IndexRST} {
		data, err := os.ReadFile(filepath.Join("..", "internal", "templates", "files", filepath.FromSlash(name)))
		require.NoError(t, err)
		content := data
		if name == templates.ConfPyBase {
			content = append([]byte("# custom base\n"), data...)
		}
		writeFile(t, filepath.Join(dir, filepath.FromSlash(name)), string(content))
	}

	cfg := config.DefaultConfig()
	cfg.Build.TemplateOverrideDir = dir
	var logs bytes.Buffer
	factory, err := NewSphinxBuilderFactory(cfg, nil, logger.New(&logger.Config{Level: "debug", Output: &logs}))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "conf.py templates loaded")
	assert.Contains(t, logs.String(), dir)

	checkout := t.TempDir()
	writeFile(t, filepath.Join(checkout, "docs", "index.rst"), "Pip\n===\n")
	renderer, err := factory.NewRenderer(testEnv(t, loadTestProject(t, "pip"), checkout), true)
	require.NoError(t, err)
	rendered, err := renderer.RenderConf(context.Background())
	require.NoError(t, err)
	assert.True(t, rendered.Generated)
	assert.Contains(t, rendered.Content, "# custom base\n")
}
