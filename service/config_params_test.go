package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/ludo-technologies/rtdbuild/internal/config"
	"github.com/ludo-technologies/rtdbuild/internal/parser"
	"github.com/ludo-technologies/rtdbuild/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGithubUserRepo(t *testing.T) {
	tests := []struct {
		url, user, repo string
	}{
		{"https://github.com/pypa/pip", "pypa", "pip"},
		{"https://github.com/pypa/pip/", "pypa", "pip"},
		{"https://github.com/pypa/pip.git", "pypa", "pip"},
		{"git@github.com:Kong/docs.kongd.com.git", "Kong", "docs.kongd.com"},
		{"https://gitlab.com/group/project", "", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			user, repo := GithubUserRepo(tt.url)
			assert.Equal(t, tt.user, user)
			assert.Equal(t, tt.repo, repo)
		})
	}
}

func TestConfigParamsBuilder_ConfigParams(t *testing.T) {
	checkout := t.TempDir()
	writeFile(t, filepath.Join(checkout, "docs", "conf.py"), "")
	project := loadTestProject(t, "pip")
	env := testEnv(t, project, checkout)
	env.Commit = "deadbeef"

	site := config.DefaultConfig().Site
	builder := NewConfigParamsBuilder(site, testTemplateDir, NewConfPyLocator(nil))

	params, err := builder.ConfigParams(env, filepath.Join(checkout, "docs"))
	require.NoError(t, err)

	assert.Equal(t, "latest", params["current_version"])
	assert.Equal(t, "latest", params["version_slug"])
	assert.Equal(t, testTemplateDir, params["template_path"])
	assert.Equal(t, testTemplateDir+"/_static", params["static_path"])
	assert.Equal(t, "/docs/", params["conf_py_path"])
	assert.Equal(t, "pypa", params["github_user"])
	assert.Equal(t, "pip", params["github_repo"])
	assert.Equal(t, "main", params["github_version"])
	assert.Equal(t, true, params["display_github"])
	assert.Equal(t, "deadbeef", params["commit"])
	assert.Equal(t, "en", params["rtd_language"])
	assert.Equal(t, domain.DefaultAPIHost, params["api_host"])
	assert.Equal(t, []domain.VersionLink{
		{Slug: "latest", URL: "/en/latest/"},
		{Slug: "0.8", URL: "/en/0.8/"},
	}, params["versions"])

	downloads, ok := params["downloads"].([]domain.VersionLink)
	require.True(t, ok)
	require.Len(t, downloads, 2)
	assert.Equal(t, "https://media.readthedocs.org/pdf/pip/latest/pip.pdf", downloads[0].URL)

	// every key the overlay reads must be present
	for key := range DefaultConfigParams() {
		if key == "html_theme" {
			continue
		}
		assert.Contains(t, params, key)
	}
}

func TestConfigParamsBuilder_SingleVersion(t *testing.T) {
	checkout := t.TempDir()
	project := loadTestProject(t, "kong-gateway")
	env := testEnv(t, project, checkout)

	params, err := NewConfigParamsBuilder(config.SiteConfig{}, testTemplateDir, nil).ConfigParams(env, checkout)
	require.NoError(t, err)

	assert.Equal(t, []domain.VersionLink{{Slug: "latest", URL: "/"}}, params["versions"])
	assert.Equal(t, []domain.VersionLink{}, params["downloads"])
	assert.Equal(t, "/", params["conf_py_path"])
	assert.Equal(t, "master", params["github_version"])
	assert.Equal(t, "Kong", params["github_user"])
	assert.Equal(t, true, params["single_version"])
}

func TestConfigParamsBuilder_RendersValidOverlay(t *testing.T) {
	checkout := t.TempDir()
	writeFile(t, filepath.Join(checkout, "docs", "conf.py"), "project = 'Pip'\n")
	project := loadTestProject(t, "pip")
	env := testEnv(t, project, checkout)

	locator := NewConfPyLocator(nil)
	deps := SphinxBuilderDeps{
		Locator:   locator,
		DocsDir:   NewDocsDirResolver(locator),
		Index:     NewIndexCreator(templates.NewEmbedded(), project.Name, nil),
		Params:    NewConfigParamsBuilder(config.DefaultConfig().Site, testTemplateDir, locator),
		Validator: parser.New(),
	}
	builder, err := NewSphinxBuilder(env, testOptions(), deps)
	require.NoError(t, err)

	rendered, err := builder.RenderConf(context.Background())
	require.NoError(t, err)
	assert.Contains(t, rendered.Content, "'versions': [('latest', '/en/latest/'), ('0.8', '/en/0.8/')],")
	assert.Contains(t, rendered.Content, "'display_github': True,")
	assert.Contains(t, rendered.Content, "'github_user': 'pypa',")
}

func TestConfigParamsBuilder_InvalidEnvironment(t *testing.T) {
	_, err := NewConfigParamsBuilder(config.SiteConfig{}, "", nil).ConfigParams(&domain.BuildEnvironment{}, "")
	assert.Equal(t, domain.ErrCodeInvalidInput, domain.ErrorCode(err))
}

func TestMergeConfigParams(t *testing.T) {
	merged := MergeConfigParams(domain.ConfigParams{"slug": "pip", "extra": 1})
	assert.Equal(t, "pip", merged["slug"])
	assert.Equal(t, 1, merged["extra"])
	assert.Equal(t, domain.DefaultHTMLTheme, merged["html_theme"])
	assert.Equal(t, false, merged["single_version"])
}
