package service

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/ludo-technologies/rtdbuild/internal/config"
)

var githubPatterns = []*regexp.Regexp{
	regexp.MustCompile(`github\.com/(.+)/(.+)\.git$`),
	regexp.MustCompile(`github\.com/(.+)/(.+)`),
	regexp.MustCompile(`github\.com:(.+)/(.+)\.git$`),
}

// DefaultConfigParams returns every key the conf.py overlay reads, with
// neutral values. Provider output is merged over it, so a provider may
// return only the keys it knows about.
func DefaultConfigParams() domain.ConfigParams {
	return domain.ConfigParams{
		"html_theme":            domain.DefaultHTMLTheme,
		"static_path":           "",
		"template_path":         "",
		"current_version":       "",
		"version_slug":          "",
		"media_url":             "",
		"static_url":            "",
		"production_domain":     "",
		"versions":              []domain.VersionLink{},
		"downloads":             []domain.VersionLink{},
		"slug":                  "",
		"name":                  "",
		"rtd_language":          "",
		"programming_language":  "",
		"canonical_url":         "",
		"analytics_code":        "",
		"global_analytics_code": "",
		"single_version":        false,
		"conf_py_path":          "",
		"api_host":              "",
		"github_user":           "",
		"github_repo":           "",
		"github_version":        "",
		"display_github":        false,
		"commit":                "",
	}
}

// MergeConfigParams overlays params onto the defaults
func MergeConfigParams(params domain.ConfigParams) domain.ConfigParams {
	merged := DefaultConfigParams()
	for k, v := range params {
		merged[k] = v
	}
	return merged
}

// ConfigParamsBuilder computes overlay parameters from the build environment
type ConfigParamsBuilder struct {
	site        config.SiteConfig
	templateDir string
	locator     domain.ConfPyLocator
}

// NewConfigParamsBuilder creates a builder. locator may be nil, in which
// case conf_py_path is derived from the docs directory.
func NewConfigParamsBuilder(site config.SiteConfig, templateDir string, locator domain.ConfPyLocator) *ConfigParamsBuilder {
	return &ConfigParamsBuilder{site: site, templateDir: templateDir, locator: locator}
}

// ConfigParams implements domain.ConfigParamsProvider
func (b *ConfigParamsBuilder) ConfigParams(env *domain.BuildEnvironment, docsDir string) (domain.ConfigParams, error) {
	if env == nil || env.Project == nil || env.Version == nil {
		return nil, domain.NewInvalidInputError("build environment needs a project and a version", nil)
	}
	p, v := env.Project, env.Version

	confDir := RelativeConfDir(env.CheckoutPath, filepath.Join(docsDir, "conf.py"))
	if b.locator != nil {
		if confPath, err := b.locator.ConfPyPath(env); err == nil {
			confDir = RelativeConfDir(env.CheckoutPath, confPath)
		}
	}

	githubUser, githubRepo := GithubUserRepo(p.RepoURL)
	language := p.Language
	if language == "" {
		language = domain.DefaultLanguage
	}

	params := domain.ConfigParams{
		"static_path":           filepath.ToSlash(filepath.Join(b.templateDir, "_static")),
		"template_path":         b.templateDir,
		"current_version":       v.DisplayName(),
		"version_slug":          v.Slug,
		"media_url":             b.site.MediaURL,
		"static_url":            b.site.StaticURL,
		"production_domain":     b.site.ProductionDomain,
		"versions":              versionLinks(p, language),
		"downloads":             downloadLinks(p, v, b.site.MediaURL),
		"slug":                  p.Slug,
		"name":                  p.Name,
		"rtd_language":          language,
		"programming_language":  p.ProgrammingLanguage,
		"canonical_url":         p.CanonicalURL,
		"analytics_code":        p.AnalyticsCode,
		"global_analytics_code": b.site.GlobalAnalyticsCode,
		"single_version":        p.SingleVersion,
		"conf_py_path":          confDir,
		"api_host":              b.site.APIHost,
		"github_user":           githubUser,
		"github_repo":           githubRepo,
		"github_version":        commitName(p, v),
		"display_github":        githubUser != "",
		"commit":                env.Commit,
	}
	return params, nil
}

// GithubUserRepo extracts owner and repository from a GitHub URL
func GithubUserRepo(repoURL string) (string, string) {
	repoURL = strings.TrimSuffix(strings.TrimSpace(repoURL), "/")
	for _, re := range githubPatterns {
		if m := re.FindStringSubmatch(repoURL); m != nil {
			return m[1], m[2]
		}
	}
	return "", ""
}

func versionLinks(p *domain.Project, language string) []domain.VersionLink {
	active := p.ActiveVersions()
	links := make([]domain.VersionLink, 0, len(active))
	for _, v := range active {
		url := fmt.Sprintf("/%s/%s/", language, v.Slug)
		if p.SingleVersion {
			url = "/"
		}
		links = append(links, domain.VersionLink{Slug: v.Slug, URL: url})
	}
	return links
}

func downloadLinks(p *domain.Project, v *domain.Version, mediaURL string) []domain.VersionLink {
	if mediaURL == "" {
		return []domain.VersionLink{}
	}
	base := strings.TrimSuffix(mediaURL, "/")
	return []domain.VersionLink{
		{Slug: "pdf", URL: fmt.Sprintf("%s/pdf/%s/%s/%s.pdf", base, p.Slug, v.Slug, p.Slug)},
		{Slug: "epub", URL: fmt.Sprintf("%s/epub/%s/%s/%s.epub", base, p.Slug, v.Slug, p.Slug)},
	}
}

// commitName is the ref a "view source" link should point at
func commitName(p *domain.Project, v *domain.Version) string {
	if v.Slug == domain.LatestVersionSlug && p.DefaultBranch != "" {
		return p.DefaultBranch
	}
	if v.Identifier != "" {
		return v.Identifier
	}
	return v.Slug
}
