package domain

import (
	"context"
	"io"
)

// BuildEnvironment pairs the project and version being built.
// The renderer only reads from it.
type BuildEnvironment struct {
	Project *Project
	Version *Version

	// CheckoutPath is the root of the version's source checkout
	CheckoutPath string

	// Commit is the revision being built, if known
	Commit string
}

// ConfigParams maps template parameter names to values.
// Keys are Python identifiers injected into the conf.py overlay.
type ConfigParams map[string]any

// VersionLink is one entry of the version menu rendered into conf.py
type VersionLink struct {
	Slug string
	URL  string
}

// ConfPyLocator finds the conf.py a checkout supplies itself
type ConfPyLocator interface {
	// ConfPyPath returns the absolute path of the project conf.py.
	// A checkout without one yields an error matching ErrConfigurationMissing.
	ConfPyPath(env *BuildEnvironment) (string, error)
}

// DocsDirResolver resolves the documentation source directory
type DocsDirResolver interface {
	DocsDir(env *BuildEnvironment) (string, error)
}

// IndexCreator makes sure a root document exists and returns its name
type IndexCreator interface {
	CreateIndex(docsDir, extension string) (string, error)
}

// ConfigParamsProvider computes the parameters of the conf.py overlay
type ConfigParamsProvider interface {
	ConfigParams(env *BuildEnvironment, docsDir string) (ConfigParams, error)
}

// RenderedConf is the result of rendering a conf.py without writing it
type RenderedConf struct {
	// Path is where the conf.py lives or will be written
	Path string

	// Content is the complete file content
	Content string

	// Generated is true when the checkout had no conf.py of its own
	Generated bool
}

// ConfPyMode selects what the conf.py use case does with a rendered file
type ConfPyMode string

const (
	ConfPyModeWrite  ConfPyMode = "write"
	ConfPyModeDryRun ConfPyMode = "dry-run"
	ConfPyModeCheck  ConfPyMode = "check"
)

// ConfPyRequest represents a request to render conf.py for one or more versions
type ConfPyRequest struct {
	// ProjectSlug selects a project from the registry
	ProjectSlug string

	// ProjectName is used for ad-hoc projects when no registry entry exists
	ProjectName string

	// VersionSlug selects one version; empty means the project default
	VersionSlug string

	// AllVersions renders every active version
	AllVersions bool

	// CheckoutPath overrides the checkout location of a single version
	CheckoutPath string

	// Commit is passed to the overlay
	Commit string

	Mode         ConfPyMode
	OutputWriter io.Writer
}

// ConfPyResult reports what happened for one version
type ConfPyResult struct {
	VersionSlug string `json:"version" yaml:"version"`
	Path        string `json:"path" yaml:"path"`
	Generated   bool   `json:"generated" yaml:"generated"`
	Changed     bool   `json:"changed" yaml:"changed"`
	Diff        string `json:"diff,omitempty" yaml:"diff,omitempty"`
}

// ConfPyResponse aggregates results of a conf.py request
type ConfPyResponse struct {
	ProjectSlug string         `json:"project" yaml:"project"`
	Mode        ConfPyMode     `json:"mode" yaml:"mode"`
	Results     []ConfPyResult `json:"results" yaml:"results"`
}

// Drifted reports whether any result differs from the file on disk
func (r *ConfPyResponse) Drifted() bool {
	for _, res := range r.Results {
		if res.Changed {
			return true
		}
	}
	return false
}

// ConfRenderer renders and writes conf.py for one build environment
type ConfRenderer interface {
	RenderConf(ctx context.Context) (*RenderedConf, error)
	AppendConf(ctx context.Context) error
}

// ConfRendererFactory creates a renderer bound to one build environment.
// A read-only renderer never creates files while rendering.
type ConfRendererFactory interface {
	NewRenderer(env *BuildEnvironment, readOnly bool) (ConfRenderer, error)
}
