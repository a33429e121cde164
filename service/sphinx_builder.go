package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/ludo-technologies/rtdbuild/internal/logger"
	"github.com/ludo-technologies/rtdbuild/internal/templates"
)

// SyntaxValidator checks that a rendered conf.py is valid Python
type SyntaxValidator interface {
	Validate(ctx context.Context, source []byte) error
}

// SphinxBuilderOptions configures a SphinxBuilder
type SphinxBuilderOptions struct {
	// Type is the builder type (html, htmldir, singlehtml, pdf, epub)
	Type string

	// SphinxBuildDir is the output root passed to sphinx-build
	SphinxBuildDir string

	// TemplateDir is rendered into templates_path of a generated conf.py
	TemplateDir string

	// HTMLTheme is the theme of a generated conf.py
	HTMLTheme string

	// SourceExtension is used when an index document has to be created
	SourceExtension string
}

// SphinxBuilderDeps holds the collaborators of a SphinxBuilder
type SphinxBuilderDeps struct {
	Locator   domain.ConfPyLocator
	DocsDir   domain.DocsDirResolver
	Index     domain.IndexCreator
	Params    domain.ConfigParamsProvider
	Templates *templates.Set
	Writer    domain.ConfWriter

	// Validator is optional; nil skips syntax validation
	Validator SyntaxValidator
	Logger    logger.Logger
}

// SphinxBuilder renders the conf.py of one project version
type SphinxBuilder struct {
	env  *domain.BuildEnvironment
	opts SphinxBuilderOptions
	deps SphinxBuilderDeps
}

// NewSphinxBuilder creates a builder bound to env
func NewSphinxBuilder(env *domain.BuildEnvironment, opts SphinxBuilderOptions, deps SphinxBuilderDeps) (*SphinxBuilder, error) {
	if env == nil || env.Project == nil || env.Version == nil {
		return nil, domain.NewInvalidInputError("build environment needs a project and a version", nil)
	}
	if deps.Locator == nil || deps.DocsDir == nil || deps.Index == nil || deps.Params == nil {
		return nil, domain.NewInvalidInputError("sphinx builder is missing a collaborator", nil)
	}
	if deps.Templates == nil {
		deps.Templates = templates.NewEmbedded()
	}
	if deps.Writer == nil {
		deps.Writer = NewConfFileWriter()
	}
	if deps.Logger == nil {
		deps.Logger = logger.Discard()
	}

	if opts.Type == "" {
		opts.Type = domain.DefaultBuilderType
	}
	if _, ok := domain.SphinxBuilders[opts.Type]; !ok {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown builder type %q", opts.Type), nil)
	}
	if opts.SphinxBuildDir == "" {
		opts.SphinxBuildDir = domain.DefaultSphinxBuildDir
	}
	if opts.TemplateDir == "" {
		opts.TemplateDir = domain.DefaultSphinxTemplateDir
	}
	if opts.HTMLTheme == "" {
		opts.HTMLTheme = domain.DefaultHTMLTheme
	}
	if opts.SourceExtension == "" {
		opts.SourceExtension = domain.DefaultSourceExtension
	}

	return &SphinxBuilder{env: env, opts: opts, deps: deps}, nil
}

// baseConfData feeds the fallback conf.py template
type baseConfData struct {
	TemplateDir string
	MasterDoc   string
	Project     *domain.Project
	Version     *domain.Version
	Copyright   string
	HTMLTheme   string
}

// RenderConf computes the complete conf.py without writing it. A checkout
// without conf.py gets one rendered from the base template; the overlay is
// appended in both cases, replacing an overlay left by an earlier build.
func (b *SphinxBuilder) RenderConf(ctx context.Context) (*domain.RenderedConf, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log := b.deps.Logger.With("project", b.env.Project.Slug, "version", b.env.Version.Slug)

	docsDir, err := b.deps.DocsDir.DocsDir(b.env)
	if err != nil {
		return nil, err
	}

	var (
		confPath  string
		existing  string
		generated bool
	)

	confPath, err = b.deps.Locator.ConfPyPath(b.env)
	switch {
	case err == nil:
		data, readErr := os.ReadFile(confPath)
		if readErr != nil {
			return nil, domain.NewFileNotFoundError(confPath, readErr)
		}
		existing = stripOverlay(string(data))
		log.Debug("using project conf.py", "path", confPath)

	case domain.IsConfigurationMissing(err):
		log.Info("no conf.py in checkout, generating one", "docs_dir", docsDir)
		existing, err = b.renderBase(docsDir)
		if err != nil {
			return nil, err
		}
		confPath = filepath.Join(docsDir, "conf.py")
		generated = true

	default:
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params, err := b.deps.Params.ConfigParams(b.env, docsDir)
	if err != nil {
		return nil, err
	}
	overlay, err := b.deps.Templates.Render(templates.ConfPyOverlay, MergeConfigParams(params))
	if err != nil {
		return nil, err
	}

	content := existing + "\n" + overlay
	if b.deps.Validator != nil {
		if err := b.deps.Validator.Validate(ctx, []byte(content)); err != nil {
			return nil, domain.NewRenderError("rendered conf.py is not valid Python", err)
		}
	}

	return &domain.RenderedConf{Path: confPath, Content: content, Generated: generated}, nil
}

// AppendConf renders conf.py and writes it into the docs directory
func (b *SphinxBuilder) AppendConf(ctx context.Context) error {
	rendered, err := b.RenderConf(ctx)
	if err != nil {
		return err
	}
	if err := b.deps.Writer.WriteConf(rendered.Path, rendered.Content); err != nil {
		return err
	}
	b.deps.Logger.Debug("conf.py written", "path", rendered.Path, "generated", rendered.Generated)
	return nil
}

// BuildArgs returns the sphinx-build arguments for the configured builder
func (b *SphinxBuilder) BuildArgs() []string {
	builder := domain.SphinxBuilders[b.opts.Type]
	args := []string{
		"-T", "-E",
		"-b", builder,
		"-d", fmt.Sprintf("_build/doctrees-%s", builder),
	}
	if b.env.Project.Language != "" {
		args = append(args, "-D", "language="+b.env.Project.Language)
	}
	return append(args, ".", filepath.ToSlash(filepath.Join(b.opts.SphinxBuildDir, b.opts.Type)))
}

func (b *SphinxBuilder) renderBase(docsDir string) (string, error) {
	index, err := b.deps.Index.CreateIndex(docsDir, b.opts.SourceExtension)
	if err != nil {
		return "", err
	}

	p := b.env.Project
	copyright := p.Copyright
	if copyright == "" {
		copyright = strings.TrimSpace(p.Name)
	}

	return b.deps.Templates.Render(templates.ConfPyBase, baseConfData{
		TemplateDir: b.opts.TemplateDir,
		MasterDoc:   masterDoc(index),
		Project:     p,
		Version:     b.env.Version,
		Copyright:   copyright,
		HTMLTheme:   b.opts.HTMLTheme,
	})
}

// masterDoc drops a source suffix from a document file name
func masterDoc(name string) string {
	for _, ext := range []string{".rst", ".md", ".txt"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// stripOverlay removes an overlay appended by an earlier build. The overlay
// is always last, so the final full marker line is the cut point.
func stripOverlay(content string) string {
	marker := templates.OverlayMarker + "\n"
	if strings.HasPrefix(content, marker) {
		return ""
	}
	if i := strings.LastIndex(content, "\n"+marker); i >= 0 {
		return content[:i]
	}
	return content
}
