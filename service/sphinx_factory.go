package service

import (
	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/ludo-technologies/rtdbuild/internal/config"
	"github.com/ludo-technologies/rtdbuild/internal/logger"
	"github.com/ludo-technologies/rtdbuild/internal/parser"
	"github.com/ludo-technologies/rtdbuild/internal/templates"
)

// SphinxBuilderFactory wires SphinxBuilders from the loaded configuration
type SphinxBuilderFactory struct {
	cfg       *config.Config
	templates *templates.Set
	writer    domain.ConfWriter
	validator SyntaxValidator
	log       logger.Logger
}

// NewSphinxBuilderFactory creates a factory. The template set is checked
// up front so a broken override directory fails before any checkout is
// touched.
func NewSphinxBuilderFactory(cfg *config.Config, writer domain.ConfWriter, log logger.Logger) (*SphinxBuilderFactory, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if writer == nil {
		writer = NewConfFileWriter()
	}
	if log == nil {
		log = logger.Discard()
	}

	set := templates.NewEmbedded()
	if cfg.Build.TemplateOverrideDir != "" {
		set = templates.NewFromDir(cfg.Build.TemplateOverrideDir)
	}
	if err := set.Check(); err != nil {
		return nil, err
	}
	log.Debug("conf.py templates loaded", "source", set.Source())

	f := &SphinxBuilderFactory{cfg: cfg, templates: set, writer: writer, log: log}
	if cfg.Build.ValidateSyntax {
		f.validator = parser.New()
	}
	return f, nil
}

// NewRenderer implements domain.ConfRendererFactory
func (f *SphinxBuilderFactory) NewRenderer(env *domain.BuildEnvironment, readOnly bool) (domain.ConfRenderer, error) {
	return f.NewSphinxBuilder(env, readOnly)
}

// NewSphinxBuilder returns the concrete builder for env
func (f *SphinxBuilderFactory) NewSphinxBuilder(env *domain.BuildEnvironment, readOnly bool) (*SphinxBuilder, error) {
	if env == nil || env.Project == nil {
		return nil, domain.NewInvalidInputError("build environment has no project", nil)
	}

	indexWriter := f.writer
	if readOnly {
		indexWriter = discardWriter{}
	}

	locator := NewConfPyLocator(f.log)
	build := f.cfg.Build
	return NewSphinxBuilder(env, SphinxBuilderOptions{
		Type:            build.Builder,
		SphinxBuildDir:  build.SphinxBuildDir,
		TemplateDir:     build.TemplateDir,
		SourceExtension: build.SourceExtension,
	}, SphinxBuilderDeps{
		Locator:   locator,
		DocsDir:   NewDocsDirResolver(locator),
		Index:     NewIndexCreator(f.templates, env.Project.Name, indexWriter),
		Params:    NewConfigParamsBuilder(f.cfg.Site, build.TemplateDir, locator),
		Templates: f.templates,
		Writer:    f.writer,
		Validator: f.validator,
		Logger:    f.log,
	})
}

// discardWriter accepts writes without touching the filesystem
type discardWriter struct{}

func (discardWriter) WriteConf(string, string) error { return nil }
