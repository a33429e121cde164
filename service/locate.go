package service

import (
	"path/filepath"

	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/ludo-technologies/rtdbuild/internal/config"
	"github.com/ludo-technologies/rtdbuild/internal/logger"
)

// Location describes where a build of a checkout finds its configuration
type Location struct {
	ConfPyPath string   `json:"conf_py_path"`
	Generated  bool     `json:"generated"`
	DocsDir    string   `json:"docs_dir"`
	BuildArgs  []string `json:"sphinx_build_args"`
}

// Locate resolves conf.py, the docs directory and the sphinx-build
// arguments for env without writing anything. When the checkout has no
// conf.py, ConfPyPath is the file that would be generated.
func Locate(cfg *config.Config, env *domain.BuildEnvironment, log logger.Logger) (*Location, error) {
	if log == nil {
		log = logger.Discard()
	}

	factory, err := NewSphinxBuilderFactory(cfg, nil, log)
	if err != nil {
		return nil, err
	}
	builder, err := factory.NewSphinxBuilder(env, true)
	if err != nil {
		return nil, err
	}

	locator := NewConfPyLocator(log)
	docsDir, err := NewDocsDirResolver(locator).DocsDir(env)
	if err != nil {
		return nil, err
	}

	loc := &Location{DocsDir: docsDir, BuildArgs: builder.BuildArgs()}
	confPath, err := locator.ConfPyPath(env)
	switch {
	case err == nil:
		loc.ConfPyPath = confPath
	case domain.IsConfigurationMissing(err):
		loc.ConfPyPath = filepath.Join(docsDir, "conf.py")
		loc.Generated = true
	default:
		return nil, err
	}
	return loc, nil
}
