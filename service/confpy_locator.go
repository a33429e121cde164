package service

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/ludo-technologies/rtdbuild/internal/logger"
)

// ConfPyLocatorImpl finds the conf.py a checkout ships with
type ConfPyLocatorImpl struct {
	log logger.Logger
}

// NewConfPyLocator creates a locator; a nil logger discards messages
func NewConfPyLocator(log logger.Logger) *ConfPyLocatorImpl {
	if log == nil {
		log = logger.Discard()
	}
	return &ConfPyLocatorImpl{log: log}
}

// ConfPyPath implements domain.ConfPyLocator.
//
// A custom path on the version, then on the project, is used when the file
// exists. Otherwise the checkout is searched for conf.py files outside build
// and virtualenv directories. When several are found the first one below a
// doc* directory wins.
func (l *ConfPyLocatorImpl) ConfPyPath(env *domain.BuildEnvironment) (string, error) {
	if env == nil || env.Project == nil {
		return "", domain.NewInvalidInputError("build environment has no project", nil)
	}
	checkout := env.CheckoutPath
	info, err := os.Stat(checkout)
	if err != nil || !info.IsDir() {
		return "", domain.NewFileNotFoundError(checkout, err)
	}

	if custom := customConfPy(env); custom != "" {
		p := custom
		if !filepath.IsAbs(p) {
			p = filepath.Join(checkout, custom)
		}
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		l.log.Warn("custom conf.py not found, searching checkout", "project", env.Project.Slug, "path", custom)
	}

	matches, err := l.findConfFiles(checkout)
	if err != nil {
		return "", err
	}

	switch len(matches) {
	case 0:
		return "", domain.NewConfigurationMissingError(checkout)
	case 1:
		return filepath.Join(checkout, filepath.FromSlash(matches[0])), nil
	}

	for _, m := range matches {
		if underDocsDir(m) {
			return filepath.Join(checkout, filepath.FromSlash(m)), nil
		}
	}
	return "", domain.NewMultipleConfFilesError(matches)
}

// findConfFiles returns slash-separated paths relative to checkout,
// shallowest first
func (l *ConfPyLocatorImpl) findConfFiles(checkout string) ([]string, error) {
	all, err := doublestar.Glob(os.DirFS(checkout), "**/conf.py")
	if err != nil {
		return nil, domain.NewInvalidInputError("failed to search for conf.py", err)
	}

	var matches []string
	for _, m := range all {
		if !skippedPath(m) {
			matches = append(matches, m)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		di, dj := strings.Count(matches[i], "/"), strings.Count(matches[j], "/")
		if di != dj {
			return di < dj
		}
		return matches[i] < matches[j]
	})
	return matches, nil
}

// RelativeConfDir returns the conf.py directory relative to the checkout,
// with leading and trailing slashes ("/docs/", or "/" for the root)
func RelativeConfDir(checkout, confPath string) string {
	rel, err := filepath.Rel(checkout, filepath.Dir(confPath))
	if err != nil || rel == "." {
		return "/"
	}
	return "/" + filepath.ToSlash(rel) + "/"
}

func customConfPy(env *domain.BuildEnvironment) string {
	if env.Version != nil && env.Version.ConfPyFile != "" {
		return env.Version.ConfPyFile
	}
	return env.Project.ConfPyFile
}

func skippedPath(rel string) bool {
	dir := path.Dir(rel)
	if dir == "." {
		return false
	}
	for _, part := range strings.Split(dir, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
		for _, skip := range domain.ConfPySkipDirs {
			if part == skip {
				return true
			}
		}
	}
	return false
}

func underDocsDir(rel string) bool {
	dir := path.Dir(rel)
	if dir == "." {
		return false
	}
	for _, part := range strings.Split(dir, "/") {
		for _, candidate := range domain.DocsDirCandidates {
			if strings.EqualFold(part, candidate) {
				return true
			}
		}
	}
	return false
}
