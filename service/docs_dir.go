package service

import (
	"os"
	"path/filepath"

	"github.com/ludo-technologies/rtdbuild/domain"
)

// DocsDirResolverImpl resolves the documentation source directory
type DocsDirResolverImpl struct {
	locator domain.ConfPyLocator
}

// NewDocsDirResolver creates a resolver that consults locator first
func NewDocsDirResolver(locator domain.ConfPyLocator) *DocsDirResolverImpl {
	return &DocsDirResolverImpl{locator: locator}
}

// DocsDir implements domain.DocsDirResolver. The directory holding the
// project's conf.py wins; without one the first existing conventional
// directory is used, then the checkout root.
func (r *DocsDirResolverImpl) DocsDir(env *domain.BuildEnvironment) (string, error) {
	if r.locator != nil {
		confPath, err := r.locator.ConfPyPath(env)
		switch {
		case err == nil:
			return filepath.Dir(confPath), nil
		case !domain.IsConfigurationMissing(err):
			return "", err
		}
	}

	for _, candidate := range domain.DocsDirCandidates {
		p := filepath.Join(env.CheckoutPath, candidate)
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return p, nil
		}
	}
	return env.CheckoutPath, nil
}
