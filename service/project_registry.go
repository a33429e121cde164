package service

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/gosimple/slug"
	"github.com/ludo-technologies/rtdbuild/domain"
	"gopkg.in/yaml.v3"
)

// registryFile is the on-disk layout of a project registry
type registryFile struct {
	Projects []domain.Project `yaml:"projects"`
}

// ProjectRegistry is an in-memory domain.ProjectRepository
type ProjectRegistry struct {
	projects map[string]*domain.Project
	order    []string
}

// NewProjectRegistry creates a registry from projects. Projects without a
// slug get one derived from their name; duplicate slugs are rejected.
func NewProjectRegistry(projects []domain.Project) (*ProjectRegistry, error) {
	r := &ProjectRegistry{projects: make(map[string]*domain.Project)}
	for i := range projects {
		p := projects[i]
		if err := normalizeProject(&p); err != nil {
			return nil, err
		}
		if _, exists := r.projects[p.Slug]; exists {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("duplicate project slug %q", p.Slug), nil)
		}
		r.projects[p.Slug] = &p
		r.order = append(r.order, p.Slug)
	}
	return r, nil
}

// LoadProjectRegistry reads a YAML registry file
func LoadProjectRegistry(path string) (*ProjectRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, domain.NewConfigError(fmt.Sprintf("invalid project registry %s", path), err)
	}
	return NewProjectRegistry(file.Projects)
}

// Get returns the project with the given slug
func (r *ProjectRegistry) Get(projectSlug string) (*domain.Project, error) {
	if p, ok := r.projects[projectSlug]; ok {
		return p, nil
	}
	err := domain.NewProjectNotFoundError(projectSlug)
	if len(r.order) == 0 {
		return nil, err
	}
	return nil, fmt.Errorf("%w (known projects: %s)", err, strings.Join(r.Slugs(), ", "))
}

// Slugs returns the registered slugs sorted alphabetically
func (r *ProjectRegistry) Slugs() []string {
	slugs := append([]string(nil), r.order...)
	sort.Strings(slugs)
	return slugs
}

// NewAdHocProject builds a project that is not in any registry, with a
// single latest version. An empty slug is derived from name.
func NewAdHocProject(projectSlug, name string) (*domain.Project, error) {
	p := domain.Project{
		Slug:     projectSlug,
		Name:     name,
		Versions: []domain.Version{{Slug: domain.LatestVersionSlug, Type: domain.VersionTypeBranch, Active: true}},
	}
	if err := normalizeProject(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

func normalizeProject(p *domain.Project) error {
	if p.Slug == "" {
		p.Slug = slug.Make(p.Name)
	}
	if p.Slug == "" {
		return domain.NewInvalidInputError("project needs a name or a slug", nil)
	}
	if !slug.IsSlug(p.Slug) {
		return domain.NewInvalidInputError(fmt.Sprintf("invalid project slug %q", p.Slug), nil)
	}
	if p.Name == "" {
		p.Name = p.Slug
	}
	if p.Language == "" {
		p.Language = domain.DefaultLanguage
	}
	for i := range p.Versions {
		v := &p.Versions[i]
		if v.Slug == "" {
			v.Slug = slug.Make(v.VerboseName)
		}
		if v.Slug == "" {
			return domain.NewInvalidInputError(fmt.Sprintf("project %q has a version without slug", p.Slug), nil)
		}
		if v.Type == "" {
			v.Type = domain.VersionTypeUnknown
		}
	}
	return nil
}
