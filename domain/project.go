package domain

import (
	"path/filepath"
)

// VersionType describes what a version's identifier points at
type VersionType string

const (
	VersionTypeBranch  VersionType = "branch"
	VersionTypeTag     VersionType = "tag"
	VersionTypeUnknown VersionType = "unknown"
)

// LatestVersionSlug is the slug of the version tracking the default branch
const LatestVersionSlug = "latest"

// Project is a documentation project hosted on the platform
type Project struct {
	Slug                string    `yaml:"slug" json:"slug"`
	Name                string    `yaml:"name" json:"name"`
	Description         string    `yaml:"description" json:"description,omitempty"`
	Language            string    `yaml:"language" json:"language"`
	ProgrammingLanguage string    `yaml:"programming_language" json:"programming_language,omitempty"`
	RepoURL             string    `yaml:"repo" json:"repo,omitempty"`
	RepoType            string    `yaml:"repo_type" json:"repo_type,omitempty"`
	DefaultVersion      string    `yaml:"default_version" json:"default_version,omitempty"`
	DefaultBranch       string    `yaml:"default_branch" json:"default_branch,omitempty"`
	Copyright           string    `yaml:"copyright" json:"copyright,omitempty"`
	ConfPyFile          string    `yaml:"conf_py_file" json:"conf_py_file,omitempty"`
	SingleVersion       bool      `yaml:"single_version" json:"single_version"`
	CanonicalURL        string    `yaml:"canonical_url" json:"canonical_url,omitempty"`
	AnalyticsCode       string    `yaml:"analytics_code" json:"analytics_code,omitempty"`
	Versions            []Version `yaml:"versions" json:"versions"`
}

// Version is one buildable ref of a project
type Version struct {
	Slug        string      `yaml:"slug" json:"slug"`
	VerboseName string      `yaml:"verbose_name" json:"verbose_name,omitempty"`
	Identifier  string      `yaml:"identifier" json:"identifier,omitempty"`
	Type        VersionType `yaml:"type" json:"type,omitempty"`
	Active      bool        `yaml:"active" json:"active"`
	ConfPyFile  string      `yaml:"conf_py_file" json:"conf_py_file,omitempty"`
}

// FirstVersion returns the first version in registry order, if any
func (p *Project) FirstVersion() *Version {
	if len(p.Versions) == 0 {
		return nil
	}
	return &p.Versions[0]
}

// FindVersion looks up a version by slug
func (p *Project) FindVersion(slug string) *Version {
	for i := range p.Versions {
		if p.Versions[i].Slug == slug {
			return &p.Versions[i]
		}
	}
	return nil
}

// ActiveVersions returns the active versions in registry order
func (p *Project) ActiveVersions() []*Version {
	var active []*Version
	for i := range p.Versions {
		if p.Versions[i].Active {
			active = append(active, &p.Versions[i])
		}
	}
	return active
}

// CheckoutPath is where the version's sources live under docRoot
func (p *Project) CheckoutPath(docRoot, versionSlug string) string {
	return filepath.Join(docRoot, p.Slug, "checkouts", versionSlug)
}

// DefaultVersionSlug returns the configured default version or latest
func (p *Project) DefaultVersionSlug() string {
	if p.DefaultVersion != "" {
		return p.DefaultVersion
	}
	return LatestVersionSlug
}

// DisplayName returns the verbose name, falling back to the slug
func (v *Version) DisplayName() string {
	if v.VerboseName != "" {
		return v.VerboseName
	}
	return v.Slug
}

// ProjectRepository resolves projects by slug
type ProjectRepository interface {
	// Get returns the project with the given slug
	Get(slug string) (*Project, error)
}
