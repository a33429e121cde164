package app

import (
	"context"
	"fmt"
	"io"

	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/ludo-technologies/rtdbuild/internal/config"
	"github.com/ludo-technologies/rtdbuild/internal/logger"
	"github.com/ludo-technologies/rtdbuild/service"
)

// ConfPyUseCase orchestrates conf.py rendering for one or more versions
type ConfPyUseCase struct {
	cfg      *config.Config
	projects domain.ProjectRepository
	factory  domain.ConfRendererFactory
	progress domain.ProgressManager
	log      logger.Logger
}

// Execute renders conf.py for the requested versions and writes, prints or
// compares it depending on the request mode
func (uc *ConfPyUseCase) Execute(ctx context.Context, req domain.ConfPyRequest) (*domain.ConfPyResponse, error) {
	if err := uc.validateRequest(&req); err != nil {
		return nil, domain.NewInvalidInputError("invalid request", err)
	}

	project, err := uc.resolveProject(req)
	if err != nil {
		return nil, err
	}

	versions, err := uc.selectVersions(project, req)
	if err != nil {
		return nil, err
	}

	if uc.progress != nil && len(versions) > 1 {
		uc.progress.Initialize(len(versions))
		uc.progress.Start()
		defer uc.progress.Close()
	}

	response := &domain.ConfPyResponse{ProjectSlug: project.Slug, Mode: req.Mode}
	for i, version := range versions {
		if err := ctx.Err(); err != nil {
			return response, err
		}

		env := &domain.BuildEnvironment{
			Project:      project,
			Version:      version,
			CheckoutPath: uc.checkoutPath(project, version, req),
			Commit:       req.Commit,
		}
		log := uc.log.With("project", project.Slug, "version", version.Slug)
		log.Debug("rendering conf.py", "checkout", env.CheckoutPath, "mode", req.Mode)

		result, err := uc.processVersion(ctx, env, req, len(versions) > 1)
		if err != nil {
			if uc.progress != nil && len(versions) > 1 {
				uc.progress.Complete(false)
			}
			return response, fmt.Errorf("version %s: %w", version.Slug, err)
		}
		response.Results = append(response.Results, *result)

		if uc.progress != nil && len(versions) > 1 {
			uc.progress.Update(i+1, len(versions))
		}
	}

	if uc.progress != nil && len(versions) > 1 {
		uc.progress.Complete(true)
	}
	return response, nil
}

func (uc *ConfPyUseCase) processVersion(ctx context.Context, env *domain.BuildEnvironment, req domain.ConfPyRequest, multi bool) (*domain.ConfPyResult, error) {
	preview, err := uc.factory.NewRenderer(env, true)
	if err != nil {
		return nil, err
	}

	rendered, err := preview.RenderConf(ctx)
	if err != nil {
		return nil, err
	}

	changed, diff, err := service.ConfDiff(rendered.Path, rendered.Content)
	if err != nil {
		return nil, err
	}
	result := &domain.ConfPyResult{
		VersionSlug: env.Version.Slug,
		Path:        rendered.Path,
		Generated:   rendered.Generated,
		Changed:     changed,
		Diff:        diff,
	}

	switch req.Mode {
	case domain.ConfPyModeWrite:
		if !changed {
			uc.log.Info("conf.py is up to date", "path", rendered.Path)
			return result, nil
		}
		renderer, err := uc.factory.NewRenderer(env, false)
		if err != nil {
			return nil, err
		}
		if err := renderer.AppendConf(ctx); err != nil {
			return nil, err
		}
		uc.log.Info("conf.py written", "path", rendered.Path, "generated", rendered.Generated)

	case domain.ConfPyModeDryRun:
		if multi {
			if _, err := fmt.Fprintf(req.OutputWriter, "==> %s <==\n", rendered.Path); err != nil {
				return nil, domain.NewOutputError("failed to write output", err)
			}
		}
		if _, err := io.WriteString(req.OutputWriter, rendered.Content); err != nil {
			return nil, domain.NewOutputError("failed to write output", err)
		}

	case domain.ConfPyModeCheck:
		if changed {
			if _, err := io.WriteString(req.OutputWriter, diff); err != nil {
				return nil, domain.NewOutputError("failed to write output", err)
			}
		}
	}

	return result, nil
}

// validateRequest validates the request and fills in the default mode
func (uc *ConfPyUseCase) validateRequest(req *domain.ConfPyRequest) error {
	if req.ProjectSlug == "" && req.ProjectName == "" {
		return fmt.Errorf("a project slug or a project name is required")
	}

	if req.Mode == "" {
		req.Mode = domain.ConfPyModeWrite
	}
	switch req.Mode {
	case domain.ConfPyModeWrite:
	case domain.ConfPyModeDryRun, domain.ConfPyModeCheck:
		if req.OutputWriter == nil {
			return fmt.Errorf("output writer is required for %s mode", req.Mode)
		}
	default:
		return fmt.Errorf("unsupported mode: %s", req.Mode)
	}

	if req.AllVersions && req.VersionSlug != "" {
		return fmt.Errorf("a version and all versions cannot be combined")
	}
	if req.AllVersions && req.CheckoutPath != "" {
		return fmt.Errorf("a checkout path applies to a single version only")
	}
	return nil
}

// resolveProject looks the project up in the registry, falling back to an
// ad-hoc project when there is no registry
func (uc *ConfPyUseCase) resolveProject(req domain.ConfPyRequest) (*domain.Project, error) {
	if uc.projects != nil && req.ProjectSlug != "" {
		return uc.projects.Get(req.ProjectSlug)
	}
	return service.NewAdHocProject(req.ProjectSlug, req.ProjectName)
}

func (uc *ConfPyUseCase) selectVersions(project *domain.Project, req domain.ConfPyRequest) ([]*domain.Version, error) {
	if req.AllVersions {
		active := project.ActiveVersions()
		if len(active) == 0 {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("project %s has no active versions", project.Slug), nil)
		}
		return active, nil
	}

	if req.VersionSlug != "" {
		v := project.FindVersion(req.VersionSlug)
		if v == nil {
			return nil, domain.NewInvalidInputError(fmt.Sprintf("project %s has no version %q", project.Slug, req.VersionSlug), nil)
		}
		return []*domain.Version{v}, nil
	}

	if v := project.FindVersion(project.DefaultVersionSlug()); v != nil {
		return []*domain.Version{v}, nil
	}
	if v := project.FirstVersion(); v != nil {
		return []*domain.Version{v}, nil
	}
	return nil, domain.NewInvalidInputError(fmt.Sprintf("project %s has no versions", project.Slug), nil)
}

func (uc *ConfPyUseCase) checkoutPath(project *domain.Project, version *domain.Version, req domain.ConfPyRequest) string {
	if req.CheckoutPath != "" {
		return req.CheckoutPath
	}
	return project.CheckoutPath(uc.cfg.Build.DocRoot, version.Slug)
}

// ConfPyUseCaseBuilder provides a builder pattern for creating ConfPyUseCase
type ConfPyUseCaseBuilder struct {
	cfg      *config.Config
	projects domain.ProjectRepository
	factory  domain.ConfRendererFactory
	writer   domain.ConfWriter
	progress domain.ProgressManager
	log      logger.Logger
}

// NewConfPyUseCaseBuilder creates a new builder
func NewConfPyUseCaseBuilder() *ConfPyUseCaseBuilder {
	return &ConfPyUseCaseBuilder{}
}

// WithConfig sets the loaded configuration
func (b *ConfPyUseCaseBuilder) WithConfig(cfg *config.Config) *ConfPyUseCaseBuilder {
	b.cfg = cfg
	return b
}

// WithProjects sets the project repository
func (b *ConfPyUseCaseBuilder) WithProjects(projects domain.ProjectRepository) *ConfPyUseCaseBuilder {
	b.projects = projects
	return b
}

// WithRendererFactory sets the renderer factory
func (b *ConfPyUseCaseBuilder) WithRendererFactory(factory domain.ConfRendererFactory) *ConfPyUseCaseBuilder {
	b.factory = factory
	return b
}

// WithWriter sets the conf.py writer used by the default renderer factory
func (b *ConfPyUseCaseBuilder) WithWriter(writer domain.ConfWriter) *ConfPyUseCaseBuilder {
	b.writer = writer
	return b
}

// WithProgress sets the progress manager
func (b *ConfPyUseCaseBuilder) WithProgress(progress domain.ProgressManager) *ConfPyUseCaseBuilder {
	b.progress = progress
	return b
}

// WithLogger sets the logger
func (b *ConfPyUseCaseBuilder) WithLogger(log logger.Logger) *ConfPyUseCaseBuilder {
	b.log = log
	return b
}

// Build creates the ConfPyUseCase. Without an explicit repository the
// registry named in the configuration is loaded; without a factory the
// Sphinx builder factory is used.
func (b *ConfPyUseCaseBuilder) Build() (*ConfPyUseCase, error) {
	if b.cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if b.log == nil {
		b.log = logger.Discard()
	}
	if b.writer == nil {
		b.writer = service.NewConfFileWriter()
	}

	if b.projects == nil && b.cfg.Projects.Registry != "" {
		registry, err := service.LoadProjectRegistry(b.cfg.Projects.Registry)
		if err != nil {
			return nil, err
		}
		b.projects = registry
	}

	if b.factory == nil {
		factory, err := service.NewSphinxBuilderFactory(b.cfg, b.writer, b.log)
		if err != nil {
			return nil, err
		}
		b.factory = factory
	}

	return &ConfPyUseCase{
		cfg:      b.cfg,
		projects: b.projects,
		factory:  b.factory,
		progress: b.progress,
		log:      b.log,
	}, nil
}
