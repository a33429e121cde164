package mcp

import (
	"github.com/ludo-technologies/rtdbuild/app"
	"github.com/ludo-technologies/rtdbuild/domain"
	"github.com/ludo-technologies/rtdbuild/internal/config"
	"github.com/ludo-technologies/rtdbuild/internal/logger"
	"github.com/ludo-technologies/rtdbuild/service"
)

// Dependencies aggregates the shared services required by MCP handlers.
type Dependencies struct {
	config     *config.Config
	configPath string
	log        logger.Logger
}

// NewDependencies constructs the dependency set. A nil config means every
// call discovers the configuration from its checkout.
func NewDependencies(cfg *config.Config, configPath string, log logger.Logger) *Dependencies {
	if log == nil {
		log = logger.Discard()
	}
	return &Dependencies{
		config:     cfg,
		configPath: configPath,
		log:        log,
	}
}

// Config exposes the configuration snapshot, nil when discovery is used.
func (d *Dependencies) Config() *config.Config {
	return d.config
}

// ConfigPath returns the configured config file path (may be empty to trigger discovery).
func (d *Dependencies) ConfigPath() string {
	return d.configPath
}

// Logger returns the server logger.
func (d *Dependencies) Logger() logger.Logger {
	return d.log
}

// LoadConfig returns the snapshot or loads the configuration for checkout.
func (d *Dependencies) LoadConfig(checkout string) (*config.Config, error) {
	if d.config != nil {
		return d.config, nil
	}
	cfg, err := config.LoadConfigWithTarget(d.configPath, checkout)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	return cfg, nil
}

// BuildConfPyUseCase assembles a fresh ConfPyUseCase for cfg.
func (d *Dependencies) BuildConfPyUseCase(cfg *config.Config) (*app.ConfPyUseCase, error) {
	return app.NewConfPyUseCaseBuilder().
		WithConfig(cfg).
		WithWriter(service.NewConfFileWriter()).
		WithLogger(d.log).
		Build()
}
