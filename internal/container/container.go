// Package container provides dependency injection for the si-log-extract
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"

	"rpatwari/si-log-extract/internal/config"
	"rpatwari/si-log-extract/internal/gcs"
	"rpatwari/si-log-extract/internal/logging"
	"rpatwari/si-log-extract/internal/report"
	"rpatwari/si-log-extract/internal/scanner"
	"rpatwari/si-log-extract/internal/transformer"
)

// Container holds all application dependencies and provides methods to
// access them. It acts as the central registry for dependency injection,
// ensuring that all components receive their required dependencies
// through constructors.
//
// Container is immutable after creation - all fields are private and can
// only be accessed through getter methods. This prevents accidental
// modification of dependencies after initialization. The bridge's lazy
// storage client lives here rather than in any package-level state.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	mapper    *transformer.Mapper
	scanner   *scanner.Scanner
	bridge    *gcs.Bridge
	generator *report.Generator
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the
// application.
//
// Parameters:
//   - cfg: Application configuration
//
// Returns:
//   - *Container: Fully wired container with all dependencies
//   - error: Any error encountered during dependency creation
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Create logger first as it's needed by other components
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	style, err := transformer.ParseTemplateStyle(cfg.Scan.TemplateStyle)
	if err != nil {
		return nil, fmt.Errorf("invalid scan.template_style: %w", err)
	}
	policy, err := transformer.ParseAmountPolicy(cfg.Scan.FeedAmountPolicy)
	if err != nil {
		return nil, fmt.Errorf("invalid scan.feed_amount_policy: %w", err)
	}

	mapper := transformer.NewMapper(
		transformer.WithTemplateStyle(style),
		transformer.WithAmountPolicy(policy),
	)
	sc := scanner.New(logger, mapper)
	bridge := gcs.NewBridge(logger)
	generator := report.NewGenerator(logger)

	logger.Info("Container initialized successfully",
		logging.Field{Key: "template_style", Value: string(style)},
		logging.Field{Key: "amount_policy", Value: string(policy)})

	return &Container{
		logger:    logger,
		config:    cfg,
		mapper:    mapper,
		scanner:   sc,
		bridge:    bridge,
		generator: generator,
	}, nil
}

// GetLogger returns the container's logger instance.
// This is a convenience method for accessing the logger.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
// This is a convenience method for accessing the configuration.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetMapper returns the container's payload mapper instance.
func (c *Container) GetMapper() *transformer.Mapper {
	return c.mapper
}

// GetScanner returns the container's audit-dump scanner instance.
func (c *Container) GetScanner() *scanner.Scanner {
	return c.scanner
}

// GetBridge returns the container's cloud mirror bridge instance.
func (c *Container) GetBridge() *gcs.Bridge {
	return c.bridge
}

// GetReportGenerator returns the container's report generator instance.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.generator
}

// Close releases container resources, including the bridge's storage
// client when one was created.
func (c *Container) Close() error {
	c.logger.Info("Container closed")
	return c.bridge.Close()
}
