// Package container provides dependency injection for the finance-manager application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"
	"time"

	"fjacquet/finance-manager/internal/config"
	"fjacquet/finance-manager/internal/ledger"
	"fjacquet/finance-manager/internal/logging"
	"fjacquet/finance-manager/internal/models"
	"fjacquet/finance-manager/internal/report"
	"fjacquet/finance-manager/internal/store"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	store     *store.SeedStore
	generator *report.Generator
	renderer  report.TerminalRenderer
}

// NewContainerWithLogger creates and wires all application dependencies
// around a caller-supplied logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	seedStore := store.NewSeedStore(cfg.Seed.File, logger)
	generator := report.NewGenerator(logger, cfg.Ledger.Currency, cfg.DelimiterRune())
	renderer := report.TerminalRenderer{Style: cfg.Render.Style, WordWrap: cfg.Render.WordWrap}

	logger.Debug("Container initialized successfully",
		logging.Field{Key: logging.FieldPolicy, Value: cfg.Notifications.Policy},
		logging.Field{Key: "currency", Value: cfg.Ledger.Currency})

	return &Container{
		logger:    logger,
		config:    cfg,
		store:     seedStore,
		generator: generator,
		renderer:  renderer,
	}, nil
}

// NewLedger loads the seed and builds an engine configured from the
// container's configuration. A savings goal set in the seed file wins over
// ledger.savings_goal. now may be nil to use the wall clock.
func (c *Container) NewLedger(now func() time.Time) (*ledger.Engine, error) {
	seed, err := c.store.LoadSeed()
	if err != nil {
		return nil, err
	}
	if !seed.SavingsGoal.IsPositive() {
		seed.SavingsGoal = c.config.SavingsGoalAmount()
	}

	policy, err := ledger.NewPolicy(c.config.Notifications.Policy)
	if err != nil {
		return nil, err
	}

	settings := ledger.Settings{
		Currency:            c.config.Ledger.Currency,
		GoalIncrement:       c.config.GoalIncrementAmount(),
		LowBalanceThreshold: c.config.LowBalanceThresholdAmount(),
		BillCategory:        c.config.Ledger.BillCategory,
		RecentCount:         c.config.Ledger.RecentCount,
		Policy:              policy,
		Now:                 now,
	}
	return ledger.NewEngine(seed, settings, c.logger)
}

// ImportTransactionsFile reads a transaction CSV and adds every row to
// engine, or none of them if any row is rejected.
func (c *Container) ImportTransactionsFile(engine *ledger.Engine, path string) ([]models.Transaction, error) {
	inputs, err := store.ReadTransactionsCSV(path, c.config.DelimiterRune(), c.logger)
	if err != nil {
		return nil, err
	}
	return engine.ImportTransactions(path, inputs)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the container's seed store instance.
func (c *Container) GetStore() *store.SeedStore {
	return c.store
}

// GetReportGenerator returns the report generator.
func (c *Container) GetReportGenerator() *report.Generator {
	return c.generator
}

// GetRenderer returns the terminal Markdown renderer.
func (c *Container) GetRenderer() report.TerminalRenderer {
	return c.renderer
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
