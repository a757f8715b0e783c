// Package container provides dependency injection for the autocat
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"time"

	"shekelio/autocat/internal/categorizer"
	"shekelio/autocat/internal/config"
	"shekelio/autocat/internal/importer"
	"shekelio/autocat/internal/logging"
	"shekelio/autocat/internal/store"
)

// Container holds all application dependencies. It is immutable after
// creation; components are reached through getters only.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	store       *store.FileStore
	suggester   categorizer.Suggester
	categorizer *categorizer.Categorizer
	importer    *importer.Importer

	closers []func() error
}

// NewContainer creates and wires all application dependencies.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	// Logger first; everything else logs through it.
	logger := logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)

	fileStore, err := store.NewFileStore(cfg.Data.Directory, logger)
	if err != nil {
		return nil, fmt.Errorf("creating file store: %w", err)
	}

	guard, err := fileStore.LoadAmbiguityGuard()
	if err != nil {
		return nil, fmt.Errorf("loading ambiguity table: %w", err)
	}

	c := &Container{
		logger: logger,
		config: cfg,
		store:  fileStore,
	}

	opts := []categorizer.Option{
		categorizer.WithAmbiguityGuard(guard),
	}

	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		suggester, err := categorizer.NewGeminiSuggester(ctx, cfg.AI.APIKey, cfg.AI.Model, logger)
		if err != nil {
			return nil, fmt.Errorf("creating gemini suggester: %w", err)
		}
		c.suggester = suggester
		c.closers = append(c.closers, suggester.Close)
		opts = append(opts, categorizer.WithSuggester(suggester,
			time.Duration(cfg.AI.TimeoutSeconds)*time.Second))
		logger.Info("ai suggestions enabled")
	} else {
		logger.Info("ai suggestions disabled")
	}

	c.categorizer = categorizer.New(fileStore, fileStore, logger, opts...)
	c.importer = importer.New(c.categorizer, logger)

	return c, nil
}

// Logger returns the configured application logger.
func (c *Container) Logger() logging.Logger { return c.logger }

// Config returns the application configuration.
func (c *Container) Config() *config.Config { return c.config }

// Store returns the data file store.
func (c *Container) Store() *store.FileStore { return c.store }

// Categorizer returns the categorization cascade.
func (c *Container) Categorizer() *categorizer.Categorizer { return c.categorizer }

// Importer returns the batch importer.
func (c *Container) Importer() *importer.Importer { return c.importer }

// Close releases resources held by container components.
func (c *Container) Close() error {
	var firstErr error
	for _, closer := range c.closers {
		if err := closer(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
