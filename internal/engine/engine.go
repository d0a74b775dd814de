// Package engine renders suites into executable SQL, runs them over a
// single database connection, and checks test-mode results.
package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/sqlfixture/internal/suite"
	"github.com/leapstack-labs/sqlfixture/pkg/adapter"
)

// Engine ties a suite to one database connection.
type Engine struct {
	suite *suite.Suite

	// Database adapter (lazy initialized)
	db          adapter.Adapter
	dbConfig    adapter.Config
	dbConnected bool

	echo   io.Writer
	logger *slog.Logger
}

// Config holds engine configuration.
type Config struct {
	// Suite is the query definition to render and run.
	Suite *suite.Suite
	// AdapterConfig selects and configures the database adapter.
	AdapterConfig adapter.Config
	// Adapter overrides adapter construction from AdapterConfig (optional).
	Adapter adapter.Adapter
	// Echo receives the SQL text before each execution (optional).
	Echo io.Writer
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// New creates an engine. The database is not touched until the first
// query, and Close must be called to release it.
func New(cfg Config) (*Engine, error) {
	if cfg.Suite == nil {
		return nil, fmt.Errorf("engine requires a suite")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	logger.Debug("initializing engine", "suite", cfg.Suite.Name, "adapter", cfg.AdapterConfig.Type)

	return &Engine{
		suite:    cfg.Suite,
		db:       cfg.Adapter,
		dbConfig: cfg.AdapterConfig,
		echo:     cfg.Echo,
		logger:   logger,
	}, nil
}

// Suite returns the suite the engine was built with.
func (e *Engine) Suite() *suite.Suite {
	return e.suite
}

// ensureDBConnected opens the connection on first use.
func (e *Engine) ensureDBConnected(ctx context.Context) error {
	if e.dbConnected {
		return nil
	}

	// A caller-supplied adapter may already hold an open connection.
	if c, ok := e.db.(interface{ IsConnected() bool }); ok && c.IsConnected() {
		e.dbConnected = true
		return nil
	}

	if e.db == nil {
		db, err := adapter.NewAdapter(e.dbConfig, e.logger)
		if err != nil {
			return err
		}
		e.db = db
	}

	if err := e.db.Connect(ctx, e.dbConfig); err != nil {
		return err
	}
	e.dbConnected = true
	e.logger.Debug("database connected", "adapter", e.db.Name())
	return nil
}

// Close releases the database connection, if one was opened.
func (e *Engine) Close() error {
	if e.db == nil || !e.dbConnected {
		return nil
	}
	e.dbConnected = false
	return e.db.Close()
}
