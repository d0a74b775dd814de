package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/leapstack-labs/sqlfixture/internal/cli/config"
	"github.com/leapstack-labs/sqlfixture/internal/cli/output"
	"github.com/leapstack-labs/sqlfixture/internal/engine"
	"github.com/leapstack-labs/sqlfixture/internal/suite"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Suite    *suite.Suite
	Engine   *engine.Engine
	Renderer *output.Renderer
}

// NewCommandContext loads the suite and creates an engine and renderer.
// The database is opened on first query. The returned cleanup function
// closes it and must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	s, err := loadSuite(cfg)
	if err != nil {
		return nil, nil, err
	}

	r, ok := output.GetRenderer(cmd.Context())
	if !ok {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	}

	var echo io.Writer
	if cfg.EchoSQL {
		echo = r.ErrWriter()
	}

	eng, err := engine.New(engine.Config{
		Suite:         s,
		AdapterConfig: cfg.Target.AdapterConfig(),
		Echo:          echo,
		Logger:        logger,
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := eng.Close(); err != nil {
			logger.Warn("failed to close database connection", "error", err)
		}
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Suite:    s,
		Engine:   eng,
		Renderer: r,
	}, cleanup, nil
}

// NewConnectedCommandContext is NewCommandContext for commands that query
// the database: the target is validated first so missing settings fail
// before anything is opened.
func NewConnectedCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	if err := config.ValidateTarget(config.GetConfig(cmd.Context()).Target); err != nil {
		return nil, nil, err
	}
	return NewCommandContext(cmd)
}

// loadSuite returns the configured suite file, or the built-in suite.
func loadSuite(cfg *config.Config) (*suite.Suite, error) {
	var s *suite.Suite
	if cfg.Suite == "" {
		s = suite.Builtin()
	} else {
		var err error
		if s, err = suite.Load(cfg.Suite); err != nil {
			return nil, fmt.Errorf("failed to load suite: %w", err)
		}
	}
	if cfg.FixturePrefix != "" {
		s.FixturePrefix = cfg.FixturePrefix
	}
	return s, nil
}
