package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leapstack-labs/sqlfixture/internal/result"
)

// ErrNoExpectedResult is returned when a suite without an expected table
// is run as a test.
var ErrNoExpectedResult = errors.New("suite has no expected result")

// Query executes sqlStr on the engine's connection and returns the result.
// The SQL is echoed before execution. Database errors are returned
// unmodified.
func (e *Engine) Query(ctx context.Context, sqlStr string) (*result.Table, error) {
	if err := e.ensureDBConnected(ctx); err != nil {
		return nil, err
	}

	if e.echo != nil {
		_, _ = fmt.Fprintf(e.echo, "Executing SQL:\n%s\n", sqlStr)
	}
	e.logger.Debug("executing sql", "sql", sqlStr)

	rows, err := e.db.Query(ctx, sqlStr)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return result.FromRows(rows)
}

// RunPipeline renders the suite against production tables and executes it.
// Downstream processing of the result is left to the caller.
func (e *Engine) RunPipeline(ctx context.Context) (*result.Table, error) {
	rendered, err := e.Render(ModeProduction)
	if err != nil {
		return nil, err
	}
	return e.Query(ctx, rendered.SQL)
}

// Report describes one test-mode execution.
type Report struct {
	ID       string
	Suite    string
	SQL      string
	Actual   *result.Table
	Expected *result.Table
	Passed   bool
	Duration time.Duration
}

// RunTests renders the suite with fixtures, executes it and compares the
// outcome with the expected table. A mismatch returns the report together
// with a *result.MismatchError.
func (e *Engine) RunTests(ctx context.Context) (*Report, error) {
	if e.suite.Expected == nil {
		return nil, ErrNoExpectedResult
	}

	start := time.Now()
	report := &Report{
		ID:       uuid.NewString(),
		Suite:    e.suite.Name,
		Expected: e.suite.Expected,
	}
	e.logger.Info("starting test run", "run_id", report.ID, "suite", report.Suite)

	rendered, err := e.Render(ModeTest)
	if err != nil {
		return nil, err
	}
	report.SQL = rendered.SQL

	actual, err := e.Query(ctx, rendered.SQL)
	if err != nil {
		return nil, err
	}
	report.Actual = actual
	report.Duration = time.Since(start)

	if err := result.Compare(actual, e.suite.Expected); err != nil {
		e.logger.Info("test run failed", "run_id", report.ID, "rows", actual.Len())
		return report, err
	}

	report.Passed = true
	e.logger.Info("test run passed", "run_id", report.ID, "rows", actual.Len(), "duration", report.Duration)
	return report, nil
}
