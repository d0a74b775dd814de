package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlfixture/internal/cli/config"
	"github.com/leapstack-labs/sqlfixture/internal/cli/output"
	"github.com/leapstack-labs/sqlfixture/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command in a clean directory and environment.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, config.EnvPrefix) || strings.HasPrefix(key, "PG_") {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
	t.Chdir(t.TempDir())
	t.Cleanup(config.ResetConfig)

	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := NewRootCmd()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_TestBuiltinOnDuckDB(t *testing.T) {
	stdout, stderr, err := execute(t, "test", "--adapter", "duckdb", "-o", "text")
	require.NoError(t, err, stderr)

	assert.Contains(t, stdout, "Actual:")
	assert.Contains(t, stdout, "Expected:")
	assert.Contains(t, stdout, "PASS daily_volume_by_country")
	assert.Contains(t, stderr, "Executing SQL:\nWITH\ntest_transactions AS (")
}

func TestRoot_TestJSONReport(t *testing.T) {
	stdout, _, err := execute(t, "test", "--adapter", "duckdb", "-o", "json", "--echo-sql=false")
	require.NoError(t, err)

	var report output.TestOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.True(t, report.Passed)
	assert.Equal(t, "daily_volume_by_country", report.Suite)
	assert.NotEmpty(t, report.ID)
	require.NotNil(t, report.Actual)
	assert.Equal(t, []string{"day_of_year", "country", "trxn_volume"}, report.Actual.Columns)
	assert.Len(t, report.Actual.Rows, 4)
}

func TestRoot_TestMismatchFails(t *testing.T) {
	dir := t.TempDir()
	suitePath := filepath.Join(dir, "wrong.yaml")
	require.NoError(t, os.WriteFile(suitePath, []byte(`
name: wrong_expectation
template: |
  WITH totals AS (SELECT SUM(amount) AS total FROM {{ payments }})
  SELECT total FROM totals
tables: {payments: payments}
fixtures:
  payments:
    columns: [amount]
    rows: ["(1.5)", "(2.5)"]
expected:
  total: [5]
`), 0o600))

	stdout, _, err := execute(t, "test", "--adapter", "duckdb", "--suite", suitePath, "-o", "markdown")

	var mismatch *result.MismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Contains(t, stdout, "**Status:** FAIL")
	assert.Contains(t, stdout, "## Mismatch")
}

func TestRoot_RunRequiresPostgresSettings(t *testing.T) {
	_, _, err := execute(t, "run")

	var missing *config.MissingSettingsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"PG_HOST", "PG_PORT", "PG_DBNAME", "PG_USER", "PG_PASSWORD"}, missing.Names)
}

func TestRoot_RenderDoesNotNeedDatabase(t *testing.T) {
	stdout, _, err := execute(t, "render", "-o", "json")
	require.NoError(t, err)

	var rendered output.RenderOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &rendered))
	assert.Equal(t, "production", rendered.Mode)
	assert.Equal(t, []string{"transactions", "users"}, rendered.References)
	assert.Contains(t, rendered.SQL, "FROM\n        transactions AS t")

	stdout, _, err = execute(t, "render", "--mode", "test", "--fixture-prefix", "fx_", "-o", "text")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "WITH\nfx_transactions AS ("), stdout)
}

func TestRoot_RenderRejectsUnknownMode(t *testing.T) {
	_, _, err := execute(t, "render", "--mode", "staging")
	assert.ErrorContains(t, err, "unknown mode")
}

func TestRoot_RunOnDuckDBFile(t *testing.T) {
	// An empty database has no production tables; the driver error surfaces.
	dbPath := filepath.Join(t.TempDir(), "empty.duckdb")
	_, _, err := execute(t, "run", "--adapter", "duckdb", "--database", dbPath)
	require.Error(t, err)
	assert.Contains(t, strings.ToLower(err.Error()), "transactions")
}

func TestRoot_Version(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sqlfixture v"+Version)
}

func TestRoot_Completion(t *testing.T) {
	stdout, _, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sqlfixture")
}

func TestNewRootCmd_Flags(t *testing.T) {
	cmd := NewRootCmd()
	for _, name := range []string{"config", "suite", "adapter", "database", "fixture-prefix", "echo-sql", "verbose", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag %q should exist", name)
	}

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"version", "render", "run", "test", "completion"}, names)
}
