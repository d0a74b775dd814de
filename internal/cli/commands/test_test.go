package commands

import (
	"testing"
	"time"

	"github.com/leapstack-labs/sqlfixture/internal/cli/testutil"
	"github.com/leapstack-labs/sqlfixture/internal/engine"
	"github.com/leapstack-labs/sqlfixture/internal/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(t *testing.T) (*engine.Report, *result.MismatchError) {
	t.Helper()
	expected, err := result.FromColumns(
		result.Column{Name: "country", Values: []any{"US", "CA"}},
		result.Column{Name: "trxn_volume", Values: []any{15, 25.99}},
	)
	require.NoError(t, err)
	actual, err := result.FromColumns(
		result.Column{Name: "country", Values: []any{"US", "CA"}},
		result.Column{Name: "trxn_volume", Values: []any{15, 26.5}},
	)
	require.NoError(t, err)

	report := &engine.Report{
		ID:       "run-1",
		Suite:    "volume",
		Actual:   actual,
		Expected: expected,
		Duration: 12 * time.Millisecond,
	}
	mismatch, ok := result.Compare(actual, expected).(*result.MismatchError)
	require.True(t, ok)
	return report, mismatch
}

func TestWriteReportMarkdown(t *testing.T) {
	report, mismatch := sampleReport(t)

	tr := testutil.NewTestRendererMarkdown()
	writeReportMarkdown(tr.Renderer, report, mismatch)

	out := tr.Output()
	testutil.AssertNoANSI(t, out)
	testutil.AssertValidMarkdown(t, out)
	assert.Contains(t, out, "# Test: volume")
	assert.Contains(t, out, "**Status:** FAIL")
	assert.Contains(t, out, "## Mismatch")

	tr = testutil.NewTestRendererMarkdown()
	report.Actual = report.Expected
	report.Passed = true
	writeReportMarkdown(tr.Renderer, report, nil)
	assert.Contains(t, tr.Output(), "**Status:** PASS")
	assert.NotContains(t, tr.Output(), "## Mismatch")
}

func TestWriteReportText(t *testing.T) {
	report, mismatch := sampleReport(t)

	tr := testutil.NewTestRendererText()
	writeReportText(tr.Renderer, report, mismatch)
	out := testutil.StripANSI(tr.Output())
	assert.Contains(t, out, "Actual:")
	assert.Contains(t, out, "Expected:")
	assert.Contains(t, out, "FAIL volume: "+mismatch.Reason)

	tr = testutil.NewTestRendererText()
	report.Passed = true
	writeReportText(tr.Renderer, report, nil)
	out = testutil.StripANSI(tr.Output())
	assert.Contains(t, out, "PASS volume")
	assert.Contains(t, out, "run run-1 in 12ms")
}
