package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/leapstack-labs/sqlfixture/internal/cli/output"
	"github.com/leapstack-labs/sqlfixture/internal/engine"
	"github.com/leapstack-labs/sqlfixture/internal/result"
	"github.com/spf13/cobra"
)

// NewTestCommand creates the test command.
func NewTestCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Run the suite against its fixtures and check the result",
		Long: `Render the suite in test mode, with every table reference replaced by an
inline fixture CTE, execute it and compare the result with the suite's
expected table.

Column names, column order, row count and row order must match. Numeric
values compare by value, so 15, 15.0 and DECIMAL '15.00' are equal.

The command exits non-zero on a mismatch.`,
		Example: `  # Test the built-in suite on Postgres
  sqlfixture test

  # Test locally without a database server
  sqlfixture test --adapter duckdb

  # Machine-readable report
  sqlfixture test --adapter duckdb --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTest(cmd)
		},
	}
}

func runTest(cmd *cobra.Command) error {
	cmdCtx, cleanup, err := NewConnectedCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer

	report, err := cmdCtx.Engine.RunTests(cmd.Context())
	var mismatch *result.MismatchError
	if err != nil && !errors.As(err, &mismatch) {
		return err
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		out := output.TestOutput{
			ID:         report.ID,
			Suite:      report.Suite,
			Passed:     report.Passed,
			DurationMS: report.Duration.Milliseconds(),
			Actual:     output.NewTableOutput(report.Actual),
			Expected:   output.NewTableOutput(report.Expected),
		}
		if mismatch != nil {
			out.Reason = mismatch.Reason
			out.Diff = mismatch.Diff
		}
		if jerr := r.JSON(out); jerr != nil {
			return jerr
		}
	case output.ModeMarkdown:
		writeReportMarkdown(r, report, mismatch)
	default:
		writeReportText(r, report, mismatch)
	}

	if mismatch != nil {
		return fmt.Errorf("suite %s failed: %w", report.Suite, mismatch)
	}
	return nil
}

func writeReportText(r *output.Renderer, report *engine.Report, mismatch *result.MismatchError) {
	styles := r.Styles()

	r.Println(styles.Header.Render("Actual:"))
	r.WriteTable(report.Actual)
	r.Println(styles.Header.Render("Expected:"))
	r.WriteTable(report.Expected)
	r.Println("")

	if mismatch != nil {
		r.Println(styles.Fail.Render("FAIL") + " " + report.Suite + ": " + mismatch.Reason)
		if mismatch.Diff != "" {
			r.Muted(mismatch.Diff)
		}
		return
	}
	r.Println(styles.Pass.Render("PASS") + " " + report.Suite)
	r.Muted(fmt.Sprintf("run %s in %s", report.ID, report.Duration.Round(time.Millisecond)))
}

func writeReportMarkdown(r *output.Renderer, report *engine.Report, mismatch *result.MismatchError) {
	status := "PASS"
	if mismatch != nil {
		status = "FAIL"
	}

	r.Println(output.FormatHeader(1, "Test: "+report.Suite))
	r.Println("")
	r.Println(output.FormatKeyValue("Status", status))
	r.Println(output.FormatKeyValue("Run", report.ID))
	r.Println("")
	r.Println(output.FormatHeader(2, "Actual"))
	r.Println("")
	r.WriteTable(report.Actual)
	r.Println("")
	r.Println(output.FormatHeader(2, "Expected"))
	r.Println("")
	r.WriteTable(report.Expected)

	if mismatch != nil {
		r.Println("")
		r.Println(output.FormatHeader(2, "Mismatch"))
		r.Println("")
		r.Println(mismatch.Reason)
		if mismatch.Diff != "" {
			r.Println("")
			r.Println(output.FormatCodeBlock("diff", mismatch.Diff))
		}
	}
}
