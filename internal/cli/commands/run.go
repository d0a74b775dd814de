package commands

import (
	"github.com/leapstack-labs/sqlfixture/internal/cli/output"
	"github.com/leapstack-labs/sqlfixture/internal/result"
	"github.com/spf13/cobra"
)

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	var csv bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the suite query against production tables",
		Long: `Render the suite in production mode, execute it on the configured target
and print the result.

For the postgres target the connection is read from PG_HOST, PG_PORT,
PG_DBNAME, PG_USER and PG_PASSWORD; all of them are required.`,
		Example: `  # Run against Postgres
  PG_HOST=localhost PG_PORT=5432 PG_DBNAME=shop PG_USER=me PG_PASSWORD=pw sqlfixture run

  # Run against a local DuckDB file
  sqlfixture run --adapter duckdb --database shop.duckdb

  # Export the result
  sqlfixture run --csv > volume.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, csv)
		},
	}

	cmd.Flags().BoolVar(&csv, "csv", false, "Write the result as CSV")

	return cmd
}

func runPipeline(cmd *cobra.Command, csv bool) error {
	cmdCtx, cleanup, err := NewConnectedCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer

	tbl, err := cmdCtx.Engine.RunPipeline(cmd.Context())
	if err != nil {
		return err
	}
	cmdCtx.Logger.Info("pipeline finished", "suite", cmdCtx.Suite.Name, "rows", tbl.Len())

	if csv {
		tbl.Write(r.Writer(), result.FormatCSV)
		return nil
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.RunOutput{
			Suite:  cmdCtx.Suite.Name,
			Result: *output.NewTableOutput(tbl),
		})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Result: "+cmdCtx.Suite.Name))
		r.Println("")
		r.WriteTable(tbl)
	default:
		r.WriteTable(tbl)
	}
	return nil
}
