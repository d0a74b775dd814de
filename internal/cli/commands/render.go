package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlfixture/internal/cli/output"
	"github.com/leapstack-labs/sqlfixture/internal/engine"
	"github.com/spf13/cobra"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the suite query without executing it",
		Long: `Render the final SQL for the suite.

In production mode each table reference is replaced by its production table
name. In test mode references point at fixture CTEs, which are injected after
the leading WITH keyword.

Output adapts to environment:
  - Terminal: Plain SQL (suitable for syntax highlighting)
  - Piped/Scripted: Markdown with code block`,
		Example: `  # Render against production tables
  sqlfixture render

  # Render with fixtures injected
  sqlfixture render --mode test

  # Render a suite file as JSON
  sqlfixture render --suite suites/volume.yaml --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := engine.ParseMode(mode)
			if err != nil {
				return err
			}
			return runRender(cmd, m)
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(engine.ModeProduction), "Render mode (production|test)")
	_ = cmd.RegisterFlagCompletionFunc("mode", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{string(engine.ModeProduction), string(engine.ModeTest)}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runRender(cmd *cobra.Command, mode engine.Mode) error {
	cmdCtx, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	r := cmdCtx.Renderer

	rendered, err := cmdCtx.Engine.Render(mode)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", cmdCtx.Suite.Name, err)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.RenderOutput{
			Suite:      cmdCtx.Suite.Name,
			Mode:       string(rendered.Mode),
			References: rendered.References,
			Bindings:   rendered.Bindings,
			SQL:        rendered.SQL,
		})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Rendered SQL: %s (%s)", cmdCtx.Suite.Name, rendered.Mode)))
		r.Println("")
		r.Println(output.FormatCodeBlock("sql", rendered.SQL))
	default:
		// Text mode: just output the SQL directly
		r.Println(rendered.SQL)
	}

	return nil
}
