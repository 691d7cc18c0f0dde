package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/posetrank/posetrank/pkg/order/rank"
)

// intervalsCommand creates the intervals command.
func (c *CLI) intervalsCommand() *cobra.Command {
	var opts inputOpts

	cmd := &cobra.Command{
		Use:   "intervals [file]",
		Short: "Compute possible rank intervals (fast, no enumeration)",
		Long: `Compute the possible rank interval of every element.

An element's minimum rank is forced by the elements strictly below it, its
maximum rank by the elements strictly above it. Both follow directly from
the relation, so intervals work on inputs far too large for enumeration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			popts, err := opts.pipelineOptions(args[0], loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, opts.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			p, err := runner.Load(ctx, popts)
			if err != nil {
				return err
			}
			c.warnRelation(p)

			frac, err := p.ComparableFraction()
			if err != nil {
				return err
			}

			printSuccess("Computed rank intervals for %s", args[0])
			printStats(p.N(), frac, false)
			fmt.Println()
			fmt.Println(intervalsTable(p.Labels(), rank.Intervals(p)))
			return nil
		},
	}

	c.registerInputFlags(cmd, &opts)
	return cmd
}
