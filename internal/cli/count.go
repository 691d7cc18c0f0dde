package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/posetrank/posetrank/pkg/order/extension"
)

// countCommand creates the count command.
func (c *CLI) countCommand() *cobra.Command {
	var opts inputOpts

	cmd := &cobra.Command{
		Use:   "count [file]",
		Short: "Count linear extensions without enumerating them",
		Long: `Count the linear extensions of a comparability relation.

Counting shares the enumeration's recursion but memoizes on the remaining
element set, so it handles considerably larger inputs than a full
enumeration would. The count is exact and uses arbitrary precision.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			popts, err := opts.pipelineOptions(args[0], logger)
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

			tracker := newProgress(logger)
			spinner := newSpinner("Counting linear extensions...")
			spinner.Start()
			e := extension.Enumerator{MaxElements: opts.maxElements, MaxSteps: opts.maxSteps}
			count, err := e.Count(p)
			if err != nil {
				spinner.Stop()
				return err
			}
			spinner.Stop()
			tracker.done(fmt.Sprintf("Counted %s linear extensions", count))

			frac, err := p.ComparableFraction()
			if err != nil {
				return err
			}
			printSuccess("%s linear extensions", StyleHighlight.Render(count.String()))
			printStats(p.N(), frac, false)
			return nil
		},
	}

	c.registerInputFlags(cmd, &opts)
	return cmd
}
