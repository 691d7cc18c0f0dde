package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/posetrank/posetrank/pkg/order/extension"
)

// enumerateCommand creates the enumerate command.
func (c *CLI) enumerateCommand() *cobra.Command {
	var (
		opts  inputOpts
		limit int
	)

	cmd := &cobra.Command{
		Use:   "enumerate [file]",
		Short: "List linear extensions one by one",
		Long: `List the linear extensions of a comparability relation, one per line,
from bottom rank to top. Enumeration stops after --limit extensions; pass
--limit 0 to list them all.`,
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

			e := extension.Enumerator{MaxElements: opts.maxElements, MaxSteps: opts.maxSteps}
			seen := 0
			truncated := false
			err = e.Enumerate(ctx, p, func(ext []int) bool {
				labels := make([]string, len(ext))
				for i, elem := range ext {
					labels[i] = p.Label(elem)
				}
				fmt.Println(strings.Join(labels, " < "))
				seen++
				if limit > 0 && seen >= limit {
					truncated = true
					return false
				}
				return true
			})
			if err != nil {
				return err
			}

			if truncated {
				printDetail("Stopped after %d extensions; raise --limit to see more", seen)
			} else {
				printDetail("%d extensions", seen)
			}
			return nil
		},
	}

	c.registerInputFlags(cmd, &opts)
	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "stop after this many extensions (0 = all)")
	return cmd
}
