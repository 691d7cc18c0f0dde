package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/posetrank/posetrank/pkg/errors"
	"github.com/posetrank/posetrank/pkg/order"
	"github.com/posetrank/posetrank/pkg/order/rank"
	"github.com/posetrank/posetrank/pkg/pipeline"
)

// analyzeCommand creates the analyze command, the main entry point for rank
// statistics.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		opts        inputOpts
		formatsStr  string
		output      string
		detailed    bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Compute rank probabilities, expected ranks, and spreads",
		Long: `Compute exact rank statistics for a comparability relation.

The input file is either a relation document (a boolean matrix or a list of
ordered pairs) or a graph document, in which case the relation is derived
from vertex dominance first.

Exact statistics require enumerating every linear extension, which is only
feasible for small inputs. When enumeration hits its limits, the command
falls back to possible rank intervals, which are always cheap to compute.

Results are cached locally for faster subsequent runs.

Examples:
  posetrank analyze relation.json
  posetrank analyze network.json --derive distance
  posetrank analyze relation.json -o stats.json -f json,svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := opts.pipelineOptions(args[0], loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			popts.Formats = parseFormats(formatsStr)
			popts.Detailed = detailed
			if err := pipeline.ValidateFormats(popts.Formats); err != nil {
				return err
			}
			return c.runAnalyze(cmd.Context(), popts, analyzeParams{
				input:       args[0],
				output:      output,
				interactive: interactive,
				noCache:     opts.noCache,
				detailed:    detailed,
			})
		},
	}

	c.registerInputFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include pairwise probabilities and rank intervals")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse results in an interactive viewer")

	return cmd
}

// analyzeParams bundles the non-pipeline arguments of runAnalyze.
type analyzeParams struct {
	input       string
	output      string
	interactive bool
	noCache     bool
	detailed    bool
}

// runAnalyze loads the relation, computes statistics, and presents them.
func (c *CLI) runAnalyze(ctx context.Context, opts pipeline.Options, params analyzeParams) error {
	runner, err := c.newRunner(ctx, params.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	p, loadHit, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return err
	}
	c.warnRelation(p)

	frac, err := p.ComparableFraction()
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Enumerating linear extensions...")
	spinner.Start()
	stats, statsHit, err := runner.StatsWithCacheInfo(ctx, p, opts)
	if err != nil {
		switch {
		case spinner.Cancelled():
			spinner.Stop()
			return err
		case errors.Is(err, errors.ErrCodeIntractable):
			spinner.Stop()
			return c.intervalFallback(p, err)
		default:
			spinner.StopWithError("Analysis failed")
			return err
		}
	}
	spinner.StopWithSuccess(fmt.Sprintf("Analyzed %s", params.input))

	printStats(p.N(), frac, loadHit && statsHit)
	printDetail("%s linear extensions", stats.Extensions.String())
	fmt.Println()
	fmt.Println(summaryTable(stats))
	fmt.Println(rankProbTable(stats))
	if params.detailed {
		fmt.Println(relativeRankTable(stats))
		fmt.Println(intervalsTable(p.Labels(), rank.Intervals(p)))
	}

	if params.interactive {
		if err := runResultViewer(stats); err != nil {
			return err
		}
	}

	if params.output != "" {
		return c.writeArtifacts(runner, p, stats, opts, params.input, params.output)
	}
	return nil
}

// intervalFallback prints rank intervals when exact enumeration is not
// feasible. The fallback is a successful outcome, not an error.
func (c *CLI) intervalFallback(p *order.PartialOrder, cause error) error {
	printWarning("%s", errors.UserMessage(cause))
	printInfo("Falling back to possible rank intervals")
	fmt.Println()
	fmt.Println(intervalsTable(p.Labels(), rank.Intervals(p)))
	printDetail("Raise --max-elements or --max-steps for exact statistics")
	return nil
}

// warnRelation surfaces warnings recorded while the relation was loaded.
func (c *CLI) warnRelation(p *order.PartialOrder) {
	for _, w := range p.Warnings() {
		printWarning("%s", w)
	}
}

// writeArtifacts exports every requested format next to output.
func (c *CLI) writeArtifacts(runner *pipeline.Runner, p *order.PartialOrder, stats *rank.Result, opts pipeline.Options, input, output string) error {
	base := basePath(output, input)
	for _, format := range opts.Formats {
		data, err := runner.Export(p, stats, format, opts)
		if err != nil {
			return fmt.Errorf("export %s: %w", format, err)
		}
		path := output
		if len(opts.Formats) > 1 || filepath.Ext(output) == "" {
			path = base + "." + format
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.json, .svg, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
