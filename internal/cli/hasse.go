package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/posetrank/posetrank/pkg/pipeline"
	"github.com/posetrank/posetrank/pkg/render/hasse"
)

// hasseFormats is the subset of output formats the hasse command supports.
var hasseFormats = map[string]bool{
	pipeline.FormatDOT: true,
	pipeline.FormatSVG: true,
	pipeline.FormatPNG: true,
}

// hasseCommand creates the hasse command for diagram rendering.
func (c *CLI) hasseCommand() *cobra.Command {
	var (
		opts       inputOpts
		formatsStr string
		output     string
		detailed   bool
	)

	cmd := &cobra.Command{
		Use:   "hasse [file]",
		Short: "Render the relation's Hasse diagram",
		Long: `Render the cover relation as a Hasse diagram, with lesser elements
drawn below greater ones.

With --detailed, each node is annotated with its possible rank interval.

Examples:
  posetrank hasse relation.json -o diagram.svg
  posetrank hasse network.json --derive neighborhood -f dot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			popts, err := opts.pipelineOptions(args[0], loggerFromContext(cmd.Context()))
			if err != nil {
				return err
			}
			formats := parseHasseFormats(formatsStr)
			for _, f := range formats {
				if !hasseFormats[f] {
					return fmt.Errorf("invalid format: %q (must be one of: dot, svg, png)", f)
				}
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

			dot := hasse.ToDOT(p, hasse.Options{Detailed: detailed})
			base := basePath(output, args[0])

			for _, format := range formats {
				var data []byte
				switch format {
				case pipeline.FormatDOT:
					data = []byte(dot)
				case pipeline.FormatSVG:
					data, err = hasse.RenderSVG(dot)
				case pipeline.FormatPNG:
					data, err = hasse.RenderPNG(dot, 2.0)
				}
				if err != nil {
					return fmt.Errorf("render %s: %w", format, err)
				}

				path := output
				if output == "" || len(formats) > 1 || filepath.Ext(output) == "" {
					path = base + "." + format
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				printFile(path)
			}

			printSuccess("Rendered Hasse diagram (%d elements, %d covers)", p.N(), len(p.CoverPairs()))
			return nil
		},
	}

	c.registerInputFlags(cmd, &opts)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png (comma-separated)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "annotate nodes with rank intervals")

	return cmd
}

// parseHasseFormats parses the --format flag, defaulting to svg.
func parseHasseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return parseFormats(s)
}
