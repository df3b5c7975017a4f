package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordgraph/pkg/cloud"
	wio "github.com/matzehuels/wordgraph/pkg/io"
	"github.com/matzehuels/wordgraph/pkg/pipeline"
)

// layoutCommand creates the layout command for computing word positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output, countsFile string
		overwrite          bool
	)

	cmd := &cobra.Command{
		Use:   "layout [file.txt ...]",
		Short: "Compute a tag cloud layout",
		Long: `Compute a tag cloud layout from plain text files, standard input or a
counts file written by 'count -o'.

The output is a layout JSON file (the same format as 'render -f json') that
can be rendered later with 'render' or browsed with 'inspect'. Use -o - to
write it to standard output. An existing output file is kept unless
--overwrite is given.

Results are cached locally for faster subsequent runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolveOptions(cmd, bindLayoutFlags, bindRefreshFlag)
			if err != nil {
				return err
			}
			if countsFile != "" && len(args) > 0 {
				return fmt.Errorf("--counts cannot be combined with text inputs")
			}
			setSources(cmd, args, &opts)

			if output == "" {
				base := outputBase(args)
				if countsFile != "" {
					base = outputBase([]string{countsFile})
				}
				output = base + ".layout.json"
			}
			if output != "-" {
				if err := checkOutputs(overwrite, output); err != nil {
					return err
				}
			}
			return c.runLayout(cmd.Context(), cmd.OutOrStdout(), opts, countsFile, output, overwrite)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().StringVar(&countsFile, "counts", "", "lay out a counts JSON file instead of text")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing output file")
	bindFlags(cmd, bindLayoutFlags, bindRefreshFlag)

	return cmd
}

// runLayout counts the input unless counts are given, computes the layout
// and writes it.
func (c *CLI) runLayout(ctx context.Context, w io.Writer, opts pipeline.Options, countsFile, output string, overwrite bool) error {
	toStdout := output == "-"
	if toStdout {
		defer redirectStatus()()
	}

	runner, err := c.newRunner(ctx, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	counts, err := c.loadCounts(ctx, runner, opts, countsFile)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Placing %s...", plural(len(counts), "word")))
	spinner.Start()
	layout, hit, err := runner.LayoutWithCacheInfo(ctx, counts, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if toStdout {
		return wio.WriteLayout(layout, w)
	}
	data, err := wio.MarshalLayout(layout)
	if err != nil {
		return err
	}
	if err := writeFile(output, data, overwrite); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(len(layout.Words), len(layout.Unplaced), hit)
	printNewline()
	printNextStep("Render", appName+" render "+output)
	return nil
}

// loadCounts reads countsFile, or counts the text sources of opts.
func (c *CLI) loadCounts(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, countsFile string) (cloud.Counts, error) {
	if countsFile != "" {
		counts, err := wio.ReadCountsFile(countsFile)
		if err != nil {
			return nil, fmt.Errorf("load counts %s: %w", countsFile, err)
		}
		return counts, nil
	}
	counts, err := runner.Count(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("count: %w", err)
	}
	return counts, nil
}

// redirectStatus sends status output to stderr while data goes to stdout.
// The returned func restores it.
func redirectStatus() func() {
	prev := stdout
	stdout = stderr
	return func() { stdout = prev }
}
