package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordgraph/pkg/cloud"
	wio "github.com/matzehuels/wordgraph/pkg/io"
	"github.com/matzehuels/wordgraph/pkg/pipeline"
)

const defaultCountRows = 25

// countCommand creates the count command for word frequency tables.
func (c *CLI) countCommand() *cobra.Command {
	var (
		output    string
		asJSON    bool
		rows      int
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "count [file.txt ...]",
		Short: "Count the words of plain text files",
		Long: `Count the words of one or more plain text files (.txt, .text).

Words are split on whitespace, lower-cased and stripped of surrounding
punctuation. Counts keep the order in which words first appear. Without
arguments, or with "-", text is read from standard input.

The counts can be saved with -o and passed to 'layout --counts' later. An
existing file is kept unless --overwrite is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolveOptions(cmd, bindRefreshFlag)
			if err != nil {
				return err
			}
			setSources(cmd, args, &opts)
			if output != "" {
				if err := checkOutputs(overwrite, output); err != nil {
					return err
				}
			}
			return c.runCount(cmd.Context(), cmd.OutOrStdout(), opts, countOutput{path: output, overwrite: overwrite}, asJSON, rows)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write counts JSON to this file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print counts JSON instead of a table")
	cmd.Flags().IntVar(&rows, "rows", defaultCountRows, "table rows to show (0 shows all)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace an existing -o file")
	bindFlags(cmd, bindRefreshFlag)

	return cmd
}

// countOutput is the file counts are saved to; an empty path prints them.
type countOutput struct {
	path      string
	overwrite bool
}

func (c *CLI) runCount(ctx context.Context, w io.Writer, opts pipeline.Options, out countOutput, asJSON bool, rows int) error {
	runner, err := c.newRunner(ctx, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	counts, hit, err := runner.CountWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}

	switch {
	case out.path != "":
		data, err := wio.MarshalCounts(counts)
		if err != nil {
			return err
		}
		if err := writeFile(out.path, data, out.overwrite); err != nil {
			return err
		}
		printSuccess("Counted %s", plural(len(counts), "distinct word"))
		printFile(out.path)
		printStats(0, 0, hit)
		printNewline()
		printNextStep("Layout", appName+" layout --counts "+out.path)
	case asJSON:
		return wio.WriteCounts(counts, w)
	default:
		fmt.Fprintln(w, countTable(counts, rows))
		if rows > 0 && len(counts) > rows {
			fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("  … %d more", len(counts)-rows)))
		}
	}
	return nil
}

// countTable renders the most frequent words, ties in first-appearance
// order, as a bordered table.
func countTable(counts cloud.Counts, rows int) string {
	sorted := counts.Ranked()
	if rows > 0 && len(sorted) > rows {
		sorted = sorted[:rows]
	}

	data := make([][]string, len(sorted))
	for i, tc := range sorted {
		data[i] = []string{strconv.Itoa(i + 1), tc.Text, strconv.Itoa(tc.Count)}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "Word", "Count").
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 2:
				return StyleNumber.Align(lipgloss.Right)
			case col == 0:
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}
