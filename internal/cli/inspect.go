package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	wio "github.com/matzehuels/wordgraph/pkg/io"
	"github.com/matzehuels/wordgraph/pkg/render/styles"
)

// inspectCommand creates the interactive layout viewer.
func (c *CLI) inspectCommand() *cobra.Command {
	style := styles.Spectrum

	cmd := &cobra.Command{
		Use:   "inspect [layout.json | file.txt ...]",
		Short: "Browse the words of a layout interactively",
		Long: `Browse a tag cloud layout in the terminal: every placed word with its
count, size bucket, font size and position, and the words that did not fit.

A single .json argument is read as a saved layout; text inputs are counted
and laid out first with the layout flags. Standard input stays attached to
the terminal, so text cannot be piped in.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			palette, err := styles.Lookup(style)
			if err != nil {
				return err
			}
			layout, err := c.inspectLayout(cmd, args)
			if err != nil {
				return err
			}

			p := tea.NewProgram(NewLayoutModel(layout, palette),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&style, "style", style, "palette used to color words")
	bindFlags(cmd, bindLayoutFlags)

	return cmd
}

func (c *CLI) inspectLayout(cmd *cobra.Command, args []string) (wio.Layout, error) {
	if (renderRun{args: args}).fromLayout() {
		l, err := wio.ReadLayoutFile(args[0])
		if err != nil {
			return l, fmt.Errorf("load layout %s: %w", args[0], err)
		}
		return l, nil
	}

	ctx := cmd.Context()
	opts, err := c.resolveOptions(cmd, bindLayoutFlags)
	if err != nil {
		return wio.Layout{}, err
	}
	setSources(cmd, args, &opts)

	runner, err := c.newRunner(ctx, nil)
	if err != nil {
		return wio.Layout{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	counts, err := c.loadCounts(ctx, runner, opts, "")
	if err != nil {
		return wio.Layout{}, err
	}
	l, err := runner.Layout(ctx, counts, opts)
	if err != nil {
		return l, fmt.Errorf("compute layout: %w", err)
	}
	return l, nil
}
