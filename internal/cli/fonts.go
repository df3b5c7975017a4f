package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordgraph/pkg/fonts"
)

// fontsCommand creates the fonts command for checking font files.
func (c *CLI) fontsCommand() *cobra.Command {
	var (
		index   int
		measure string
		size    float64
	)

	cmd := &cobra.Command{
		Use:   "fonts [font.ttf | fonts.ttc]",
		Short: "Show font details and list the faces of a collection",
		Long: `Show the name, family and design grid of a font. Without an argument the
embedded Go Regular font is shown. For a TrueType collection (.ttc) every
face is listed with the index to pass to --font-index.

--measure prints the box a word gets at --size with that font.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			if strings.EqualFold(filepath.Ext(path), ".ttc") && !cmd.Flags().Changed("font-index") && measure == "" {
				return listCollection(cmd, path)
			}

			f, err := fonts.LoadOrDefault(path, index, fonts.WithMissingGlyph(func(err error) {
				c.Logger.Warn("missing glyph", "err", err)
			}))
			if err != nil {
				return err
			}

			source := path
			if source == "" {
				source = "embedded"
			}
			printKeyValue("Name", f.Name())
			printKeyValue("Family", f.Family())
			printKeyValue("Units/em", strconv.Itoa(f.UnitsPerEm()))
			printKeyValue("Source", source)

			if measure != "" {
				w, h := f.Measure(measure, size)
				printNewline()
				printKeyValue("Word", measure)
				printKeyValue("Box", fmt.Sprintf("%.2f × %.2f px at %gpx", w, h, size))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&index, "font-index", 0, "face index within a .ttc collection")
	cmd.Flags().StringVar(&measure, "measure", "", "measure a word with the font")
	cmd.Flags().Float64Var(&size, "size", 48, "font size for --measure")

	return cmd
}

func listCollection(cmd *cobra.Command, path string) error {
	faces, err := fonts.Collection(path)
	if err != nil {
		return err
	}

	rows := make([][]string, len(faces))
	for i, f := range faces {
		rows[i] = []string{strconv.Itoa(f.Index), f.Name, f.Family}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Index", "Name", "Family").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0:
				return StyleNumber
			}
			return StyleValue
		})

	fmt.Fprintln(cmd.OutOrStdout(), t.Render())
	printNextStep("Use a face", appName+" render --font "+path+" --font-index N")
	return nil
}
