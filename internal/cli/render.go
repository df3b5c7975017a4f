package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordgraph/pkg/errors"
	wio "github.com/matzehuels/wordgraph/pkg/io"
	"github.com/matzehuels/wordgraph/pkg/pipeline"
)

// renderCommand creates the render command, which runs the whole pipeline
// or re-renders a saved layout.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output, countsFile string
		overwrite          bool
	)

	cmd := &cobra.Command{
		Use:   "render [file.txt ... | layout.json]",
		Short: "Render a tag cloud to SVG, PNG, PDF, HTML or JSON",
		Long: `Render a tag cloud.

Text inputs (files or standard input) run through count, layout and render.
A single .json argument is taken as a layout written by 'layout' and is only
re-rendered, so styles and formats can be changed without placing the words
again. --counts lays out a counts file written by 'count -o'.

With one format, -o names the output file; with several it is the base path
and each format adds its extension. Use -o - to write a single format to
standard output. Existing files are kept unless --overwrite is given. PDF
output needs rsvg-convert on the PATH.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.resolveOptions(cmd, bindLayoutFlags, bindRenderFlags, bindRefreshFlag)
			if err != nil {
				return err
			}
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if output == "-" && len(opts.Formats) != 1 {
				return fmt.Errorf("-o - needs exactly one format, got %d", len(opts.Formats))
			}
			if countsFile != "" && len(args) > 0 {
				return fmt.Errorf("--counts cannot be combined with other inputs")
			}

			base := outputBase(args)
			if countsFile != "" {
				base = outputBase([]string{countsFile})
			}
			r := renderRun{opts: opts, args: args, countsFile: countsFile, output: output, base: base, overwrite: overwrite}
			return c.runRender(cmd, r)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (several formats)")
	cmd.Flags().StringVar(&countsFile, "counts", "", "lay out a counts JSON file instead of text")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing output files")
	bindFlags(cmd, bindLayoutFlags, bindRenderFlags, bindRefreshFlag)

	return cmd
}

// renderRun holds the resolved inputs of one render invocation.
type renderRun struct {
	opts       pipeline.Options
	args       []string
	countsFile string
	output     string
	base       string
	overwrite  bool
}

// fromLayout reports whether the input is a saved layout.
func (r renderRun) fromLayout() bool {
	return len(r.args) == 1 && strings.EqualFold(filepath.Ext(r.args[0]), ".json")
}

func (c *CLI) runRender(cmd *cobra.Command, r renderRun) error {
	ctx := cmd.Context()
	var paths map[string]string
	if r.output == "-" {
		defer redirectStatus()()
	} else {
		paths = outputPaths(r.output, r.base, r.opts.Formats)
		if err := checkOutputs(r.overwrite, slices.Collect(maps.Values(paths))...); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, nil)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering "+strings.Join(r.opts.Formats, ", ")+"...")
	spinner.Start()
	layout, artifacts, hit, err := c.renderArtifacts(ctx, runner, cmd, r)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if r.output == "-" {
		_, err := cmd.OutOrStdout().Write(artifacts[r.opts.Formats[0]])
		return err
	}

	if err := writeArtifacts(artifacts, paths, r.overwrite); err != nil {
		return err
	}

	printSuccess("Rendered %s", plural(len(paths), "file"))
	for _, f := range r.opts.Formats {
		printFile(paths[f])
	}
	printStats(len(layout.Words), len(layout.Unplaced), hit)
	if len(layout.Unplaced) > 0 {
		printWarning("%s did not fit; try a larger --padding or --top", plural(len(layout.Unplaced), "word"))
	}
	c.Logger.Debug("render finished", "elapsed", prog.elapsed())
	return nil
}

// renderArtifacts produces the layout and the requested artifacts. hit is
// true when every stage that ran was served from the cache.
func (c *CLI) renderArtifacts(ctx context.Context, runner *pipeline.Runner, cmd *cobra.Command, r renderRun) (wio.Layout, map[string][]byte, bool, error) {
	opts := r.opts

	switch {
	case r.fromLayout():
		layout, err := wio.ReadLayoutFile(r.args[0])
		if err != nil {
			return layout, nil, false, fmt.Errorf("load layout %s: %w", r.args[0], err)
		}
		artifacts, hit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
		if err != nil {
			return layout, nil, false, fmt.Errorf("render: %w", err)
		}
		return layout, artifacts, hit, nil

	case r.countsFile != "":
		counts, err := c.loadCounts(ctx, runner, opts, r.countsFile)
		if err != nil {
			return wio.Layout{}, nil, false, err
		}
		layout, layoutHit, err := runner.LayoutWithCacheInfo(ctx, counts, opts)
		if err != nil {
			return layout, nil, false, fmt.Errorf("compute layout: %w", err)
		}
		artifacts, renderHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
		if err != nil {
			return layout, nil, false, fmt.Errorf("render: %w", err)
		}
		return layout, artifacts, layoutHit && renderHit, nil

	default:
		setSources(cmd, r.args, &opts)
		res, err := runner.Execute(ctx, opts)
		if err != nil {
			return wio.Layout{}, nil, false, err
		}
		ci := res.CacheInfo
		return res.Layout, res.Artifacts, ci.CountHit && ci.LayoutHit && ci.RenderHit, nil
	}
}

// outputPaths maps each format to its output file. A single format written
// to an output with an extension uses that name verbatim.
func outputPaths(output, base string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	if output != "" {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

func writeArtifacts(artifacts map[string][]byte, paths map[string]string, overwrite bool) error {
	formats := make([]string, 0, len(paths))
	for f := range paths {
		formats = append(formats, f)
	}
	slices.Sort(formats)

	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok {
			return fmt.Errorf("no %s output was rendered", f)
		}
		if err := writeFile(paths[f], data, overwrite); err != nil {
			return err
		}
	}
	return nil
}

// checkOutputs fails on the first path that already exists, unless
// overwrite is set. It runs before any work so a refused run leaves no
// partial output behind.
func checkOutputs(overwrite bool, paths ...string) error {
	if overwrite {
		return nil
	}
	slices.Sort(paths)
	for _, path := range paths {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			return outputExists(path)
		case !os.IsNotExist(err):
			return fmt.Errorf("check output %s: %w", path, err)
		}
	}
	return nil
}

// writeFile writes data to path, creating parent directories. Without
// overwrite an existing file is an error and is left untouched.
func writeFile(path string, data []byte, overwrite bool) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flag, 0o644)
	if os.IsExist(err) {
		return outputExists(path)
	}
	if err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

func outputExists(path string) error {
	return errors.New(errors.ErrCodeInvalidPath, "%s already exists (use --overwrite to replace it)", path)
}
