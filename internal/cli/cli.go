// Package cli implements the wordgraph command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordgraph/pkg/buildinfo"
	"github.com/matzehuels/wordgraph/pkg/cache"
	"github.com/matzehuels/wordgraph/pkg/config"
	"github.com/matzehuels/wordgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "wordgraph"

	// stdinBase names outputs of clouds read from standard input.
	stdinBase = "wordgraph"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
	settings   *config.File
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Wordgraph lays out word frequencies as tag clouds",
		Long: `Wordgraph counts the words of plain text files and lays them out as a tag
cloud: frequent words are drawn larger and packed around the canvas centre
without overlapping. Clouds render to SVG, PNG, PDF, HTML and JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "settings file (default: $XDG_CONFIG_HOME/wordgraph/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable caching")

	root.AddCommand(c.countCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.fontsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Settings
// =============================================================================

// loadSettings reads the settings file once. An explicit --config must exist;
// the default location may be absent.
func (c *CLI) loadSettings() (*config.File, error) {
	if c.settings != nil {
		return c.settings, nil
	}
	var (
		f   *config.File
		err error
	)
	if c.configPath != "" {
		f, err = config.Load(c.configPath)
	} else {
		f, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if f.Path() != "" {
		c.Logger.Debug("loaded settings", "path", f.Path())
	}
	c.settings = f
	return f, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
// A nil keyer uses the default key layout.
func (c *CLI) newRunner(ctx context.Context, keyer cache.Keyer) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	settings, err := c.loadSettings()
	if err != nil {
		return nil, err
	}

	switch settings.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			URL:    settings.Cache.RedisURL,
			Prefix: settings.Cache.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("connect cache: %w", err)
		}
		return rc, nil
	default:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory or the default one.
func (c *CLI) cacheDir() (string, error) {
	if settings, err := c.loadSettings(); err == nil && settings.Cache.Dir != "" {
		return settings.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/wordgraph/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// outputBase derives the output path stem from the first input.
func outputBase(args []string) string {
	if len(args) == 0 || args[0] == "-" {
		return stdinBase
	}
	name := args[0]
	if strings.HasSuffix(name, ".layout.json") {
		return strings.TrimSuffix(name, ".layout.json")
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// =============================================================================
// Options Helpers
// =============================================================================

// setCLIDefaults applies the pipeline defaults the flags start from.
func setCLIDefaults(opts *pipeline.Options) {
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()
}

// setSources reads text from args, or from stdin when args is empty or "-".
func setSources(cmd *cobra.Command, args []string, opts *pipeline.Options) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		opts.Reader = cmd.InOrStdin()
		return
	}
	opts.Paths = args
}
