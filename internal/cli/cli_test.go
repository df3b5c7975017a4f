package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordgraph/pkg/errors"
	"github.com/matzehuels/wordgraph/pkg/pipeline"
)

// captureStatus collects status output for the duration of the test.
func captureStatus(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevErr := stdout, stderr
	stdout, stderr = &buf, &buf
	t.Cleanup(func() { stdout, stderr = prevOut, prevErr })
	return &buf
}

// newTestCLI isolates the cache and settings directories.
func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	return New(io.Discard, LogInfo)
}

// execute runs the root command with args and returns what it wrote to
// standard output.
func execute(t *testing.T, c *CLI, stdin string, args ...string) (string, error) {
	t.Helper()
	captureStatus(t)

	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeText(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	if dir, _ := cacheDir(); dir != filepath.Join("/tmp/xdg", appName) {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q", dir)
	}
}

func TestCacheDirFromSettings(t *testing.T) {
	c := newTestCLI(t)
	cfg := writeText(t, t.TempDir(), "config.toml", "[cache]\ndir = \"/srv/wordgraph-cache\"\n")
	c.configPath = cfg

	dir, err := c.cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != "/srv/wordgraph-cache" {
		t.Errorf("cacheDir() = %q", dir)
	}
}

func TestOutputBase(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{nil, stdinBase},
		{[]string{"-"}, stdinBase},
		{[]string{"speech.txt", "other.txt"}, "speech"},
		{[]string{"dir/cloud.layout.json"}, "dir/cloud"},
		{[]string{"counts.json"}, "counts"},
		{[]string{"README"}, "README"},
	}
	for _, tt := range tests {
		if got := outputBase(tt.args); got != tt.want {
			t.Errorf("outputBase(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"default base", "", []string{"svg", "png"}, map[string]string{"svg": "in.svg", "png": "in.png"}},
		{"single named file", "out/cloud.image", []string{"png"}, map[string]string{"png": "out/cloud.image"}},
		{"base with extension", "out/cloud.svg", []string{"svg", "html"}, map[string]string{"svg": "out/cloud.svg", "html": "out/cloud.html"}},
		{"base without extension", "out/cloud", []string{"svg"}, map[string]string{"svg": "out/cloud.svg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, "in", tt.formats)
			if len(got) != len(tt.want) {
				t.Fatalf("outputPaths() = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("outputPaths()[%s] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestResolveOptionsLayering(t *testing.T) {
	c := newTestCLI(t)
	c.configPath = writeText(t, t.TempDir(), "config.toml", `
[layout]
max_bucket = 10
padding = 0

[render]
style = "paper"
formats = ["png"]
scale = 3.0
`)

	var got pipeline.Options
	cmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			got, err = c.resolveOptions(cmd, bindLayoutFlags, bindRenderFlags)
			return err
		},
	}
	bindFlags(cmd, bindLayoutFlags, bindRenderFlags)
	cmd.SetArgs([]string{"--style", "spectrum", "-f", "SVG,html", "--max-font", "40"})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}

	if got.MaxBucket != 10 || got.Padding != 0 {
		t.Errorf("settings not applied: max bucket %d, padding %v", got.MaxBucket, got.Padding)
	}
	if got.MaxFontSize != 40 || got.MinFontSize != 18 {
		t.Errorf("font sizes = %d..%d, want 18..40", got.MinFontSize, got.MaxFontSize)
	}
	if got.Style != "spectrum" {
		t.Errorf("flag should override settings: style = %q", got.Style)
	}
	if strings.Join(got.Formats, ",") != "svg,html" {
		t.Errorf("formats = %v", got.Formats)
	}
	if got.Scale != 3 {
		t.Errorf("scale = %v, want 3 from settings", got.Scale)
	}
	if got.Logger != c.Logger {
		t.Error("logger not set")
	}
}

func TestConfigMissing(t *testing.T) {
	c := newTestCLI(t)
	_, err := execute(t, c, "a b", "count", "--config", filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestStatsLine(t *testing.T) {
	tests := []struct {
		words, unplaced int
		cached          bool
		want            []string
	}{
		{1, 0, false, []string{"1 word", iconFresh}},
		{42, 3, true, []string{"42 words", "3 unplaced", iconCached}},
		{0, 0, true, []string{iconCached}},
	}
	for _, tt := range tests {
		line := statsLine(tt.words, tt.unplaced, tt.cached)
		for _, w := range tt.want {
			if !strings.Contains(line, w) {
				t.Errorf("statsLine(%d, %d, %v) = %q, missing %q", tt.words, tt.unplaced, tt.cached, line, w)
			}
		}
	}
}
