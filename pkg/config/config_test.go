package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/wordgraph/pkg/cloud"
	"github.com/matzehuels/wordgraph/pkg/errors"
	"github.com/matzehuels/wordgraph/pkg/pipeline"
)

const sampleConfig = `
[layout]
max_bucket = 10
n_largest = 150
padding = 0
font = "fonts/DejaVuSans.ttf"

[render]
formats = ["svg", "png"]
style = "spectrum"
flow = true

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"
prefix = "wg"

[server]
addr = "127.0.0.1:9000"
`

func TestParse(t *testing.T) {
	f, err := Parse(sampleConfig)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if f.Layout.MaxBucket != 10 || f.Layout.NLargest != 150 {
		t.Errorf("Layout = %+v", f.Layout)
	}
	if f.Render.Style != "spectrum" || len(f.Render.Formats) != 2 {
		t.Errorf("Render = %+v", f.Render)
	}
	if f.Cache.Backend != BackendRedis || f.Cache.Prefix != "wg" {
		t.Errorf("Cache = %+v", f.Cache)
	}
	if f.Addr() != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q", f.Addr())
	}
	if !f.Has("layout", "padding") || f.Has("layout", "aspect_width") {
		t.Error("Has() should report exactly the keys present")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"syntax", "[layout\nmax_bucket = 1", errors.ErrCodeInvalidConfiguration},
		{"unknown key", "[layout]\nmax_buckets = 3", errors.ErrCodeInvalidConfiguration},
		{"unknown table", "[colors]\nbg = 1", errors.ErrCodeInvalidConfiguration},
		{"bad format", "[render]\nformats = [\"gif\"]", errors.ErrCodeInvalidFormat},
		{"bad style", "[render]\nstyle = \"neon\"", errors.ErrCodeInvalidStyle},
		{"bad backend", "[cache]\nbackend = \"memcached\"", errors.ErrCodeInvalidConfiguration},
		{"redis without url", "[cache]\nbackend = \"redis\"", errors.ErrCodeInvalidConfiguration},
		{"negative body", "[server]\nmax_body_bytes = -1", errors.ErrCodeInvalidConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestApply(t *testing.T) {
	f, err := Parse(sampleConfig)
	if err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{Config: cloud.DefaultConfig(), Style: "mono", Title: "keep"}
	f.Apply(&opts)

	if opts.MaxBucket != 10 || opts.NLargest != 150 {
		t.Errorf("layout keys not applied: %+v", opts.Config)
	}
	if opts.Padding != 0 {
		t.Errorf("Padding = %v, want explicit 0", opts.Padding)
	}
	if opts.MaxFontSize != cloud.DefaultMaxFontSize {
		t.Errorf("absent key changed MaxFontSize to %d", opts.MaxFontSize)
	}
	if opts.FontPath != "fonts/DejaVuSans.ttf" {
		t.Errorf("FontPath = %q", opts.FontPath)
	}
	if opts.Style != "spectrum" || !opts.Flow {
		t.Errorf("render keys not applied: style=%q flow=%v", opts.Style, opts.Flow)
	}
	if opts.Title != "keep" {
		t.Errorf("absent key changed Title to %q", opts.Title)
	}

	// Formats are copied, not shared.
	opts.Formats[0] = "json"
	if f.Render.Formats[0] != "svg" {
		t.Error("Apply() shares the formats slice")
	}
}

func TestEmptyFileAppliesNothing(t *testing.T) {
	opts := pipeline.Options{Config: cloud.DefaultConfig()}
	(&File{}).Apply(&opts)
	if opts.Config != cloud.DefaultConfig() {
		t.Errorf("empty file changed options: %+v", opts.Config)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wordgraph.toml")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.Path() != path {
		t.Errorf("Path() = %q", f.Path())
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	f, err := LoadDefault()
	if err != nil {
		t.Fatalf("missing default file should not fail: %v", err)
	}
	if f.Addr() != DefaultAddr {
		t.Errorf("Addr() = %q", f.Addr())
	}

	if err := os.MkdirAll(filepath.Join(dir, "wordgraph"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "wordgraph", "config.toml"), []byte("[render]\nstyle = \"paper\""), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err = LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	if f.Render.Style != "paper" {
		t.Errorf("Style = %q", f.Render.Style)
	}
}

func TestLoadExample(t *testing.T) {
	f, err := Load(filepath.Join("..", "..", "examples", "config.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	var opts pipeline.Options
	opts.SetLayoutDefaults()
	f.Apply(&opts)

	if opts.MaxBucket != 12 || opts.NLargest != 120 {
		t.Errorf("layout = %+v", opts.Config)
	}
	if opts.Padding != cloud.DefaultCanvasPadding {
		t.Errorf("Padding = %v, want default", opts.Padding)
	}
	if got := f.Addr(); got != "127.0.0.1:8080" {
		t.Errorf("Addr() = %q", got)
	}
}
