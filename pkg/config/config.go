// Package config loads wordgraph.toml settings files.
//
// A settings file has four optional tables:
//
//	[layout]
//	max_bucket = 20
//	min_font_size = 18
//	max_font_size = 72
//	n_largest = 150
//	font = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
//
//	[render]
//	formats = ["svg", "png"]
//	style = "spectrum"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//
// Only keys present in the file are applied, so a file that sets padding = 0
// overrides the default padding while a file without the key leaves it alone.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wordgraph/pkg/cloud"
	"github.com/matzehuels/wordgraph/pkg/errors"
	"github.com/matzehuels/wordgraph/pkg/pipeline"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// DefaultAddr is the listen address of the HTTP server.
const DefaultAddr = ":8080"

// File is a parsed settings file.
type File struct {
	Layout Layout `toml:"layout"`
	Render Render `toml:"render"`
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`

	path string
	meta toml.MetaData
}

// Layout holds the [layout] table.
type Layout struct {
	cloud.Config
	Font          string `toml:"font"`
	FontIndex     int    `toml:"font_index"`
	ApproxMetrics bool   `toml:"approx_metrics"`
	Workers       int    `toml:"workers"`
}

// Render holds the [render] table.
type Render struct {
	Formats   []string `toml:"formats"`
	Style     string   `toml:"style"`
	Scale     float64  `toml:"scale"`
	Flow      bool     `toml:"flow"`
	Seed      uint64   `toml:"seed"`
	EmbedFont bool     `toml:"embed_font"`
	Boxes     bool     `toml:"boxes"`
	Title     string   `toml:"title"`
}

// Cache holds the [cache] table.
type Cache struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

// Server holds the [server] table.
type Server struct {
	Addr         string `toml:"addr"`
	MaxBodyBytes int64  `toml:"max_body_bytes"`
}

// DefaultPath returns $XDG_CONFIG_HOME/wordgraph/config.toml, falling back
// to the platform config directory.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		if dir, err = os.UserConfigDir(); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "locate config directory")
		}
	}
	return filepath.Join(dir, "wordgraph", "config.toml"), nil
}

// Load parses the settings file at path.
func Load(path string) (*File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	f, err := Parse(string(data))
	if err != nil {
		return nil, err
	}
	f.path = path
	return f, nil
}

// LoadDefault loads the file at DefaultPath. A missing file yields an empty
// File and no error.
func LoadDefault() (*File, error) {
	path, err := DefaultPath()
	if err != nil {
		return &File{}, nil
	}
	f, err := Load(path)
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return &File{}, nil
	}
	return f, err
}

// Parse decodes and validates settings from TOML text. Unknown keys are an
// error so typos do not go unnoticed.
func Parse(data string) (*File, error) {
	var f File
	md, err := toml.Decode(data, &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	f.meta = md
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Path returns the file the settings were loaded from, or "".
func (f *File) Path() string { return f.path }

// Has reports whether key was set in the file, e.g. Has("layout", "padding").
func (f *File) Has(key ...string) bool {
	return f.meta.IsDefined(key...)
}

// Validate checks values that can be checked without the rest of the
// pipeline options.
func (f *File) Validate() error {
	if err := pipeline.ValidateFormats(f.Render.Formats); err != nil {
		return err
	}
	if f.Has("render", "style") {
		if err := pipeline.ValidateStyle(f.Render.Style); err != nil {
			return err
		}
	}
	switch f.Cache.Backend {
	case "", BackendFile, BackendNone:
	case BackendRedis:
		if f.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfiguration, "cache backend redis needs redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"unknown cache backend %q (must be one of: file, redis, none)", f.Cache.Backend)
	}
	if f.Server.MaxBodyBytes < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration, "max_body_bytes must not be negative")
	}
	return nil
}

// Addr returns the server listen address.
func (f *File) Addr() string {
	if f.Server.Addr == "" {
		return DefaultAddr
	}
	return f.Server.Addr
}
