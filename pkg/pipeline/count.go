package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordgraph/pkg/cache"
	"github.com/matzehuels/wordgraph/pkg/cloud"
	"github.com/matzehuels/wordgraph/pkg/errors"
	"github.com/matzehuels/wordgraph/pkg/tokenize"
)

// Source is one named text input.
type Source struct {
	Name string
	Data []byte
}

// ReadSources loads the text selected by opts: the inline Text, the Reader,
// or every file in Paths in order.
func ReadSources(opts Options) ([]Source, error) {
	switch {
	case opts.Text != "":
		return []Source{{Name: "text", Data: []byte(opts.Text)}}, nil
	case opts.Reader != nil:
		data, err := io.ReadAll(opts.Reader)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read input")
		}
		return []Source{{Name: "stdin", Data: data}}, nil
	}

	sources := make([]Source, 0, len(opts.Paths))
	for _, p := range opts.Paths {
		data, err := tokenize.ReadFile(p)
		if err != nil {
			return nil, err
		}
		sources = append(sources, Source{Name: p, Data: data})
	}
	return sources, nil
}

// SourceHash hashes the contents of sources in order. Names are ignored, so
// the same text read from different files shares a hash.
func SourceHash(sources []Source) string {
	sums := make([]string, len(sources))
	for i, s := range sources {
		sums[i] = cache.Hash(s.Data)
	}
	h, _ := cache.HashJSON(sums)
	return h
}

// CountSources tokenizes sources into a single count list.
func CountSources(sources []Source, logger *log.Logger) (cloud.Counts, error) {
	c := tokenize.NewCounter()
	for _, s := range sources {
		if err := c.AddReader(bytes.NewReader(s.Data)); err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}
	}
	if logger != nil {
		logger.Debug("counted tokens", "sources", len(sources), "tokens", c.Len(), "skipped", c.Skipped())
	}
	return c.Counts(), nil
}

// sourceName describes the input for hooks and logs.
func sourceName(opts Options) string {
	switch {
	case opts.Text != "":
		return "text"
	case opts.Reader != nil:
		return "stdin"
	default:
		return strings.Join(opts.Paths, ",")
	}
}
