package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/wordgraph/pkg/cloud"
	"github.com/matzehuels/wordgraph/pkg/errors"
)

// UnmarshalLayout deserializes JSON bytes into a Layout.
//
// The canvas must have positive dimensions and every word must have a
// non-empty text and non-negative size.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "unmarshal layout")
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat,
			"layout canvas must be positive, got %gx%g", l.Width, l.Height)
	}
	for i, w := range l.Words {
		if w.Text == "" {
			return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "word %d has no text", i)
		}
		if w.Width < 0 || w.Height < 0 || w.FontSize < 0 {
			return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "word %q has negative size", w.Text)
		}
	}
	return l, nil
}

// ReadLayout decodes a Layout from r.
func ReadLayout(r io.Reader) (Layout, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "read layout")
	}
	return UnmarshalLayout(data)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := readFile(path)
	if err != nil {
		return Layout{}, err
	}
	return UnmarshalLayout(data)
}

// ReadCounts decodes and validates an ordered JSON array of counts from r.
func ReadCounts(r io.Reader) (cloud.Counts, error) {
	var counts cloud.Counts
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&counts); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode counts")
	}
	if err := counts.Validate(); err != nil {
		return nil, err
	}
	return counts, nil
}

// UnmarshalCounts parses and validates counts produced by MarshalCounts or
// WriteCounts.
func UnmarshalCounts(data []byte) (cloud.Counts, error) {
	return ReadCounts(bytes.NewReader(data))
}

// ReadCountsFile reads counts from a JSON file.
func ReadCountsFile(path string) (cloud.Counts, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return UnmarshalCounts(data)
}

func readFile(path string) ([]byte, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	return data, nil
}
