package tokenize

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/wordgraph/pkg/cloud"
	"github.com/matzehuels/wordgraph/pkg/errors"
)

// Supported reports whether path has an extension CountFile can read.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text":
		return true
	}
	return false
}

func checkType(path string) error {
	if Supported(path) {
		return nil
	}
	if strings.EqualFold(filepath.Ext(path), ".docx") {
		return errors.New(errors.ErrCodeUnsupported, "docx not supported yet: %s", path)
	}
	return errors.New(errors.ErrCodeUnsupported, "file type not supported: %s", path)
}

// CountFile counts the words of a plain text file (.txt or .text).
func CountFile(path string) (cloud.Counts, error) {
	c := NewCounter()
	if err := c.AddFile(path); err != nil {
		return nil, err
	}
	return c.Counts(), nil
}

// CountFiles counts the words of several text files into one list.
func CountFiles(paths ...string) (cloud.Counts, error) {
	c := NewCounter()
	for _, p := range paths {
		if err := c.AddFile(p); err != nil {
			return nil, err
		}
	}
	return c.Counts(), nil
}

// AddFile counts the words of a text file.
func (c *Counter) AddFile(path string) error {
	data, err := ReadFile(path)
	if err != nil {
		return err
	}
	return c.AddReader(bytes.NewReader(data))
}

// ReadFile returns the contents of a text file CountFile accepts, with the
// same errors.
func ReadFile(path string) ([]byte, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if err := checkType(path); err != nil {
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
