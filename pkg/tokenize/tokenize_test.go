package tokenize

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/wordgraph/pkg/cloud"
	"github.com/matzehuels/wordgraph/pkg/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Word", "word"},
		{"HELLO", "hello"},
		{"end.", "end"},
		{"(aside)", "aside"},
		{"\"quoted\"", "quoted"},
		{"'single'", "single"},
		{"<tag>", "tag"},
		{"[x]", "x"},
		{"{y}", "y"},
		{"`code`", "code"},
		{"what?!", "what"},
		{"a,b", "a,b"},
		{"example.com", "example.com"},
		{"...", ""},
		{"(", ""},
		{"Über", "über"},
		{"don't", "don't"},
		{")odd(", ")odd("},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		name string
		text string
		want cloud.Counts
	}{
		{"one letter", "a", cloud.Counts{{Text: "a", Count: 1}}},
		{"multiple words", "a b a", cloud.Counts{{Text: "a", Count: 2}, {Text: "b", Count: 1}}},
		{"uppercase folds", "A b a C", cloud.Counts{{Text: "a", Count: 2}, {Text: "b", Count: 1}, {Text: "c", Count: 1}}},
		{
			"punctuation ignored",
			"a. (b) c! 'a' \"b\" c; [a] {b} <c>",
			cloud.Counts{{Text: "a", Count: 3}, {Text: "b", Count: 3}, {Text: "c", Count: 3}},
		},
		{"links and csv kept", "a a,b b c.d", cloud.Counts{{Text: "a", Count: 1}, {Text: "a,b", Count: 1}, {Text: "b", Count: 1}, {Text: "c.d", Count: 1}}},
		{
			"all whitespace",
			"a\tb\nc  d\r\ne\vf\fg h",
			cloud.Counts{{Text: "a", Count: 1}, {Text: "b", Count: 1}, {Text: "c", Count: 1}, {Text: "d", Count: 1}, {Text: "e", Count: 1}, {Text: "f", Count: 1}, {Text: "g", Count: 1}, {Text: "h", Count: 1}},
		},
		{"empty", "  \n\t", cloud.Counts{}},
		{"first appearance order", "z y z x y z", cloud.Counts{{Text: "z", Count: 3}, {Text: "y", Count: 2}, {Text: "x", Count: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Count(strings.NewReader(tt.text))
			if err != nil {
				t.Fatalf("Count() error: %v", err)
			}
			if !equalCounts(got, tt.want) {
				t.Errorf("Count() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCounterSkipsPunctuationOnly(t *testing.T) {
	c := NewCounter()
	if err := c.AddReader(strings.NewReader("word ... -- !? word")); err != nil {
		t.Fatal(err)
	}
	// "--" is not stripped punctuation, so it is a token.
	want := cloud.Counts{{Text: "word", Count: 2}, {Text: "--", Count: 1}}
	if !equalCounts(c.Counts(), want) {
		t.Errorf("Counts() = %v, want %v", c.Counts(), want)
	}
	if c.Skipped() != 2 {
		t.Errorf("Skipped() = %d, want 2", c.Skipped())
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestCountsValidForLayout(t *testing.T) {
	got, err := Count(strings.NewReader("The quick brown fox, the lazy dog. THE END"))
	if err != nil {
		t.Fatal(err)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("tokenized counts should validate: %v", err)
	}
	if got[0].Text != "the" || got[0].Count != 3 {
		t.Errorf("first = %+v, want the:3", got[0])
	}
}

func TestMerge(t *testing.T) {
	got := Merge(
		cloud.Counts{{Text: "a", Count: 2}, {Text: "b", Count: 1}},
		cloud.Counts{{Text: "c", Count: 4}, {Text: "a", Count: 1}},
		nil,
	)
	want := cloud.Counts{{Text: "a", Count: 3}, {Text: "b", Count: 1}, {Text: "c", Count: 4}}
	if !equalCounts(got, want) {
		t.Errorf("Merge() = %v, want %v", got, want)
	}
}

func TestCountFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, text string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	txt := write("one.txt", "Alpha beta alpha")
	text := write("two.TEXT", "beta gamma")

	got, err := CountFile(txt)
	if err != nil {
		t.Fatalf("CountFile() error: %v", err)
	}
	if !equalCounts(got, cloud.Counts{{Text: "alpha", Count: 2}, {Text: "beta", Count: 1}}) {
		t.Errorf("CountFile() = %v", got)
	}

	merged, err := CountFiles(txt, text)
	if err != nil {
		t.Fatal(err)
	}
	if !equalCounts(merged, cloud.Counts{{Text: "alpha", Count: 2}, {Text: "beta", Count: 2}, {Text: "gamma", Count: 1}}) {
		t.Errorf("CountFiles() = %v", merged)
	}
}

func TestCountFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		code errors.Code
		msg  string
	}{
		{"docx", filepath.Join(dir, "report.docx"), errors.ErrCodeUnsupported, "docx not supported yet"},
		{"other type", filepath.Join(dir, "image.png"), errors.ErrCodeUnsupported, "file type not supported"},
		{"missing", filepath.Join(dir, "absent.txt"), errors.ErrCodeFileNotFound, "file not found"},
		{"empty path", "", errors.ErrCodeInvalidPath, "path cannot be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CountFile(tt.path)
			if !errors.Is(err, tt.code) {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error %q should mention %q", err, tt.msg)
			}
		})
	}
}

func TestSupported(t *testing.T) {
	for path, want := range map[string]bool{
		"a.txt": true, "b.TXT": true, "c.text": true,
		"d.docx": false, "e.md": false, "noext": false,
	} {
		if got := Supported(path); got != want {
			t.Errorf("Supported(%q) = %v, want %v", path, got, want)
		}
	}
}

func equalCounts(a, b cloud.Counts) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
