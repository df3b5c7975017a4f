package styles

import (
	"testing"

	"github.com/matzehuels/wordgraph/pkg/errors"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		p, err := Lookup(name)
		if err != nil {
			t.Errorf("Lookup(%q) error: %v", name, err)
		}
		if p.Name != name {
			t.Errorf("Lookup(%q).Name = %q", name, p.Name)
		}
	}

	p, err := Lookup("")
	if err != nil || p.Name != Default {
		t.Errorf("Lookup(\"\") = %q, %v; want default", p.Name, err)
	}

	if _, err := Lookup("neon"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("error = %v, want INVALID_STYLE", err)
	}
	if Valid("neon") || !Valid(Spectrum) {
		t.Error("Valid() mismatch")
	}
}

func TestMonoIsWhiteOnBlack(t *testing.T) {
	p, _ := Lookup(Mono)
	if got := p.Hex(1, 20); got != "#ffffff" {
		t.Errorf("Hex(1) = %s, want #ffffff", got)
	}
	if got := p.Hex(20, 20); got != "#ffffff" {
		t.Errorf("Hex(20) = %s, want #ffffff", got)
	}
	if got := p.Background.Hex(); got != "#000000" {
		t.Errorf("background = %s, want #000000", got)
	}
	if bg := p.BackgroundRGBA(); bg.A != 255 || bg.R != 0 {
		t.Errorf("BackgroundRGBA() = %v", bg)
	}
}

func TestSpectrumEndpoints(t *testing.T) {
	p, _ := Lookup(Spectrum)
	if got, want := p.Hex(1, 10), p.From.Hex(); got != want {
		t.Errorf("bucket 1 = %s, want %s", got, want)
	}
	if got, want := p.Hex(10, 10), p.To.Hex(); got != want {
		t.Errorf("bucket 10 = %s, want %s", got, want)
	}
	if p.Hex(5, 10) == p.Hex(1, 10) {
		t.Error("middle bucket should differ from the first")
	}
	if got, want := p.Hex(3, 1), p.To.Hex(); got != want {
		t.Errorf("single bucket = %s, want %s", got, want)
	}
}

func TestOccurrences(t *testing.T) {
	tests := map[int]string{1: "1 occurrence", 2: "2 occurrences", 40: "40 occurrences"}
	for n, want := range tests {
		if got := Occurrences(n); got != want {
			t.Errorf("Occurrences(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestEscapeXML(t *testing.T) {
	if got := EscapeXML(`<a&"b">`); got != "&lt;a&amp;&#34;b&#34;&gt;" {
		t.Errorf("EscapeXML() = %q", got)
	}
}
