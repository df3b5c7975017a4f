package cloud

import (
	"testing"

	"github.com/matzehuels/wordgraph/pkg/errors"
)

func TestRemap(t *testing.T) {
	tests := []struct {
		name                 string
		a, b, c, d, v, want float64
	}{
		{"low end", 1, 20, 12, 48, 1, 12},
		{"high end", 1, 20, 12, 48, 20, 48},
		{"midpoint", 0, 10, 0, 100, 5, 50},
		{"degenerate source", 1, 1, 18, 72, 1, 18},
		{"extrapolate", 0, 1, 0, 10, 2, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Remap(tt.a, tt.b, tt.c, tt.d, tt.v); got != tt.want {
				t.Errorf("Remap() = %v, want %v", got, tt.want)
			}
		})
	}

	if InvLerp(3, 3, 7) != 0 {
		t.Error("InvLerp with a == b should be 0")
	}
	if Lerp(2, 4, 0.5) != 3 {
		t.Error("Lerp(2, 4, 0.5) should be 3")
	}
}

func TestBucket(t *testing.T) {
	tests := []struct {
		name                           string
		count, minCount, maxCount, max int
		want                           int
	}{
		{"at minimum", 1, 1, 10, 20, 1},
		{"below minimum", 0, 1, 10, 20, 1},
		{"at maximum", 10, 1, 10, 20, 20},
		{"rounds up", 2, 1, 10, 20, 3}, // ceil(20/9)
		{"single distinct count", 5, 5, 5, 20, 1},
		{"span of one", 6, 5, 6, 20, 20},
		{"one bucket", 9, 1, 10, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bucket(tt.count, tt.minCount, tt.maxCount, tt.max); got != tt.want {
				t.Errorf("Bucket() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestNormalizeTwoTokens(t *testing.T) {
	cfg := Config{MaxBucket: 20, MinFontSize: 12, MaxFontSize: 48}
	got, err := Normalize(Counts{{"b", 1}, {"a", 10}}, cfg)
	if err != nil {
		t.Fatalf("Normalize() error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	a, b := got[0], got[1]
	if a.Text != "a" || a.Bucket != 20 || a.FontSize != 48 {
		t.Errorf("a = %+v, want bucket 20 font 48", a)
	}
	if b.Text != "b" || b.Bucket != 1 || b.FontSize != 12 {
		t.Errorf("b = %+v, want bucket 1 font 12", b)
	}
}

func TestNormalizeSingleBucketUsesMinFont(t *testing.T) {
	cfg := Config{MaxBucket: 1, MinFontSize: 18, MaxFontSize: 72}
	got, err := Normalize(Counts{{"x", 3}, {"y", 9}}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	for _, tok := range got {
		if tok.Bucket != 1 || tok.FontSize != 18 {
			t.Errorf("%s: bucket %d font %d, want 1/18", tok.Text, tok.Bucket, tok.FontSize)
		}
	}
}

func TestNormalizeOrderStableDescending(t *testing.T) {
	counts := Counts{{"c", 2}, {"a", 5}, {"d", 2}, {"b", 5}, {"e", 1}}
	got, err := Normalize(counts, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"a", "b", "c", "d", "e"}
	for i, w := range want {
		if got[i].Text != w {
			t.Errorf("position %d = %q, want %q", i, got[i].Text, w)
		}
	}
}

func TestNormalizeMonotonic(t *testing.T) {
	counts := Counts{}
	for i, c := range []int{1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144, 233} {
		counts = append(counts, WeightedToken{Text: string(rune('a' + i)), Count: c})
	}
	got, err := Normalize(counts, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i < len(got); i++ {
		hi, lo := got[i-1], got[i]
		if hi.Count > lo.Count && (hi.Bucket < lo.Bucket || hi.FontSize < lo.FontSize) {
			t.Errorf("%s (count %d) has bucket %d/font %d below %s (count %d) bucket %d/font %d",
				hi.Text, hi.Count, hi.Bucket, hi.FontSize, lo.Text, lo.Count, lo.Bucket, lo.FontSize)
		}
		if lo.Bucket < 1 || hi.Bucket > DefaultMaxBucket {
			t.Errorf("bucket out of range: %d..%d", lo.Bucket, hi.Bucket)
		}
		if lo.FontSize < DefaultMinFontSize || hi.FontSize > DefaultMaxFontSize {
			t.Errorf("font size out of range: %d..%d", lo.FontSize, hi.FontSize)
		}
	}
}

func TestNormalizeNLargest(t *testing.T) {
	counts := Counts{{"a", 1}, {"b", 4}, {"c", 4}, {"d", 9}, {"e", 2}}

	tests := []struct {
		n    int
		want []string
	}{
		{1, []string{"d"}},
		{2, []string{"d", "b"}},
		{3, []string{"d", "b", "c"}},
		{10, []string{"d", "b", "c", "e", "a"}},
		{0, []string{"d", "b", "c", "e", "a"}},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		cfg.NLargest = tt.n
		got, err := Normalize(counts, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != len(tt.want) {
			t.Fatalf("n=%d: len = %d, want %d", tt.n, len(got), len(tt.want))
		}
		for i, w := range tt.want {
			if got[i].Text != w {
				t.Errorf("n=%d: position %d = %q, want %q", tt.n, i, got[i].Text, w)
			}
		}
	}
}

func TestNormalizeNLargestKeepsFullRangeBuckets(t *testing.T) {
	cfg := Config{MaxBucket: 20, MinFontSize: 12, MaxFontSize: 48, NLargest: 1}
	got, err := Normalize(Counts{{"a", 10}, {"b", 1}}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Bucket != 20 {
		t.Errorf("bucket = %d, want 20", got[0].Bucket)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	_, err := Normalize(nil, DefaultConfig())
	if !errors.Is(err, errors.ErrCodeEmptyInput) {
		t.Errorf("error = %v, want EMPTY_INPUT", err)
	}
}

func TestCountsRanked(t *testing.T) {
	counts := Counts{{"a", 1}, {"b", 3}, {"c", 1}, {"d", 3}}
	got := counts.Ranked()
	want := []string{"b", "d", "a", "c"}
	for i, w := range want {
		if got[i].Text != w {
			t.Fatalf("Ranked() = %v, want order %v", got, want)
		}
	}
	if counts[0].Text != "a" {
		t.Error("Ranked() modified its receiver")
	}
}
