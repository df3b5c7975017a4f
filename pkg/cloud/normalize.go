package cloud

import (
	"cmp"
	"math"
	"slices"

	"github.com/matzehuels/wordgraph/pkg/errors"
)

// Bucket maps count to a size class in 1..maxBucket by linear normalization
// between minCount and maxCount.
func Bucket(count, minCount, maxCount, maxBucket int) int {
	if count <= minCount {
		return 1
	}
	span := max(maxCount-minCount, 1)
	b := int(math.Ceil(float64(maxBucket) * float64(count-minCount) / float64(span)))
	return max(b, 1)
}

// FontSize maps a bucket to a pixel font size between cfg.MinFontSize and
// cfg.MaxFontSize, rounded down.
func FontSize(bucket int, cfg Config) int {
	return int(math.Floor(Remap(
		1, float64(cfg.MaxBucket),
		float64(cfg.MinFontSize), float64(cfg.MaxFontSize),
		float64(bucket),
	)))
}

// Normalize assigns buckets and font sizes to counts and returns the tokens
// sorted by descending count. Equal counts keep their input order. When
// cfg.NLargest is set only the first NLargest tokens of that order are kept.
//
// Buckets are derived from the full input, so truncation never changes the
// size of a surviving token. Dimensions are left zero for the measurer.
func Normalize(counts Counts, cfg Config) ([]SizedToken, error) {
	if len(counts) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyInput, "no tokens to normalize")
	}

	minCount, maxCount := counts[0].Count, counts[0].Count
	for _, t := range counts[1:] {
		minCount = min(minCount, t.Count)
		maxCount = max(maxCount, t.Count)
	}

	sized := make([]SizedToken, len(counts))
	for i, t := range counts {
		b := Bucket(t.Count, minCount, maxCount, cfg.MaxBucket)
		sized[i] = SizedToken{
			WeightedToken: t,
			Bucket:        b,
			FontSize:      FontSize(b, cfg),
		}
	}

	slices.SortStableFunc(sized, func(a, b SizedToken) int {
		return cmp.Compare(b.Count, a.Count)
	})

	if cfg.NLargest > 0 && cfg.NLargest < len(sized) {
		sized = sized[:cfg.NLargest]
	}
	return sized, nil
}
