package stats

import (
	"errors"
	"math"
	"sort"
)

// ErrUndefinedQuantile is returned when quantiles are requested for an empty sample set.
var ErrUndefinedQuantile = errors.New("quantile undefined for empty sample set")

// tukeyK is the fence multiplier applied to the interquartile range.
const tukeyK = 1.5

// Summary holds the quartiles and Tukey fences of a sample set.
type Summary struct {
	Count int     `json:"count"`
	Q1    float64 `json:"q1"`
	Q2    float64 `json:"q2"`
	Q3    float64 `json:"q3"`
	IQR   float64 `json:"iqr"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// Summarize sorts a copy of samples and computes quartiles by linear
// interpolation between closest ranks, the interquartile range and both fences.
func Summarize(samples []float64) (Summary, error) {
	if len(samples) == 0 {
		return Summary{}, ErrUndefinedQuantile
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	q1 := Quantile(sorted, 0.25)
	q2 := Quantile(sorted, 0.50)
	q3 := Quantile(sorted, 0.75)
	iqr := q3 - q1

	return Summary{
		Count: len(sorted),
		Q1:    q1,
		Q2:    q2,
		Q3:    q3,
		IQR:   iqr,
		Lower: q1 - tukeyK*iqr,
		Upper: q3 + tukeyK*iqr,
	}, nil
}

// IQRBounds returns the median and the upper Tukey fence of samples, both
// truncated to integers. The lower fence is available through Summarize.
func IQRBounds(samples []float64) (typical int64, bound int64, err error) {
	s, err := Summarize(samples)
	if err != nil {
		return 0, 0, err
	}
	return s.Typical(), s.Bound(), nil
}

// Typical is the median truncated toward zero.
func (s Summary) Typical() int64 {
	return int64(math.Trunc(s.Q2))
}

// Bound is the upper fence truncated toward zero.
func (s Summary) Bound() int64 {
	return int64(math.Trunc(s.Upper))
}

// Quantile returns the q-th quantile of an ascending slice using linear
// interpolation at position q*(n-1). sorted must not be empty.
func Quantile(sorted []float64, q float64) float64 {
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*w
}

// MinMax returns the smallest and largest sample. ok is false for an empty slice.
func MinMax(samples []float64) (lo, hi float64, ok bool) {
	if len(samples) == 0 {
		return 0, 0, false
	}
	lo, hi = samples[0], samples[0]
	for _, v := range samples[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, true
}
