package insights

import (
	"pulseinsights.org/internal/stats"
)

const (
	MinMarkerSize = 5
	MaxMarkerSize = 50
)

// ScaleSizes maps values linearly from their observed range onto
// [minSize, maxSize]. When every value is equal all markers get maxSize.
func ScaleSizes(values []float64, minSize, maxSize float64) []float64 {
	sizes := make([]float64, len(values))
	lo, hi, ok := stats.MinMax(values)
	if !ok {
		return sizes
	}
	for i, v := range values {
		if hi == lo {
			sizes[i] = maxSize
			continue
		}
		sizes[i] = minSize + (v-lo)*(maxSize-minSize)/(hi-lo)
	}
	return sizes
}

// ColorScale anchors a choropleth color range: the smallest value, the
// typical (median) value and the upper fence above which values are outliers.
type ColorScale struct {
	Min     float64 `json:"min"`
	Typical int64   `json:"typical"`
	Bound   int64   `json:"bound"`
}

// NewColorScale estimates a color range for samples. The summary is returned
// for logging. An empty sample set yields stats.ErrUndefinedQuantile.
func NewColorScale(samples []float64) (ColorScale, stats.Summary, error) {
	s, err := stats.Summarize(samples)
	if err != nil {
		return ColorScale{}, s, err
	}
	lo, _, _ := stats.MinMax(samples)
	return ColorScale{Min: lo, Typical: s.Typical(), Bound: s.Bound()}, s, nil
}
