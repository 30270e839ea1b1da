package numfmt

import (
	"fmt"
	"strconv"
)

// unit is a display suffix applied to values strictly above its threshold.
type unit struct {
	threshold float64
	suffix    string
}

// units are ordered from largest to smallest. Crore (1e7) sits between the
// decimal million and billion units because payment volumes are reported in crores.
var units = []unit{
	{threshold: 1e12, suffix: "T"},
	{threshold: 1e9, suffix: "B"},
	{threshold: 1e7, suffix: "Cr"},
	{threshold: 1e6, suffix: "M"},
	{threshold: 1e3, suffix: "k"},
}

// Magnitude renders n as a compact label such as "2.50 M" or "15.00 Cr".
//
// The largest unit whose threshold n strictly exceeds is used, so a value equal
// to a threshold falls to the next smaller unit (1,000,000 renders as
// "1000.00 k"). Values at or below 1,000, including negatives, are returned in
// their shortest plain form without a suffix.
func Magnitude(n float64) string {
	for _, u := range units {
		if n > u.threshold {
			return fmt.Sprintf("%.2f %s", n/u.threshold, u.suffix)
		}
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// MagnitudeInt is Magnitude for integer counts.
func MagnitudeInt(n int64) string {
	return Magnitude(float64(n))
}

// Label pairs a raw magnitude with its display form.
type Label struct {
	Value float64 `json:"value"`
	Text  string  `json:"label"`
}

// NewLabel formats v and keeps the raw value alongside the label.
func NewLabel(v float64) Label {
	return Label{Value: v, Text: Magnitude(v)}
}
