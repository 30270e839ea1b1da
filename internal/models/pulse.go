package models

import (
	"pulseinsights.org/internal/insights"
	"pulseinsights.org/internal/numfmt"
	"pulseinsights.org/internal/stats"
)

type DimensionsData struct {
	States    []string            `json:"states"`
	Years     []int               `json:"years"`
	Quarters  []string            `json:"quarters"`
	Districts map[string][]string `json:"districts"`
}

type HeadlineData struct {
	RegisteredUsers numfmt.Label `json:"registeredUsers"`
	Transactions    numfmt.Label `json:"transactions"`
	Insurance       numfmt.Label `json:"insurance"`
}

func NewHeadlineData(users, transactions, insurance int64) HeadlineData {
	return HeadlineData{
		RegisteredUsers: numfmt.NewLabel(float64(users)),
		Transactions:    numfmt.NewLabel(float64(transactions)),
		Insurance:       numfmt.NewLabel(float64(insurance)),
	}
}

type TrendEntry struct {
	Year    int          `json:"year"`
	Quarter string       `json:"quarter"`
	Count   numfmt.Label `json:"count"`
	Amount  numfmt.Label `json:"amount"`
}

type TrendData struct {
	Dataset string       `json:"dataset"`
	Points  []TrendEntry `json:"points"`
}

// MetricEntry is one row of a rollup. Only the keys that apply to the
// rollup level are set.
type MetricEntry struct {
	State    string        `json:"state,omitempty"`
	District string        `json:"district,omitempty"`
	Pincode  string        `json:"pincode,omitempty"`
	Brand    string        `json:"brand,omitempty"`
	Count    numfmt.Label  `json:"count"`
	Amount   *numfmt.Label `json:"amount,omitempty"`
	AppOpens *numfmt.Label `json:"appOpens,omitempty"`
}

// LabelPtr formats v for the optional fields of MetricEntry.
func LabelPtr(v float64) *numfmt.Label {
	l := numfmt.NewLabel(v)
	return &l
}

// RollupData carries the entries of a rollup and the views derived from
// them. ColorScale is null when there is nothing to scale.
type RollupData struct {
	Entries    []MetricEntry        `json:"entries"`
	ColorScale *insights.ColorScale `json:"colorScale"`
	Breakdown  *insights.Breakdown  `json:"breakdown,omitempty"`
	Heatmap    *insights.Heatmap    `json:"heatmap,omitempty"`
}

type RankingData struct {
	Level string `json:"level"`
	insights.Ranking[MetricEntry]
}

type LocationEntry struct {
	State     string       `json:"state"`
	District  string       `json:"district,omitempty"`
	Latitude  float64      `json:"lat"`
	Longitude float64      `json:"lon"`
	Value     numfmt.Label `json:"value"`
	Size      float64      `json:"size,omitempty"`
}

type LocationData struct {
	Locations  []LocationEntry      `json:"locations"`
	ColorScale *insights.ColorScale `json:"colorScale"`
}

type BoundsData struct {
	Typical int64         `json:"typical"`
	Bound   int64         `json:"bound"`
	Summary stats.Summary `json:"summary"`
}
