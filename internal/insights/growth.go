package insights

import (
	"sort"

	"github.com/shopspring/decimal"
	"pulseinsights.org/pulsedb"
)

var hundred = decimal.NewFromInt(100)

// growthPercent is (current - previous) * 100 / previous. ok is false when
// previous is zero and growth is undefined.
func growthPercent(previous, current int64) (pct decimal.Decimal, ok bool) {
	if previous == 0 {
		return decimal.Zero, false
	}
	prev := decimal.NewFromInt(previous)
	return decimal.NewFromInt(current).Sub(prev).Mul(hundred).Div(prev), true
}

type RisingCriteria struct {
	MaxPrevious  int64   // previous-year count must be below this
	MinGrowthPct float64 // growth must exceed this
}

var DefaultRisingCriteria = RisingCriteria{MaxPrevious: 10000, MinGrowthPct: 100}

type RisingDistrict struct {
	State         string  `json:"state"`
	District      string  `json:"district"`
	Year          int     `json:"year"`
	PreviousCount int64   `json:"previousCount"`
	Count         int64   `json:"count"`
	GrowthPct     float64 `json:"growthPct"`
	// FromZero marks a district with no activity the year before. Its growth
	// is unbounded and GrowthPct is left at zero.
	FromZero bool `json:"fromZero"`
}

// RisingDistricts compares each district's yearly count with the previous
// year on record for that district and keeps the small districts that grew
// fast. A district going from zero to any activity counts as rising. rows
// must be ordered by state, district and year. The result is sorted by
// growth, fastest first, with FromZero districts ahead of the rest.
func RisingDistricts(rows []pulsedb.DistrictYear, c RisingCriteria) []RisingDistrict {
	minGrowth := decimal.NewFromFloat(c.MinGrowthPct)
	var out []RisingDistrict

	for i := 1; i < len(rows); i++ {
		prev, cur := rows[i-1], rows[i]
		if prev.State != cur.State || prev.District != cur.District {
			continue
		}
		if prev.Count >= c.MaxPrevious {
			continue
		}
		growth, ok := growthPercent(prev.Count, cur.Count)
		if !ok {
			if cur.Count > 0 {
				out = append(out, RisingDistrict{
					State:    cur.State,
					District: cur.District,
					Year:     cur.Year,
					Count:    cur.Count,
					FromZero: true,
				})
			}
			continue
		}
		if !growth.GreaterThan(minGrowth) {
			continue
		}
		out = append(out, RisingDistrict{
			State:         cur.State,
			District:      cur.District,
			Year:          cur.Year,
			PreviousCount: prev.Count,
			Count:         cur.Count,
			GrowthPct:     growth.Round(2).InexactFloat64(),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FromZero != out[j].FromZero {
			return out[i].FromZero
		}
		return out[i].GrowthPct > out[j].GrowthPct
	})
	return out
}
