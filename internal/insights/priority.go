package insights

import (
	"sort"

	"github.com/shopspring/decimal"
	"pulseinsights.org/internal/numfmt"
	"pulseinsights.org/pulsedb"
)

type Category string

const (
	Best      Category = "Best"      // high growth, high volume
	Saturated Category = "Saturated" // low growth, high volume
	Rising    Category = "Rising"    // high growth, low volume
	Idle      Category = "Idle"
)

var categoryOrder = map[Category]int{Best: 0, Saturated: 1, Rising: 2, Idle: 3}

type PriorityCriteria struct {
	GrowthPct float64
	Volume    int64
}

var DefaultPriorityCriteria = PriorityCriteria{GrowthPct: 20, Volume: 100000}

type StatePriority struct {
	State       string       `json:"state"`
	Category    Category     `json:"category"`
	GrowthPct   *float64     `json:"growthPct"`
	Volume      numfmt.Label `json:"volume"`
	Year        int          `json:"year"`
	CurrentYear int64        `json:"currentCount"`
	PriorYear   int64        `json:"previousCount"`
}

// PrioritizeStates classifies every state present in both inputs by its
// insurance growth from year-1 to year and its total volume. Growth is
// rounded to two decimals before classification; a state with no policies
// in year-1 has undefined growth and is Idle. The result is ordered Best,
// Saturated, Rising, Idle and by state within a category.
func PrioritizeStates(byYear []pulsedb.InsuranceStateYear, volumes []pulsedb.InsuranceVolume, year int, c PriorityCriteria) []StatePriority {
	type counts struct{ current, previous int64 }
	perState := make(map[string]*counts)
	for _, r := range byYear {
		cnt, ok := perState[r.State]
		if !ok {
			cnt = &counts{}
			perState[r.State] = cnt
		}
		switch r.Year {
		case year:
			cnt.current += r.Count
		case year - 1:
			cnt.previous += r.Count
		}
	}

	threshold := decimal.NewFromFloat(c.GrowthPct)
	var out []StatePriority
	for _, v := range volumes {
		cnt, ok := perState[v.State]
		if !ok {
			continue
		}

		p := StatePriority{
			State:       v.State,
			Category:    Idle,
			Volume:      numfmt.NewLabel(float64(v.Volume)),
			Year:        year,
			CurrentYear: cnt.current,
			PriorYear:   cnt.previous,
		}
		if growth, ok := growthPercent(cnt.previous, cnt.current); ok {
			growth = growth.Round(2)
			g := growth.InexactFloat64()
			p.GrowthPct = &g
			p.Category = classify(growth.GreaterThan(threshold), v.Volume, c.Volume)
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return categoryOrder[out[i].Category] < categoryOrder[out[j].Category]
		}
		return out[i].State < out[j].State
	})
	return out
}

func classify(highGrowth bool, volume, threshold int64) Category {
	switch {
	case highGrowth && volume > threshold:
		return Best
	case !highGrowth && volume > threshold:
		return Saturated
	case highGrowth && volume < threshold:
		return Rising
	default:
		return Idle
	}
}
