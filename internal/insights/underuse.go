package insights

import (
	"sort"

	"pulseinsights.org/pulsedb"
)

type UnderuseCriteria struct {
	MinBrandUsers int64   // brand users must exceed this
	MaxOpenRate   float64 // app open rate must stay below this
}

var DefaultUnderuseCriteria = UnderuseCriteria{MinBrandUsers: 5000, MaxOpenRate: 100}

// Underutilized returns the rows where a brand has many users but few app
// opens per user, largest user base first, at most limit rows. Rows with an
// undefined rate never qualify.
func Underutilized(rates []pulsedb.AppOpenRate, c UnderuseCriteria, limit int) []pulsedb.AppOpenRate {
	out := []pulsedb.AppOpenRate{}
	for _, r := range rates {
		if r.BrandUsers > c.MinBrandUsers && r.Rate != nil && *r.Rate < c.MaxOpenRate {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BrandUsers > out[j].BrandUsers
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
