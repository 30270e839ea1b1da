package insights

import "pulseinsights.org/internal/numfmt"

// PeriodValue is a value attributed to a period such as "2023" or "Q2".
type PeriodValue struct {
	Period string
	Value  float64
}

type PeriodTotal struct {
	Period string       `json:"period"`
	Total  numfmt.Label `json:"total"`
}

type Breakdown struct {
	Periods []PeriodTotal `json:"periods"`
	Gross   numfmt.Label  `json:"gross"`
}

// PeriodBreakdown sums values per period in first-seen order along with the
// gross total.
func PeriodBreakdown(values []PeriodValue) Breakdown {
	var order []string
	sums := map[string]float64{}
	var gross float64
	for _, v := range values {
		if _, seen := sums[v.Period]; !seen {
			order = append(order, v.Period)
		}
		sums[v.Period] += v.Value
		gross += v.Value
	}

	b := Breakdown{Periods: make([]PeriodTotal, 0, len(order)), Gross: numfmt.NewLabel(gross)}
	for _, p := range order {
		b.Periods = append(b.Periods, PeriodTotal{Period: p, Total: numfmt.NewLabel(sums[p])})
	}
	return b
}
