package insights

import (
	"sort"

	"pulseinsights.org/internal/numfmt"
	"pulseinsights.org/internal/stats"
)

// Cell is one value of a two dimensional grid.
type Cell struct {
	Row   string
	Col   string
	Value float64
}

// Heatmap is a dense grid ready for display. Missing cells are nil with an
// empty label.
type Heatmap struct {
	Rows   []string     `json:"rows"`
	Cols   []string     `json:"cols"`
	Values [][]*float64 `json:"values"`
	Labels [][]string   `json:"labels"`
	ZMin   float64      `json:"zmin"`
	ZMax   float64      `json:"zmax"`
}

// Pivot arranges cells into a grid with sorted row and column keys. Cells
// sharing a position are summed.
func Pivot(cells []Cell) Heatmap {
	rowIdx := map[string]int{}
	colIdx := map[string]int{}
	for _, c := range cells {
		rowIdx[c.Row] = 0
		colIdx[c.Col] = 0
	}
	h := Heatmap{Rows: sortedKeys(rowIdx), Cols: sortedKeys(colIdx)}
	for i, k := range h.Rows {
		rowIdx[k] = i
	}
	for i, k := range h.Cols {
		colIdx[k] = i
	}

	h.Values = make([][]*float64, len(h.Rows))
	h.Labels = make([][]string, len(h.Rows))
	for i := range h.Rows {
		h.Values[i] = make([]*float64, len(h.Cols))
		h.Labels[i] = make([]string, len(h.Cols))
	}

	for _, c := range cells {
		i, j := rowIdx[c.Row], colIdx[c.Col]
		if h.Values[i][j] == nil {
			v := c.Value
			h.Values[i][j] = &v
		} else {
			*h.Values[i][j] += c.Value
		}
	}

	var present []float64
	for i := range h.Values {
		for j, v := range h.Values[i] {
			if v != nil {
				h.Labels[i][j] = numfmt.Magnitude(*v)
				present = append(present, *v)
			}
		}
	}
	h.ZMin, h.ZMax, _ = stats.MinMax(present)
	return h
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
