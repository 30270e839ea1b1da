package pulsedb

import "strings"

// Dimension is one of the optional filter axes shared by the pulse tables.
type Dimension int

const (
	DimState Dimension = iota
	DimDistrict
	DimYear
	DimQuarter
)

var dimensionColumns = map[Dimension]string{
	DimState:    "state",
	DimDistrict: "district",
	DimYear:     "year",
	DimQuarter:  "quarter",
}

// Optional is a filter value that is either bound or left open.
type Optional[T any] struct {
	Value T
	Bound bool
}

// Bind returns an Optional bound to v.
func Bind[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Bound: true}
}

// Filter selects rows by any combination of state, district, year and quarter.
// The zero value matches everything.
type Filter struct {
	State    Optional[string]
	District Optional[string]
	Year     Optional[int]
	Quarter  Optional[string]
}

// IsEmpty reports whether no dimension is bound.
func (f Filter) IsEmpty() bool {
	return !f.State.Bound && !f.District.Bound && !f.Year.Bound && !f.Quarter.Bound
}

func (f Filter) value(d Dimension) (any, bool) {
	switch d {
	case DimState:
		return f.State.Value, f.State.Bound
	case DimDistrict:
		return f.District.Value, f.District.Bound
	case DimYear:
		return f.Year.Value, f.Year.Bound
	case DimQuarter:
		return f.Quarter.Value, f.Quarter.Bound
	}
	return nil, false
}

// where renders the bound dimensions among allowed as a parameterized WHERE
// clause. alias qualifies the columns when the query joins tables. Dimensions
// the query shape does not support are ignored.
func (f Filter) where(alias string, allowed ...Dimension) (string, []any) {
	var conds []string
	var args []any
	for _, d := range allowed {
		v, ok := f.value(d)
		if !ok {
			continue
		}
		col := dimensionColumns[d]
		if alias != "" {
			col = alias + "." + col
		}
		conds = append(conds, col+" = ?")
		args = append(args, v)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
