package insights

// Ranking splits a descending list into its leaders, its laggards and
// everything in between.
type Ranking[T any] struct {
	Top      []T `json:"top"`
	Moderate []T `json:"moderate"`
	Bottom   []T `json:"bottom"`
}

// SplitRanking takes rows sorted from largest to smallest. Top and Bottom
// hold up to n rows each and overlap when there are fewer than 2n rows, in
// which case Moderate is empty.
func SplitRanking[T any](rows []T, n int) Ranking[T] {
	r := Ranking[T]{Top: []T{}, Moderate: []T{}, Bottom: []T{}}
	if n <= 0 || len(rows) == 0 {
		return r
	}

	k := min(n, len(rows))
	r.Top = append(r.Top, rows[:k]...)
	r.Bottom = append(r.Bottom, rows[len(rows)-k:]...)
	if len(rows) > 2*n {
		r.Moderate = append(r.Moderate, rows[n:len(rows)-n]...)
	}
	return r
}
