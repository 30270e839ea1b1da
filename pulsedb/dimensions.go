package pulsedb

import (
	"context"
	"database/sql"
	"fmt"
)

// States returns the distinct states that have transaction data, sorted.
func (c *Client) States(ctx context.Context) ([]string, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT DISTINCT state FROM aggregated_transaction ORDER BY state`)
	if err != nil {
		return nil, fmt.Errorf("error querying states: %w", err)
	}
	return collect(c, rows, scanString)
}

// Years returns the distinct years that have transaction data, ascending.
func (c *Client) Years(ctx context.Context) ([]int, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT DISTINCT year FROM aggregated_transaction ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("error querying years: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (int, error) {
		var y int
		err := rows.Scan(&y)
		return y, err
	})
}

// Quarters returns the distinct quarter labels, ascending.
func (c *Client) Quarters(ctx context.Context) ([]string, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT DISTINCT quarter FROM aggregated_transaction ORDER BY quarter`)
	if err != nil {
		return nil, fmt.Errorf("error querying quarters: %w", err)
	}
	return collect(c, rows, scanString)
}

// DistrictsByState maps each state to its sorted list of districts.
func (c *Client) DistrictsByState(ctx context.Context) (map[string][]string, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT DISTINCT state, district FROM top_transaction_districtwise ORDER BY state, district`)
	if err != nil {
		return nil, fmt.Errorf("error querying districts: %w", err)
	}
	type pair struct{ state, district string }
	pairs, err := collect(c, rows, func(rows *sql.Rows) (pair, error) {
		var p pair
		err := rows.Scan(&p.state, &p.district)
		return p, err
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string][]string)
	for _, p := range pairs {
		out[p.state] = append(out[p.state], p.district)
	}
	return out, nil
}

func scanString(rows *sql.Rows) (string, error) {
	var s string
	err := rows.Scan(&s)
	return s, err
}
