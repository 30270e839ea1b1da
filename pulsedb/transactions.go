package pulsedb

import (
	"context"
	"database/sql"
	"fmt"
)

// TransactionsByState rolls up transaction count and amount per state, busiest first.
func (c *Client) TransactionsByState(ctx context.Context, filter Filter) ([]StateTransactions, error) {
	where, args := filter.where("", DimState, DimYear, DimQuarter)
	query := `SELECT state, COALESCE(SUM(transaction_count), 0) AS cnt, COALESCE(SUM(transaction_amount), 0)
		FROM aggregated_transaction` + where + `
		GROUP BY state ORDER BY cnt DESC, state`

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions by state: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (StateTransactions, error) {
		var r StateTransactions
		err := rows.Scan(&r.State, &r.Count, &r.Amount)
		return r, err
	})
}

// TransactionsByType splits transactions per state and payment category.
func (c *Client) TransactionsByType(ctx context.Context, filter Filter) ([]TypeTransactions, error) {
	where, args := filter.where("", DimState, DimYear, DimQuarter)
	query := `SELECT state, transaction_type, COALESCE(SUM(transaction_count), 0), COALESCE(SUM(transaction_amount), 0)
		FROM aggregated_transaction` + where + `
		GROUP BY state, transaction_type ORDER BY state, transaction_type`

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions by type: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (TypeTransactions, error) {
		var r TypeTransactions
		err := rows.Scan(&r.State, &r.Type, &r.Count, &r.Amount)
		return r, err
	})
}

func (c *Client) TransactionsByDistrict(ctx context.Context, filter Filter) ([]DistrictTransactions, error) {
	where, args := filter.where("", DimState, DimDistrict, DimYear, DimQuarter)
	query := `SELECT state, district, COALESCE(SUM(transaction_count), 0) AS cnt, COALESCE(SUM(transaction_amount), 0)
		FROM top_transaction_districtwise` + where + `
		GROUP BY state, district ORDER BY cnt DESC, state, district`

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions by district: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (DistrictTransactions, error) {
		var r DistrictTransactions
		err := rows.Scan(&r.State, &r.District, &r.Count, &r.Amount)
		return r, err
	})
}

func (c *Client) TransactionsByPincode(ctx context.Context, filter Filter) ([]PincodeTransactions, error) {
	where, args := filter.where("", DimState, DimYear, DimQuarter)
	query := `SELECT state, pincode, COALESCE(SUM(transaction_count), 0) AS cnt, COALESCE(SUM(transaction_amount), 0)
		FROM top_transaction_pincodewise` + where + `
		GROUP BY state, pincode ORDER BY cnt DESC, state, pincode`

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions by pincode: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (PincodeTransactions, error) {
		var r PincodeTransactions
		err := rows.Scan(&r.State, &r.Pincode, &r.Count, &r.Amount)
		return r, err
	})
}

// DistrictYearlyTransactions returns per-district yearly counts ordered by
// state, district and year, ready for year-over-year comparison.
func (c *Client) DistrictYearlyTransactions(ctx context.Context, filter Filter) ([]DistrictYear, error) {
	where, args := filter.where("", DimState, DimDistrict)
	query := `SELECT state, district, year, COALESCE(SUM(transaction_count), 0)
		FROM map_transaction` + where + `
		GROUP BY state, district, year ORDER BY state, district, year`

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying yearly district transactions: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (DistrictYear, error) {
		var r DistrictYear
		err := rows.Scan(&r.State, &r.District, &r.Year, &r.Count)
		return r, err
	})
}

// TransactionHierarchy returns the leaf cells of the state > district > year >
// quarter breakdown.
func (c *Client) TransactionHierarchy(ctx context.Context, filter Filter) ([]HierarchyLeaf, error) {
	where, args := filter.where("", DimState, DimDistrict, DimYear, DimQuarter)
	query := `SELECT state, district, year, quarter, transaction_count, transaction_amount
		FROM top_transaction_districtwise` + where + `
		ORDER BY state, district, year, quarter`

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying transaction hierarchy: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (HierarchyLeaf, error) {
		var r HierarchyLeaf
		err := rows.Scan(&r.State, &r.District, &r.Year, &r.Quarter, &r.Count, &r.Amount)
		return r, err
	})
}
