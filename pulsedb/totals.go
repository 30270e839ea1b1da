package pulsedb

import (
	"context"
	"database/sql"
	"fmt"
)

func (c *Client) scalarTotal(ctx context.Context, query string) (int64, error) {
	var total int64
	if err := c.DB.QueryRowContext(ctx, query).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// TotalRegisteredUsers sums registered users over every district and quarter.
func (c *Client) TotalRegisteredUsers(ctx context.Context) (int64, error) {
	total, err := c.scalarTotal(ctx, `SELECT COALESCE(SUM(registered_users), 0) FROM map_user`)
	if err != nil {
		return 0, fmt.Errorf("error querying registered users: %w", err)
	}
	return total, nil
}

func (c *Client) TotalTransactions(ctx context.Context) (int64, error) {
	total, err := c.scalarTotal(ctx, `SELECT COALESCE(SUM(transaction_count), 0) FROM aggregated_transaction`)
	if err != nil {
		return 0, fmt.Errorf("error querying transactions: %w", err)
	}
	return total, nil
}

func (c *Client) TotalInsuranceCount(ctx context.Context) (int64, error) {
	total, err := c.scalarTotal(ctx, `SELECT COALESCE(SUM(insurance_count), 0) FROM map_insurance`)
	if err != nil {
		return 0, fmt.Errorf("error querying insurance count: %w", err)
	}
	return total, nil
}

var trendQueries = map[Dataset]string{
	DatasetUsers: `SELECT year, quarter, COALESCE(SUM(registered_users), 0), COALESCE(SUM(appopen_count), 0)
		FROM map_user GROUP BY year, quarter ORDER BY year, quarter`,
	DatasetTransactions: `SELECT year, quarter, COALESCE(SUM(transaction_count), 0), COALESCE(SUM(transaction_amount), 0)
		FROM aggregated_transaction GROUP BY year, quarter ORDER BY year, quarter`,
	DatasetInsurance: `SELECT year, quarter, COALESCE(SUM(insurance_count), 0), COALESCE(SUM(insurance_amount), 0)
		FROM aggregated_insurance GROUP BY year, quarter ORDER BY year, quarter`,
}

// Trends returns the dataset's totals per (year, quarter), oldest first.
func (c *Client) Trends(ctx context.Context, dataset Dataset) ([]TrendPoint, error) {
	query, ok := trendQueries[dataset]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}
	rows, err := c.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying %s trend: %w", dataset, err)
	}
	return collect(c, rows, func(rows *sql.Rows) (TrendPoint, error) {
		var p TrendPoint
		err := rows.Scan(&p.Year, &p.Quarter, &p.Count, &p.Amount)
		return p, err
	})
}
