package pulsedb

import (
	"context"
	"fmt"

	"pulseinsights.org/internal/logging"
)

// insertBatch writes rows through one prepared REPLACE statement inside a
// single transaction. REPLACE is understood by both MySQL and SQLite.
func insertBatch[T any](ctx context.Context, c *Client, table, stmtSQL string, rows []T, args func(T) []any) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "insert_"+table)

	stmt, err := tx.PrepareContext(ctx, stmtSQL)
	if err != nil {
		return fmt.Errorf("error preparing statement for %s: %w", table, err)
	}
	defer logging.SafeCloseWithLogging(stmt, c.logger, "insert_"+table)

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx, args(row)...); err != nil {
			return fmt.Errorf("error inserting into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

func (c *Client) InsertAggregatedTransactions(ctx context.Context, rows []AggregatedTransaction) error {
	return insertBatch(ctx, c, "aggregated_transaction",
		`REPLACE INTO aggregated_transaction (state, year, quarter, transaction_type, transaction_count, transaction_amount)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rows, func(r AggregatedTransaction) []any {
			return []any{r.State, r.Year, r.Quarter, r.Type, r.Count, r.Amount}
		})
}

func (c *Client) InsertAggregatedUsers(ctx context.Context, rows []AggregatedUser) error {
	return insertBatch(ctx, c, "aggregated_user",
		`REPLACE INTO aggregated_user (state, year, quarter, brand, user_count, user_percentage)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rows, func(r AggregatedUser) []any {
			return []any{r.State, r.Year, r.Quarter, r.Brand, r.Count, r.Percentage}
		})
}

func (c *Client) InsertAggregatedInsurance(ctx context.Context, rows []AggregatedInsurance) error {
	return insertBatch(ctx, c, "aggregated_insurance",
		`REPLACE INTO aggregated_insurance (state, year, quarter, insurance_count, insurance_amount)
		VALUES (?, ?, ?, ?, ?)`,
		rows, func(r AggregatedInsurance) []any {
			return []any{r.State, r.Year, r.Quarter, r.Count, r.Amount}
		})
}

func districtAmountArgs(r DistrictAmount) []any {
	return []any{r.State, r.Year, r.Quarter, r.District, r.Count, r.Amount}
}

func (c *Client) InsertMapTransactions(ctx context.Context, rows []DistrictAmount) error {
	return insertBatch(ctx, c, "map_transaction",
		`REPLACE INTO map_transaction (state, year, quarter, district, transaction_count, transaction_amount)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rows, districtAmountArgs)
}

func (c *Client) InsertMapInsurance(ctx context.Context, rows []DistrictAmount) error {
	return insertBatch(ctx, c, "map_insurance",
		`REPLACE INTO map_insurance (state, year, quarter, district, insurance_count, insurance_amount)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rows, districtAmountArgs)
}

func (c *Client) InsertTopTransactionDistricts(ctx context.Context, rows []DistrictAmount) error {
	return insertBatch(ctx, c, "top_transaction_districtwise",
		`REPLACE INTO top_transaction_districtwise (state, year, quarter, district, transaction_count, transaction_amount)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rows, districtAmountArgs)
}

func (c *Client) InsertTopTransactionPincodes(ctx context.Context, rows []PincodeAmount) error {
	return insertBatch(ctx, c, "top_transaction_pincodewise",
		`REPLACE INTO top_transaction_pincodewise (state, year, quarter, pincode, transaction_count, transaction_amount)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rows, func(r PincodeAmount) []any {
			return []any{r.State, r.Year, r.Quarter, r.Pincode, r.Count, r.Amount}
		})
}

func (c *Client) InsertMapUsers(ctx context.Context, rows []MapUser) error {
	return insertBatch(ctx, c, "map_user",
		`REPLACE INTO map_user (state, year, quarter, district, registered_users, appopen_count)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rows, func(r MapUser) []any {
			return []any{r.State, r.Year, r.Quarter, r.District, r.RegisteredUsers, r.AppOpens}
		})
}

func (c *Client) InsertTopUserDistricts(ctx context.Context, rows []TopUserDistrict) error {
	return insertBatch(ctx, c, "top_user_districtwise",
		`REPLACE INTO top_user_districtwise (state, year, quarter, district, registered_users)
		VALUES (?, ?, ?, ?, ?)`,
		rows, func(r TopUserDistrict) []any {
			return []any{r.State, r.Year, r.Quarter, r.District, r.RegisteredUsers}
		})
}

func (c *Client) InsertTopUserPincodes(ctx context.Context, rows []TopUserPincode) error {
	return insertBatch(ctx, c, "top_user_pincodewise",
		`REPLACE INTO top_user_pincodewise (state, year, quarter, pincode, registered_users)
		VALUES (?, ?, ?, ?, ?)`,
		rows, func(r TopUserPincode) []any {
			return []any{r.State, r.Year, r.Quarter, r.Pincode, r.RegisteredUsers}
		})
}

func (c *Client) InsertDistrictCoordinates(ctx context.Context, rows []DistrictCoordinate) error {
	return insertBatch(ctx, c, "state_level_location_metrics",
		`REPLACE INTO state_level_location_metrics (state, district, latitude, longitude)
		VALUES (?, ?, ?, ?)`,
		rows, func(r DistrictCoordinate) []any {
			return []any{r.State, r.District, r.Latitude, r.Longitude}
		})
}

func (c *Client) InsertStateMetrics(ctx context.Context, rows []StateMetric) error {
	return insertBatch(ctx, c, "india_level_location_metrics",
		`REPLACE INTO india_level_location_metrics (state, latitude, longitude, metric)
		VALUES (?, ?, ?, ?)`,
		rows, func(r StateMetric) []any {
			return []any{r.State, r.Latitude, r.Longitude, r.Metric}
		})
}
