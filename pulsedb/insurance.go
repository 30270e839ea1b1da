package pulsedb

import (
	"context"
	"database/sql"
	"fmt"
)

// InsuranceByStateYear returns insurance policy counts per state and year.
func (c *Client) InsuranceByStateYear(ctx context.Context) ([]InsuranceStateYear, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT state, year, COALESCE(SUM(insurance_count), 0)
		FROM aggregated_insurance GROUP BY state, year ORDER BY state, year`)
	if err != nil {
		return nil, fmt.Errorf("error querying insurance by state and year: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (InsuranceStateYear, error) {
		var r InsuranceStateYear
		err := rows.Scan(&r.State, &r.Year, &r.Count)
		return r, err
	})
}

// InsuranceVolumeByState returns the all-time district level insurance volume per state.
func (c *Client) InsuranceVolumeByState(ctx context.Context) ([]InsuranceVolume, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT state, COALESCE(SUM(insurance_count), 0)
		FROM map_insurance GROUP BY state ORDER BY state`)
	if err != nil {
		return nil, fmt.Errorf("error querying insurance volume: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (InsuranceVolume, error) {
		var r InsuranceVolume
		err := rows.Scan(&r.State, &r.Volume)
		return r, err
	})
}

func (c *Client) InsuranceLocations(ctx context.Context) ([]InsuranceLocation, error) {
	rows, err := c.DB.QueryContext(ctx,
		`SELECT state, latitude, longitude, metric FROM india_level_location_metrics ORDER BY state`)
	if err != nil {
		return nil, fmt.Errorf("error querying insurance locations: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (InsuranceLocation, error) {
		var r InsuranceLocation
		err := rows.Scan(&r.State, &r.Latitude, &r.Longitude, &r.Metric)
		return r, err
	})
}
