package pulsedb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// UsersByState rolls up registered users and app opens per state, largest first.
func (c *Client) UsersByState(ctx context.Context, filter Filter) ([]StateUsers, error) {
	where, args := filter.where("", DimState, DimYear, DimQuarter)
	query := `SELECT state, COALESCE(SUM(registered_users), 0) AS users, COALESCE(SUM(appopen_count), 0)
		FROM map_user` + where + `
		GROUP BY state ORDER BY users DESC, state`

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying users by state: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (StateUsers, error) {
		var r StateUsers
		err := rows.Scan(&r.State, &r.Users, &r.AppOpens)
		return r, err
	})
}

// UsersByStateYear is the state × year grid behind the user heatmap.
func (c *Client) UsersByStateYear(ctx context.Context, filter Filter) ([]StateYearUsers, error) {
	where, args := filter.where("", DimState, DimQuarter)
	query := `SELECT state, year, COALESCE(SUM(registered_users), 0), COALESCE(SUM(appopen_count), 0)
		FROM map_user` + where + `
		GROUP BY state, year ORDER BY state, year`

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying users by state and year: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (StateYearUsers, error) {
		var r StateYearUsers
		err := rows.Scan(&r.State, &r.Year, &r.Users, &r.AppOpens)
		return r, err
	})
}

func (c *Client) UsersByDistrict(ctx context.Context, filter Filter) ([]DistrictUsers, error) {
	where, args := filter.where("", DimState, DimYear, DimQuarter)
	query := `SELECT state, district, COALESCE(SUM(registered_users), 0) AS users
		FROM top_user_districtwise` + where + `
		GROUP BY state, district ORDER BY users DESC, state, district`

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying users by district: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (DistrictUsers, error) {
		var r DistrictUsers
		err := rows.Scan(&r.State, &r.District, &r.Users)
		return r, err
	})
}

func (c *Client) UsersByPincode(ctx context.Context, filter Filter) ([]PincodeUsers, error) {
	where, args := filter.where("", DimState, DimYear, DimQuarter)
	query := `SELECT state, pincode, COALESCE(SUM(registered_users), 0) AS users
		FROM top_user_pincodewise` + where + `
		GROUP BY state, pincode ORDER BY users DESC, state, pincode`

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying users by pincode: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (PincodeUsers, error) {
		var r PincodeUsers
		err := rows.Scan(&r.State, &r.Pincode, &r.Users)
		return r, err
	})
}

// BrandTotals returns the device brands by user count, smallest first.
func (c *Client) BrandTotals(ctx context.Context, filter Filter) ([]BrandTotal, error) {
	where, args := filter.where("", DimState, DimYear, DimQuarter)
	query := `SELECT brand, COALESCE(SUM(user_count), 0) AS users
		FROM aggregated_user` + where + `
		GROUP BY brand ORDER BY users ASC, brand`

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying brand totals: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (BrandTotal, error) {
		var r BrandTotal
		err := rows.Scan(&r.Brand, &r.Users)
		return r, err
	})
}

// BrandUsageByStateYear returns one brand's users per state and year,
// leaving out any excluded years.
func (c *Client) BrandUsageByStateYear(ctx context.Context, brand string, excludeYears ...int) ([]BrandStateYear, error) {
	query := `SELECT state, year, COALESCE(SUM(user_count), 0)
		FROM aggregated_user WHERE brand = ?`
	args := []any{brand}
	if len(excludeYears) > 0 {
		query += " AND year NOT IN (?" + strings.Repeat(", ?", len(excludeYears)-1) + ")"
		for _, y := range excludeYears {
			args = append(args, y)
		}
	}
	query += " GROUP BY state, year ORDER BY state, year"

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying usage of brand %q: %w", brand, err)
	}
	return collect(c, rows, func(rows *sql.Rows) (BrandStateYear, error) {
		var r BrandStateYear
		err := rows.Scan(&r.State, &r.Year, &r.Users)
		return r, err
	})
}

// AppOpenRates joins brand users with app usage per state and year. An empty
// brand returns every brand.
func (c *Client) AppOpenRates(ctx context.Context, brand string) ([]AppOpenRate, error) {
	query := `SELECT b.state, b.year, b.brand, b.brand_users, m.users, m.opens,
			m.opens * 1.0 / NULLIF(b.brand_users, 0)
		FROM (
			SELECT state, year, brand, SUM(user_count) AS brand_users
			FROM aggregated_user GROUP BY state, year, brand
		) AS b
		JOIN (
			SELECT state, year, SUM(registered_users) AS users, SUM(appopen_count) AS opens
			FROM map_user GROUP BY state, year
		) AS m ON b.state = m.state AND b.year = m.year`
	var args []any
	if brand != "" {
		query += ` WHERE b.brand = ?`
		args = append(args, brand)
	}
	query += ` ORDER BY b.state, b.year, b.brand`

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying app open rates: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (AppOpenRate, error) {
		var r AppOpenRate
		var rate sql.NullFloat64
		if err := rows.Scan(&r.State, &r.Year, &r.Brand, &r.BrandUsers,
			&r.RegisteredUsers, &r.AppOpens, &rate); err != nil {
			return r, err
		}
		if rate.Valid {
			r.Rate = &rate.Float64
		}
		return r, nil
	})
}

// DistrictUserLocations joins district user totals with district coordinates.
// Districts without coordinates are dropped.
func (c *Client) DistrictUserLocations(ctx context.Context, filter Filter) ([]DistrictLocation, error) {
	where, args := filter.where("", DimState, DimYear, DimQuarter)
	query := `SELECT u.state, u.district, u.users, l.latitude, l.longitude
		FROM (
			SELECT state, district, SUM(registered_users) AS users
			FROM top_user_districtwise` + where + `
			GROUP BY state, district
		) AS u
		JOIN state_level_location_metrics AS l
			ON u.state = l.state AND u.district = l.district
		ORDER BY u.users DESC, u.state, u.district`

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying district locations: %w", err)
	}
	return collect(c, rows, func(rows *sql.Rows) (DistrictLocation, error) {
		var r DistrictLocation
		err := rows.Scan(&r.State, &r.District, &r.Users, &r.Latitude, &r.Longitude)
		return r, err
	})
}
