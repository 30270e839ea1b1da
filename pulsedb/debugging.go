package pulsedb

import (
	"context"
	"fmt"
)

// Tables lists every table of the embedded schema.
var Tables = []string{
	"aggregated_transaction",
	"aggregated_user",
	"aggregated_insurance",
	"map_transaction",
	"map_user",
	"map_insurance",
	"top_transaction_districtwise",
	"top_transaction_pincodewise",
	"top_user_districtwise",
	"top_user_pincodewise",
	"state_level_location_metrics",
	"india_level_location_metrics",
}

// TableCounts returns the row count of every known table.
func (c *Client) TableCounts(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(Tables))
	for _, table := range Tables {
		var count int
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", table)
		if err := c.DB.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return nil, fmt.Errorf("error counting %s: %w", table, err)
		}
		counts[table] = count
	}
	return counts, nil
}
