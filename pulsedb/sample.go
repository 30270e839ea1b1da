package pulsedb

import (
	"context"
	"fmt"
)

// LoadSample fills the store with a small, internally consistent data set
// covering three states over two years. It backs local development with an
// empty SQLite file and the package tests.
func (c *Client) LoadSample(ctx context.Context) error {
	steps := []struct {
		table string
		load  func() error
	}{
		{"aggregated_transaction", func() error {
			return c.InsertAggregatedTransactions(ctx, []AggregatedTransaction{
				{"karnataka", 2023, "Q1", "Peer-to-peer payments", 1000, 5000},
				{"karnataka", 2023, "Q1", "Merchant payments", 3000, 2000},
				{"karnataka", 2024, "Q1", "Peer-to-peer payments", 2000, 8000},
				{"maharashtra", 2023, "Q1", "Peer-to-peer payments", 4000, 9000},
				{"maharashtra", 2024, "Q2", "Merchant payments", 6000, 7000},
				{"kerala", 2024, "Q1", "Peer-to-peer payments", 500, 1500},
			})
		}},
		{"aggregated_user", func() error {
			return c.InsertAggregatedUsers(ctx, []AggregatedUser{
				{"karnataka", 2023, "Q1", "Xiaomi", 3000, 0.6},
				{"karnataka", 2023, "Q1", "Samsung", 2000, 0.4},
				{"karnataka", 2024, "Q1", "Xiaomi", 6000, 0.75},
				{"maharashtra", 2024, "Q1", "Xiaomi", 100, 1},
				{"maharashtra", 2024, "Q1", "Samsung", 0, 0},
			})
		}},
		{"aggregated_insurance", func() error {
			return c.InsertAggregatedInsurance(ctx, []AggregatedInsurance{
				{"karnataka", 2023, "Q1", 1000, 250000},
				{"karnataka", 2024, "Q1", 1500, 400000},
				{"maharashtra", 2023, "Q1", 2000, 600000},
				{"maharashtra", 2024, "Q1", 2100, 650000},
				{"kerala", 2023, "Q1", 100, 20000},
				{"kerala", 2024, "Q1", 300, 70000},
				{"gujarat", 2024, "Q1", 50, 9000},
			})
		}},
		{"map_transaction", func() error {
			return c.InsertMapTransactions(ctx, []DistrictAmount{
				{"karnataka", 2023, "Q1", "mysuru", 2000, 3000},
				{"karnataka", 2024, "Q1", "mysuru", 5000, 8000},
				{"karnataka", 2023, "Q1", "bengaluru urban", 50000, 90000},
				{"karnataka", 2024, "Q1", "bengaluru urban", 120000, 200000},
				{"maharashtra", 2023, "Q1", "pune", 8000, 15000},
				{"maharashtra", 2024, "Q1", "pune", 12000, 21000},
				{"kerala", 2023, "Q1", "ernakulam", 1000, 1800},
				{"kerala", 2024, "Q1", "ernakulam", 4000, 7000},
			})
		}},
		{"map_user", func() error {
			return c.InsertMapUsers(ctx, []MapUser{
				{"karnataka", 2023, "Q1", "bengaluru urban", 5000, 20000},
				{"karnataka", 2024, "Q1", "bengaluru urban", 7000, 35000},
				{"karnataka", 2024, "Q1", "mysuru", 1000, 3000},
				{"maharashtra", 2023, "Q1", "pune", 4000, 10000},
				{"maharashtra", 2024, "Q1", "pune", 6000, 12000},
				{"kerala", 2024, "Q1", "ernakulam", 800, 0},
			})
		}},
		{"map_insurance", func() error {
			return c.InsertMapInsurance(ctx, []DistrictAmount{
				{"karnataka", 2024, "Q1", "bengaluru urban", 200000, 5e7},
				{"maharashtra", 2024, "Q1", "pune", 300000, 8e7},
				{"kerala", 2024, "Q1", "ernakulam", 5000, 1e6},
				{"gujarat", 2024, "Q1", "ahmedabad", 1000, 2e5},
			})
		}},
		{"top_transaction_districtwise", func() error {
			return c.InsertTopTransactionDistricts(ctx, []DistrictAmount{
				{"karnataka", 2023, "Q1", "bengaluru urban", 900, 4000},
				{"karnataka", 2024, "Q1", "bengaluru urban", 1800, 7000},
				{"karnataka", 2024, "Q1", "mysuru", 150, 300},
				{"maharashtra", 2024, "Q2", "pune", 5000, 6000},
				{"kerala", 2024, "Q1", "ernakulam", 400, 1000},
			})
		}},
		{"top_transaction_pincodewise", func() error {
			return c.InsertTopTransactionPincodes(ctx, []PincodeAmount{
				{"karnataka", 2024, "Q1", "560001", 1200, 3000},
				{"maharashtra", 2024, "Q2", "411001", 2500, 2600},
				{"kerala", 2024, "Q1", "682001", 300, 900},
			})
		}},
		{"top_user_districtwise", func() error {
			return c.InsertTopUserDistricts(ctx, []TopUserDistrict{
				{"karnataka", 2024, "Q1", "bengaluru urban", 7000},
				{"karnataka", 2024, "Q1", "mysuru", 1000},
				{"maharashtra", 2024, "Q1", "pune", 6000},
				{"kerala", 2024, "Q1", "ernakulam", 800},
			})
		}},
		{"top_user_pincodewise", func() error {
			return c.InsertTopUserPincodes(ctx, []TopUserPincode{
				{"karnataka", 2024, "Q1", "560001", 4000},
				{"maharashtra", 2024, "Q1", "411001", 3000},
			})
		}},
		{"state_level_location_metrics", func() error {
			return c.InsertDistrictCoordinates(ctx, []DistrictCoordinate{
				{"karnataka", "bengaluru urban", 12.97, 77.59},
				{"karnataka", "mysuru", 12.29, 76.63},
				{"maharashtra", "pune", 18.52, 73.85},
			})
		}},
		{"india_level_location_metrics", func() error {
			return c.InsertStateMetrics(ctx, []StateMetric{
				{"karnataka", 15.31, 75.71, 1500},
				{"maharashtra", 19.75, 75.71, 2100},
			})
		}},
	}

	for _, step := range steps {
		if err := step.load(); err != nil {
			return fmt.Errorf("loading sample %s: %w", step.table, err)
		}
	}
	return nil
}
