package restapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pulseinsights.org/internal/insights"
	"pulseinsights.org/internal/models"
	"pulseinsights.org/internal/stats"
	"pulseinsights.org/pulsedb"
)

func TestDimensionsHandler(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/pulse/dimensions.json?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, models.ResponseVersion, model.Version)
	assert.Equal(t, "OK", model.Text)
	assert.NotZero(t, model.CurrentTime)

	data := decodeData[models.DimensionsData](t, model)
	assert.Equal(t, []string{"karnataka", "kerala", "maharashtra"}, data.States)
	assert.Equal(t, []int{2023, 2024}, data.Years)
	assert.Equal(t, []string{"Q1", "Q2"}, data.Quarters)
	assert.Equal(t, []string{"pune"}, data.Districts["maharashtra"])
}

func TestHeadlineHandler(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/pulse/headline.json?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData[models.HeadlineData](t, model)
	assert.Equal(t, float64(23800), data.RegisteredUsers.Value)
	assert.Equal(t, "23.80 k", data.RegisteredUsers.Text)
	assert.Equal(t, "16.50 k", data.Transactions.Text)
	assert.Equal(t, "506.00 k", data.Insurance.Text)
}

func TestTrendsHandler(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/pulse/trends/transactions.json?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeData[models.TrendData](t, model)
	assert.Equal(t, "transactions", data.Dataset)
	require.Len(t, data.Points, 3)
	assert.Equal(t, 2023, data.Points[0].Year)
	assert.Equal(t, "8.00 k", data.Points[0].Count.Text)

	resp, model = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/trends/users?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeData[models.TrendData](t, model).Points, 2)

	resp, model = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/trends/weather.json?key=TEST")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, model.Code)
}

func TestUsersByStateHandler(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/pulse/users/states.json?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData[models.RollupData](t, model)
	require.Len(t, data.Entries, 3)
	assert.Equal(t, "karnataka", data.Entries[0].State)
	assert.Equal(t, "13.00 k", data.Entries[0].Count.Text)
	require.NotNil(t, data.Entries[0].AppOpens)
	assert.Equal(t, float64(58000), data.Entries[0].AppOpens.Value)

	require.NotNil(t, data.ColorScale)
	assert.Equal(t, insights.ColorScale{Min: 800, Typical: 10000, Bound: 20650}, *data.ColorScale)

	require.NotNil(t, data.Breakdown)
	require.Len(t, data.Breakdown.Periods, 2)
	assert.Equal(t, "2023", data.Breakdown.Periods[0].Period)
	assert.Equal(t, float64(9000), data.Breakdown.Periods[0].Total.Value)
	assert.Equal(t, float64(14800), data.Breakdown.Periods[1].Total.Value)
	assert.Equal(t, float64(23800), data.Breakdown.Gross.Value)

	require.NotNil(t, data.Heatmap)
	assert.Equal(t, []string{"karnataka", "kerala", "maharashtra"}, data.Heatmap.Rows)
	assert.Equal(t, []string{"2023", "2024"}, data.Heatmap.Cols)
	assert.Nil(t, data.Heatmap.Values[1][0], "kerala has no 2023 users")

	t.Run("year filter narrows every view", func(t *testing.T) {
		resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/pulse/users/states.json?year=2023&key=TEST")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data := decodeData[models.RollupData](t, model)
		assert.Len(t, data.Entries, 2)
		assert.Equal(t, []string{"2023"}, data.Heatmap.Cols)
		assert.Equal(t, float64(9000), data.Breakdown.Gross.Value)
	})

	t.Run("empty result has a null color scale", func(t *testing.T) {
		resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/pulse/users/states.json?year=2019&key=TEST")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		data := decodeData[models.RollupData](t, model)
		assert.Empty(t, data.Entries)
		assert.Nil(t, data.ColorScale)
	})

	t.Run("limit", func(t *testing.T) {
		_, model := serveApiAndRetrieveEndpoint(t, api, "/api/pulse/users/states.json?limit=1&key=TEST")
		limited := decodeData[models.RollupData](t, model)
		assert.Len(t, limited.Entries, 1)

		require.NotNil(t, limited.ColorScale)
		assert.Equal(t, *data.ColorScale, *limited.ColorScale, "color scale covers every state, not just the returned ones")
	})
}

func TestUsersByDistrictAndPincodeHandlers(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/pulse/users/districts.json?state=karnataka&key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	districts := decodeData[models.RollupData](t, model)
	require.Len(t, districts.Entries, 2)
	assert.Equal(t, "bengaluru urban", districts.Entries[0].District)
	assert.Equal(t, "7.00 k", districts.Entries[0].Count.Text)
	require.NotNil(t, districts.ColorScale)
	assert.Equal(t, float64(1000), districts.ColorScale.Min)

	resp, model = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/users/pincodes.json?quarter=q1&key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pincodes := decodeData[models.RollupData](t, model)
	require.Len(t, pincodes.Entries, 2)
	assert.Equal(t, "560001", pincodes.Entries[0].Pincode)
}

func TestBrandHandlers(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/pulse/users/brands.json?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	totals := decodeData[models.RollupData](t, model)
	require.Len(t, totals.Entries, 2)
	assert.Equal(t, "Samsung", totals.Entries[0].Brand)
	assert.Equal(t, "9.10 k", totals.Entries[1].Count.Text)

	resp, model = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/users/brands/Xiaomi?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	heatmap := decodeData[insights.Heatmap](t, model)
	assert.Equal(t, []string{"karnataka", "maharashtra"}, heatmap.Rows)
	assert.Equal(t, float64(100), heatmap.ZMin)
	assert.Equal(t, float64(6000), heatmap.ZMax)

	resp, model = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/users/brands/Xiaomi?exclude=2024&key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	heatmap = decodeData[insights.Heatmap](t, model)
	assert.Equal(t, []string{"karnataka"}, heatmap.Rows)
	assert.Equal(t, []string{"2023"}, heatmap.Cols)

	resp, _ = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/users/brands/Xiaomi?exclude=2023&exclude=2024&key=TEST")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/users/brands/Nokia?key=TEST")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAppOpenRateHandlers(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/pulse/users/app-open-rates.json?brand=Xiaomi&key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rates := decodeData[[]pulsedb.AppOpenRate](t, model)
	assert.Len(t, rates, 3)
	for _, r := range rates {
		assert.Equal(t, "Xiaomi", r.Brand)
	}

	resp, model = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/users/underutilized.json?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	under := decodeData[[]pulsedb.AppOpenRate](t, model)
	require.Len(t, under, 1)
	assert.Equal(t, "karnataka", under[0].State)
	assert.Equal(t, 2024, under[0].Year)
	assert.Equal(t, "Xiaomi", under[0].Brand)
}

func TestUserLocationsHandler(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/pulse/users/locations.json?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData[models.LocationData](t, model)
	require.Len(t, data.Locations, 3)
	assert.Equal(t, "bengaluru urban", data.Locations[0].District)
	assert.Equal(t, float64(insights.MaxMarkerSize), data.Locations[0].Size)
	for _, loc := range data.Locations {
		assert.GreaterOrEqual(t, loc.Size, float64(insights.MinMarkerSize))
		assert.LessOrEqual(t, loc.Size, float64(insights.MaxMarkerSize))
	}
	assert.NotNil(t, data.ColorScale)
}

func TestTransactionsByStateHandler(t *testing.T) {
	api, resp, model := serveAndRetrieveEndpoint(t, "/api/pulse/transactions/states.json?year=2024&key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData[models.RollupData](t, model)
	require.Len(t, data.Entries, 3)
	assert.Equal(t, "maharashtra", data.Entries[0].State)
	require.NotNil(t, data.Entries[0].Amount)
	assert.Equal(t, float64(7000), data.Entries[0].Amount.Value)
	assert.Equal(t, insights.ColorScale{Min: 500, Typical: 2000, Bound: 8125}, *data.ColorScale)

	require.NotNil(t, data.Heatmap)
	assert.Equal(t, []string{"karnataka", "kerala", "maharashtra"}, data.Heatmap.Cols)
	assert.Equal(t, []string{"Merchant payments", "Peer-to-peer payments"}, data.Heatmap.Rows)
	assert.Equal(t, float64(8500), data.Breakdown.Gross.Value)

	resp, model = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/transactions/states.json?year=2024&limit=2&key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	limited := decodeData[models.RollupData](t, model)
	assert.Len(t, limited.Entries, 2)
	require.NotNil(t, limited.ColorScale)
	assert.Equal(t, *data.ColorScale, *limited.ColorScale)
}

func TestTransactionTypesHandler(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/pulse/transactions/types.json?state=karnataka&key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	heatmap := decodeData[insights.Heatmap](t, model)
	assert.Equal(t, []string{"karnataka"}, heatmap.Cols)
	require.Len(t, heatmap.Values, 2)
	assert.Equal(t, float64(3000), *heatmap.Values[0][0])
}

func TestTransactionRankingsHandler(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/pulse/transactions/rankings/districts.json?n=1&key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := decodeData[models.RankingData](t, model)
	assert.Equal(t, "districts", data.Level)
	require.Len(t, data.Top, 1)
	assert.Equal(t, "pune", data.Top[0].District)
	require.Len(t, data.Bottom, 1)
	assert.Equal(t, "mysuru", data.Bottom[0].District)
	require.Len(t, data.Moderate, 2)
	assert.Equal(t, "bengaluru urban", data.Moderate[0].District)

	resp, model = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/transactions/rankings/states?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	states := decodeData[models.RankingData](t, model)
	assert.Len(t, states.Top, 3)
	assert.Empty(t, states.Moderate)

	resp, model = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/transactions/rankings/pincodes?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "411001", decodeData[models.RankingData](t, model).Top[0].Pincode)

	resp, _ = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/transactions/rankings/continents?key=TEST")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/transactions/rankings/states?n=0&key=TEST")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRisingDistrictsHandler(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/pulse/transactions/rising-districts.json?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	rising := decodeData[[]insights.RisingDistrict](t, model)
	require.Len(t, rising, 2)
	assert.Equal(t, "ernakulam", rising[0].District)
	assert.InDelta(t, 300, rising[0].GrowthPct, 1e-9)
	assert.Equal(t, "mysuru", rising[1].District)
	assert.InDelta(t, 150, rising[1].GrowthPct, 1e-9)
}

func TestTransactionHierarchyHandler(t *testing.T) {
	_, resp, model := serveAndRetrieveEndpoint(t, "/api/pulse/transactions/hierarchy.json?state=karnataka&district=bengaluru%20urban&key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	leaves := decodeData[[]pulsedb.HierarchyLeaf](t, model)
	require.Len(t, leaves, 2)
	assert.Equal(t, int64(1800), leaves[1].Count)
}

func TestInsuranceHandlers(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/pulse/insurance/locations.json?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	locations := decodeData[models.LocationData](t, model)
	require.Len(t, locations.Locations, 2)
	assert.Equal(t, "1.50 k", locations.Locations[0].Value.Text)
	assert.Equal(t, float64(insights.MinMarkerSize), locations.Locations[0].Size)
	assert.Equal(t, float64(insights.MaxMarkerSize), locations.Locations[1].Size)

	resp, model = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/insurance/priorities.json?key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	priorities := decodeData[[]insights.StatePriority](t, model)
	require.Len(t, priorities, 4)

	categories := map[string]insights.Category{}
	for _, p := range priorities {
		categories[p.State] = p.Category
		assert.Equal(t, 2024, p.Year)
	}
	assert.Equal(t, map[string]insights.Category{
		"karnataka":   insights.Best,
		"maharashtra": insights.Saturated,
		"kerala":      insights.Rising,
		"gujarat":     insights.Idle,
	}, categories)

	resp, model = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/insurance/priorities.json?year=2023&key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, p := range decodeData[[]insights.StatePriority](t, model) {
		assert.Nil(t, p.GrowthPct, "no 2022 data")
		assert.Equal(t, insights.Idle, p.Category)
	}

	resp, _ = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/insurance/priorities.json?year=20x4&key=TEST")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFormatHandler(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/pulse/format.json?value=2500000&key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeData[map[string]any](t, model)
	assert.Equal(t, "2.50 M", data["label"])
	assert.Equal(t, float64(2500000), data["value"])

	resp, _ = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/format.json?value=lots&key=TEST")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBoundsHandler(t *testing.T) {
	api := createTestApi(t)

	resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/pulse/bounds.json?values=1,2,3,4,100&key=TEST")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := decodeData[models.BoundsData](t, model)
	assert.Equal(t, int64(3), data.Typical)
	assert.Equal(t, int64(7), data.Bound)
	assert.Equal(t, stats.Summary{Count: 5, Q1: 2, Q2: 3, Q3: 4, IQR: 2, Lower: -1, Upper: 7}, data.Summary)

	resp, _ = serveApiAndRetrieveEndpoint(t, api, "/api/pulse/bounds.json?key=TEST")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestInputValidation(t *testing.T) {
	api := createTestApi(t)

	tests := []struct {
		name     string
		endpoint string
		field    string
	}{
		{"year out of range", "/api/pulse/users/states.json?year=1999&key=TEST", "year"},
		{"year not a number", "/api/pulse/transactions/states.json?year=twenty&key=TEST", "year"},
		{"bad quarter", "/api/pulse/users/districts.json?quarter=Q5&key=TEST", "quarter"},
		{"injection in state", "/api/pulse/transactions/hierarchy.json?state=goa%27%3B%20DROP%20TABLE%20map_user%3B--&key=TEST", "state"},
		{"negative limit", "/api/pulse/users/pincodes.json?limit=-1&key=TEST", "limit"},
		{"huge limit", "/api/pulse/users/underutilized.json?limit=100000&key=TEST", "limit"},
		{"bad brand", "/api/pulse/users/app-open-rates.json?brand=a%3Bb&key=TEST", "brand"},
		{"comment marker in brand", "/api/pulse/users/app-open-rates.json?brand=Xiaomi--&key=TEST", "brand"},
		{"bad brand in path", "/api/pulse/users/brands/a%3Bb?key=TEST", "brand"},
		{"comment marker in brand path", "/api/pulse/users/brands/Samsung--?key=TEST", "brand"},
		{"bad excluded year", "/api/pulse/users/brands/Xiaomi?exclude=22&key=TEST", "exclude"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(newTestServer(t, api) + tt.endpoint)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var body struct {
				FieldErrors map[string][]string `json:"fieldErrors"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Contains(t, body.FieldErrors, tt.field)
		})
	}

	t.Run("field errors are reported by name", func(t *testing.T) {
		resp, err := http.Get(newTestServer(t, api) + "/api/pulse/users/states.json?year=1999&quarter=Q9&key=TEST")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		var body struct {
			FieldErrors map[string][]string `json:"fieldErrors"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Contains(t, body.FieldErrors, "year")
		assert.Contains(t, body.FieldErrors, "quarter")
	})

	t.Run("All leaves a dimension unbound", func(t *testing.T) {
		resp, model := serveApiAndRetrieveEndpoint(t, api, "/api/pulse/users/states.json?state=All&year=All&key=TEST")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, decodeData[models.RollupData](t, model).Entries, 3)
	})
}

func newTestServer(t *testing.T, api *RestAPI) string {
	t.Helper()
	mux := http.NewServeMux()
	api.SetRoutes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server.URL
}
