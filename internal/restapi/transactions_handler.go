package restapi

import (
	"net/http"

	"pulseinsights.org/internal/insights"
	"pulseinsights.org/internal/models"
	"pulseinsights.org/internal/numfmt"
	"pulseinsights.org/internal/utils"
	"pulseinsights.org/pulsedb"
)

const defaultRankingSize = 10

func (api *RestAPI) transactionsByStateHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.parseFilter(w, r)
	if !ok {
		return
	}
	limit, ok := api.parseLimit(w, r, 0)
	if !ok {
		return
	}
	ctx := r.Context()

	rows, err := api.PulseDB.TransactionsByState(ctx, filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	byType, err := api.PulseDB.TransactionsByType(ctx, filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	samples := samplesOf(rows, func(row pulsedb.StateTransactions) float64 { return float64(row.Count) })
	rows = truncate(rows, limit)
	entries := make([]models.MetricEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.MetricEntry{
			State:  row.State,
			Count:  numfmt.NewLabel(float64(row.Count)),
			Amount: models.LabelPtr(row.Amount),
		})
	}

	heatmap, periods := typeGrid(byType)
	breakdown := insights.PeriodBreakdown(periods)

	api.sendOK(w, r, models.RollupData{
		Entries:    entries,
		ColorScale: api.colorScale(r, "transaction_count", samples),
		Breakdown:  &breakdown,
		Heatmap:    &heatmap,
	})
}

func (api *RestAPI) transactionTypesHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.parseFilter(w, r)
	if !ok {
		return
	}

	rows, err := api.PulseDB.TransactionsByType(r.Context(), filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	heatmap, _ := typeGrid(rows)
	api.sendOK(w, r, heatmap)
}

// typeGrid pivots payment types against states and sums counts per type.
func typeGrid(rows []pulsedb.TypeTransactions) (insights.Heatmap, []insights.PeriodValue) {
	cells := make([]insights.Cell, 0, len(rows))
	perType := make([]insights.PeriodValue, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, insights.Cell{Row: row.Type, Col: row.State, Value: float64(row.Count)})
		perType = append(perType, insights.PeriodValue{Period: row.Type, Value: float64(row.Count)})
	}
	return insights.Pivot(cells), perType
}

// transactionRankingsHandler splits a transaction rollup into its top n,
// bottom n and the rest. level is one of states, districts or pincodes.
func (api *RestAPI) transactionRankingsHandler(w http.ResponseWriter, r *http.Request) {
	level := utils.PathParam(r, "level")

	filter, ok := api.parseFilter(w, r)
	if !ok {
		return
	}
	n, err := utils.ValidateLimit(r.URL.Query().Get("n"), defaultRankingSize, maxLimit)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"n": {err.Error()}})
		return
	}

	var entries []models.MetricEntry
	ctx := r.Context()
	switch level {
	case "states":
		rows, err := api.PulseDB.TransactionsByState(ctx, filter)
		if err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
		for _, row := range rows {
			entries = append(entries, models.MetricEntry{
				State:  row.State,
				Count:  numfmt.NewLabel(float64(row.Count)),
				Amount: models.LabelPtr(row.Amount),
			})
		}
	case "districts":
		rows, err := api.PulseDB.TransactionsByDistrict(ctx, filter)
		if err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
		for _, row := range rows {
			entries = append(entries, models.MetricEntry{
				State:    row.State,
				District: row.District,
				Count:    numfmt.NewLabel(float64(row.Count)),
				Amount:   models.LabelPtr(row.Amount),
			})
		}
	case "pincodes":
		rows, err := api.PulseDB.TransactionsByPincode(ctx, filter)
		if err != nil {
			api.serverErrorResponse(w, r, err)
			return
		}
		for _, row := range rows {
			entries = append(entries, models.MetricEntry{
				State:   row.State,
				Pincode: row.Pincode,
				Count:   numfmt.NewLabel(float64(row.Count)),
				Amount:  models.LabelPtr(row.Amount),
			})
		}
	default:
		api.sendNotFound(w, r)
		return
	}

	api.sendOK(w, r, models.RankingData{
		Level:   level,
		Ranking: insights.SplitRanking(entries, n),
	})
}

func (api *RestAPI) risingDistrictsHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.parseFilter(w, r)
	if !ok {
		return
	}

	rows, err := api.PulseDB.DistrictYearlyTransactions(r.Context(), filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendOK(w, r, nonNil(insights.RisingDistricts(rows, insights.DefaultRisingCriteria)))
}

func (api *RestAPI) transactionHierarchyHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.parseFilter(w, r)
	if !ok {
		return
	}

	leaves, err := api.PulseDB.TransactionHierarchy(r.Context(), filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendOK(w, r, nonNil(leaves))
}
