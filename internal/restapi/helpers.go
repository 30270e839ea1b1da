package restapi

import (
	"errors"
	"net/http"

	"pulseinsights.org/internal/insights"
	"pulseinsights.org/internal/logging"
	"pulseinsights.org/internal/stats"
	"pulseinsights.org/internal/utils"
	"pulseinsights.org/pulsedb"
)

const maxLimit = 1000

// parseFilter reads the filter dimensions from the query string and answers
// with a 400 when any of them is invalid.
func (api *RestAPI) parseFilter(w http.ResponseWriter, r *http.Request) (pulsedb.Filter, bool) {
	filter, fieldErrors := utils.ParseFilter(r.URL.Query())
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return filter, false
	}
	return filter, true
}

func (api *RestAPI) parseLimit(w http.ResponseWriter, r *http.Request, def int) (int, bool) {
	limit, err := utils.ValidateLimit(r.URL.Query().Get("limit"), def, maxLimit)
	if err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"limit": {err.Error()}})
		return 0, false
	}
	return limit, true
}

// colorScale estimates the color range of samples and logs the estimate.
// It returns nil when there is nothing to scale.
func (api *RestAPI) colorScale(r *http.Request, metric string, samples []float64) *insights.ColorScale {
	scale, summary, err := insights.NewColorScale(samples)
	if errors.Is(err, stats.ErrUndefinedQuantile) {
		return nil
	}
	logging.LogRangeEstimate(logging.FromContext(r.Context()), metric, summary)
	return &scale
}

func truncate[T any](rows []T, limit int) []T {
	if limit > 0 && len(rows) > limit {
		return rows[:limit]
	}
	return rows
}

// samplesOf extracts the color scale samples from every row, before any limit is applied.
func samplesOf[T any](rows []T, value func(T) float64) []float64 {
	samples := make([]float64, len(rows))
	for i, row := range rows {
		samples[i] = value(row)
	}
	return samples
}
