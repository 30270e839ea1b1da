package restapi

import (
	"net/http"
	"strings"

	"pulseinsights.org/internal/insights"
	"pulseinsights.org/internal/models"
	"pulseinsights.org/internal/numfmt"
	"pulseinsights.org/internal/utils"
)

func (api *RestAPI) insuranceLocationsHandler(w http.ResponseWriter, r *http.Request) {
	rows, err := api.PulseDB.InsuranceLocations(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	samples := make([]float64, len(rows))
	for i, row := range rows {
		samples[i] = row.Metric
	}
	sizes := insights.ScaleSizes(samples, insights.MinMarkerSize, insights.MaxMarkerSize)

	locations := make([]models.LocationEntry, 0, len(rows))
	for i, row := range rows {
		locations = append(locations, models.LocationEntry{
			State:     row.State,
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
			Value:     numfmt.NewLabel(row.Metric),
			Size:      sizes[i],
		})
	}

	api.sendOK(w, r, models.LocationData{
		Locations:  locations,
		ColorScale: api.colorScale(r, "insurance_metric", samples),
	})
}

// insurancePrioritiesHandler classifies states by insurance growth into the
// requested year. Without a year the latest year on record is used.
func (api *RestAPI) insurancePrioritiesHandler(w http.ResponseWriter, r *http.Request) {
	year := 0
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		y, err := utils.ValidateYear(v)
		if err != nil {
			api.validationErrorResponse(w, r, map[string][]string{"year": {err.Error()}})
			return
		}
		year = y
	}
	ctx := r.Context()

	byYear, err := api.PulseDB.InsuranceByStateYear(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	volumes, err := api.PulseDB.InsuranceVolumeByState(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	if year == 0 {
		for _, row := range byYear {
			year = max(year, row.Year)
		}
	}

	api.sendOK(w, r, nonNil(insights.PrioritizeStates(byYear, volumes, year, insights.DefaultPriorityCriteria)))
}
