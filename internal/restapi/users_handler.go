package restapi

import (
	"net/http"
	"strconv"

	"pulseinsights.org/internal/insights"
	"pulseinsights.org/internal/models"
	"pulseinsights.org/internal/numfmt"
	"pulseinsights.org/internal/utils"
	"pulseinsights.org/pulsedb"
)

const underutilizedLimit = 20

func (api *RestAPI) usersByStateHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.parseFilter(w, r)
	if !ok {
		return
	}
	limit, ok := api.parseLimit(w, r, 0)
	if !ok {
		return
	}
	ctx := r.Context()

	rows, err := api.PulseDB.UsersByState(ctx, filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	grid, err := api.PulseDB.UsersByStateYear(ctx, filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	samples := samplesOf(rows, func(row pulsedb.StateUsers) float64 { return float64(row.Users) })
	rows = truncate(rows, limit)
	entries := make([]models.MetricEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.MetricEntry{
			State:    row.State,
			Count:    numfmt.NewLabel(float64(row.Users)),
			AppOpens: models.LabelPtr(float64(row.AppOpens)),
		})
	}

	cells := make([]insights.Cell, 0, len(grid))
	periods := make([]insights.PeriodValue, 0, len(grid))
	for _, g := range grid {
		if filter.Year.Bound && g.Year != filter.Year.Value {
			continue
		}
		year := strconv.Itoa(g.Year)
		cells = append(cells, insights.Cell{Row: g.State, Col: year, Value: float64(g.Users)})
		periods = append(periods, insights.PeriodValue{Period: year, Value: float64(g.Users)})
	}
	breakdown := insights.PeriodBreakdown(periods)
	heatmap := insights.Pivot(cells)

	api.sendOK(w, r, models.RollupData{
		Entries:    entries,
		ColorScale: api.colorScale(r, "registered_users", samples),
		Breakdown:  &breakdown,
		Heatmap:    &heatmap,
	})
}

func (api *RestAPI) usersByDistrictHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.parseFilter(w, r)
	if !ok {
		return
	}
	limit, ok := api.parseLimit(w, r, 0)
	if !ok {
		return
	}

	rows, err := api.PulseDB.UsersByDistrict(r.Context(), filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	samples := samplesOf(rows, func(row pulsedb.DistrictUsers) float64 { return float64(row.Users) })
	rows = truncate(rows, limit)
	entries := make([]models.MetricEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.MetricEntry{
			State:    row.State,
			District: row.District,
			Count:    numfmt.NewLabel(float64(row.Users)),
		})
	}

	api.sendOK(w, r, models.RollupData{
		Entries:    entries,
		ColorScale: api.colorScale(r, "district_users", samples),
	})
}

func (api *RestAPI) usersByPincodeHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.parseFilter(w, r)
	if !ok {
		return
	}
	limit, ok := api.parseLimit(w, r, 0)
	if !ok {
		return
	}

	rows, err := api.PulseDB.UsersByPincode(r.Context(), filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	samples := samplesOf(rows, func(row pulsedb.PincodeUsers) float64 { return float64(row.Users) })
	rows = truncate(rows, limit)
	entries := make([]models.MetricEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.MetricEntry{
			State:   row.State,
			Pincode: row.Pincode,
			Count:   numfmt.NewLabel(float64(row.Users)),
		})
	}

	api.sendOK(w, r, models.RollupData{
		Entries:    entries,
		ColorScale: api.colorScale(r, "pincode_users", samples),
	})
}

func (api *RestAPI) brandTotalsHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.parseFilter(w, r)
	if !ok {
		return
	}

	rows, err := api.PulseDB.BrandTotals(r.Context(), filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.MetricEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, models.MetricEntry{
			Brand: row.Brand,
			Count: numfmt.NewLabel(float64(row.Users)),
		})
	}
	api.sendOK(w, r, models.RollupData{Entries: entries})
}

// brandUsageHandler returns the state × year heatmap of one device brand.
// Repeated exclude parameters drop years with incomplete brand data.
func (api *RestAPI) brandUsageHandler(w http.ResponseWriter, r *http.Request) {
	brand := utils.SanitizeInput(utils.PathParam(r, "brand"))
	if err := utils.ValidateName(brand); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"brand": {err.Error()}})
		return
	}

	var exclude []int
	for _, v := range r.URL.Query()["exclude"] {
		year, err := utils.ValidateYear(v)
		if err != nil {
			api.validationErrorResponse(w, r, map[string][]string{"exclude": {err.Error()}})
			return
		}
		exclude = append(exclude, year)
	}

	rows, err := api.PulseDB.BrandUsageByStateYear(r.Context(), brand, exclude...)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	if len(rows) == 0 {
		api.sendNotFound(w, r)
		return
	}

	cells := make([]insights.Cell, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, insights.Cell{Row: row.State, Col: strconv.Itoa(row.Year), Value: float64(row.Users)})
	}
	api.sendOK(w, r, insights.Pivot(cells))
}

func (api *RestAPI) appOpenRatesHandler(w http.ResponseWriter, r *http.Request) {
	brand := utils.SanitizeInput(r.URL.Query().Get("brand"))
	if brand != "" {
		if err := utils.ValidateName(brand); err != nil {
			api.validationErrorResponse(w, r, map[string][]string{"brand": {err.Error()}})
			return
		}
	}

	rates, err := api.PulseDB.AppOpenRates(r.Context(), brand)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendOK(w, r, nonNil(rates))
}

func (api *RestAPI) underutilizedBrandsHandler(w http.ResponseWriter, r *http.Request) {
	limit, ok := api.parseLimit(w, r, underutilizedLimit)
	if !ok {
		return
	}

	rates, err := api.PulseDB.AppOpenRates(r.Context(), "")
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	api.sendOK(w, r, insights.Underutilized(rates, insights.DefaultUnderuseCriteria, limit))
}

// userLocationsHandler returns districts with coordinates for a bubble map
// sized by registered users.
func (api *RestAPI) userLocationsHandler(w http.ResponseWriter, r *http.Request) {
	filter, ok := api.parseFilter(w, r)
	if !ok {
		return
	}

	rows, err := api.PulseDB.DistrictUserLocations(r.Context(), filter)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	samples := make([]float64, len(rows))
	for i, row := range rows {
		samples[i] = float64(row.Users)
	}
	sizes := insights.ScaleSizes(samples, insights.MinMarkerSize, insights.MaxMarkerSize)

	locations := make([]models.LocationEntry, 0, len(rows))
	for i, row := range rows {
		locations = append(locations, models.LocationEntry{
			State:     row.State,
			District:  row.District,
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
			Value:     numfmt.NewLabel(samples[i]),
			Size:      sizes[i],
		})
	}

	api.sendOK(w, r, models.LocationData{
		Locations:  locations,
		ColorScale: api.colorScale(r, "district_users", samples),
	})
}
