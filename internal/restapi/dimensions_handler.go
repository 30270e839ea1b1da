package restapi

import (
	"net/http"

	"pulseinsights.org/internal/models"
)

func (api *RestAPI) dimensionsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	states, err := api.PulseDB.States(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	years, err := api.PulseDB.Years(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	quarters, err := api.PulseDB.Quarters(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
	districts, err := api.PulseDB.DistrictsByState(ctx)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendOK(w, r, models.DimensionsData{
		States:    nonNil(states),
		Years:     nonNil(years),
		Quarters:  nonNil(quarters),
		Districts: districts,
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
